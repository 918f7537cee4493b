package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all aval scoring tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all aval tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "aval",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds all aval scoring tools to the server.
func (s *Server) registerTools() {
	// Project-type SmartScore
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_smartscore",
		Description: describeSmartScore(),
	}, handleScoreSmartScore)

	// Credit-committee ratios
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "compute_ratios",
		Description: describeRatios(),
	}, handleComputeRatios)

	// Committee risk/decision aggregation
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_committee",
		Description: describeCommittee(),
	}, handleScoreCommittee)

	// Batch scoring of dossier files
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_batch",
		Description: describeBatch(),
	}, handleScoreBatch)

	// Schema validation
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_dossier",
		Description: describeValidate(),
	}, handleValidateDossier)
}

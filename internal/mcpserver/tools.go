package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/internal/schema"
	"github.com/tlemarchand/aval/pkg/committee"
	"github.com/tlemarchand/aval/pkg/portfolio"
	"github.com/tlemarchand/aval/pkg/ratios"
)

// Tool input structures

// SmartScoreInput scores a single dossier document.
type SmartScoreInput struct {
	Dossier map[string]any `json:"dossier" jsonschema:"Dossier document: project_nature selects the scorer, input carries its provider blocks."`
	Format  string         `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// RatiosInput computes the credit-committee ratios.
type RatiosInput struct {
	Params map[string]any `json:"params" jsonschema:"Loan parameters: amount, duration, rate, budget, revenus, bien, garantie. French and English field names both work."`
	Format string         `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// CommitteeInput aggregates an operation document into a committee decision.
type CommitteeInput struct {
	Document  map[string]any `json:"document" jsonschema:"Operation document with market scores, risks.geo block, and coverage statuses."`
	RiskScore *float64       `json:"risk_score,omitempty" jsonschema:"Externally computed risk score 0-100, if any. A suspect neutral value is cross-checked against geo data."`
	Format    string         `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// BatchInput scores a set of dossier files.
type BatchInput struct {
	Paths  []string `json:"paths" jsonschema:"Dossier file paths to score."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// ValidateInput checks a dossier document against the embedded schema.
type ValidateInput struct {
	Dossier map[string]any `json:"dossier" jsonschema:"Dossier document to validate."`
}

// Helper functions

func getFormat(format string) output.Format {
	switch format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func formatOutput(data any, format output.Format) (string, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	if format == output.FormatMarkdown {
		return "```\n" + string(out) + "\n```", nil
	}
	return string(out), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func handleScoreSmartScore(ctx context.Context, req *mcp.CallToolRequest, input SmartScoreInput) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(input.Dossier)
	if err != nil {
		return toolError(err.Error())
	}
	if err := schema.ValidateDossier(data); err != nil {
		return toolError(formatIssues(err))
	}

	d, err := portfolio.ParseDossier(data)
	if err != nil {
		return toolError(err.Error())
	}
	result, err := d.Score()
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(result, getFormat(input.Format))
}

func handleComputeRatios(ctx context.Context, req *mcp.CallToolRequest, input RatiosInput) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(input.Params)
	if err != nil {
		return toolError(err.Error())
	}
	if err := schema.ValidateRatios(data); err != nil {
		return toolError(formatIssues(err))
	}

	var params ratios.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return toolError(err.Error())
	}
	return toolResult(ratios.ComputeRatios(params), getFormat(input.Format))
}

func handleScoreCommittee(ctx context.Context, req *mcp.CallToolRequest, input CommitteeInput) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(input.Document)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(committee.ComputeCommitteeData(data, input.RiskScore), getFormat(input.Format))
}

func handleScoreBatch(ctx context.Context, req *mcp.CallToolRequest, input BatchInput) (*mcp.CallToolResult, any, error) {
	if len(input.Paths) == 0 {
		return toolError("no dossier paths given")
	}

	runner := portfolio.NewRunner()
	results := runner.Run(ctx, input.Paths)
	return toolResult(results, getFormat(input.Format))
}

func handleValidateDossier(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(input.Dossier)
	if err != nil {
		return toolError(err.Error())
	}
	if err := schema.ValidateDossier(data); err != nil {
		return toolError(formatIssues(err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Dossier is valid."},
		},
	}, nil, nil
}

func formatIssues(err error) string {
	issues := schema.Issues(err)
	msg := "invalid document"
	for _, is := range issues {
		msg += "\n  " + is
	}
	return msg
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes aval's scoring
engines as tools that LLMs can invoke.

To use with an MCP client, add to its config:
  {
    "mcpServers": {
      "aval": {
        "command": "aval",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - score_smartscore   Project-type market-fit score for a dossier
  - compute_ratios     Loan payment and LTV/LTC/DSTI/DSCR ratios
  - score_committee    Committee risk score, confidence and decision
  - score_batch        Parallel scoring of dossier files
  - validate_dossier   JSON Schema validation of a dossier`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the MCP server manifest (server.json) and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		data, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}

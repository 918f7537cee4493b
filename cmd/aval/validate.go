package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/schema"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate dossier files against the embedded JSON Schema",
		ArgsUsage: "<dossier.json | dir>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ratios",
				Usage: "Validate as ratio-parameter files instead of dossiers",
			},
		},
		Action: runValidateCmd,
	}
}

func runValidateCmd(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("expected at least one file or directory")
	}

	paths, err := collectDossierPaths(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		color.Yellow("No files found")
		return nil
	}

	check := schema.ValidateDossier
	if c.Bool("ratios") {
		check = schema.ValidateRatios
	}

	var invalid int
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			invalid++
			color.Red("%s: %v", path, err)
			continue
		}
		if err := check(data); err != nil {
			invalid++
			color.Red("%s:", path)
			for _, issue := range schema.Issues(err) {
				fmt.Printf("  %s\n", issue)
			}
			continue
		}
		if c.Bool("verbose") {
			color.Green("%s: ok", path)
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files failed validation", invalid, len(paths))
	}
	color.Green("%d files valid", len(paths))
	return nil
}

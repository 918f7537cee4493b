package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/cache"
	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/internal/progress"
	"github.com/tlemarchand/aval/pkg/config"
	"github.com/tlemarchand/aval/pkg/portfolio"
)

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Score a set of dossier files in parallel",
		ArgsUsage: "<dossier.json | dir>...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Worker pool size (default 2x CPU count)",
			},
		},
		Action: runBatchCmd,
	}
}

func runBatchCmd(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("expected at least one dossier file or directory")
	}

	paths, err := collectDossierPaths(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		color.Yellow("No dossier files found")
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	results, err := runBatch(c, cfg, paths)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(results)
	}
	return formatter.Output(buildBatchReport(results))
}

// runBatch wires the cache and a progress bar around a portfolio run. It is
// shared by the batch and trend commands.
func runBatch(c *cli.Context, cfg *config.Config, paths []string) ([]portfolio.FileResult, error) {
	opts := []portfolio.RunnerOption{
		portfolio.WithWorkers(c.Int("workers")),
	}

	if cfg.Cache.Enabled && !c.Bool("no-cache") {
		store, err := cache.New(cfg.Cache.Dir, time.Duration(cfg.Cache.TTL)*time.Hour, true)
		if err != nil {
			return nil, fmt.Errorf("opening cache: %w", err)
		}
		opts = append(opts, portfolio.WithCache(store))
	}

	tracker := progress.NewTracker("Scoring dossiers...", len(paths))
	opts = append(opts, portfolio.WithProgress(tracker.Tick))

	results := portfolio.NewRunner(opts...).Run(c.Context, paths)
	tracker.FinishSuccess()
	return results, nil
}

func buildBatchReport(results []portfolio.FileResult) *output.Report {
	rows := make([][]string, 0, len(results))
	var failures int
	for _, fr := range results {
		if fr.Err != nil {
			failures++
			rows = append(rows, []string{truncatePath(fr.Path), "-", "-", color.RedString("ERREUR")})
			continue
		}

		note := ""
		switch {
		case fr.DuplicateOf != "":
			note = "doublon de " + truncatePath(fr.DuplicateOf)
		case fr.Cached:
			note = "cache"
		}
		rows = append(rows, []string{
			truncatePath(fr.Path),
			fmt.Sprintf("%d", fr.Result.Score),
			output.VerdictColor(string(fr.Result.Verdict), string(fr.Result.Verdict)),
			note,
		})
	}

	summary := fmt.Sprintf("%d dossiers analysés", len(results))
	if failures > 0 {
		summary += fmt.Sprintf(", %s", color.RedString("%d en erreur", failures))
	}

	return &output.Report{
		Title: "Analyse du portefeuille",
		Sections: []output.Renderable{
			output.NewTable("Résultats", []string{"Dossier", "Score", "Verdict", "Note"}, rows, nil, results),
			&output.Section{Title: "Synthèse", Content: summary},
		},
		Data: results,
	}
}

func truncatePath(path string) string {
	const maxLen = 48
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

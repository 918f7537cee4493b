package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/pkg/portfolio"
)

func trendCmd() *cli.Command {
	return &cli.Command{
		Name:      "trend",
		Aliases:   []string{"tr"},
		Usage:     "Fit a score trend across dated dossier analyses",
		ArgsUsage: "<dossier.json | dir>...",
		Action:    runTrendCmd,
	}
}

// trendResult is the serialized shape of a trend run.
type trendResult struct {
	Points    []portfolio.TrendPoint `json:"points"`
	Stats     portfolio.TrendStats   `json:"stats"`
	Direction portfolio.Direction    `json:"direction"`
}

func runTrendCmd(c *cli.Context) error {
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

	points := portfolio.BuildTrend(results)
	if len(points) < 2 {
		color.Yellow("Fewer than two dated analyses, no trend to fit")
		return nil
	}

	stats := portfolio.ComputeTrendStats(points)
	result := trendResult{Points: points, Stats: stats, Direction: stats.Direction()}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}
	return formatter.Output(buildTrendReport(result))
}

func buildTrendReport(r trendResult) *output.Report {
	rows := make([][]string, 0, len(r.Points))
	for _, p := range r.Points {
		rows = append(rows, []string{
			p.Date.Format("2006-01-02"),
			output.ScoreColor(float64(p.Score), fmt.Sprintf("%d", p.Score)),
			p.Label,
		})
	}

	direction := string(r.Direction)
	switch r.Direction {
	case portfolio.TrendImproving:
		direction = color.GreenString(direction)
	case portfolio.TrendDeclining:
		direction = color.RedString(direction)
	}

	summary := fmt.Sprintf("Tendance : %s\nPente : %+.2f points par analyse\nR² : %.2f\nCorrélation : %+.2f",
		direction, r.Stats.Slope, r.Stats.RSquared, r.Stats.Correlation)

	return &output.Report{
		Title: "Tendance du portefeuille",
		Sections: []output.Renderable{
			output.NewTable("Analyses", []string{"Date", "Score", "Dossier"}, rows, nil, r.Points),
			&output.Section{Title: "Régression", Content: summary},
		},
		Data: r,
	}
}

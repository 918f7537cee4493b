package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/pkg/committee"
)

func committeeCmd() *cli.Command {
	return &cli.Command{
		Name:      "committee",
		Aliases:   []string{"cm"},
		Usage:     "Aggregate an operation document into a committee decision",
		ArgsUsage: "<operation.json>",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "risk-score",
				Usage: "Externally computed risk score 0-100, cross-checked against geo data",
			},
		},
		Action: runCommitteeCmd,
	}
}

func runCommitteeCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one operation file")
	}
	path := c.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var external *float64
	if c.IsSet("risk-score") {
		v := c.Float64("risk-score")
		external = &v
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	result := committee.ComputeCommitteeDataWeighted(data, external,
		cfg.Committee.RiskWeight, cfg.Committee.MarketWeight)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}
	return formatter.Output(buildCommitteeReport(result))
}

func buildCommitteeReport(d committee.CommitteeData) *output.Report {
	summary := fmt.Sprintf("Décision : %s\nScore total : %s\nScore risques : %s\nConfiance : %.0f / 100",
		output.VerdictColor(string(d.Decision), string(d.Decision)),
		fmtNullableScore(d.TotalScore),
		fmtNullableScore(d.RiskScore),
		d.Confidence)
	if d.RiskFallbackSuspected {
		summary += "\nScore de risque externe suspect (valeur neutre), score géorisques appliqué"
	}

	sections := []output.Renderable{
		&output.Section{Title: "Synthèse", Content: summary},
	}

	if len(d.RiskDetails) > 0 {
		rows := make([][]string, 0, len(d.RiskDetails))
		for _, rd := range d.RiskDetails {
			rows = append(rows, []string{rd.Label, fmt.Sprintf("%+.0f", rd.Impact), rd.Detail})
		}
		sections = append(sections,
			output.NewTable("Pénalités géorisques", []string{"Risque", "Impact", "Détail"}, rows, nil, d.RiskDetails))
	}

	return &output.Report{
		Title:    "Comité de crédit",
		Sections: sections,
		Data:     d,
	}
}

func fmtNullableScore(s *float64) string {
	if s == nil {
		return "n/a"
	}
	return output.ScoreColor(*s, fmt.Sprintf("%.1f", *s))
}

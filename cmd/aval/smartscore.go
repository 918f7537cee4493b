package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/internal/schema"
	"github.com/tlemarchand/aval/pkg/portfolio"
	"github.com/tlemarchand/aval/pkg/smartscore"
)

func smartscoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "smartscore",
		Aliases:   []string{"ss"},
		Usage:     "Score a dossier's market fit for its project type",
		ArgsUsage: "<dossier.json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-validate",
				Usage: "Skip JSON Schema validation of the dossier",
			},
		},
		Action: runSmartscoreCmd,
	}
}

func runSmartscoreCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one dossier file")
	}
	path := c.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !c.Bool("no-validate") {
		if err := schema.ValidateDossier(data); err != nil {
			return fmt.Errorf("%s:\n  %s", path, joinIssues(err))
		}
	}

	d, err := portfolio.ParseDossier(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	result, err := d.Score(smartscore.WithThresholds(cfg.Scoring.Thresholds))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}
	return formatter.Output(buildSmartscoreReport(d, result))
}

// buildSmartscoreReport assembles the text/markdown view of a scoring result.
func buildSmartscoreReport(d *portfolio.Dossier, r *smartscore.Result) *output.Report {
	title := fmt.Sprintf("SmartScore %s", r.ProjectNature)
	if d.Label != "" {
		title = fmt.Sprintf("SmartScore %s - %s", r.ProjectNature, d.Label)
	}

	rows := make([][]string, 0, len(r.Components))
	for _, comp := range r.Components {
		rows = append(rows, []string{
			comp.Label,
			fmtScore(comp.Score),
			fmt.Sprintf("%.0f%%", comp.Weight*100),
		})
	}

	verdict := fmt.Sprintf("Score global : %s / 100\nVerdict : %s",
		output.ScoreColor(float64(r.Score), fmt.Sprintf("%d", r.Score)),
		output.VerdictColor(string(r.Verdict), string(r.Verdict)))

	return &output.Report{
		Title: title,
		Sections: []output.Renderable{
			&output.Section{Title: "Synthèse", Content: verdict},
			output.NewTable("Composantes", []string{"Composante", "Score", "Poids"}, rows, nil, r.Components),
			&output.Section{Title: "Opportunités", Content: bulletList(r.Opportunities)},
			&output.Section{Title: "Risques", Content: bulletList(r.Risks)},
			&output.Section{Title: "Recommandations", Content: bulletList(r.Recommendations)},
		},
		Data: r,
	}
}

func joinIssues(err error) string {
	issues := schema.Issues(err)
	out := ""
	for i, is := range issues {
		if i > 0 {
			out += "\n  "
		}
		out += is
	}
	return out
}

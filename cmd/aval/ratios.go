package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/internal/schema"
	"github.com/tlemarchand/aval/pkg/ratios"
)

func ratiosCmd() *cli.Command {
	return &cli.Command{
		Name:      "ratios",
		Usage:     "Compute loan payment and committee ratios (LTV, LTC, DSTI, DSCR)",
		ArgsUsage: "<params.json>",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Annual interest rate in percent, overrides the file and config",
			},
			&cli.BoolFlag{
				Name:  "no-validate",
				Usage: "Skip JSON Schema validation of the parameters",
			},
		},
		Action: runRatiosCmd,
	}
}

func runRatiosCmd(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one parameter file")
	}
	path := c.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !c.Bool("no-validate") {
		if err := schema.ValidateRatios(data); err != nil {
			return fmt.Errorf("%s:\n  %s", path, joinIssues(err))
		}
	}

	var params ratios.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// Rate priority: --rate flag, then the file's own fields, then the
	// configured default.
	if c.IsSet("rate") {
		rate := c.Float64("rate")
		params.TauxAnnuel = &rate
	} else if noExplicitRate(params) && cfg.Scoring.AnnualRatePct > 0 {
		params.AnnualRatePct = &cfg.Scoring.AnnualRatePct
	}

	result := ratios.ComputeRatios(params)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(result)
	}
	return formatter.Output(buildRatiosReport(result))
}

func noExplicitRate(p ratios.Params) bool {
	if p.TauxAnnuel != nil || p.AnnualRatePct != nil {
		return false
	}
	if p.Budget != nil && (p.Budget.TauxInteret > 0 || p.Budget.InterestRate > 0) {
		return false
	}
	return true
}

func buildRatiosReport(r ratios.Result) *output.Report {
	rows := [][]string{
		{"LTV", fmtRatio(r.LTV), "pret / valeur du bien"},
		{"LTC", fmtRatio(r.LTC), "pret / cout total"},
		{"DSTI", fmtRatio(r.DSTI), "(charges + mensualite) / revenus"},
		{"DSCR", fmtRatio(r.DSCR), "loyer attendu / mensualite"},
	}

	summary := fmt.Sprintf("Mensualité : %s\nCoût total : %s\nTaux appliqué : %.2f%%",
		fmtEUR(r.Mensualite), fmtEUR(r.CoutTotal), r.AnnualRatePct)

	return &output.Report{
		Title: "Ratios de crédit",
		Sections: []output.Renderable{
			&output.Section{Title: "Prêt", Content: summary},
			output.NewTable("Ratios", []string{"Ratio", "Valeur", "Définition"}, rows, nil, r),
		},
		Data: r,
	}
}

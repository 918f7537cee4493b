package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tlemarchand/aval/internal/output"
	"github.com/tlemarchand/aval/pkg/config"
)

// loadConfig loads the config named by --config, or searches the standard
// locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newFormatter builds the output formatter from the global flags, with the
// config's format as fallback when --format was not given.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if !c.IsSet("format") && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// collectDossierPaths expands the given arguments: files pass through,
// directories contribute their *.json entries (non-recursive). The result
// is deterministic: directory entries are sorted.
func collectDossierPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// fmtScore renders a 0-100 score for tables.
func fmtScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// fmtRatio renders a nullable ratio, "n/a" when nil.
func fmtRatio(r *float64) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *r)
}

// fmtEUR renders a monetary amount.
func fmtEUR(v float64) string {
	return fmt.Sprintf("%.2f EUR", v)
}

// bulletList renders narrative strings as a markdown-ish bullet block.
func bulletList(items []string) string {
	if len(items) == 0 {
		return "(aucun)"
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tlemarchand/aval/pkg/config"
	"github.com/tlemarchand/aval/pkg/portfolio"
	"github.com/tlemarchand/aval/pkg/ratios"
	"github.com/tlemarchand/aval/pkg/smartscore"
)

func TestCollectDossierPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "notes.txt")

	paths, err := collectDossierPaths([]string{dir, single})
	if err != nil {
		t.Fatalf("collectDossierPaths() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		single,
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestCollectDossierPathsMissing(t *testing.T) {
	if _, err := collectDossierPaths([]string{"/nonexistent/dossier.json"}); err == nil {
		t.Error("missing path must error")
	}
}

func TestFmtRatio(t *testing.T) {
	if got := fmtRatio(nil); got != "n/a" {
		t.Errorf("fmtRatio(nil) = %q", got)
	}
	v := 0.8
	if got := fmtRatio(&v); got != "0.80" {
		t.Errorf("fmtRatio(0.8) = %q", got)
	}
}

func TestBulletList(t *testing.T) {
	if got := bulletList(nil); got != "(aucun)" {
		t.Errorf("bulletList(nil) = %q", got)
	}
	got := bulletList([]string{"un", "deux"})
	if got != "- un\n- deux" {
		t.Errorf("bulletList = %q", got)
	}
}

func TestTruncatePath(t *testing.T) {
	short := "dossiers/a.json"
	if got := truncatePath(short); got != short {
		t.Errorf("short path modified: %q", got)
	}
	long := strings.Repeat("x", 80) + "/dossier.json"
	got := truncatePath(long)
	if len(got) != 48 {
		t.Errorf("truncated length = %d, want 48", len(got))
	}
	if !strings.HasPrefix(got, "...") {
		t.Errorf("truncated path should start with ellipsis: %q", got)
	}
	if !strings.HasSuffix(got, "dossier.json") {
		t.Errorf("truncation should keep the tail: %q", got)
	}
}

func TestNoExplicitRate(t *testing.T) {
	if !noExplicitRate(ratios.Params{}) {
		t.Error("empty params carry no explicit rate")
	}
	r := 2.5
	if noExplicitRate(ratios.Params{TauxAnnuel: &r}) {
		t.Error("TauxAnnuel is explicit")
	}
	if noExplicitRate(ratios.Params{Budget: &ratios.Budget{TauxInteret: 3.0}}) {
		t.Error("a budget-embedded rate is explicit")
	}
	if !noExplicitRate(ratios.Params{Budget: &ratios.Budget{PrixAcquisition: 100000}}) {
		t.Error("a budget without a rate is not explicit")
	}
}

func TestGenerateDefaultConfigRoundTrip(t *testing.T) {
	content, err := generateDefaultConfig()
	if err != nil {
		t.Fatalf("generateDefaultConfig() error: %v", err)
	}
	if !strings.HasPrefix(content, "# Aval CLI Configuration") {
		t.Errorf("missing header:\n%s", content)
	}

	path := filepath.Join(t.TempDir(), "aval.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Scoring.AnnualRatePct != 3.5 {
		t.Errorf("AnnualRatePct = %v after round trip", cfg.Scoring.AnnualRatePct)
	}
	if cfg.Scoring.Thresholds.Go != 75 {
		t.Errorf("Thresholds.Go = %v after round trip", cfg.Scoring.Thresholds.Go)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != ".aval/cache" {
		t.Errorf("cache = %+v after round trip", cfg.Cache)
	}
}

func TestBuildSmartscoreReportTitle(t *testing.T) {
	r := &smartscore.Result{
		ProjectNature: smartscore.NatureLogement,
		Score:         75,
		Verdict:       smartscore.VerdictGo,
	}

	report := buildSmartscoreReport(&portfolio.Dossier{}, r)
	if report.Title != "SmartScore logement" {
		t.Errorf("unlabeled title = %q", report.Title)
	}

	report = buildSmartscoreReport(&portfolio.Dossier{Label: "Résidence Les Tilleuls"}, r)
	if report.Title != "SmartScore logement - Résidence Les Tilleuls" {
		t.Errorf("labeled title = %q", report.Title)
	}
}

func TestBuildRatiosReport(t *testing.T) {
	ltv := 0.8
	r := ratios.Result{
		Mensualite:    4436.0,
		CoutTotal:     950000,
		Cost:          950000,
		LTV:           &ltv,
		AnnualRatePct: 3.2,
	}
	report := buildRatiosReport(r)
	if report.Title != "Ratios de crédit" {
		t.Errorf("title = %q", report.Title)
	}
	if len(report.Sections) != 2 {
		t.Fatalf("sections = %d", len(report.Sections))
	}
}

func TestBuildBatchReport(t *testing.T) {
	results := []portfolio.FileResult{
		{
			Path: "a.json",
			Result: &smartscore.Result{
				Score:   68,
				Verdict: smartscore.VerdictGoReserves,
			},
		},
		{
			Path:        "b.json",
			DuplicateOf: "a.json",
			Result: &smartscore.Result{
				Score:   68,
				Verdict: smartscore.VerdictGoReserves,
			},
		},
		{
			Path:  "broken.json",
			Err:   os.ErrNotExist,
			Error: os.ErrNotExist.Error(),
		},
	}

	report := buildBatchReport(results)
	if report.Title != "Analyse du portefeuille" {
		t.Errorf("title = %q", report.Title)
	}
	data := report.RenderData()
	if data == nil {
		t.Fatal("report data is nil")
	}
}

func TestBuildTrendReport(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []portfolio.TrendPoint{
		{Date: base, Score: 50},
		{Date: base.AddDate(0, 1, 0), Score: 60, Label: "T2"},
	}
	stats := portfolio.ComputeTrendStats(points)
	report := buildTrendReport(trendResult{Points: points, Stats: stats, Direction: stats.Direction()})
	if report.Title != "Tendance du portefeuille" {
		t.Errorf("title = %q", report.Title)
	}
	if stats.Direction() != portfolio.TrendImproving {
		t.Errorf("direction = %s", stats.Direction())
	}
}

package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"toon", FormatTOON},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatterJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{format: FormatJSON, writer: buf}

	data := map[string]any{"score": 68, "verdict": "GO_AVEC_RESERVES"}
	if err := f.Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["verdict"] != "GO_AVEC_RESERVES" {
		t.Errorf("verdict = %v", got["verdict"])
	}
}

func TestFormatterTOON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &Formatter{format: FormatTOON, writer: buf}

	err := f.Output(struct {
		Score   int    `json:"score" toon:"score"`
		Verdict string `json:"verdict" toon:"verdict"`
	}{68, "GO_AVEC_RESERVES"})
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "score") || !strings.Contains(out, "68") {
		t.Errorf("toon output missing fields: %q", out)
	}
}

func TestFormatterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	f, err := NewFormatter(FormatJSON, path, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	if err := f.Output(map[string]int{"score": 90}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if !strings.Contains(string(data), "90") {
		t.Errorf("file content = %q", data)
	}
}

func TestTableRenderText(t *testing.T) {
	table := NewTable("Composantes", []string{"Clé", "Score"}, [][]string{
		{"demographie", "87.5"},
		{"marche", "70.8"},
	}, nil, nil)

	buf := &bytes.Buffer{}
	if err := table.RenderText(buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Composantes", "demographie", "87.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable("Ratios", []string{"Ratio", "Valeur"}, [][]string{
		{"LTV", "0.80"},
	}, nil, nil)

	buf := &bytes.Buffer{}
	if err := table.RenderMarkdown(buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "## Ratios") {
		t.Errorf("missing markdown title:\n%s", out)
	}
	if !strings.Contains(out, "| LTV | 0.80 |") {
		t.Errorf("missing markdown row:\n%s", out)
	}
	if !strings.Contains(out, "| --- | --- |") {
		t.Errorf("missing markdown separator:\n%s", out)
	}
}

func TestTableRenderData(t *testing.T) {
	table := NewTable("", []string{"a", "b"}, [][]string{{"1", "2"}}, nil, nil)
	got, ok := table.RenderData().([]map[string]string)
	if !ok {
		t.Fatalf("RenderData() = %T", table.RenderData())
	}
	if got[0]["a"] != "1" || got[0]["b"] != "2" {
		t.Errorf("RenderData() = %v", got)
	}

	wrapped := NewTable("", nil, nil, nil, map[string]int{"x": 1})
	if _, ok := wrapped.RenderData().(map[string]int); !ok {
		t.Error("explicit Data must win over row conversion")
	}
}

func TestSectionRendering(t *testing.T) {
	s := &Section{
		Title:   "Opportunités",
		Content: "- Croissance démographique soutenue",
		Sections: []Section{
			{Title: "Détail", Content: "evolution_pop_5ans: 5"},
		},
	}

	text := &bytes.Buffer{}
	if err := s.RenderText(text, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	if !strings.Contains(text.String(), "Opportunités") {
		t.Errorf("missing section title:\n%s", text.String())
	}
	if !strings.Contains(text.String(), "Détail\n------") {
		t.Errorf("nested section must use - underline:\n%s", text.String())
	}

	md := &bytes.Buffer{}
	if err := s.RenderMarkdown(md); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}
	if !strings.Contains(md.String(), "## Opportunités") || !strings.Contains(md.String(), "### Détail") {
		t.Errorf("markdown levels wrong:\n%s", md.String())
	}
}

func TestReportRendering(t *testing.T) {
	r := &Report{
		Title: "Analyse du dossier",
		Sections: []Renderable{
			&Section{Title: "Verdict", Content: "GO"},
			NewTable("", []string{"k"}, [][]string{{"v"}}, nil, nil),
		},
	}

	buf := &bytes.Buffer{}
	if err := r.RenderText(buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Analyse du dossier") {
		t.Errorf("missing report title:\n%s", buf.String())
	}

	data := r.RenderData().(map[string]any)
	if data["title"] != "Analyse du dossier" {
		t.Errorf("RenderData title = %v", data["title"])
	}
}

func TestVerdictColor_PassthroughOnUnknown(t *testing.T) {
	if got := VerdictColor("UNKNOWN", "texte"); got != "texte" {
		t.Errorf("unknown verdict must pass text through, got %q", got)
	}
}

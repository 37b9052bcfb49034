package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sarefo/calendar/pkg/config"
	"github.com/sarefo/calendar/pkg/manifest"
	"github.com/sarefo/calendar/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatJSON, pipeline.FormatMap}},
		{"json", []string{"json"}},
		{"json,map", []string{"json", "map"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestPipelineOptionsFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Calendar.Language = "de"
	cfg.Paths.Manifest = "config-manifest.txt"

	c := New(io.Discard, log.InfoLevel)

	// Config values flow through when flags are unset.
	po := c.pipelineOptions(cfg, &buildOpts{})
	if po.Language != "de" || po.Manifest != "config-manifest.txt" {
		t.Errorf("config defaults not applied: lang=%q manifest=%q", po.Language, po.Manifest)
	}

	// Flags win over config.
	po = c.pipelineOptions(cfg, &buildOpts{
		language:     "es",
		manifestPath: "flag-manifest.txt",
		refresh:      true,
	})
	if po.Language != "es" || po.Manifest != "flag-manifest.txt" || !po.Refresh {
		t.Errorf("flags did not override config: %+v", po)
	}
}

func TestOutputDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.OutputDir = "configured"

	if got := outputDir(cfg, &buildOpts{output: "flagged"}); got != "flagged" {
		t.Errorf("outputDir with flag = %q", got)
	}
	if got := outputDir(cfg, &buildOpts{}); got != "configured" {
		t.Errorf("outputDir from config = %q", got)
	}

	cfg.Paths.OutputDir = ""
	if got := outputDir(cfg, &buildOpts{}); got != "output" {
		t.Errorf("outputDir fallback = %q", got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	artifacts := map[string][]byte{
		pipeline.FormatJSON: []byte(`{"month_key":"202601"}`),
		pipeline.FormatMap:  []byte(`<svg/>`),
	}

	paths, err := writeArtifacts(dir, "202601", artifacts)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}

	data, err := os.ReadFile(filepath.Join(dir, "202601.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "202601") {
		t.Errorf("json artifact = %s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "202601-map.svg")); err != nil {
		t.Errorf("map artifact missing: %v", err)
	}
}

func TestMonthChoices(t *testing.T) {
	var b strings.Builder
	b.WriteString("month\tfilename\tobservation\n")
	for i := 1; i <= 31; i++ {
		fmt.Fprintf(&b, "202601\tjan_%02d.jpg\t0\n", i)
	}
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "202602\tfeb_%02d.jpg\t0\n", i)
	}

	m, err := manifest.Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatal(err)
	}

	choices := monthChoices(m)
	if len(choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(choices))
	}
	if choices[0].Key != "202601" || !choices[0].Complete || choices[0].Name != "January 2026" {
		t.Errorf("first choice = %+v", choices[0])
	}
	if choices[1].Key != "202602" || choices[1].Complete || choices[1].Photos != 10 {
		t.Errorf("second choice = %+v", choices[1])
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMonthListModelSelection(t *testing.T) {
	choices := []MonthChoice{
		{Key: "202601", Name: "January 2026", Photos: 31, Days: 31, Complete: true},
		{Key: "202602", Name: "February 2026", Photos: 10, Days: 28},
	}
	m := NewMonthListModel(choices)

	// An incomplete month cannot be selected.
	m.Cursor = 1
	updated, _ := m.Update(keyMsg("enter"))
	if updated.(MonthListModel).Selected != nil {
		t.Error("incomplete month was selectable")
	}

	m.Cursor = 0
	updated, _ = m.Update(keyMsg("enter"))
	selected := updated.(MonthListModel).Selected
	if selected == nil || selected.Key != "202601" {
		t.Errorf("selected = %+v, want 202601", selected)
	}
}

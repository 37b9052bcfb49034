package pipeline

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	in := testInputs(t, map[string]int{"202601": 31})
	opts := Options{Year: 2026, Month: 1}
	p, err := Compose(opts, in)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	artifacts, err := Render(p, in, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	data, ok := artifacts[FormatJSON]
	if !ok {
		t.Fatal("no json artifact")
	}
	if !json.Valid(data) {
		t.Fatal("json artifact is not valid JSON")
	}
	if !bytes.Contains(data, []byte(`"month_key": "202601"`)) {
		t.Error("json artifact does not carry the month key")
	}
}

func TestRenderMapWithBase(t *testing.T) {
	in := testInputs(t, map[string]int{"202601": 31})
	in.BaseMap = []byte(`<svg viewBox="200 0 1800 857"><rect width="10" height="10"/></svg>`)
	opts := Options{Year: 2026, Month: 1, Formats: []string{FormatMap}}

	p, err := Compose(opts, in)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	artifacts, err := Render(p, in, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	svg := artifacts[FormatMap]
	if !bytes.Contains(svg, []byte("location-marker")) {
		t.Error("marker missing from map artifact")
	}
	if !bytes.Contains(svg, []byte(`<rect width="10"`)) {
		t.Error("base map content missing from artifact")
	}
	if !bytes.Contains(svg, []byte("Gal")) {
		t.Error("location label missing from artifact")
	}
}

func TestRenderMapFallback(t *testing.T) {
	// No base map asset: the map renders on the placeholder canvas
	// instead of failing the build.
	in := testInputs(t, map[string]int{"202601": 31})
	opts := Options{Year: 2026, Month: 1, Formats: []string{FormatMap}}

	p, err := Compose(opts, in)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	artifacts, err := Render(p, in, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(artifacts[FormatMap], []byte("location-marker")) {
		t.Error("marker missing from fallback map")
	}
}

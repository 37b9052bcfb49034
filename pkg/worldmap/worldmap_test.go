package worldmap

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sarefo/calendar/pkg/geo"
)

var pt = geo.Point{X: 1154, Y: 154.26}

func TestMarker(t *testing.T) {
	svg := string(Marker(pt))

	for _, want := range []string{
		`cx="1154.00" cy="154.26" r="12"`,
		`stroke="#E74C3C" stroke-width="3" opacity="0.9"`,
		`r="5" fill="#E74C3C"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("Marker() missing %q:\n%s", want, svg)
		}
	}
}

func TestMarkerOptions(t *testing.T) {
	svg := string(Marker(pt, WithColor("#123456"), WithRadii(20, 8), WithLabel("Dublin & environs")))

	if !strings.Contains(svg, `stroke="#123456"`) {
		t.Errorf("color option ignored:\n%s", svg)
	}
	if !strings.Contains(svg, `r="20"`) || !strings.Contains(svg, `r="8"`) {
		t.Errorf("radii option ignored:\n%s", svg)
	}
	if !strings.Contains(svg, "Dublin &amp; environs") {
		t.Errorf("label not escaped:\n%s", svg)
	}
}

func TestRenderInjectsBeforeClosingTag(t *testing.T) {
	base := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="200 0 1800 857"><path d="M0 0"/></svg>`)

	out, err := Render(base, pt)
	if err != nil {
		t.Fatal(err)
	}

	markerIdx := bytes.Index(out, []byte("location-marker"))
	closeIdx := bytes.LastIndex(out, []byte("</svg>"))
	if markerIdx < 0 {
		t.Fatal("marker not injected")
	}
	if markerIdx > closeIdx {
		t.Error("marker injected after closing tag")
	}
	pathIdx := bytes.Index(out, []byte(`<path`))
	if markerIdx < pathIdx {
		t.Error("marker should draw after (on top of) base content")
	}
}

func TestRenderNoClosingTag(t *testing.T) {
	if _, err := Render([]byte("<svg>"), pt); !errors.Is(err, ErrNoClosingTag) {
		t.Errorf("Render() error = %v, want ErrNoClosingTag", err)
	}
}

func TestFallback(t *testing.T) {
	svg := string(Fallback(pt))

	if !strings.Contains(svg, `viewBox="200 0 1800 857"`) {
		t.Errorf("fallback viewBox wrong:\n%s", svg)
	}
	if !strings.Contains(svg, "location-marker") {
		t.Error("fallback has no marker")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("fallback is not a complete document")
	}
}

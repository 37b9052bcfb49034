// Package worldmap assembles the world-map SVG artifact: the bundled
// base map with the month's location marker injected.
//
// The base map is a fixed asset with viewBox "200 0 1800 857"; marker
// positions come from [geo.Projection], which already emits viewBox
// coordinates, so markers are placed without further offsetting.
package worldmap

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sarefo/calendar/pkg/geo"
)

// ErrNoClosingTag is returned by [Render] when the base SVG has no
// </svg> to inject the marker before.
var ErrNoClosingTag = errors.New("base map has no closing </svg> tag")

// ViewBox is the base map's SVG viewBox attribute.
const ViewBox = "200 0 1800 857"

// Marker defaults, matching the production map style.
const (
	DefaultColor       = "#E74C3C"
	defaultOuterRadius = 12.0
	defaultInnerRadius = 5.0
	defaultStrokeWidth = 3.0
)

// Option configures marker rendering.
type Option func(*renderer)

type renderer struct {
	color       string
	outerRadius float64
	innerRadius float64
	strokeWidth float64
	label       string
}

// WithColor overrides the marker color.
func WithColor(c string) Option { return func(r *renderer) { r.color = c } }

// WithRadii overrides the outer ring and inner dot radii.
func WithRadii(outer, inner float64) Option {
	return func(r *renderer) { r.outerRadius, r.innerRadius = outer, inner }
}

// WithLabel adds a text label beneath the marker.
func WithLabel(text string) Option { return func(r *renderer) { r.label = text } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		color:       DefaultColor,
		outerRadius: defaultOuterRadius,
		innerRadius: defaultInnerRadius,
		strokeWidth: defaultStrokeWidth,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Marker returns the SVG fragment for a location marker: an outlined
// ring with a solid center dot.
func Marker(pt geo.Point, opts ...Option) []byte {
	r := newRenderer(opts...)

	var buf bytes.Buffer
	buf.WriteString(`<g class="location-marker">` + "\n")
	fmt.Fprintf(&buf,
		`  <circle cx="%.2f" cy="%.2f" r="%.0f" fill="none" stroke="%s" stroke-width="%.0f" opacity="0.9"/>`+"\n",
		pt.X, pt.Y, r.outerRadius, r.color, r.strokeWidth)
	fmt.Fprintf(&buf,
		`  <circle cx="%.2f" cy="%.2f" r="%.0f" fill="%s"/>`+"\n",
		pt.X, pt.Y, r.innerRadius, r.color)
	if r.label != "" {
		fmt.Fprintf(&buf,
			`  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="24" fill="%s">%s</text>`+"\n",
			pt.X, pt.Y+r.outerRadius+26, r.color, escapeText(r.label))
	}
	buf.WriteString("</g>\n")
	return buf.Bytes()
}

// Render injects a location marker into the base map SVG, immediately
// before its closing tag so the marker draws on top of the map.
func Render(base []byte, pt geo.Point, opts ...Option) ([]byte, error) {
	idx := bytes.LastIndex(base, []byte("</svg>"))
	if idx < 0 {
		return nil, ErrNoClosingTag
	}

	marker := Marker(pt, opts...)
	out := make([]byte, 0, len(base)+len(marker))
	out = append(out, base[:idx]...)
	out = append(out, marker...)
	out = append(out, base[idx:]...)
	return out, nil
}

// Fallback returns a self-contained placeholder map: an ocean-colored
// canvas with the marker, for builds that have no base map asset. It
// uses the same viewBox so positions stay comparable.
func Fallback(pt geo.Point, opts ...Option) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s">`+"\n", ViewBox)
	fmt.Fprintf(&buf,
		`  <rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" fill="#cfe3f0"/>`+"\n",
		geo.CanvasOriginX, geo.CanvasOriginY, geo.CanvasWidth, geo.CanvasHeight)
	fmt.Fprintf(&buf,
		`  <text x="%.0f" y="%.0f" text-anchor="middle" font-size="36" fill="#6b8aa0">world map unavailable</text>`+"\n",
		geo.CanvasOriginX+geo.CanvasWidth/2, geo.CanvasOriginY+geo.CanvasHeight/2)
	buf.Write(Marker(pt, opts...))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// escapeText escapes the XML special characters that can appear in
// location names.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

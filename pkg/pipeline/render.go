package pipeline

import (
	"fmt"

	"github.com/sarefo/calendar/pkg/geo"
	"github.com/sarefo/calendar/pkg/page"
	"github.com/sarefo/calendar/pkg/worldmap"
)

// Render produces the requested artifacts from a composed page.
//
// The "json" format is the month data document; "map" is the world-map
// SVG with the month's marker. When no base map asset was loaded, the
// map renders on the self-contained placeholder canvas — a decorative
// degradation, logged as a warning, never a silent substitution of
// page content.
func Render(p *page.Month, in *Inputs, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(p, in, opts, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(p *page.Month, in *Inputs, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return page.Marshal(p)

	case FormatMap:
		pt := geo.Point{X: p.Location.MapX, Y: p.Location.MapY}
		if in == nil || in.BaseMap == nil {
			opts.Logger.Warn("no base map asset, rendering placeholder map", "month", p.MonthKey)
			return worldmap.Fallback(pt, worldmap.WithLabel(p.Location.Name)), nil
		}
		return worldmap.Render(in.BaseMap, pt, worldmap.WithLabel(p.Location.Name))

	default:
		return nil, ValidateFormat(format)
	}
}

// ArtifactFilename returns the conventional output filename for one
// artifact of a month page, e.g. "202601.json" or "202601-map.svg".
func ArtifactFilename(monthKey, format string) string {
	switch format {
	case FormatMap:
		return monthKey + "-map.svg"
	default:
		return monthKey + "." + format
	}
}

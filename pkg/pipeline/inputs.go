package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarefo/calendar/pkg/cache"
	"github.com/sarefo/calendar/pkg/location"
	"github.com/sarefo/calendar/pkg/manifest"
	"github.com/sarefo/calendar/pkg/observations"
)

// Inputs holds everything a compose call reads: the parsed manifest,
// the month's location descriptor, the observation store, and the
// optional base map asset. Loading is separated from composing so the
// compose stage stays a pure function and the preview server can load
// once and compose many months.
type Inputs struct {
	Manifest     *manifest.Manifest
	Location     *location.Descriptor
	Observations *observations.Store
	BaseMap      []byte // nil when no base map asset is configured
}

// LoadInputs reads the input files named by opts.
//
// The location descriptor resolves README-first: the month photo
// folder's README.md wins, and months without one fall back to the
// locations index, when configured. A month present in neither source
// composes fine until location resolution fails, so callers building
// map-free previews are not blocked by missing metadata.
func LoadInputs(opts Options) (*Inputs, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	m, err := manifest.Load(opts.Manifest)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	in := &Inputs{Manifest: m}

	in.Location, err = loadDescriptor(opts)
	if err != nil {
		return nil, err
	}

	if opts.Observations != "" {
		in.Observations, err = observations.ReadFile(opts.Observations)
		if err != nil {
			return nil, fmt.Errorf("load observations: %w", err)
		}
	} else {
		in.Observations = observations.NewStore()
	}

	if opts.BaseMap != "" {
		in.BaseMap, err = os.ReadFile(opts.BaseMap)
		if err != nil {
			return nil, fmt.Errorf("load base map: %w", err)
		}
	}

	return in, nil
}

// loadDescriptor resolves the month's location source.
func loadDescriptor(opts Options) (*location.Descriptor, error) {
	if opts.PhotosDir != "" {
		year := opts.Year
		if opts.Perpetual {
			year = opts.SourceYear
		}
		readme := filepath.Join(opts.PhotosDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", opts.Month), "README.md")
		if _, err := os.Stat(readme); err == nil {
			return location.LoadReadme(readme)
		}
	}

	if opts.LocationsIndex != "" {
		idx, err := location.LoadIndex(opts.LocationsIndex)
		if err != nil {
			return nil, fmt.Errorf("load locations index: %w", err)
		}
		if d, ok := idx.Descriptor(opts.MonthKey()); ok {
			return d, nil
		}
	}

	return nil, nil
}

// DataHash fingerprints the loaded inputs that influence a composed
// page, so file edits invalidate cached pages. It covers the manifest
// entries of the build month and its neighbors (overflow cells), the
// location fields, and the observation dates.
func (in *Inputs) DataHash(opts Options) string {
	var fingerprint struct {
		Months       map[string][]manifest.Entry `json:"months"`
		LocationName string                      `json:"location_name,omitempty"`
		Coordinates  string                      `json:"coordinates,omitempty"`
		Observations []string                    `json:"observations,omitempty"`
		WebsiteURL   string                      `json:"website_url,omitempty"`
	}

	fingerprint.Months = make(map[string][]manifest.Entry)
	for _, key := range neighborKeys(opts) {
		if entries := in.Manifest.Entries(key); entries != nil {
			fingerprint.Months[key] = entries
		}
	}
	if in.Location != nil {
		if name, err := in.Location.Name(opts.Language); err == nil {
			fingerprint.LocationName = name
		}
		if coords, err := in.Location.CoordinateString(); err == nil {
			fingerprint.Coordinates = coords
		}
	}
	if in.Observations != nil {
		fingerprint.Observations = in.Observations.Dates()
	}
	fingerprint.WebsiteURL = opts.WebsiteURL

	data, _ := json.Marshal(fingerprint)
	return cache.Hash(data)
}

// neighborKeys returns the month keys whose manifest entries can appear
// on the page: the build month plus, for monthly grids, the months the
// overflow cells come from.
func neighborKeys(opts Options) []string {
	keys := []string{opts.MonthKey()}
	if opts.Perpetual {
		return keys
	}

	py, pm := opts.Year, opts.Month-1
	if pm < 1 {
		py, pm = py-1, 12
	}
	ny, nm := opts.Year, opts.Month+1
	if nm > 12 {
		ny, nm = ny+1, 1
	}
	return append(keys,
		fmt.Sprintf("%04d%02d", py, pm),
		fmt.Sprintf("%04d%02d", ny, nm))
}

// Package pipeline provides the core build pipeline for photocal.
//
// This package implements the complete compose → render pipeline that
// can be used by the CLI and the preview server. By centralizing this
// logic, both entry points produce identical pages from identical
// inputs.
//
// # Architecture
//
// The pipeline consists of two stages over loaded inputs:
//
//  1. Compose: build the month grid (or perpetual grid), assign photos
//     from the manifest, resolve the location and project it onto the
//     world map, and attach localized names and observation links.
//  2. Render: generate output artifacts from the composed page (month
//     data JSON, world-map SVG).
//
// Each stage can be run independently or as part of the complete
// pipeline, and both are cached through the cache package.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Year:     2026,
//	    Month:    1,
//	    Language: "en",
//	    Manifest: "photos/photo_information.txt",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// A whole year builds through ExecuteYear, which collects per-month
// outcomes into a build report instead of aborting on the first broken
// month.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sarefo/calendar/pkg/cache"
	apperrors "github.com/sarefo/calendar/pkg/errors"
	"github.com/sarefo/calendar/pkg/locale"
	"github.com/sarefo/calendar/pkg/page"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultManifest is the conventional manifest location relative to the
// working directory.
const DefaultManifest = "photos/photo_information.txt"

// Format constants for output artifacts.
const (
	// FormatJSON is the month data document consumed by templating.
	FormatJSON = "json"
	// FormatMap is the world-map SVG with the location marker.
	FormatMap = "map"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatMap:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one month build.
// This struct supports JSON serialization for the preview server API.
type Options struct {
	// Month selection. Monthly builds take Year and Month; perpetual
	// builds take Month and SourceYear (the year whose photos the
	// year-independent page draws from).
	Year       int  `json:"year,omitempty"`
	Month      int  `json:"month"`
	Perpetual  bool `json:"perpetual,omitempty"`
	SourceYear int  `json:"source_year,omitempty"`

	// Content options
	Language   string `json:"language,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`

	// Input paths
	Manifest       string `json:"manifest,omitempty"`
	PhotosDir      string `json:"photos_dir,omitempty"`
	BaseMap        string `json:"base_map,omitempty"`
	LocationsIndex string `json:"locations_index,omitempty"`
	Observations   string `json:"observations,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Page is the composed month page.
	Page *page.Month

	// PageHash is the content hash of the composed page.
	PageHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ComposeHit bool // Whether the composed page came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, map)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLanguage checks that a language has built-in translations.
func ValidateLanguage(lang string) error {
	if !locale.IsSupported(lang) {
		return apperrors.New(apperrors.ErrCodeInvalidLanguage, "invalid language: %q (must be one of: en, de, es)", lang)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Month < 1 || o.Month > 12 {
		return apperrors.New(apperrors.ErrCodeInvalidMonth, "month %d out of range 1..12", o.Month)
	}
	if o.Perpetual {
		if o.SourceYear == 0 {
			o.SourceYear = o.Year
		}
		if o.SourceYear < 1 {
			return apperrors.New(apperrors.ErrCodeInvalidYear, "perpetual build requires a source year")
		}
	} else if o.Year < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidYear, "year is required")
	}

	if o.Language == "" {
		o.Language = locale.Default
	}
	if err := ValidateLanguage(o.Language); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Manifest == "" {
		o.Manifest = DefaultManifest
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// MonthKey returns the manifest month key the build addresses: the
// photo source month for perpetual builds, the page month otherwise.
func (o *Options) MonthKey() string {
	year := o.Year
	if o.Perpetual {
		year = o.SourceYear
	}
	return fmt.Sprintf("%04d%02d", year, o.Month)
}

// PageKeyOpts returns cache key options for the composed page.
func (o *Options) PageKeyOpts(dataHash string) cache.PageKeyOpts {
	return cache.PageKeyOpts{
		Language:   o.Language,
		Perpetual:  o.Perpetual,
		SourceYear: o.SourceYear,
		DataHash:   dataHash,
	}
}

// ArtifactKeyOpts returns cache key options for a rendered artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}

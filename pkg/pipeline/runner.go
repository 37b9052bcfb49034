package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sarefo/calendar/pkg/cache"
	"github.com/sarefo/calendar/pkg/observability"
	"github.com/sarefo/calendar/pkg/page"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the preview server use this to avoid duplicating
// caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	in, err := LoadInputs(opts)
	if err != nil {
		return nil, err
	}
	return r.ExecuteWithInputs(ctx, opts, in)
}

// ExecuteWithInputs runs the pipeline over already-loaded inputs, so
// the preview server can load once and compose many months.
func (r *Runner) ExecuteWithInputs(ctx context.Context, opts Options, in *Inputs) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Compose
	composeStart := time.Now()
	p, composeHit, err := r.ComposeWithCacheInfo(ctx, opts, in)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Page = p
	result.Stats.ComposeTime = time.Since(composeStart)
	result.CacheInfo.ComposeHit = composeHit

	if pageData, err := page.Marshal(p); err == nil {
		result.PageHash = cache.Hash(pageData)
	}

	r.Logger.Info("composed page",
		"month", p.MonthKey,
		"rows", p.Layout.Rows,
		"duration", result.Stats.ComposeTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, in, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComposeWithCacheInfo composes a month page with caching and returns
// cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, opts Options, in *Inputs) (*page.Month, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	monthKey := opts.MonthKey()
	cacheKey := r.Keyer.PageKey(monthKey, opts.PageKeyOpts(in.DataHash(opts)))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if p, err := page.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "page")
				return p, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "page")
	}

	observability.Build().OnComposeStart(ctx, monthKey, opts.Language)
	composeStart := time.Now()
	p, err := Compose(opts, in)
	observability.Build().OnComposeComplete(ctx, monthKey, opts.Language, time.Since(composeStart), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := page.Marshal(p); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPage)
		observability.Cache().OnCacheSet(ctx, "page", len(data))
	}

	return p, false, nil // Cache miss
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, opts Options, in *Inputs) (*page.Month, error) {
	p, _, err := r.ComposeWithCacheInfo(ctx, opts, in)
	return p, err
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *page.Month, in *Inputs, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	pageData, err := page.Marshal(p)
	if err != nil {
		return nil, false, fmt.Errorf("serialize page for cache key: %w", err)
	}
	pageHash := cache.Hash(pageData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(pageHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil // All artifacts from cache
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Build().OnRenderStart(ctx, p.MonthKey, opts.Formats)
	renderStart := time.Now()
	rendered, err := Render(p, in, opts)
	observability.Build().OnRenderComplete(ctx, p.MonthKey, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(pageHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// applyLogger ensures the options carry the runner's logger unless the
// caller set one explicitly. It must run before validation, which
// would otherwise install a discard logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

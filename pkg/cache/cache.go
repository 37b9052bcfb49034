// Package cache provides the caching layer shared by the CLI and the
// preview server.
//
// Three implementations exist:
//   - FileCache persists entries under the user cache directory so
//     repeated CLI runs skip recomposition.
//   - RedisCache shares entries between processes, for setups where a
//     preview server and batch builds run side by side.
//   - NullCache disables caching entirely.
//
// Cache keys are derived through a [Keyer] so the CLI and the server
// always address the same entries. DefaultKeyer hashes the inputs that
// influence a result; ScopedKeyer prefixes keys for shared backends.
package cache

import (
	"context"
	"time"
)

// TTLs per cached stage. Composed pages depend on manifest and location
// files that change while a calendar is being edited, so they expire
// quickly. Artifacts are keyed by the hash of the composed page and can
// live longer.
const (
	TTLPage     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with a TTL.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// miss; errors are reserved for backend failures. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PageKeyOpts captures everything besides the month key that changes a
// composed month page.
type PageKeyOpts struct {
	Language   string
	Perpetual  bool
	SourceYear int
	// DataHash covers the raw manifest, location, and observation
	// inputs, so edits invalidate stale pages.
	DataHash string
}

// ArtifactKeyOpts captures the render parameters for an artifact key.
type ArtifactKeyOpts struct {
	Format string
}

// Keyer derives cache keys for pipeline results.
type Keyer interface {
	// PageKey returns the key for a composed month page.
	PageKey(monthKey string, opts PageKeyOpts) string
	// ArtifactKey returns the key for a rendered artifact, derived
	// from the hash of the composed page it was rendered from.
	ArtifactKey(pageHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the relevant inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PageKey generates a key for a composed month page.
func (k *DefaultKeyer) PageKey(monthKey string, opts PageKeyOpts) string {
	return hashKey("page", monthKey, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(pageHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pageHash, opts)
}

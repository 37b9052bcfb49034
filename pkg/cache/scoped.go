package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This matters when several calendars share one Redis backend: each
// calendar gets its own key namespace so identical month keys from
// different photo collections never collide.
//
// Example usage:
//
//	// Keys for one calendar project
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sarefo:")
//
//	// Unscoped keys for a single-calendar setup
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey generates a prefixed key for composed month pages.
func (k *ScopedKeyer) PageKey(monthKey string, opts PageKeyOpts) string {
	return k.prefix + k.inner.PageKey(monthKey, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(pageHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(pageHash, opts)
}

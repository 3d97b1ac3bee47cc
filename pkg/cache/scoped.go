package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The preview server uses this to keep entries for different watched
// inputs apart when they share one backend.
//
// Example usage:
//
//	// Per-input keys while serving a watched file
//	serveKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:deps.dot:")
//
//	// Global keys for batch renders
//	batchKeyer := NewDefaultKeyer()
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// GraphKey generates a prefixed key for parsed graph caching.
func (k *ScopedKeyer) GraphKey(format, source string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(format, source, opts)
}

// StyleKey generates a prefixed key for styled graph caching.
func (k *ScopedKeyer) StyleKey(graphHash string, opts StyleKeyOpts) string {
	return k.prefix + k.inner.StyleKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifact caching.
func (k *ScopedKeyer) ArtifactKey(styleHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(styleHash, opts)
}

// Package cache provides content-addressed caching for pipeline stages.
// Parsed graphs, styled graphs, and rendered artifacts are keyed by
// sha256 hashes of their inputs, so a cache entry can never serve stale
// data for changed input. Backends range from a local file cache for CLI
// usage to Redis, MongoDB, and SQLite for shared or persistent setups.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Default TTLs per pipeline stage. Keys embed content hashes, so entries
// never go stale in the correctness sense; TTLs only bound disk usage.
const (
	// TTLGraph is how long parsed graphs stay cached.
	TTLGraph = 24 * time.Hour

	// TTLStyle is how long styled graphs stay cached.
	TTLStyle = 24 * time.Hour

	// TTLArtifact is how long rendered artifacts stay cached.
	TTLArtifact = 24 * time.Hour

	// TTLRuntime is how long downloaded runtime bundles stay cached.
	// Bundles are version-pinned and effectively immutable.
	TTLRuntime = 30 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// the error return is reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
// Implementations must be deterministic: the same inputs always produce
// the same key.
type Keyer interface {
	// HTTPKey generates a key for cached HTTP downloads (runtime bundles).
	HTTPKey(namespace, key string) string

	// GraphKey generates a key for a parsed graph. format names the input
	// format (dot, gomod, modgraph, json) and source is the content hash
	// of the input bytes.
	GraphKey(format, source string, opts GraphKeyOpts) string

	// StyleKey generates a key for a styled graph, derived from the hash
	// of the parsed graph it was computed from.
	StyleKey(graphHash string, opts StyleKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the hash of the styled graph it was rendered from.
	ArtifactKey(styleHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the importer options that affect parse results.
type GraphKeyOpts struct {
	// IncludeIndirect controls whether module importers keep indirect
	// dependencies.
	IncludeIndirect bool `json:"include_indirect"`
}

// StyleKeyOpts are the styling options that affect cluster colors and ranks.
type StyleKeyOpts struct {
	Palette []string `json:"palette"`
}

// ArtifactKeyOpts are the render options that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format        string `json:"format"`
	Title         string `json:"title"`
	Width         string `json:"width"`
	Height        string `json:"height"`
	NoPhysics     bool   `json:"no_physics"`
	InlineRuntime bool   `json:"inline_runtime"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// Format: http:{namespace}:{key}
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// GraphKey generates a key for parsed graph caching.
func (k *DefaultKeyer) GraphKey(format, source string, opts GraphKeyOpts) string {
	return hashKey("graph", format, source, opts)
}

// StyleKey generates a key for styled graph caching.
func (k *DefaultKeyer) StyleKey(graphHash string, opts StyleKeyOpts) string {
	return hashKey("style", graphHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(styleHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", styleHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph/transform"
	graphio "github.com/Ezz-di/dot-to-html-graph/pkg/io"
	"github.com/Ezz-di/dot-to-html-graph/pkg/observability"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render/vis"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
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

// Execute runs the complete parse → style → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	hooks := observability.Pipeline()

	// Stage 1: Parse
	parseStart := time.Now()
	hooks.OnParseStart(ctx, opts.InputFormat, opts.SourceName)
	g, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		hooks.OnParseComplete(ctx, opts.InputFormat, opts.SourceName, 0, time.Since(parseStart), err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.ParseHit = parseHit

	// Compute graph hash for cache keys and server responses
	if graphData, err := graphio.Marshal(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	hooks.OnParseComplete(ctx, opts.InputFormat, opts.SourceName, g.NodeCount(), result.Stats.ParseTime, nil)

	r.Logger.Info("parsed graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ParseTime)

	// Apply cluster filtering and cycle breaking before styling, so style
	// and artifact cache keys reflect the transformed graph
	workGraph := r.PrepareGraph(g, opts)

	// Stage 2: Style
	styleStart := time.Now()
	hooks.OnStyleStart(ctx, workGraph.NodeCount())
	styled, styles, styleHit, err := r.StyleWithCacheInfo(ctx, workGraph, opts)
	if err != nil {
		hooks.OnStyleComplete(ctx, 0, time.Since(styleStart), err)
		return nil, fmt.Errorf("style: %w", err)
	}
	result.Graph = styled
	result.Styles = styles
	result.Stats.StyleTime = time.Since(styleStart)
	result.Stats.ClusterCount = len(styles)
	result.CacheInfo.StyleHit = styleHit
	hooks.OnStyleComplete(ctx, len(styles), result.Stats.StyleTime, nil)

	r.Logger.Info("styled graph",
		"clusters", len(styles),
		"duration", result.Stats.StyleTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, styled, styles, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo builds the graph with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The key embeds the source hash, so edited inputs never collide
	cacheKey := r.Keyer.GraphKey(opts.InputFormat, cache.Hash(opts.Source), opts.GraphKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graphio.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g, err := Parse(opts.Source, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := graphio.Marshal(g); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph) == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, false, nil // Cache miss
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*graph.Graph, error) {
	g, _, err := r.ParseWithCacheInfo(ctx, opts)
	return g, err
}

// StyleWithCacheInfo assigns cluster colors and ranks with caching and
// returns cache hit info. On a cache hit the returned graph is a fresh
// instance decoded from the cache; on a miss it is g, annotated in place.
func (r *Runner) StyleWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, []style.ClusterStyle, bool, error) {
	r.applyLogger(&opts)

	// Compute cache key
	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.StyleKey(cache.Hash(graphData), opts.StyleKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if styled, styles, err := unmarshalStyled(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "style")
			return styled, styles, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "style")

	styles := style.Apply(g, style.Options{Palette: opts.Palette})

	// Cache the result
	if data, err := marshalStyled(g, styles); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLStyle) == nil {
			observability.Cache().OnCacheSet(ctx, "style", len(data))
		}
	}

	return g, styles, false, nil // Cache miss
}

// Style is a convenience wrapper that calls StyleWithCacheInfo and discards the cache hit info.
func (r *Runner) Style(ctx context.Context, g *graph.Graph, opts Options) (*graph.Graph, []style.ClusterStyle, error) {
	styled, styles, _, err := r.StyleWithCacheInfo(ctx, g, opts)
	return styled, styles, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, styles []style.ClusterStyle, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the styled graph
	styledData, err := marshalStyled(g, styles)
	if err != nil {
		return nil, false, fmt.Errorf("serialize styled graph for cache key: %w", err)
	}
	styleHash := cache.Hash(styledData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(styleHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// The runtime download is the one network touch in the pipeline and
	// happens only on explicit request, after the cache has missed
	var runtime []byte
	if opts.InlineRuntime && opts.WantsFormat(FormatHTML) {
		runtime, err = vis.FetchRuntime(ctx, r.Cache, r.Keyer, "")
		if err != nil {
			return nil, false, fmt.Errorf("fetch runtime: %w", err)
		}
	}

	// Render all formats
	rendered, err := RenderFormats(ctx, g, styles, runtime, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(styleHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, styles []style.ClusterStyle, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, styles, opts)
	return artifacts, err
}

// PrepareGraph applies the structural transform options: cluster filtering
// first, then cycle breaking. Returns g itself when neither is requested;
// otherwise g is left untouched and a transformed copy is returned.
func (r *Runner) PrepareGraph(g *graph.Graph, opts Options) *graph.Graph {
	work := g
	if opts.Clusters != nil {
		work = transform.FilterClusters(work, opts.Clusters)
		r.Logger.Debug("filtered clusters",
			"keep", opts.Clusters,
			"nodes", work.NodeCount())
	}
	if opts.BreakCycles {
		if work == g {
			work = g.Clone()
		}
		if removed := transform.BreakCycles(work); removed > 0 {
			r.Logger.Debug("broke cycles", "removed_edges", removed)
		}
	}
	return work
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// Package pipeline provides the core graph visualization pipeline.
//
// This package implements the complete parse → style → render pipeline that
// is shared by the CLI and the preview server. By centralizing this logic,
// both entry points behave identically and cache results the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Build a graph from a DOT file, go.mod manifest, module graph
//     dump, or previously exported JSON dataset
//  2. Style: Assign cluster colors and hierarchical ranks
//  3. Render: Generate output in various formats (HTML, ECharts, SVG, PNG,
//     DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:     data,
//	    SourceName: "deps.dot",
//	    Formats:    []string{"html"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	// Parse only
//	g, err := runner.Parse(ctx, parseOpts)
//
//	// Style an existing graph
//	styled, styles, err := runner.Style(ctx, g, opts)
//
//	// Render a styled graph
//	artifacts, err := runner.Render(ctx, styled, styles, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// Input format constants for the parse stage.
const (
	// InputDOT is a Graphviz DOT file, the primary input format.
	InputDOT = "dot"
	// InputGoMod is a go.mod manifest turned into a requirement star.
	InputGoMod = "gomod"
	// InputModGraph is the pair-per-line output of `go mod graph`.
	InputModGraph = "modgraph"
	// InputJSON is a dataset previously exported with the json format.
	InputJSON = "json"
)

// ValidInputFormats is the set of supported input formats.
var ValidInputFormats = map[string]bool{
	InputDOT:      true,
	InputGoMod:    true,
	InputModGraph: true,
	InputJSON:     true,
}

// Format constants for output formats.
const (
	FormatHTML    = "html"
	FormatECharts = "echarts"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatDOT     = "dot"
	FormatJSON    = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML:    true,
	FormatECharts: true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatDOT:     true,
	FormatJSON:    true,
}

// DefaultFormat is the interactive HTML page.
const DefaultFormat = FormatHTML

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for preview server requests.
type Options struct {
	// Parse options
	Source          []byte `json:"source,omitempty"`      // Raw graph description
	SourceName      string `json:"source_name,omitempty"` // File name, used for format detection
	InputFormat     string `json:"input_format,omitempty"`
	IncludeIndirect bool   `json:"include_indirect,omitempty"` // Keep indirect go.mod requirements
	Refresh         bool   `json:"refresh,omitempty"`          // Bypass the graph cache

	// Transform options
	Clusters    []string `json:"clusters,omitempty"` // Keep only these clusters (nil = keep all)
	BreakCycles bool     `json:"break_cycles,omitempty"`

	// Style options
	Palette []string `json:"palette,omitempty"`

	// Render options
	Formats       []string `json:"formats,omitempty"`
	Title         string   `json:"title,omitempty"`
	Width         string   `json:"width,omitempty"`
	Height        string   `json:"height,omitempty"`
	NoPhysics     bool     `json:"no_physics,omitempty"`
	InlineRuntime bool     `json:"inline_runtime,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the styled graph the artifacts were rendered from.
	Graph *graph.Graph

	// GraphHash is the content hash of the parsed graph.
	GraphHash string

	// Styles are the per-cluster display styles.
	Styles []style.ClusterStyle

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	ClusterCount int
	ParseTime    time.Duration
	StyleTime    time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed graph came from cache
	StyleHit  bool // Whether the styled graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: html, echarts, svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateInputFormat checks that an input format is valid.
func ValidateInputFormat(format string) error {
	if !ValidInputFormats[format] {
		return fmt.Errorf("invalid input format: %q (must be one of: dot, gomod, modgraph, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing and resolves the
// input format, detecting it from the source name when unset.
func (o *Options) ValidateForParse() error {
	if len(o.Source) == 0 {
		return fmt.Errorf("source is required")
	}

	if o.InputFormat == "" {
		o.InputFormat = DetectFormat(o.SourceName)
	}
	if err := ValidateInputFormat(o.InputFormat); err != nil {
		return err
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// WantsFormat reports whether format is among the requested outputs.
func (o *Options) WantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// GraphKeyOpts returns cache key options for the parse stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		IncludeIndirect: o.IncludeIndirect,
	}
}

// StyleKeyOpts returns cache key options for the style stage.
func (o *Options) StyleKeyOpts() cache.StyleKeyOpts {
	return cache.StyleKeyOpts{
		Palette: o.Palette,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:        format,
		Title:         o.Title,
		Width:         o.Width,
		Height:        o.Height,
		NoPhysics:     o.NoPhysics,
		InlineRuntime: o.InlineRuntime,
	}
}

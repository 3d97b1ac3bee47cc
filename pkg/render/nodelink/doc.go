// Package nodelink re-exports a styled graph as Graphviz DOT and rasterizes
// it to SVG or PNG.
//
// # Overview
//
// The interactive HTML renderer is the primary output; this package covers
// the static companions. [ToDOT] writes the graph back out as DOT with the
// computed display attributes baked in, so the styled result can be fed to
// external Graphviz tooling or re-parsed. [RenderSVG] and [RenderPNG] run
// Graphviz in process on that DOT source.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, styles)
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR), one subgraph per
// cluster, and the same color defaults as the interactive renderer. Parsing
// the output again yields an equivalent graph.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// No external Graphviz installation is required.
package nodelink

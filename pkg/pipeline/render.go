package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	graphio "github.com/Ezz-di/dot-to-html-graph/pkg/io"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render/echarts"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render/nodelink"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render/vis"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// RenderFormats renders every requested format from a styled graph. The
// runtime parameter is the vis-network bundle to inline into HTML output;
// nil produces a page that loads the runtime from the CDN instead.
func RenderFormats(ctx context.Context, g *graph.Graph, styles []style.ClusterStyle, runtime []byte, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, g, styles, runtime, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, g *graph.Graph, styles []style.ClusterStyle, runtime []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatHTML:
		return vis.Render(g, styles, vis.Options{
			Title:     opts.Title,
			Height:    opts.Height,
			Width:     opts.Width,
			Runtime:   runtime,
			NoPhysics: opts.NoPhysics,
		})
	case FormatECharts:
		return echarts.Render(g, styles, echarts.Options{
			Title:  opts.Title,
			Height: opts.Height,
			Width:  opts.Width,
		})
	case FormatDOT:
		return nodelink.ToDOT(g, styles), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(g, styles))
	case FormatPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(g, styles))
	case FormatJSON:
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}

// Package echarts renders a styled graph as a go-echarts force-directed
// graph page, one legend category per cluster.
package echarts

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// Defaults for the page chrome.
const (
	DefaultTitle  = "Interactive Graph"
	DefaultHeight = "100vh"
	DefaultWidth  = "100vw"
)

// UnclusteredCategory is the legend entry for nodes without a cluster,
// shown only when the graph mixes clustered and unclustered nodes.
const UnclusteredCategory = "other"

// Options configure the chart page.
type Options struct {
	// Title is the page title. Defaults to the graph name, then DefaultTitle.
	Title string

	// Height and Width size the chart canvas.
	Height string
	Width  string
}

// Render produces a force-directed graph page. Node colors come from the
// styler, so the chart matches the interactive HTML renderer color for
// color; categories add per-cluster legend toggles on top.
func Render(g *graph.Graph, styles []style.ClusterStyle, o Options) ([]byte, error) {
	title := o.Title
	if title == "" {
		title = g.Name
	}
	if title == "" {
		title = DefaultTitle
	}
	height := o.Height
	if height == "" {
		height = DefaultHeight
	}
	width := o.Width
	if width == "" {
		width = DefaultWidth
	}

	categories, index := buildCategories(g, styles)

	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    height,
			Width:     width,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(categories) > 0),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	chart.AddSeries(
		"graph",
		buildNodes(g, index),
		buildLinks(g),
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Draggable:  opts.Bool(true),
				Roam:       opts.Bool(true),
				Force:      &opts.GraphForce{Repulsion: 400},
				Categories: categories,
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "right",
		}),
	)

	// The page template owns the document <title>; the chart-level
	// PageTitle only applies when a chart renders standalone.
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(chart)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render chart page")
	}
	return buf.Bytes(), nil
}

// buildCategories maps cluster labels to legend categories in the
// styler's order, appending a trailing category for unclustered nodes
// when the graph has both kinds.
func buildCategories(g *graph.Graph, styles []style.ClusterStyle) ([]*opts.GraphCategory, map[string]int) {
	if len(styles) == 0 {
		return nil, nil
	}

	categories := make([]*opts.GraphCategory, 0, len(styles)+1)
	index := make(map[string]int, len(styles)+1)
	for i, s := range styles {
		categories = append(categories, &opts.GraphCategory{Name: s.Label})
		index[s.Label] = i
	}

	for _, n := range g.Nodes() {
		if n.Cluster == "" {
			index[""] = len(categories)
			categories = append(categories, &opts.GraphCategory{Name: UnclusteredCategory})
			break
		}
	}

	return categories, index
}

func buildNodes(g *graph.Graph, index map[string]int) []opts.GraphNode {
	nodes := make([]opts.GraphNode, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		color := n.Color
		if color == "" {
			color = graph.DefaultNodeColor
		}
		node := opts.GraphNode{
			Name:      n.ID,
			ItemStyle: &opts.ItemStyle{Color: color},
		}
		if index != nil {
			node.Category = index[n.Cluster]
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func buildLinks(g *graph.Graph) []opts.GraphLink {
	links := make([]opts.GraphLink, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		links = append(links, opts.GraphLink{
			Source: e.Source,
			Target: e.Target,
		})
	}
	return links
}

// Package vis renders a styled graph as a single interactive HTML page on
// top of the vis-network runtime.
//
// The page carries everything inline: the runtime bundle (or a CDN script
// tag when no bundle is supplied), the node/edge dataset, the network
// options with per-cluster group styles, and a click handler that collapses
// or expands a node's direct neighborhood.
package vis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// Defaults for the page chrome.
const (
	DefaultTitle  = "Interactive Graph"
	DefaultHeight = "1000px"
	DefaultWidth  = "100%"
)

// Options configure the HTML page. The zero value renders a full-width
// page that loads the runtime from the CDN.
type Options struct {
	// Title is the page title. Defaults to the graph name, then DefaultTitle.
	Title string `json:"title,omitempty"`

	// Height and Width size the network canvas.
	Height string `json:"height,omitempty"`
	Width  string `json:"width,omitempty"`

	// Runtime is the vis-network standalone bundle to inline. When empty
	// the page references RuntimeURL instead and is no longer fully
	// self-contained.
	Runtime []byte `json:"-"`

	// RuntimeURL overrides the CDN location used when Runtime is empty.
	RuntimeURL string `json:"runtime_url,omitempty"`

	// NoPhysics freezes the layout: the simulation parameters stay in the
	// options document but the engine is switched off.
	NoPhysics bool `json:"no_physics,omitempty"`
}

// visNode is the vis-network node object. Field selection and defaults
// follow the DOT attribute mapping: explicit values pass through, absent
// ones get the fixed fallbacks.
type visNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Title string  `json:"title,omitempty"`
	URL   string  `json:"url,omitempty"`
	Color string  `json:"color"`
	Shape string  `json:"shape"`
	Font  visFont `json:"font"`
	Group string  `json:"group"`
	Level int     `json:"level"`
}

type visFont struct {
	Face string `json:"face"`
	Size int    `json:"size"`
}

// visEdge is the vis-network edge object.
type visEdge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Title  string  `json:"title,omitempty"`
	Color  string  `json:"color"`
	Arrows string  `json:"arrows"`
	Width  float64 `json:"width"`
	Dashes bool    `json:"dashes"`
	Smooth bool    `json:"smooth"`
}

// networkOptions is the vis-network options object applied to the page.
type networkOptions struct {
	Physics physicsOptions        `json:"physics"`
	Edges   edgeDefaults          `json:"edges"`
	Nodes   nodeDefaults          `json:"nodes"`
	Groups  map[string]groupStyle `json:"groups"`
	Layout  layoutOptions         `json:"layout"`
}

type physicsOptions struct {
	// Enabled is only emitted when physics is switched off; the engine
	// defaults to on and the original options document has no such key.
	Enabled     *bool     `json:"enabled,omitempty"`
	BarnesHut   barnesHut `json:"barnesHut"`
	MinVelocity float64   `json:"minVelocity"`
}

type barnesHut struct {
	GravitationalConstant int     `json:"gravitationalConstant"`
	SpringConstant        float64 `json:"springConstant"`
	SpringLength          int     `json:"springLength"`
}

type edgeDefaults struct {
	Color  inheritColor `json:"color"`
	Smooth smoothStyle  `json:"smooth"`
}

type inheritColor struct {
	Inherit bool `json:"inherit"`
}

type smoothStyle struct {
	Type string `json:"type"`
}

type nodeDefaults struct {
	Font fontDefaults `json:"font"`
}

type fontDefaults struct {
	Size int `json:"size"`
}

type groupStyle struct {
	Color groupColor `json:"color"`
}

type groupColor struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

type layoutOptions struct {
	Hierarchical hierarchical `json:"hierarchical"`
}

type hierarchical struct {
	Enabled    bool   `json:"enabled"`
	Direction  string `json:"direction"`
	SortMethod string `json:"sortMethod"`
}

// Render produces the complete interactive HTML page for a styled graph.
// The collapse script is injected before the closing body tag as the final
// step, after the page skeleton is assembled.
func Render(g *graph.Graph, styles []style.ClusterStyle, opts Options) ([]byte, error) {
	nodesJSON, err := json.Marshal(buildNodes(g))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "marshal nodes")
	}
	edgesJSON, err := json.Marshal(buildEdges(g))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "marshal edges")
	}
	optionsJSON, err := json.Marshal(buildOptions(styles, opts))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "marshal options")
	}

	title := opts.Title
	if title == "" {
		title = g.Name
	}
	if title == "" {
		title = DefaultTitle
	}
	height := opts.Height
	if height == "" {
		height = DefaultHeight
	}
	width := opts.Width
	if width == "" {
		width = DefaultWidth
	}

	page := fmt.Sprintf(pageTemplate,
		title, width, height, runtimeTag(opts),
		nodesJSON, edgesJSON, optionsJSON)

	return render.InjectBeforeBodyClose([]byte(page), []byte(toggleScript))
}

func buildNodes(g *graph.Graph) []visNode {
	nodes := make([]visNode, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		nodes = append(nodes, visNode{
			ID:    n.ID,
			Label: strings.Trim(n.DisplayLabel(), "<>"),
			Title: n.Tooltip,
			URL:   n.URL,
			Color: defaultString(n.Color, graph.DefaultNodeColor),
			Shape: defaultString(n.Shape, graph.ShapeEllipse),
			Font: visFont{
				Face: defaultString(n.FontName, "Helvetica"),
				Size: defaultInt(n.FontSize, 14),
			},
			Group: defaultString(n.Cluster, "default"),
			Level: n.Rank,
		})
	}
	return nodes
}

func buildEdges(g *graph.Graph) []visEdge {
	edges := make([]visEdge, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		width := e.Width
		if width == 0 {
			width = 1.0
		}
		edges = append(edges, visEdge{
			From:   e.Source,
			To:     e.Target,
			Title:  e.Tooltip,
			Color:  defaultString(e.Color, graph.DefaultEdgeColor),
			Arrows: defaultString(e.ArrowHead, "normal"),
			Width:  width,
			Dashes: e.Dashed,
			Smooth: true,
		})
	}
	return edges
}

func buildOptions(styles []style.ClusterStyle, opts Options) networkOptions {
	groups := make(map[string]groupStyle, len(styles))
	for _, s := range styles {
		groups[s.Label] = groupStyle{
			Color: groupColor{Background: s.Background, Border: s.Border},
		}
	}

	var enabled *bool
	if opts.NoPhysics {
		off := false
		enabled = &off
	}

	return networkOptions{
		Physics: physicsOptions{
			Enabled: enabled,
			BarnesHut: barnesHut{
				GravitationalConstant: -8000,
				SpringConstant:        0.001,
				SpringLength:          200,
			},
			MinVelocity: 0.75,
		},
		Edges: edgeDefaults{
			Color:  inheritColor{Inherit: true},
			Smooth: smoothStyle{Type: "continuous"},
		},
		Nodes: nodeDefaults{
			Font: fontDefaults{Size: 14},
		},
		Groups: groups,
		Layout: layoutOptions{
			Hierarchical: hierarchical{
				Enabled:    true,
				Direction:  "LR",
				SortMethod: "directed",
			},
		},
	}
}

func defaultString(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func defaultInt(val, fallback int) int {
	if val == 0 {
		return fallback
	}
	return val
}

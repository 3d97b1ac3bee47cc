// Package style computes display attributes for a parsed graph: cluster
// colors from a fixed palette and hierarchical ranks for the left-to-right
// layout.
//
// Color assignment is a pure function of the cluster label set. Labels are
// sorted, then colors are taken from the palette in order, cycling when
// there are more clusters than colors. Parsing the same input therefore
// always yields the same coloring, run over run.
package style

import (
	"slices"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph/transform"
)

// DefaultPalette is the color cycle assigned to clusters when no custom
// palette is configured.
var DefaultPalette = []string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
	"#86bcb6",
	"#8cd17d",
}

// ClusterStyle is the display style of one cluster group.
type ClusterStyle struct {
	Label      string `json:"label"`
	Background string `json:"background"`
	Border     string `json:"border"`
}

// Options control styling. The zero value uses the default palette.
type Options struct {
	// Palette is the color cycle for clusters. Empty means DefaultPalette.
	Palette []string `json:"palette,omitempty"`
}

// Styles assigns a palette color to each cluster label. Labels are sorted
// before assignment, so the result does not depend on input order.
func Styles(clusters []string, palette []string) []ClusterStyle {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	sorted := slices.Clone(clusters)
	slices.Sort(sorted)

	styles := make([]ClusterStyle, 0, len(sorted))
	for i, label := range sorted {
		styles = append(styles, ClusterStyle{
			Label:      label,
			Background: palette[i%len(palette)],
			Border:     graph.DefaultBorderColor,
		})
	}
	return styles
}

// Apply annotates the graph in place: every node gets its effective display
// color and its hierarchical rank. Returns the cluster styles for the
// renderer's group definitions.
//
// Color precedence: an explicit fillcolor from the input wins over the
// cluster color, which wins over the default.
func Apply(g *graph.Graph, opts Options) []ClusterStyle {
	styles := Styles(g.Clusters(), opts.Palette)

	colors := make(map[string]string, len(styles))
	for _, s := range styles {
		colors[s.Label] = s.Background
	}

	for _, n := range g.Nodes() {
		switch {
		case n.FillColor != "":
			n.Color = n.FillColor
		case n.Cluster != "":
			n.Color = colors[n.Cluster]
		default:
			n.Color = graph.DefaultNodeColor
		}
	}

	transform.AssignRanks(g)
	return styles
}

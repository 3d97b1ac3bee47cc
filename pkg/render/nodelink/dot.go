package nodelink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// ToDOT writes the graph back out as Graphviz DOT with the computed display
// attributes baked in. Clusters become subgraphs named with the cluster_
// prefix, so parsing the output yields an equivalent graph. Render the
// result with [RenderSVG] or [RenderPNG], or hand it to external tooling.
func ToDOT(g *graph.Graph, styles []style.ClusterStyle) []byte {
	keyword, op := "digraph", "->"
	if !g.Directed {
		keyword, op = "graph", "--"
	}
	name := g.Name
	if name == "" {
		name = "G"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %q {\n", keyword, name)
	buf.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&buf, "  node [shape=%s, style=filled, fillcolor=%q, fontname=\"Helvetica\"];\n",
		graph.ShapeEllipse, graph.DefaultNodeColor)
	buf.WriteString("\n")

	styled := make(map[string]bool, len(styles))
	for _, s := range styles {
		styled[s.Label] = true
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+s.Label)
		fmt.Fprintf(&buf, "    label=%q;\n", s.Label)
		fmt.Fprintf(&buf, "    color=%q;\n", s.Border)
		for _, n := range g.Nodes() {
			if n.Cluster != s.Label {
				continue
			}
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
		}
		buf.WriteString("  }\n")
	}

	for _, n := range g.Nodes() {
		if styled[n.Cluster] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if attrs := edgeAttrs(e); len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.Source, op, e.Target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q %s %q;\n", e.Source, op, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

func nodeAttrs(n *graph.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}

	color := n.Color
	if color == "" {
		color = n.FillColor
	}
	if color != "" && color != graph.DefaultNodeColor {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
	}
	if n.Shape == graph.ShapeBox {
		attrs = append(attrs, "shape=box")
	}
	if n.Tooltip != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Tooltip))
	}
	if n.URL != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", n.URL))
	}
	if n.FontName != "" {
		attrs = append(attrs, fmt.Sprintf("fontname=%q", n.FontName))
	}
	if n.FontSize != 0 {
		attrs = append(attrs, fmt.Sprintf("fontsize=%d", n.FontSize))
	}
	return attrs
}

func edgeAttrs(e *graph.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.Tooltip != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", e.Tooltip))
	}
	if e.URL != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", e.URL))
	}
	if e.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", e.Color))
	}
	if e.ArrowHead != "" {
		attrs = append(attrs, fmt.Sprintf("arrowhead=%q", e.ArrowHead))
	}
	if e.Width != 0 && e.Width != 1 {
		attrs = append(attrs, "penwidth="+strconv.FormatFloat(e.Width, 'g', -1, 64))
	}
	if e.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

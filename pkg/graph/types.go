package graph

// DefaultNodeColor is the display color for nodes without an explicit
// fillcolor and without a cluster assignment.
const DefaultNodeColor = "#97C2FC"

// DefaultEdgeColor is the display color for edges without an explicit color.
const DefaultEdgeColor = "#848484"

// DefaultBorderColor is the node border color used for every cluster style.
const DefaultBorderColor = "#2B7CE9"

// Node shapes understood by the renderers. Input shapes other than "box"
// collapse to the ellipse default, matching the DOT attribute handling of
// the interactive renderer.
const (
	ShapeBox     = "box"
	ShapeEllipse = "ellipse"
)

// Node is a vertex in the graph. Input attributes are filled by a parser;
// Color and Rank are computed by the styler and are zero until then.
//
// The zero value is not usable as-is: ID must be non-empty before the node
// is added to a Graph.
type Node struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`   // Display label (defaults to ID)
	Cluster string `json:"cluster,omitempty"` // Cluster label, empty when unclustered

	// Input attributes carried through from the graph description.
	Tooltip   string `json:"tooltip,omitempty"`
	URL       string `json:"url,omitempty"`
	FillColor string `json:"fill_color,omitempty"` // Explicit input color, overrides cluster color
	Shape     string `json:"shape,omitempty"`
	FontName  string `json:"font_name,omitempty"`
	FontSize  int    `json:"font_size,omitempty"`

	// Computed attributes.
	Color string `json:"color,omitempty"` // Effective display color
	Rank  int    `json:"rank"`            // Hierarchical depth, 0 = source
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`

	// Input attributes carried through from the graph description.
	Label     string  `json:"label,omitempty"`
	Tooltip   string  `json:"tooltip,omitempty"`
	URL       string  `json:"url,omitempty"`
	Color     string  `json:"color,omitempty"`
	ArrowHead string  `json:"arrow_head,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Dashed    bool    `json:"dashed,omitempty"`
}

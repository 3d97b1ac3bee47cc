// Package dot imports Graphviz DOT files into the in-memory graph model.
//
// Parsing is delegated to gonum's DOT grammar; this package walks the
// resulting syntax tree and resolves DOT semantics: attribute defaults
// scoped to subgraphs, edge chains and subgraph endpoints, strict-mode
// attribute merging, and cluster membership from cluster_* subgraphs.
package dot

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	dotfmt "gonum.org/v1/gonum/graph/formats/dot"
	"gonum.org/v1/gonum/graph/formats/dot/ast"
)

// clusterPrefix marks a subgraph as a cluster. The label attribute names the
// cluster; without one the subgraph ID itself is the label.
const clusterPrefix = "cluster_"

// ParseFile reads and parses a DOT file.
func ParseFile(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read %s", path)
	}
	return ParseBytes(data)
}

// Parse parses DOT text from a reader.
func Parse(r io.Reader) (*graph.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "cannot read graph description")
	}
	return ParseBytes(data)
}

// ParseBytes parses DOT text. The input must contain exactly one graph
// definition; undirected graphs are accepted and treated as directed.
func ParseBytes(data []byte) (*graph.Graph, error) {
	file, err := dotfmt.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "invalid graph description")
	}
	switch len(file.Graphs) {
	case 0:
		return nil, errors.New(errors.ErrCodeParse, "no graph definition found")
	case 1:
	default:
		return nil, errors.New(errors.ErrCodeParse, "found %d graph definitions, want exactly one", len(file.Graphs))
	}
	return fromAST(file.Graphs[0]), nil
}

// scope carries the attribute context of the enclosing block. Defaults maps
// are cloned on subgraph entry so inner assignments do not leak out.
type scope struct {
	cluster      string // label of the innermost enclosing cluster, "" at top level
	depth        int    // cluster nesting depth
	nodeDefaults map[string]string
	edgeDefaults map[string]string
}

func (s scope) child() scope {
	return scope{
		cluster:      s.cluster,
		depth:        s.depth,
		nodeDefaults: cloneAttrs(s.nodeDefaults),
		edgeDefaults: cloneAttrs(s.edgeDefaults),
	}
}

type walker struct {
	g      *graph.Graph
	strict bool
	// Cluster nesting depth at which each node's membership was decided.
	// A deeper cluster reassigns; a sibling at the same depth does not.
	memberDepth map[string]int
}

func fromAST(src *ast.Graph) *graph.Graph {
	g := graph.New()
	g.Name = unquote(src.ID)
	g.Directed = src.Directed

	w := &walker{g: g, strict: src.Strict, memberDepth: make(map[string]int)}
	w.walk(src.Stmts, scope{
		nodeDefaults: make(map[string]string),
		edgeDefaults: make(map[string]string),
	})
	return g
}

// walk processes a statement block and returns the IDs of all nodes it
// referenced, which is the endpoint set when the block is a subgraph used
// inside an edge statement.
func (w *walker) walk(stmts []ast.Stmt, sc scope) []string {
	var ids []string
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.NodeStmt:
			ids = append(ids, w.nodeStmt(s, sc)...)
		case *ast.EdgeStmt:
			ids = append(ids, w.edgeStmt(s, sc)...)
		case *ast.AttrStmt:
			mergeInto(defaultsFor(s.Kind, sc), s.Attrs)
		case *ast.Attr:
			// Graph-level assignment (e.g. rankdir). Cluster labels are
			// resolved before descending, so nothing to pick up here.
		case *ast.Subgraph:
			ids = append(ids, w.subgraph(s, sc)...)
		}
	}
	return ids
}

func (w *walker) nodeStmt(s *ast.NodeStmt, sc scope) []string {
	id := unquote(s.Node.ID)
	n := w.touch(id, sc)
	if n == nil {
		return nil
	}
	applyNodeAttrs(n, attrMap(s.Attrs))
	return []string{id}
}

// edgeStmt expands an edge chain a -> b -> c into consecutive pairs and a
// subgraph endpoint {a b} -> c into its cartesian product.
func (w *walker) edgeStmt(s *ast.EdgeStmt, sc scope) []string {
	attrs := cloneAttrs(sc.edgeDefaults)
	mergeInto(attrs, s.Attrs)

	lefts := w.endpoints(s.From, sc)
	all := append([]string(nil), lefts...)
	for link := s.To; link != nil; link = link.To {
		rights := w.endpoints(link.Vertex, sc)
		all = append(all, rights...)
		for _, src := range lefts {
			for _, dst := range rights {
				w.addEdge(src, dst, attrs)
			}
		}
		lefts = rights
	}
	return all
}

// addEdge inserts one edge. In strict graphs a repeated pair merges its
// attributes into the existing edge instead of duplicating it.
func (w *walker) addEdge(src, dst string, attrs map[string]string) {
	if w.strict {
		if e := w.g.FindEdge(src, dst); e != nil {
			applyEdgeAttrs(e, attrs)
			return
		}
	}
	e := graph.Edge{Source: src, Target: dst}
	applyEdgeAttrs(&e, attrs)
	_ = w.g.AddEdge(e) // endpoints were touched above
}

func (w *walker) endpoints(v ast.Vertex, sc scope) []string {
	switch x := v.(type) {
	case *ast.Node:
		id := unquote(x.ID)
		if w.touch(id, sc) == nil {
			return nil
		}
		return []string{id}
	case *ast.Subgraph:
		return w.subgraph(x, sc)
	}
	return nil
}

func (w *walker) subgraph(s *ast.Subgraph, sc scope) []string {
	child := sc.child()
	if name := unquote(s.ID); strings.HasPrefix(name, clusterPrefix) {
		child.cluster = clusterLabel(s.Stmts, name)
		child.depth = sc.depth + 1
	}
	return w.walk(s.Stmts, child)
}

// touch returns the named node, creating it with the scope's node defaults
// on first mention, or nil for an empty ID. Membership in the innermost
// enclosing cluster is recorded; deeper clusters win over enclosing ones.
func (w *walker) touch(id string, sc scope) *graph.Node {
	_, existed := w.g.Node(id)
	n := w.g.EnsureNode(id)
	if n == nil {
		return nil
	}
	if !existed {
		applyNodeAttrs(n, sc.nodeDefaults)
	}
	if sc.cluster != "" && sc.depth > w.memberDepth[id] {
		n.Cluster = sc.cluster
		w.memberDepth[id] = sc.depth
	}
	return n
}

// clusterLabel finds the label of a cluster subgraph, checking both the bare
// assignment form (label="x") and the attribute statement form
// (graph [label="x"]). Falls back to the subgraph name.
func clusterLabel(stmts []ast.Stmt, name string) string {
	for _, stmt := range stmts {
		switch a := stmt.(type) {
		case *ast.Attr:
			if unquote(a.Key) == "label" {
				if label := unquote(a.Val); label != "" {
					return label
				}
			}
		case *ast.AttrStmt:
			if a.Kind != ast.GraphKind {
				continue
			}
			for _, attr := range a.Attrs {
				if unquote(attr.Key) == "label" {
					if label := unquote(attr.Val); label != "" {
						return label
					}
				}
			}
		}
	}
	return name
}

func defaultsFor(kind ast.Kind, sc scope) map[string]string {
	switch kind {
	case ast.NodeKind:
		return sc.nodeDefaults
	case ast.EdgeKind:
		return sc.edgeDefaults
	}
	return nil
}

func attrMap(attrs []*ast.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	mergeInto(m, attrs)
	return m
}

func mergeInto(m map[string]string, attrs []*ast.Attr) {
	if m == nil {
		return
	}
	for _, a := range attrs {
		m[unquote(a.Key)] = unquote(a.Val)
	}
}

func cloneAttrs(m map[string]string) map[string]string {
	clone := make(map[string]string, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

func applyNodeAttrs(n *graph.Node, attrs map[string]string) {
	for key, val := range attrs {
		switch key {
		case "label":
			n.Label = val
		case "tooltip":
			n.Tooltip = val
		case "URL":
			n.URL = val
		case "fillcolor":
			n.FillColor = val
		case "shape":
			if val == graph.ShapeBox {
				n.Shape = graph.ShapeBox
			} else {
				n.Shape = graph.ShapeEllipse
			}
		case "fontname":
			n.FontName = val
		case "fontsize":
			// Fractional sizes are truncated; unparseable ones are
			// treated as absent.
			if size, err := strconv.ParseFloat(val, 64); err == nil {
				n.FontSize = int(size)
			}
		}
	}
}

func applyEdgeAttrs(e *graph.Edge, attrs map[string]string) {
	for key, val := range attrs {
		switch key {
		case "label":
			e.Label = val
		case "tooltip":
			e.Tooltip = val
		case "URL":
			e.URL = val
		case "color":
			e.Color = val
		case "arrowhead":
			e.ArrowHead = val
		case "penwidth":
			if width, err := strconv.ParseFloat(val, 64); err == nil {
				e.Width = width
			}
		case "style":
			e.Dashed = val == "dashed"
		}
	}
}

// unquote strips the surrounding double quotes of a quoted DOT ID and
// unescapes embedded quotes. Unquoted and HTML-like IDs pass through.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	body := s[1 : len(s)-1]
	return strings.ReplaceAll(body, `\"`, `"`)
}

package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the Source
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the Target
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.AddEdge] for edges with
	// an empty endpoint, and by [Graph.Validate] when an edge references a
	// node that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")
)

// Graph is a directed graph with cluster-labeled nodes. It is built once by
// a parser, annotated in place by the styler, and read-only afterwards.
//
// Node iteration follows insertion order and cluster iteration is sorted,
// so identical inputs produce identical outputs run over run.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	Name     string // Graph ID from the input, may be empty
	Directed bool   // Whether the input declared a directed graph

	nodes    map[string]*Node
	order    []string // node IDs in insertion order
	edges    []*Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty directed graph.
func New() *Graph {
	return &Graph{
		Directed: true,
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the node ID
// is empty, or ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return fmt.Errorf("node %q: %w", n.ID, ErrDuplicateNodeID)
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// EnsureNode returns the node with the given ID, creating a bare node first
// if none exists. Parsers use this for nodes that first appear as edge
// endpoints. Returns nil for an empty ID.
func (g *Graph) EnsureNode(id string) *Node {
	if id == "" {
		return nil
	}
	if n, ok := g.nodes[id]; ok {
		return n
	}
	node := &Node{ID: id}
	g.nodes[id] = node
	g.order = append(g.order, id)
	return node
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint has
// not been added; malformed input is rejected, not repaired. Self-loops and
// parallel edges are allowed.
func (g *Graph) AddEdge(e Edge) error {
	if e.Source == "" || e.Target == "" {
		return fmt.Errorf("edge %s -> %s: %w", e.Source, e.Target, ErrInvalidEdgeEndpoint)
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return fmt.Errorf("edge %s -> %s: %w", e.Source, e.Target, ErrUnknownSourceNode)
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return fmt.Errorf("edge %s -> %s: %w", e.Source, e.Target, ErrUnknownTargetNode)
	}
	edge := &e
	g.edges = append(g.edges, edge)
	g.outgoing[e.Source] = append(g.outgoing[e.Source], e.Target)
	g.incoming[e.Target] = append(g.incoming[e.Target], e.Source)
	return nil
}

// RemoveEdge removes all edges from source to target. No error is returned
// if no such edge exists.
func (g *Graph) RemoveEdge(source, target string) {
	g.edges = slices.DeleteFunc(g.edges, func(e *Edge) bool {
		return e.Source == source && e.Target == target
	})
	g.outgoing[source] = slices.DeleteFunc(g.outgoing[source], func(s string) bool { return s == target })
	g.incoming[target] = slices.DeleteFunc(g.incoming[target], func(s string) bool { return s == source })
}

// FindEdge returns the first edge from source to target, or nil if there is
// none. The pointer refers to the actual edge, so strict-mode parsers can
// merge attributes of repeated edge statements in place.
func (g *Graph) FindEdge(source, target string) *Edge {
	for _, e := range g.edges {
		if e.Source == source && e.Target == target {
			return e
		}
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The pointer refers to the actual node, so the styler can annotate
// it in place.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order. The returned slice contains
// pointers to the actual edge structs.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Clone returns a deep copy of the graph. Node and edge structs are copied,
// so annotating or mutating the clone leaves the original untouched.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Name:     g.Name,
		Directed: g.Directed,
		nodes:    make(map[string]*Node, len(g.nodes)),
		order:    slices.Clone(g.order),
		edges:    make([]*Edge, 0, len(g.edges)),
		outgoing: make(map[string][]string, len(g.outgoing)),
		incoming: make(map[string][]string, len(g.incoming)),
	}
	for id, n := range g.nodes {
		node := *n
		c.nodes[id] = &node
	}
	for _, e := range g.edges {
		edge := *e
		c.edges = append(c.edges, &edge)
		c.outgoing[edge.Source] = append(c.outgoing[edge.Source], edge.Target)
		c.incoming[edge.Target] = append(c.incoming[edge.Target], edge.Source)
	}
	return c
}

// Children returns the IDs of nodes this node has edges to.
// The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Neighbors returns the IDs of all nodes directly connected to the node,
// in either direction, deduplicated, in first-seen order. This is the set
// the interactive page hides when the node is clicked.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var neighbors []string
	for _, lists := range [][]string{g.outgoing[id], g.incoming[id]} {
		for _, other := range lists {
			if other == id || seen[other] {
				continue
			}
			seen[other] = true
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}

// IncidentEdges returns the indices into Edges() of every edge touching the
// node, in insertion order.
func (g *Graph) IncidentEdges(id string) []int {
	var indices []int
	for i, e := range g.edges {
		if e.Source == id || e.Target == id {
			indices = append(indices, i)
		}
	}
	return indices
}

// Sources returns nodes with no incoming edges, in insertion order.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, g.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, g.nodes[id])
		}
	}
	return sinks
}

// Clusters returns the distinct cluster labels present in the graph, sorted.
// Nodes without a cluster do not contribute a label.
func (g *Graph) Clusters() []string {
	seen := make(map[string]bool)
	var clusters []string
	for _, id := range g.order {
		c := g.nodes[id].Cluster
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		clusters = append(clusters, c)
	}
	slices.Sort(clusters)
	return clusters
}

// NodesInCluster returns the nodes carrying the given cluster label, in
// insertion order.
func (g *Graph) NodesInCluster(label string) []*Node {
	var nodes []*Node
	for _, id := range g.order {
		if g.nodes[id].Cluster == label {
			nodes = append(nodes, g.nodes[id])
		}
	}
	return nodes
}

// SetRanks updates the rank assignments for nodes. Nodes not present in the
// map retain their current rank.
func (g *Graph) SetRanks(ranks map[string]int) {
	for id, rank := range ranks {
		if n, ok := g.nodes[id]; ok {
			n.Rank = rank
		}
	}
}

// MaxRank returns the highest rank assigned to any node, or 0 for an empty
// graph.
func (g *Graph) MaxRank() int {
	max := 0
	for _, n := range g.nodes {
		if n.Rank > max {
			max = n.Rank
		}
	}
	return max
}

// Validate checks graph integrity and returns nil if valid. Every edge must
// reference two present nodes; AddEdge enforces this, so a failure here
// indicates corruption after construction.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.Source]; !ok {
			return fmt.Errorf("edge %s -> %s: %w", e.Source, e.Target, ErrInvalidEdgeEndpoint)
		}
		if _, ok := g.nodes[e.Target]; !ok {
			return fmt.Errorf("edge %s -> %s: %w", e.Source, e.Target, ErrInvalidEdgeEndpoint)
		}
	}
	return nil
}

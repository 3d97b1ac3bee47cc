package transform

import "github.com/Ezz-di/dot-to-html-graph/pkg/graph"

// BackEdges returns the edges that close a cycle, found by depth-first
// search with white/gray/black coloring. Traversal starts from source nodes
// and then sweeps any remaining unvisited nodes, in insertion order, so the
// result is deterministic for a fixed input.
func BackEdges(g *graph.Graph) [][2]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	return backEdges
}

// BreakCycles removes every back edge from the graph and returns the number
// of edges removed. A zero return means the graph was already acyclic.
func BreakCycles(g *graph.Graph) int {
	backEdges := BackEdges(g)
	for _, e := range backEdges {
		g.RemoveEdge(e[0], e[1])
	}
	return len(backEdges)
}

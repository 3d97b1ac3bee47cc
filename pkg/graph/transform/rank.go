package transform

import "github.com/Ezz-di/dot-to-html-graph/pkg/graph"

// AssignRanks assigns each node a hierarchical rank based on its depth in
// the graph and stores it on the nodes.
//
// Ranks are computed with a longest-path algorithm via topological sort
// (Kahn's algorithm). Each node is placed at one plus the maximum rank of
// any of its predecessors, ensuring that:
//   - Source nodes (no incoming edges) are at rank 0
//   - Every non-back edge points from a lower rank to a strictly higher one
//   - Each node sits as deep as its longest ancestry requires
//
// Back edges are detected first and excluded from the computation, so
// cyclic inputs rank cleanly: nodes on a cycle are ranked as if the cycle
// were cut at its back edges. The edges themselves stay in the graph; use
// [BreakCycles] to drop them from the output as well.
//
// Existing rank assignments are overwritten. AssignRanks panics if g is
// nil; an empty graph returns immediately.
//
// Time complexity is O(V + E).
func AssignRanks(g *graph.Graph) {
	back := make(map[[2]string]bool)
	for _, e := range BackEdges(g) {
		back[e] = true
	}

	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	ranks := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := 0
		for _, parent := range g.Parents(n.ID) {
			if !back[[2]string{parent, n.ID}] {
				degree++
			}
		}
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if back[[2]string{curr, child}] {
				continue
			}
			if rank := ranks[curr] + 1; rank > ranks[child] {
				ranks[child] = rank
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRanks(ranks)
}

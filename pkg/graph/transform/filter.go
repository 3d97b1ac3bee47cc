package transform

import "github.com/Ezz-di/dot-to-html-graph/pkg/graph"

// FilterClusters returns a copy of g containing only nodes whose cluster
// label is in keep, plus the edges between surviving nodes. The empty
// string selects unclustered nodes. Node order and attributes carry over
// unchanged; g itself is not modified.
func FilterClusters(g *graph.Graph, keep []string) *graph.Graph {
	keepSet := make(map[string]bool, len(keep))
	for _, label := range keep {
		keepSet[label] = true
	}

	out := graph.New()
	out.Name = g.Name
	out.Directed = g.Directed

	for _, n := range g.Nodes() {
		if keepSet[n.Cluster] {
			_ = out.AddNode(*n)
		}
	}
	for _, e := range g.Edges() {
		_, hasSource := out.Node(e.Source)
		_, hasTarget := out.Node(e.Target)
		if hasSource && hasTarget {
			_ = out.AddEdge(*e)
		}
	}

	return out
}

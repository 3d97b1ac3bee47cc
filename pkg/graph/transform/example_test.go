package transform_test

import (
	"fmt"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph/transform"
)

func ExampleAssignRanks() {
	g := graph.New()
	g.AddNode(graph.Node{ID: "parse"})
	g.AddNode(graph.Node{ID: "style"})
	g.AddNode(graph.Node{ID: "render"})
	g.AddEdge(graph.Edge{Source: "parse", Target: "style"})
	g.AddEdge(graph.Edge{Source: "style", Target: "render"})

	transform.AssignRanks(g)

	for _, n := range g.Nodes() {
		fmt.Printf("%s: rank %d\n", n.ID, n.Rank)
	}
	// Output:
	// parse: rank 0
	// style: rank 1
	// render: rank 2
}

func ExampleBreakCycles() {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a"})
	g.AddNode(graph.Node{ID: "b"})
	g.AddEdge(graph.Edge{Source: "a", Target: "b"})
	g.AddEdge(graph.Edge{Source: "b", Target: "a"})

	removed := transform.BreakCycles(g)

	fmt.Printf("removed %d edge(s), %d left\n", removed, g.EdgeCount())
	// Output:
	// removed 1 edge(s), 1 left
}

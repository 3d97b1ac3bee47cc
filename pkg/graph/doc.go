// Package graph provides the directed graph model that flows through the
// dot2html pipeline.
//
// # Overview
//
// A [Graph] is built once by one of the parsers (DOT, go.mod, module graph,
// JSON), annotated in place by the styler (display colors, hierarchical
// ranks), and then handed read-only to the renderers. Nodes carry the input
// attributes the interactive renderer understands (label, tooltip, URL,
// fill color, shape, font) next to the two computed attributes (Color,
// Rank); edges carry their own pass-through styling.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode], and edges with
// [Graph.AddEdge]. Edge endpoints must exist; malformed input is rejected,
// not repaired:
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "app", Cluster: "services"})
//	g.AddNode(graph.Node{ID: "db"})
//	g.AddEdge(graph.Edge{Source: "app", Target: "db"})
//
// Query structure with [Graph.Children], [Graph.Parents],
// [Graph.Neighbors], [Graph.Clusters], and related methods.
//
// # Determinism
//
// Node iteration is insertion-ordered and [Graph.Clusters] is sorted, so a
// fixed input always serializes to the same dataset and always receives the
// same cluster color assignment.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. The preview server
// rebuilds a fresh graph per render instead of sharing one.
//
// # Related Packages
//
// The [transform] subpackage assigns hierarchical ranks (longest-path
// topological depth) and detects or removes back edges so cyclic inputs
// still rank cleanly.
//
// [transform]: github.com/Ezz-di/dot-to-html-graph/pkg/graph/transform
package graph

// Package transform prepares a parsed graph for hierarchical rendering.
//
// # Overview
//
// The interactive renderer places nodes left-to-right by rank, where a
// node's rank is its topological depth: sources sit at rank 0 and every
// other node sits one past its deepest predecessor. Real-world inputs
// (call graphs, dependency graphs with circular imports) are not always
// acyclic, so rank assignment has to tolerate cycles.
//
// # Rank Assignment
//
// [AssignRanks] computes longest-path ranks with Kahn's algorithm and
// writes them onto the nodes. Back edges are excluded from the depth
// computation, so a cycle ranks as if cut at its back edges while the
// edges themselves stay in the graph.
//
// # Cycle Handling
//
// [BackEdges] reports the edges that close cycles, found by DFS with
// white/gray/black coloring starting from source nodes. [BreakCycles]
// removes them outright for callers that want an acyclic output graph
// (the render pipeline's break-cycles option).
//
// # Usage
//
//	transform.AssignRanks(g)      // annotate ranks, keep every edge
//	n := transform.BreakCycles(g) // drop back edges, n = how many
package transform

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
)

// ReadJSON decodes a JSON dataset from r into a graph.
//
// The input must be a JSON object with "nodes" and "edges" arrays; see
// the package documentation for the format. ReadJSON returns an error
// when the JSON is malformed, a node has a duplicate or empty ID, or an
// edge references an unknown node. Errors are wrapped with the node or
// edge that caused them.
//
// The returned graph is independent of r and can be modified freely.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data dataset
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return build(data)
}

// Unmarshal decodes a compact JSON dataset produced by [Marshal].
func Unmarshal(data []byte) (*graph.Graph, error) {
	var ds dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return build(ds)
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path for context.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func build(data dataset) (*graph.Graph, error) {
	g := graph.New()
	g.Name = data.Name
	g.Directed = data.Directed

	for i, n := range data.Nodes {
		if n == nil {
			return nil, fmt.Errorf("node %d: null entry", i)
		}
		if err := g.AddNode(*n); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for i, e := range data.Edges {
		if e == nil {
			return nil, fmt.Errorf("edge %d: null entry", i)
		}
		if err := g.AddEdge(*e); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	return g, nil
}

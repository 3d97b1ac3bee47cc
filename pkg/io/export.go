package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
)

type dataset struct {
	Name     string        `json:"name,omitempty"`
	Directed bool          `json:"directed"`
	Nodes    []*graph.Node `json:"nodes"`
	Edges    []*graph.Edge `json:"edges"`
}

// Marshal encodes a graph as compact JSON. The pipeline uses this both
// for cache storage and for content hashing, so the encoding must stay
// deterministic: nodes in insertion order, edges in declaration order.
func Marshal(g *graph.Graph) ([]byte, error) {
	out := dataset{
		Name:     g.Name,
		Directed: g.Directed,
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// WriteJSON encodes a graph as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := dataset{
		Name:     g.Name,
		Directed: g.Directed,
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

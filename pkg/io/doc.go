// Package io provides JSON import and export for graph datasets.
//
// # Overview
//
// The JSON format captures everything a parser produces and a styler
// computes: node identity, cluster labels, input attributes, display
// colors, and ranks. It serves three purposes:
//
//   - The `json` output format: export a styled dataset for external tools
//   - The `json` input format: re-style and re-render a previous export
//   - Cache storage: pipeline stages persist parsed graphs between runs
//
// # JSON Format
//
//	{
//	  "name": "deps",
//	  "directed": true,
//	  "nodes": [
//	    {"id": "app", "cluster": "Core", "color": "#4e79a7", "rank": 0},
//	    {"id": "lib", "rank": 1}
//	  ],
//	  "edges": [
//	    {"source": "app", "target": "lib"}
//	  ]
//	}
//
// Each node requires a unique, non-empty "id"; each edge references two
// existing node IDs. All other fields are optional and default to the
// zero value, which renderers replace with their display defaults.
//
// # Round-trips
//
// Export then import yields an equivalent graph: insertion order, cluster
// labels, attributes, and computed fields all survive. Styling an imported
// dataset again is a no-op when the palette is unchanged.
package io

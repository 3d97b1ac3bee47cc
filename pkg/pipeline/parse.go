package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/Ezz-di/dot-to-html-graph/pkg/dot"
	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	graphio "github.com/Ezz-di/dot-to-html-graph/pkg/io"
	"github.com/Ezz-di/dot-to-html-graph/pkg/modgraph"
)

// DetectFormat guesses the input format from a file name. A go.mod file is
// a module manifest and a .json file is a previously exported dataset;
// everything else, including the empty name, is treated as DOT. The
// modgraph format has no conventional file name and must be selected
// explicitly.
func DetectFormat(name string) string {
	switch {
	case filepath.Base(name) == "go.mod":
		return InputGoMod
	case strings.EqualFold(filepath.Ext(name), ".json"):
		return InputJSON
	default:
		return InputDOT
	}
}

// Parse builds a graph from raw input bytes according to opts.InputFormat.
// An empty format parses as DOT.
func Parse(data []byte, opts Options) (*graph.Graph, error) {
	switch opts.InputFormat {
	case "", InputDOT:
		return dot.ParseBytes(data)
	case InputGoMod:
		return modgraph.ParseGoMod(data, modgraph.Options{IncludeIndirect: opts.IncludeIndirect})
	case InputModGraph:
		return modgraph.ParseGraph(data, modgraph.Options{IncludeIndirect: opts.IncludeIndirect})
	case InputJSON:
		return graphio.Unmarshal(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", opts.InputFormat)
	}
}

package pipeline

import (
	"encoding/json"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	graphio "github.com/Ezz-di/dot-to-html-graph/pkg/io"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// styledDataset is the cache payload for the style stage: the annotated
// graph plus the cluster styles derived from it. The same bytes double as
// the content hash input for artifact cache keys.
type styledDataset struct {
	Graph  json.RawMessage      `json:"graph"`
	Styles []style.ClusterStyle `json:"styles"`
}

func marshalStyled(g *graph.Graph, styles []style.ClusterStyle) ([]byte, error) {
	graphData, err := graphio.Marshal(g)
	if err != nil {
		return nil, err
	}
	return json.Marshal(styledDataset{Graph: graphData, Styles: styles})
}

func unmarshalStyled(data []byte) (*graph.Graph, []style.ClusterStyle, error) {
	var ds styledDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, nil, err
	}
	g, err := graphio.Unmarshal(ds.Graph)
	if err != nil {
		return nil, nil, err
	}
	return g, ds.Styles, nil
}

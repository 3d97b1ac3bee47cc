package graph

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
	}{
		{
			name:  "Single",
			nodes: []Node{{ID: "a"}},
		},
		{
			name:  "Several",
			nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		},
		{
			name:    "EmptyID",
			nodes:   []Node{{ID: ""}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "Duplicate",
			nodes:   []Node{{ID: "a"}, {ID: "a"}},
			wantErr: ErrDuplicateNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			var err error
			for _, n := range tt.nodes {
				err = g.AddNode(n)
				if err != nil {
					break
				}
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddNode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddNode() error = %v", err)
			}
			if got := g.NodeCount(); got != len(tt.nodes) {
				t.Errorf("NodeCount() = %d, want %d", got, len(tt.nodes))
			}
		})
	}
}

func TestEnsureNode(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", Label: "Alpha"})

	// Existing node comes back untouched.
	n := g.EnsureNode("a")
	if n == nil || n.Label != "Alpha" {
		t.Fatalf("EnsureNode(a) = %+v, want existing node with label Alpha", n)
	}

	// Unknown node is created on the fly.
	n = g.EnsureNode("b")
	if n == nil || n.ID != "b" {
		t.Fatalf("EnsureNode(b) = %+v, want new node b", n)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}

	// Empty ids are refused.
	if n := g.EnsureNode(""); n != nil {
		t.Errorf("EnsureNode(\"\") = %+v, want nil", n)
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{
			name: "Valid",
			edge: Edge{Source: "a", Target: "b"},
		},
		{
			name: "SelfLoop",
			edge: Edge{Source: "a", Target: "a"},
		},
		{
			name:    "UnknownSource",
			edge:    Edge{Source: "ghost", Target: "b"},
			wantErr: ErrUnknownSourceNode,
		},
		{
			name:    "UnknownTarget",
			edge:    Edge{Source: "a", Target: "ghost"},
			wantErr: ErrUnknownTargetNode,
		},
		{
			name:    "EmptyEndpoint",
			edge:    Edge{Source: "", Target: "b"},
			wantErr: ErrInvalidEdgeEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.AddNode(Node{ID: "a"})
			g.AddNode(Node{ID: "b"})

			err := g.AddEdge(tt.edge)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddEdge() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddEdge() error = %v", err)
			}
			if g.EdgeCount() != 1 {
				t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
			}
		})
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{Source: "a", Target: "b"})
	g.AddEdge(Edge{Source: "a", Target: "b"}) // parallel edge

	g.RemoveEdge("a", "b")

	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 after removing parallel pair", g.EdgeCount())
	}
	if got := g.Children("a"); len(got) != 0 {
		t.Errorf("Children(a) = %v, want empty", got)
	}
	if got := g.Parents("b"); len(got) != 0 {
		t.Errorf("Parents(b) = %v, want empty", got)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	ids := []string{"z", "a", "m", "b"}
	for _, id := range ids {
		g.AddNode(Node{ID: id})
	}

	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.ID)
	}

	if !slices.Equal(got, ids) {
		t.Errorf("Nodes() order = %v, want %v", got, ids)
	}
}

func TestNeighbors(t *testing.T) {
	// c -> a -> b -> d, plus a parallel a->b and a self loop on a.
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{Source: "a", Target: "b"})
	g.AddEdge(Edge{Source: "c", Target: "a"})
	g.AddEdge(Edge{Source: "a", Target: "b"}) // parallel, must not duplicate
	g.AddEdge(Edge{Source: "a", Target: "a"}) // self loop, excluded
	g.AddEdge(Edge{Source: "b", Target: "d"})

	got := g.Neighbors("a")
	want := []string{"b", "c"}

	if !slices.Equal(got, want) {
		t.Errorf("Neighbors(a) = %v, want %v", got, want)
	}
}

func TestIncidentEdges(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{Source: "a", Target: "b"}) // index 0
	g.AddEdge(Edge{Source: "b", Target: "c"}) // index 1
	g.AddEdge(Edge{Source: "c", Target: "a"}) // index 2

	got := g.IncidentEdges("b")
	want := []int{0, 1}

	if !slices.Equal(got, want) {
		t.Errorf("IncidentEdges(b) = %v, want %v", got, want)
	}
}

func TestClusters(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", Cluster: "zeta"})
	g.AddNode(Node{ID: "b", Cluster: "alpha"})
	g.AddNode(Node{ID: "c", Cluster: "zeta"})
	g.AddNode(Node{ID: "d"})

	got := g.Clusters()
	want := []string{"alpha", "zeta"}

	if !slices.Equal(got, want) {
		t.Errorf("Clusters() = %v, want %v", got, want)
	}
}

func TestNodesInCluster(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a", Cluster: "core"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c", Cluster: "core"})

	got := g.NodesInCluster("core")
	if len(got) != 2 {
		t.Fatalf("NodesInCluster(core) returned %d nodes, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("NodesInCluster(core) = [%s %s], want [a c]", got[0].ID, got[1].ID)
	}
}

func nodeIDs(nodes []*Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestSourcesAndSinks(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{Source: "a", Target: "b"})
	g.AddEdge(Edge{Source: "b", Target: "c"})

	if got := nodeIDs(g.Sources()); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Sources() = %v, want [a]", got)
	}
	if got := nodeIDs(g.Sinks()); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Sinks() = %v, want [c]", got)
	}
}

func TestSetRanks(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})

	g.SetRanks(map[string]int{"a": 0, "b": 3, "ghost": 9})

	n, _ := g.Node("b")
	if n.Rank != 3 {
		t.Errorf("rank(b) = %d, want 3", n.Rank)
	}
	if g.MaxRank() != 3 {
		t.Errorf("MaxRank() = %d, want 3", g.MaxRank())
	}
}

func TestValidate(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{Source: "a", Target: "b"})

	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestClone(t *testing.T) {
	g := New()
	g.Name = "orig"
	g.AddNode(Node{ID: "a", Cluster: "one"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{Source: "a", Target: "b"})

	c := g.Clone()
	if c.Name != "orig" || c.NodeCount() != 2 || c.EdgeCount() != 1 {
		t.Fatalf("clone = %q %d/%d", c.Name, c.NodeCount(), c.EdgeCount())
	}

	// Mutating the clone must not reach the original.
	cn, _ := c.Node("a")
	cn.Color = "#ff0000"
	c.RemoveEdge("a", "b")

	gn, _ := g.Node("a")
	if gn.Color != "" {
		t.Errorf("original node color = %q after clone mutation", gn.Color)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("original edges = %d after clone mutation", g.EdgeCount())
	}
	if len(c.Children("a")) != 0 {
		t.Errorf("clone adjacency = %v after RemoveEdge", c.Children("a"))
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "ExplicitLabel",
			node: Node{ID: "a", Label: "Alpha"},
			want: "Alpha",
		},
		{
			name: "FallsBackToID",
			node: Node{ID: "a"},
			want: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.DisplayLabel(); got != tt.want {
				t.Errorf("DisplayLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

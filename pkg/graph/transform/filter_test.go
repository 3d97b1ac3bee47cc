package transform

import (
	"testing"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
)

func filterFixture(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.Name = "services"
	g.Directed = true

	nodes := []graph.Node{
		{ID: "web", Cluster: "Frontend"},
		{ID: "api", Cluster: "Backend"},
		{ID: "db", Cluster: "Backend"},
		{ID: "cron"},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	edges := []graph.Edge{
		{Source: "web", Target: "api"},
		{Source: "api", Target: "db"},
		{Source: "cron", Target: "db"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestFilterClusters(t *testing.T) {
	g := filterFixture(t)
	got := FilterClusters(g, []string{"Backend"})

	if got.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", got.NodeCount())
	}
	if _, ok := got.Node("web"); ok {
		t.Error("nodes outside kept clusters should be dropped")
	}
	if _, ok := got.Node("cron"); ok {
		t.Error("unclustered nodes should be dropped when not selected")
	}
	// Only the api->db edge has both endpoints surviving
	if got.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", got.EdgeCount())
	}
	if got.Name != "services" || !got.Directed {
		t.Errorf("header = (%q, %v), want (services, true)", got.Name, got.Directed)
	}

	// Source graph untouched
	if g.NodeCount() != 4 || g.EdgeCount() != 3 {
		t.Error("FilterClusters should not modify the input graph")
	}
}

func TestFilterClustersUnclustered(t *testing.T) {
	g := filterFixture(t)
	got := FilterClusters(g, []string{"", "Backend"})

	if got.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", got.NodeCount())
	}
	if _, ok := got.Node("cron"); !ok {
		t.Error("empty string should select unclustered nodes")
	}
	if got.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", got.EdgeCount())
	}
}

func TestFilterClustersEmptyKeep(t *testing.T) {
	g := filterFixture(t)
	got := FilterClusters(g, nil)

	if got.NodeCount() != 0 || got.EdgeCount() != 0 {
		t.Errorf("empty keep set should produce an empty graph, got (%d, %d)", got.NodeCount(), got.EdgeCount())
	}
}

func TestFilterClustersPreservesOrder(t *testing.T) {
	g := filterFixture(t)
	got := FilterClusters(g, []string{"Frontend", "Backend"})

	want := []string{"web", "api", "db"}
	nodes := got.Nodes()
	if len(nodes) != len(want) {
		t.Fatalf("NodeCount = %d, want %d", len(nodes), len(want))
	}
	for i, n := range nodes {
		if n.ID != want[i] {
			t.Errorf("node[%d] = %s, want %s", i, n.ID, want[i])
		}
	}
}

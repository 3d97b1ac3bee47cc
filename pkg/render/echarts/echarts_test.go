package echarts

import (
	"bytes"
	"testing"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

func buildGraph(t *testing.T) *graph.Graph {
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
			t.Fatalf("AddEdge(%s->%s): %v", e.Source, e.Target, err)
		}
	}
	return g
}

func TestRender(t *testing.T) {
	g := buildGraph(t)
	styles := style.Apply(g, style.Options{})

	out, err := Render(g, styles, Options{Title: "Service Map"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"Service Map",
		`"web"`,
		`"api"`,
		`"db"`,
		`"cron"`,
		"Backend",
		"Frontend",
		UnclusteredCategory,
		"echarts",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}

	// Clusters sort alphabetically, so Backend takes the first palette color.
	if !bytes.Contains(out, []byte(style.DefaultPalette[0])) {
		t.Errorf("output missing cluster color %q", style.DefaultPalette[0])
	}
}

func TestRenderNoClusters(t *testing.T) {
	g := graph.New()
	g.Name = "plain"
	for _, id := range []string{"a", "b"} {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	if err := g.AddEdge(graph.Edge{Source: "a", Target: "b"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	styles := style.Apply(g, style.Options{})

	out, err := Render(g, styles, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(out, []byte(`"a"`)) || !bytes.Contains(out, []byte(`"b"`)) {
		t.Error("output missing node names")
	}
	// Graph name becomes the page title when no explicit title is set.
	if !bytes.Contains(out, []byte("plain")) {
		t.Error("output missing graph name title")
	}
	if bytes.Contains(out, []byte(UnclusteredCategory)) {
		t.Errorf("unexpected %q category without clusters", UnclusteredCategory)
	}
}

func TestBuildCategories(t *testing.T) {
	g := buildGraph(t)
	styles := style.Styles(g.Clusters(), nil)

	categories, index := buildCategories(g, styles)
	if len(categories) != 3 {
		t.Fatalf("categories = %d, want 3", len(categories))
	}
	if categories[0].Name != "Backend" || categories[1].Name != "Frontend" {
		t.Errorf("category order = %q, %q", categories[0].Name, categories[1].Name)
	}
	if categories[2].Name != UnclusteredCategory {
		t.Errorf("last category = %q, want %q", categories[2].Name, UnclusteredCategory)
	}
	if index["Backend"] != 0 || index["Frontend"] != 1 || index[""] != 2 {
		t.Errorf("index = %v", index)
	}
}

func TestBuildCategoriesAllClustered(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(graph.Node{ID: "a", Cluster: "Core"}); err != nil {
		t.Fatal(err)
	}
	styles := style.Styles(g.Clusters(), nil)

	categories, index := buildCategories(g, styles)
	if len(categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(categories))
	}
	if _, ok := index[""]; ok {
		t.Error("unclustered index entry present without unclustered nodes")
	}
}

func TestBuildCategoriesEmpty(t *testing.T) {
	g := graph.New()
	categories, index := buildCategories(g, nil)
	if categories != nil || index != nil {
		t.Errorf("got %v, %v, want nil, nil", categories, index)
	}
}

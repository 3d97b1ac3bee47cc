package style

import (
	"testing"

	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
)

func TestStyles_SortedAssignment(t *testing.T) {
	// Input order must not matter: colors follow sorted label order.
	shuffled := Styles([]string{"zeta", "alpha", "mid"}, nil)
	ordered := Styles([]string{"alpha", "mid", "zeta"}, nil)

	if len(shuffled) != 3 {
		t.Fatalf("Styles() returned %d styles, want 3", len(shuffled))
	}
	for i := range shuffled {
		if shuffled[i] != ordered[i] {
			t.Errorf("styles[%d] = %+v, want %+v", i, shuffled[i], ordered[i])
		}
	}
	if shuffled[0].Label != "alpha" {
		t.Errorf("styles[0].Label = %q, want %q", shuffled[0].Label, "alpha")
	}
	if shuffled[0].Background != DefaultPalette[0] {
		t.Errorf("styles[0].Background = %q, want %q", shuffled[0].Background, DefaultPalette[0])
	}
}

func TestStyles_CyclesPalette(t *testing.T) {
	palette := []string{"#111111", "#222222"}
	styles := Styles([]string{"a", "b", "c"}, palette)

	want := []string{"#111111", "#222222", "#111111"}
	for i, s := range styles {
		if s.Background != want[i] {
			t.Errorf("styles[%d].Background = %q, want %q", i, s.Background, want[i])
		}
	}
}

func TestStyles_Empty(t *testing.T) {
	if styles := Styles(nil, nil); len(styles) != 0 {
		t.Errorf("Styles(nil) returned %d styles, want 0", len(styles))
	}
}

func TestStyles_BorderIsFixed(t *testing.T) {
	styles := Styles([]string{"a"}, nil)
	if styles[0].Border != graph.DefaultBorderColor {
		t.Errorf("Border = %q, want %q", styles[0].Border, graph.DefaultBorderColor)
	}
}

func TestApply_ColorPrecedence(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "explicit", Cluster: "c", FillColor: "#fe0000"})
	g.AddNode(graph.Node{ID: "clustered", Cluster: "c"})
	g.AddNode(graph.Node{ID: "plain"})

	Apply(g, Options{})

	tests := []struct {
		id   string
		want string
	}{
		{"explicit", "#fe0000"},         // fillcolor wins over cluster
		{"clustered", DefaultPalette[0]}, // cluster color
		{"plain", graph.DefaultNodeColor},
	}
	for _, tt := range tests {
		n, _ := g.Node(tt.id)
		if n.Color != tt.want {
			t.Errorf("color(%s) = %q, want %q", tt.id, n.Color, tt.want)
		}
	}
}

func TestApply_AssignsRanks(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a"})
	g.AddNode(graph.Node{ID: "b"})
	g.AddNode(graph.Node{ID: "c"})
	g.AddEdge(graph.Edge{Source: "a", Target: "b"})
	g.AddEdge(graph.Edge{Source: "b", Target: "c"})

	Apply(g, Options{})

	n, _ := g.Node("c")
	if n.Rank != 2 {
		t.Errorf("rank(c) = %d, want 2", n.Rank)
	}
}

func TestApply_CustomPalette(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a", Cluster: "only"})

	styles := Apply(g, Options{Palette: []string{"#abcdef"}})

	if len(styles) != 1 || styles[0].Background != "#abcdef" {
		t.Fatalf("styles = %+v, want one style with #abcdef", styles)
	}
	n, _ := g.Node("a")
	if n.Color != "#abcdef" {
		t.Errorf("color(a) = %q, want %q", n.Color, "#abcdef")
	}
}

func TestApply_Deterministic(t *testing.T) {
	build := func() *graph.Graph {
		g := graph.New()
		g.AddNode(graph.Node{ID: "n1", Cluster: "x"})
		g.AddNode(graph.Node{ID: "n2", Cluster: "y"})
		g.AddNode(graph.Node{ID: "n3", Cluster: "z"})
		g.AddEdge(graph.Edge{Source: "n1", Target: "n2"})
		return g
	}

	first := Apply(build(), Options{})
	second := Apply(build(), Options{})

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("styles[%d] = %+v then %+v, want identical", i, first[i], second[i])
		}
	}
}

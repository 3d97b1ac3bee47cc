package modgraph

import (
	"testing"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
)

const sampleGoMod = `module github.com/acme/widget

go 1.24.0

require (
	github.com/spf13/cobra v1.10.1
	github.com/charmbracelet/log v0.4.2
	github.com/spf13/pflag v1.0.10 // indirect
)

require gopkg.in/yaml.v3 v3.0.1
`

func TestParseGoMod(t *testing.T) {
	g, err := ParseGoMod([]byte(sampleGoMod), Options{})
	if err != nil {
		t.Fatalf("ParseGoMod: %v", err)
	}

	if g.Name != "github.com/acme/widget" {
		t.Errorf("Name = %q", g.Name)
	}
	// Root plus three direct requirements; the indirect one is dropped.
	if g.NodeCount() != 4 {
		t.Fatalf("NodeCount = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
	if _, ok := g.Node("github.com/spf13/pflag"); ok {
		t.Error("indirect requirement should be dropped by default")
	}

	cobra, ok := g.Node("github.com/spf13/cobra")
	if !ok {
		t.Fatal("cobra node missing")
	}
	if cobra.Cluster != ClusterDirect {
		t.Errorf("cobra cluster = %q, want %q", cobra.Cluster, ClusterDirect)
	}
	if cobra.Tooltip != "v1.10.1" {
		t.Errorf("cobra tooltip = %q, want version", cobra.Tooltip)
	}

	// Single-line require is picked up too
	if _, ok := g.Node("gopkg.in/yaml.v3"); !ok {
		t.Error("single-line require missing")
	}

	// Star shape: every edge starts at the root
	for _, e := range g.Edges() {
		if e.Source != "github.com/acme/widget" {
			t.Errorf("edge source = %q, want root", e.Source)
		}
	}
}

func TestParseGoModIncludeIndirect(t *testing.T) {
	g, err := ParseGoMod([]byte(sampleGoMod), Options{IncludeIndirect: true})
	if err != nil {
		t.Fatalf("ParseGoMod: %v", err)
	}

	pflag, ok := g.Node("github.com/spf13/pflag")
	if !ok {
		t.Fatal("indirect requirement should be kept")
	}
	if pflag.Cluster != ClusterIndirect {
		t.Errorf("pflag cluster = %q, want %q", pflag.Cluster, ClusterIndirect)
	}
}

func TestParseGoModNoModule(t *testing.T) {
	_, err := ParseGoMod([]byte("require github.com/foo/bar v1.0.0\n"), Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestParseGoModDuplicateRequire(t *testing.T) {
	in := `module example.com/m

require (
	github.com/foo/bar v1.0.0
	github.com/foo/bar v1.1.0
)
`
	g, err := ParseGoMod([]byte(in), Options{})
	if err != nil {
		t.Fatalf("ParseGoMod: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (duplicates collapsed)", g.NodeCount())
	}
}

const sampleModGraph = `github.com/acme/widget github.com/spf13/cobra@v1.10.1
github.com/acme/widget golang.org/x/sys@v0.36.0
github.com/spf13/cobra@v1.10.1 github.com/spf13/pflag@v1.0.10
github.com/spf13/cobra@v1.10.1 github.com/spf13/pflag@v1.0.10
`

func TestParseGraph(t *testing.T) {
	g, err := ParseGraph([]byte(sampleModGraph), Options{})
	if err != nil {
		t.Fatalf("ParseGraph: %v", err)
	}

	if g.Name != "github.com/acme/widget" {
		t.Errorf("Name = %q", g.Name)
	}
	if g.NodeCount() != 4 {
		t.Fatalf("NodeCount = %d, want 4", g.NodeCount())
	}
	// Duplicate pair collapsed
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}

	cobra, ok := g.Node("github.com/spf13/cobra@v1.10.1")
	if !ok {
		t.Fatal("cobra node missing")
	}
	if cobra.Label != "github.com/spf13/cobra" {
		t.Errorf("Label = %q, want path without version", cobra.Label)
	}
	if cobra.Tooltip != "v1.10.1" {
		t.Errorf("Tooltip = %q, want version", cobra.Tooltip)
	}
	if cobra.Cluster != "github.com" {
		t.Errorf("Cluster = %q, want github.com", cobra.Cluster)
	}

	xsys, ok := g.Node("golang.org/x/sys@v0.36.0")
	if !ok || xsys.Cluster != "golang.org" {
		t.Errorf("x/sys cluster = %+v, want golang.org", xsys)
	}

	// The main module has no version and clusters by its own origin
	root, ok := g.Node("github.com/acme/widget")
	if !ok || root.Tooltip != "" {
		t.Errorf("root = %+v, want empty tooltip", root)
	}
}

func TestParseGraphMalformed(t *testing.T) {
	_, err := ParseGraph([]byte("just-one-field\n"), Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestParseGraphEmpty(t *testing.T) {
	_, err := ParseGraph([]byte("\n\n"), Options{})
	if !errors.Is(err, errors.ErrCodeParse) {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		token, path, version string
	}{
		{"github.com/foo/bar@v1.2.3", "github.com/foo/bar", "v1.2.3"},
		{"github.com/foo/bar", "github.com/foo/bar", ""},
		{"gopkg.in/yaml.v3@v3.0.1", "gopkg.in/yaml.v3", "v3.0.1"},
	}
	for _, tt := range tests {
		path, version := splitVersion(tt.token)
		if path != tt.path || version != tt.version {
			t.Errorf("splitVersion(%q) = (%q, %q), want (%q, %q)", tt.token, path, version, tt.path, tt.version)
		}
	}
}

// Package modgraph imports Go module dependency data as graphs: go.mod
// manifests become star graphs around the module, and `go mod graph`
// output becomes the full module graph clustered by import path origin.
package modgraph

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/graph"
)

// Cluster labels assigned by ParseGoMod.
const (
	ClusterDirect   = "direct"
	ClusterIndirect = "indirect"
)

// Options configure the module importers.
type Options struct {
	// IncludeIndirect keeps requirements marked "// indirect" when
	// parsing a manifest. `go mod graph` output is always transitive,
	// so ParseGraph ignores this.
	IncludeIndirect bool
}

// requirement is one require directive from a manifest.
type requirement struct {
	Path     string
	Version  string
	Indirect bool
}

// ParseGoMod builds a star graph from a go.mod manifest: the module at
// the center with one edge per requirement. Direct requirements land in
// the "direct" cluster, indirect ones in "indirect" (and are dropped
// entirely unless opts.IncludeIndirect is set). Versions are carried as
// node tooltips.
func ParseGoMod(data []byte, opts Options) (*graph.Graph, error) {
	moduleName, reqs := scanGoMod(bytes.NewReader(data))
	if moduleName == "" {
		return nil, errors.New(errors.ErrCodeParse, "no module directive found")
	}

	g := graph.New()
	g.Name = moduleName
	g.Directed = true
	_ = g.AddNode(graph.Node{ID: moduleName})

	for _, req := range reqs {
		if req.Indirect && !opts.IncludeIndirect {
			continue
		}
		cluster := ClusterDirect
		if req.Indirect {
			cluster = ClusterIndirect
		}
		_ = g.AddNode(graph.Node{
			ID:      req.Path,
			Cluster: cluster,
			Tooltip: req.Version,
		})
		_ = g.AddEdge(graph.Edge{Source: moduleName, Target: req.Path})
	}

	return g, nil
}

// ParseGraph builds a graph from `go mod graph` output: one line per
// edge, each line a whitespace-separated "module dependency" pair where
// dependencies carry an @version suffix. Nodes are clustered by the
// first path segment of the module (github.com, golang.org, ...), and
// versions become tooltips. Duplicate pairs are collapsed.
func ParseGraph(data []byte, _ Options) (*graph.Graph, error) {
	g := graph.New()
	g.Directed = true

	seen := make(map[string]bool)
	lineNo := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeParse, "line %d: want a module pair, got %d fields", lineNo, len(fields))
		}

		from, to := fields[0], fields[1]
		touchModule(g, from)
		touchModule(g, to)

		pair := from + " " + to
		if seen[pair] {
			continue
		}
		seen[pair] = true
		_ = g.AddEdge(graph.Edge{Source: from, Target: to})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "reading module graph")
	}

	if g.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeParse, "no module pairs found")
	}

	// The first line's left side is the main module.
	if nodes := g.Nodes(); len(nodes) > 0 {
		path, _ := splitVersion(nodes[0].ID)
		g.Name = path
	}

	return g, nil
}

// touchModule registers a module token as a node, splitting the version
// suffix into the tooltip and clustering by path origin.
func touchModule(g *graph.Graph, token string) {
	if _, ok := g.Node(token); ok {
		return
	}
	path, version := splitVersion(token)
	_ = g.AddNode(graph.Node{
		ID:      token,
		Label:   path,
		Cluster: firstSegment(path),
		Tooltip: version,
	})
}

// splitVersion separates "path@version" into its parts. Tokens without
// a version (the main module) return an empty version.
func splitVersion(token string) (path, version string) {
	if i := strings.LastIndex(token, "@"); i >= 0 {
		return token[:i], token[i+1:]
	}
	return token, ""
}

// firstSegment returns the module path up to the first slash.
func firstSegment(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}

// scanGoMod extracts the module name and the require directives from a
// manifest. Unparseable lines are skipped rather than rejected, matching
// how the go tool tolerates unknown directives.
func scanGoMod(r *bytes.Reader) (moduleName string, reqs []requirement) {
	seen := make(map[string]bool)
	inRequire := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// Extract module name
		if strings.HasPrefix(line, "module ") {
			moduleName = strings.TrimSpace(strings.TrimPrefix(line, "module "))
			continue
		}

		// Handle require block
		if strings.HasPrefix(line, "require (") || line == "require(" {
			inRequire = true
			continue
		}
		if inRequire && line == ")" {
			inRequire = false
			continue
		}

		// Single-line require
		if strings.HasPrefix(line, "require ") && !strings.Contains(line, "(") {
			line = strings.TrimPrefix(line, "require ")
		} else if !inRequire {
			continue
		}

		if req, ok := parseRequireLine(line); ok && !seen[req.Path] {
			seen[req.Path] = true
			reqs = append(reqs, req)
		}
	}

	return moduleName, reqs
}

func parseRequireLine(line string) (requirement, bool) {
	var req requirement
	req.Indirect = strings.Contains(line, "// indirect")

	// Remove inline comments
	if idx := strings.Index(line, "//"); idx != -1 {
		line = line[:idx]
	}

	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return requirement{}, false
	}
	req.Path = fields[0]
	if len(fields) > 1 {
		req.Version = fields[1]
	}
	return req, true
}

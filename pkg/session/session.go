// Package session records render runs so they can be listed later.
//
// Every successful pipeline execution can be stored as a Run: what was
// rendered, into which formats, how large the graph was, and how long it
// took. The history command lists stored runs and the preview server shows
// recent ones on its index page.
//
// # Architecture
//
// Runs are kept in a Store. The only implementation is a file store that
// writes one JSON document per run into a config directory, which is enough
// for a single-user CLI. The Store interface keeps the door open for shared
// backends.
//
// # Usage
//
// Record a run:
//
//	store, err := session.NewFileStore("") // Uses ~/.config/dot2html/history/
//	if err != nil {
//	    return err
//	}
//	run := session.NewRun("services.dot", "interactive_graph.html", []string{"html"})
//	run.NodeCount = result.Stats.NodeCount
//	store.Add(ctx, run)
//
// List recent runs:
//
//	runs, err := store.List(ctx, 10)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run describes one completed render.
type Run struct {
	ID           string        `json:"id"`
	Input        string        `json:"input"`
	InputFormat  string        `json:"input_format,omitempty"`
	Output       string        `json:"output"`
	Formats      []string      `json:"formats"`
	NodeCount    int           `json:"node_count"`
	EdgeCount    int           `json:"edge_count"`
	ClusterCount int           `json:"cluster_count"`
	Duration     time.Duration `json:"duration"`
	Cached       bool          `json:"cached"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Age returns how long ago the run was recorded.
func (r *Run) Age() time.Duration {
	return time.Since(r.CreatedAt)
}

// Store is the interface for run history backends.
type Store interface {
	// Get retrieves a run by ID.
	// Returns nil, nil if the run doesn't exist.
	Get(ctx context.Context, id string) (*Run, error)

	// Add stores a run.
	Add(ctx context.Context, run *Run) error

	// List returns stored runs, newest first. A limit of 0 returns all.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Delete removes a run.
	Delete(ctx context.Context, id string) error

	// Clear removes all runs.
	Clear(ctx context.Context) error

	// Cleanup prunes runs beyond the retention limit (optional, may be no-op).
	Cleanup(ctx context.Context) error
}

// DefaultRetention is how many runs Cleanup keeps.
const DefaultRetention = 50

// NewRun creates a run with a fresh ID and timestamp. Counts, duration,
// and cache info are filled in by the caller once the pipeline finishes.
func NewRun(input, output string, formats []string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Input:     input,
		Output:    output,
		Formats:   formats,
		CreatedAt: time.Now(),
	}
}

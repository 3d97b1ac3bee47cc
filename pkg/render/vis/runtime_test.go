package vis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
)

func TestFetchRuntime(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("var vis = {};"))
	}))
	defer server.Close()

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	body, err := FetchRuntime(ctx, store, nil, server.URL)
	if err != nil {
		t.Fatalf("FetchRuntime() error: %v", err)
	}
	if string(body) != "var vis = {};" {
		t.Errorf("FetchRuntime() = %q", body)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}

	// Second fetch is served from cache
	if _, err := FetchRuntime(ctx, store, nil, server.URL); err != nil {
		t.Fatalf("FetchRuntime() second call error: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hits after cached fetch = %d, want 1", hits)
	}
}

func TestFetchRuntimeNilStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("var vis = {};"))
	}))
	defer server.Close()

	body, err := FetchRuntime(context.Background(), nil, nil, server.URL)
	if err != nil {
		t.Fatalf("FetchRuntime() error: %v", err)
	}
	if len(body) == 0 {
		t.Error("FetchRuntime() returned empty bundle")
	}
}

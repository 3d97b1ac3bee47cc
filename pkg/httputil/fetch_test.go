package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Write([]byte("var vis = {};"))
	}))
	defer server.Close()

	body, err := Fetch(context.Background(), server.Client(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != "var vis = {};" {
		t.Errorf("Fetch() = %q, want %q", body, "var vis = {};")
	}
}

func TestFetch404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.Client(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestGet500IsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := get(context.Background(), server.Client(), server.URL)
	if err == nil {
		t.Fatal("get() should return error for 500")
	}
	if !cache.IsRetryable(err) {
		t.Errorf("get() error should be retryable, got %T", err)
	}
}

func TestGetTransportErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // Connection refused from here on

	_, err := get(context.Background(), NewClient(), url)
	if err == nil {
		t.Fatal("get() should return error for closed server")
	}
	if !cache.IsRetryable(err) {
		t.Errorf("get() error should be retryable, got %T", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("get() error should wrap ErrNetwork: %v", err)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantErr    bool
		wantType   error
		isRetryErr bool
	}{
		{
			name:    "200 OK",
			code:    200,
			wantErr: false,
		},
		{
			name:     "404 Not Found",
			code:     404,
			wantErr:  true,
			wantType: ErrNotFound,
		},
		{
			name:       "500 Internal Server Error",
			code:       500,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "502 Bad Gateway",
			code:       502,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:       "503 Service Unavailable",
			code:       503,
			wantErr:    true,
			isRetryErr: true,
		},
		{
			name:    "400 Bad Request",
			code:    400,
			wantErr: true,
		},
		{
			name:    "403 Forbidden",
			code:    403,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)

			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			if tt.isRetryErr && !cache.IsRetryable(err) {
				t.Errorf("checkStatus() error should be retryable, got %T", err)
			}
		})
	}
}

func TestFetchCached(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("bundle"))
	}))
	defer server.Close()

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// First call downloads
	body, err := FetchCached(ctx, store, "http:runtime:test", time.Hour, server.Client(), server.URL)
	if err != nil {
		t.Fatalf("FetchCached() error: %v", err)
	}
	if string(body) != "bundle" {
		t.Errorf("FetchCached() = %q, want %q", body, "bundle")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}

	// Second call is served from cache
	body, err = FetchCached(ctx, store, "http:runtime:test", time.Hour, server.Client(), server.URL)
	if err != nil {
		t.Fatalf("FetchCached() second call error: %v", err)
	}
	if string(body) != "bundle" {
		t.Errorf("FetchCached() = %q, want %q", body, "bundle")
	}
	if hits != 1 {
		t.Errorf("server hits after cached call = %d, want 1", hits)
	}
}

func TestFetchCachedNilStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bundle"))
	}))
	defer server.Close()

	body, err := FetchCached(context.Background(), nil, "key", 0, server.Client(), server.URL)
	if err != nil {
		t.Fatalf("FetchCached() error: %v", err)
	}
	if string(body) != "bundle" {
		t.Errorf("FetchCached() = %q, want %q", body, "bundle")
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient()
	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.Timeout, httpTimeout)
	}
}

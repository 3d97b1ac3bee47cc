package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
	"github.com/Ezz-di/dot-to-html-graph/pkg/observability"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewClient creates an HTTP client with a standard timeout for downloads.
func NewClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Fetch performs an HTTP GET with retries and returns the response body.
// Transport failures and 5xx responses are retried with exponential
// backoff; other failures are permanent. A nil client uses NewClient.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = NewClient()
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = get(ctx, client, url)
		return err
	})
	return body, err
}

// FetchCached returns the cached body for key or downloads url and caches
// it under key with the given TTL. Cache failures are treated as misses:
// a broken cache never blocks the download, and a failed write only costs
// a future refetch.
func FetchCached(ctx context.Context, store cache.Cache, key string, ttl time.Duration, client *http.Client, url string) ([]byte, error) {
	if store == nil {
		store = cache.NewNullCache()
	}

	if data, ok, _ := store.Get(ctx, key); ok {
		return data, nil
	}

	body, err := Fetch(ctx, client, url)
	if err != nil {
		return nil, err
	}
	_ = store.Set(ctx, key, body, ttl)
	return body, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

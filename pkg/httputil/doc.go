// Package httputil downloads remote resources, mainly the vis-network
// runtime bundle when a render should inline it instead of referencing
// the CDN.
//
// # Fetching
//
// [Fetch] performs a GET with automatic retries for transient failures
// (network errors, 5xx responses). Permanent failures such as 404 are
// returned immediately:
//
//	body, err := httputil.Fetch(ctx, nil, url)
//
// [FetchCached] adds a cache in front so version-pinned bundles are only
// downloaded once:
//
//	body, err := httputil.FetchCached(ctx, store, key, cache.TTLRuntime, nil, url)
//
// Cache failures are treated as misses; a broken cache never blocks the
// download.
//
// # Retry behavior
//
// Retries are delegated to [cache.RetryWithBackoff]: 3 attempts with a
// 1 second initial delay, doubling each retry. Only errors classified as
// retryable by this package's status handling trigger another attempt.
package httputil

package vis

import (
	"context"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
	"github.com/Ezz-di/dot-to-html-graph/pkg/httputil"
)

// FetchRuntime downloads the vis-network bundle for inlining into the
// page, serving it from cache when possible. An empty url means the
// pinned RuntimeURL. Bundles are version-pinned, so cached copies stay
// valid until the pin changes.
func FetchRuntime(ctx context.Context, store cache.Cache, keyer cache.Keyer, url string) ([]byte, error) {
	if url == "" {
		url = RuntimeURL
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}

	key := keyer.HTTPKey("runtime", url)
	return httputil.FetchCached(ctx, store, key, cache.TTLRuntime, nil, url)
}

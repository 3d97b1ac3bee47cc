package cli

import (
	"os"
	"testing"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
)

func TestCacheDirDefault(t *testing.T) {
	c := New(os.Stderr, LogError)

	if got := c.cacheDir(); got != cache.DefaultDir() {
		t.Errorf("cacheDir() = %q, want %q", got, cache.DefaultDir())
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := New(os.Stderr, LogError)
	c.Config.Cache.Dir = "/tmp/custom-cache"

	if got := c.cacheDir(); got != "/tmp/custom-cache" {
		t.Errorf("cacheDir() = %q, want /tmp/custom-cache", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

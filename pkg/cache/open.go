package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and locates a cache backend.
type Config struct {
	// Backend is one of file, sqlite, redis, mongo, none.
	// Empty selects the file backend.
	Backend string `json:"backend"`

	// Dir is the root directory for the file and sqlite backends.
	// Empty means DefaultDir().
	Dir string `json:"dir"`

	// URL is the connection string for the redis and mongo backends.
	URL string `json:"url"`

	// Database is the mongo database name. Empty means "dot2html".
	Database string `json:"database"`
}

// ValidBackends enumerates the accepted backend names.
var ValidBackends = map[string]bool{
	"file":   true,
	"sqlite": true,
	"redis":  true,
	"mongo":  true,
	"none":   true,
}

// Open constructs the cache backend named by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir()
	}

	switch cfg.Backend {
	case "", "file":
		return NewFileCache(dir)
	case "sqlite":
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		return NewSQLiteCache(filepath.Join(dir, "cache.db"))
	case "redis":
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache backend requires a connection URL")
		}
		return NewRedisCache(cfg.URL)
	case "mongo":
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache backend requires a connection URL")
		}
		database := cfg.Database
		if database == "" {
			database = "dot2html"
		}
		return NewMongoCache(ctx, cfg.URL, database)
	case "none", "null":
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// DefaultDir returns the cache directory following the platform's user
// cache conventions, with a temp-dir fallback when none is defined.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dot2html")
	}
	return filepath.Join(base, "dot2html")
}

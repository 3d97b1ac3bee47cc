// Package config loads optional configuration for the dot2html CLI.
//
// Everything works without a config file; flags always win. A file is
// useful for settings that rarely change per invocation: the cache
// backend, a team palette, the preview server address.
//
// Config file locations (priority order):
//  1. --config flag (handled by the CLI, passed to Load)
//  2. $DOT2HTML_CONFIG
//  3. ./dot2html.toml or ./dot2html.yaml
//  4. $XDG_CONFIG_HOME/dot2html/config.toml or config.yaml
//  5. ~/.config/dot2html/config.toml or config.yaml
//
// TOML and YAML are both accepted, selected by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
)

// Config holds file-configurable defaults. Zero values mean "not set";
// applyDefaults fills them after loading.
type Config struct {
	// Output is the default output path for the primary artifact.
	Output string `toml:"output" yaml:"output"`

	// Formats lists the artifact formats rendered by default.
	Formats []string `toml:"formats" yaml:"formats"`

	// Title overrides the HTML page title.
	Title string `toml:"title" yaml:"title"`

	// Palette overrides the cluster color palette.
	Palette []string `toml:"palette" yaml:"palette"`

	// NoPhysics disables the force simulation in rendered pages.
	NoPhysics bool `toml:"no_physics" yaml:"no_physics"`

	// InlineRuntime embeds the vis-network runtime instead of linking the CDN.
	InlineRuntime bool `toml:"inline_runtime" yaml:"inline_runtime"`

	// BreakCycles removes back edges before styling.
	BreakCycles bool `toml:"break_cycles" yaml:"break_cycles"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend" yaml:"backend"`
	Dir      string `toml:"dir" yaml:"dir"`
	URL      string `toml:"url" yaml:"url"`
	Database string `toml:"database" yaml:"database"`
}

// ServerConfig holds preview server settings.
type ServerConfig struct {
	// Addr is the listen address for the serve command.
	Addr string `toml:"addr" yaml:"addr"`
}

// Load finds and loads the config file, or returns defaults if none found.
// explicit is the --config flag value; when set, the file must exist.
// The returned string is the path actually loaded ("" for defaults).
func Load(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = FindConfigPath()
	}
	if path == "" {
		return Default(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path, decoding by extension.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, path, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, path, fmt.Errorf("unsupported config format %q (use .toml or .yaml)", filepath.Ext(path))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes the config to path, encoding by extension.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(c)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("unsupported config format %q (use .toml or .yaml)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Output:  "interactive_graph.html",
		Formats: []string{"html"},
		Cache:   CacheConfig{Backend: "file"},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "interactive_graph.html"
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"html"}
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "file"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
}

// Validate rejects values that would only fail later, deeper in the stack.
func (c *Config) Validate() error {
	if !cache.ValidBackends[c.Cache.Backend] {
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if (c.Cache.Backend == "redis" || c.Cache.Backend == "mongo") && c.Cache.URL == "" {
		return fmt.Errorf("cache backend %q requires a connection url", c.Cache.Backend)
	}
	return nil
}

// CacheConfig converts the file settings into the cache package's config.
func (c *Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		URL:      c.Cache.URL,
		Database: c.Cache.Database,
	}
}

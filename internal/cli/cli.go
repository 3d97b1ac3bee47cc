// Package cli implements the dot2html command-line interface.
//
// The CLI wraps the visualization pipeline (parse → style → render) with
// commands for rendering, cluster inspection, a live preview server,
// headless snapshots, run history, and cache maintenance. Logging uses
// charmbracelet/log and is passed through context.Context so every command
// reports progress the same way.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Ezz-di/dot-to-html-graph/internal/config"
	"github.com/Ezz-di/dot-to-html-graph/pkg/buildinfo"
	"github.com/Ezz-di/dot-to-html-graph/pkg/cache"
	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "dot2html"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded during PersistentPreRunE; commands read defaults
	// from it and flags override.
	Config     *config.Config
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Invoking the binary with just an input file is the one-shot
// conversion: render with defaults, write interactive_graph.html to the
// working directory.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		quiet      bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName + " [input]",
		Short:        "dot2html turns DOT graphs into interactive HTML pages",
		Long:         `dot2html converts a DOT graph description into an interactive HTML visualization with hierarchical layout, per-cluster coloring, and click-to-collapse neighborhoods. It can also emit ECharts pages, SVG/PNG images, styled DOT, and JSON datasets.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			if quiet {
				level = LogError
			}
			c.SetLogLevel(level)

			cfg, path, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			c.ConfigPath = path
			if path != "" {
				c.Logger.Debug("loaded config", "path", path)
			}

			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			opts := c.defaultRenderOpts()
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (toml or yaml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand creates the version command, the long form of --version.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(buildinfo.String())
		},
	}
}

// newRunner creates a pipeline runner for CLI use. A broken cache backend
// never fails a command: the runner falls back to the null cache with a
// warning.
func (c *CLI) newRunner(ctx context.Context, opts cacheOpts) *pipeline.Runner {
	store, err := c.openCache(ctx, opts)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "error", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, nil, c.Logger)
}

// cacheOpts carries the per-command cache flag overrides.
type cacheOpts struct {
	noCache bool
	backend string
	dir     string
}

func (c *CLI) openCache(ctx context.Context, opts cacheOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.CacheConfig()
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.dir != "" {
		cfg.Dir = opts.dir
	}
	return cache.Open(ctx, cfg)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		return fallback
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			formats = append(formats, p)
		}
	}
	return formats
}

// registerCacheFlags adds the shared cache flags to a command.
func registerCacheFlags(cmd *cobra.Command, opts *cacheOpts) {
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching for this run")
	cmd.Flags().StringVar(&opts.backend, "cache-backend", "", "cache backend: file, sqlite, redis, mongo, none")
	cmd.Flags().StringVar(&opts.dir, "cache-dir", "", "cache directory for the file and sqlite backends")
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
	"github.com/Ezz-di/dot-to-html-graph/pkg/session"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output          string   // output file path (or base path for multiple formats)
	formats         []string // output formats: html, echarts, svg, png, dot, json
	inputFormat     string   // input format override: dot, gomod, modgraph, json
	title           string   // HTML page title
	width           string   // canvas width (CSS size)
	height          string   // canvas height (CSS size)
	palette         []string // cluster color palette override
	breakCycles     bool     // drop back edges from the output
	noPhysics       bool     // freeze the client-side simulation
	inlineRuntime   bool     // embed the vis-network bundle instead of the CDN tag
	includeIndirect bool     // keep indirect requirements (gomod input)
	refresh         bool     // bypass the parse cache
	selectClusters  bool     // interactive cluster picker before rendering
	cache           cacheOpts
}

// defaultRenderOpts builds render options from the loaded config.
func (c *CLI) defaultRenderOpts() renderOpts {
	return renderOpts{
		output:        c.Config.Output,
		formats:       c.Config.Formats,
		title:         c.Config.Title,
		palette:       c.Config.Palette,
		breakCycles:   c.Config.BreakCycles,
		noPhysics:     c.Config.NoPhysics,
		inlineRuntime: c.Config.InlineRuntime,
	}
}

// renderCommand creates the render command, the explicit form of the bare
// root invocation.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := c.defaultRenderOpts()

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a graph description to one or more artifacts",
		Long: `Render parses the input, assigns cluster colors and hierarchical ranks,
and writes the requested artifacts. The default artifact is a single
interactive HTML page; echarts, svg, png, dot, and json are also available.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config is loaded by PersistentPreRunE, after flag defaults
			// were bound; config values back any flag the user didn't set.
			defaults := c.defaultRenderOpts()
			if opts.output == "" {
				opts.output = defaults.output
			}
			if !cmd.Flags().Changed("title") {
				opts.title = defaults.title
			}
			if !cmd.Flags().Changed("palette") {
				opts.palette = defaults.palette
			}
			if !cmd.Flags().Changed("break-cycles") {
				opts.breakCycles = defaults.breakCycles
			}
			if !cmd.Flags().Changed("no-physics") {
				opts.noPhysics = defaults.noPhysics
			}
			if !cmd.Flags().Changed("inline-runtime") {
				opts.inlineRuntime = defaults.inlineRuntime
			}
			opts.formats = parseFormats(formatsStr, defaults.formats)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if opts.inputFormat != "" {
				if err := pipeline.ValidateInputFormat(opts.inputFormat); err != nil {
					return err
				}
			}
			if len(opts.palette) > 0 {
				if err := errors.ValidatePalette(opts.palette); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), echarts, svg, png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: dot, gomod, modgraph, json (default: detect)")
	cmd.Flags().StringVar(&opts.title, "title", opts.title, "HTML page title")
	cmd.Flags().StringVar(&opts.width, "width", "", "canvas width (CSS size, e.g. 100%)")
	cmd.Flags().StringVar(&opts.height, "height", "", "canvas height (CSS size, e.g. 1000px)")
	cmd.Flags().StringSliceVar(&opts.palette, "palette", opts.palette, "cluster color palette (hex colors)")
	cmd.Flags().BoolVar(&opts.breakCycles, "break-cycles", opts.breakCycles, "drop cycle-closing edges from the output")
	cmd.Flags().BoolVar(&opts.noPhysics, "no-physics", opts.noPhysics, "freeze the client-side physics simulation")
	cmd.Flags().BoolVar(&opts.inlineRuntime, "inline-runtime", opts.inlineRuntime, "embed the vis-network runtime for a fully self-contained page")
	cmd.Flags().BoolVar(&opts.includeIndirect, "include-indirect", false, "keep indirect requirements (gomod input)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the parse cache")
	cmd.Flags().BoolVar(&opts.selectClusters, "select", false, "pick clusters interactively before rendering")
	registerCacheFlags(cmd, &opts.cache)

	return cmd
}

// runRender executes the pipeline and writes every requested artifact.
// Artifacts are rendered to memory first; nothing is written on failure.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	start := time.Now()

	if err := errors.ValidateInputPath(input); err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(opts.output); err != nil {
		return err
	}

	// A lone non-HTML format with the stock .html output name gets a path
	// derived from the input instead, so `render -f svg` does the obvious
	// thing without an explicit -o.
	if len(opts.formats) == 1 && opts.formats[0] != pipeline.FormatHTML && opts.output == c.Config.Output {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		opts.output = base + formatExt[opts.formats[0]]
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %s", input)
	}

	runner := c.newRunner(ctx, opts.cache)
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Source:          data,
		SourceName:      input,
		InputFormat:     opts.inputFormat,
		IncludeIndirect: opts.includeIndirect,
		Refresh:         opts.refresh,
		BreakCycles:     opts.breakCycles,
		Palette:         opts.palette,
		Formats:         opts.formats,
		Title:           opts.title,
		Width:           opts.width,
		Height:          opts.height,
		NoPhysics:       opts.noPhysics,
		InlineRuntime:   opts.inlineRuntime,
		Logger:          logger,
	}

	if opts.selectClusters {
		keep, cancelled, err := c.pickClusters(ctx, runner, pipeOpts)
		if err != nil {
			return err
		}
		if cancelled {
			printInfo("Selection cancelled, nothing rendered")
			return nil
		}
		pipeOpts.Clusters = keep
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	paths, err := writeArtifacts(result.Artifacts, opts)
	if err != nil {
		return err
	}

	cached := result.CacheInfo.ParseHit && result.CacheInfo.RenderHit
	printSuccess("Rendered %s", input)
	for _, f := range opts.formats {
		printFile(paths[f])
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ClusterCount, cached)

	c.recordRun(ctx, input, paths[opts.formats[0]], opts, result, time.Since(start), cached)
	return nil
}

// writeArtifacts writes every rendered format and returns the path used per
// format. All paths are resolved before the first write, so a path error
// leaves no partial output behind.
func writeArtifacts(artifacts map[string][]byte, opts *renderOpts) (map[string]string, error) {
	paths := make(map[string]string, len(opts.formats))
	for _, format := range opts.formats {
		paths[format] = artifactPath(opts.output, format, len(opts.formats) == 1)
	}

	for _, format := range opts.formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, errors.New(errors.ErrCodeRender, "pipeline produced no %s artifact", format)
		}
		if err := os.WriteFile(paths[format], data, 0644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "write %s", paths[format])
		}
	}
	return paths, nil
}

// formatExt maps output formats to file extensions.
var formatExt = map[string]string{
	pipeline.FormatHTML:    ".html",
	pipeline.FormatECharts: ".html",
	pipeline.FormatSVG:     ".svg",
	pipeline.FormatPNG:     ".png",
	pipeline.FormatDOT:     ".dot",
	pipeline.FormatJSON:    ".json",
}

// artifactPath derives the output path for one format. A single format
// writes to the output path as given; multiple formats share its base and
// get per-format extensions, with a suffix on the echarts page so it never
// collides with the vis page.
func artifactPath(output, format string, single bool) string {
	if single {
		return output
	}

	base := strings.TrimSuffix(output, filepath.Ext(output))
	if format == pipeline.FormatECharts {
		return base + "_echarts.html"
	}
	return base + formatExt[format]
}

// recordRun appends the render to the session history. History is
// best-effort: failures are logged, never surfaced.
func (c *CLI) recordRun(ctx context.Context, input, output string, opts *renderOpts, result *pipeline.Result, elapsed time.Duration, cached bool) {
	store, err := session.NewFileStore("")
	if err != nil {
		c.Logger.Debug("history unavailable", "error", err)
		return
	}

	run := session.NewRun(input, output, opts.formats)
	run.InputFormat = opts.inputFormat
	run.NodeCount = result.Stats.NodeCount
	run.EdgeCount = result.Stats.EdgeCount
	run.ClusterCount = result.Stats.ClusterCount
	run.Duration = elapsed
	run.Cached = cached

	if err := store.Add(ctx, run); err != nil {
		c.Logger.Debug("record run", "error", err)
		return
	}
	if err := store.Cleanup(ctx); err != nil {
		c.Logger.Debug("prune history", "error", err)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
	"github.com/Ezz-di/dot-to-html-graph/pkg/render/snapshot"
)

// snapshotCommand creates the snapshot command: render the interactive
// page, open it in headless Chrome, let the physics settle, and save a PNG.
// Unlike the png format (a static Graphviz rasterization), the snapshot
// shows the page exactly as a browser lays it out.
func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		output      string
		inputFormat string
		width       int
		height      int
		settle      time.Duration
		noPhysics   bool
		breakCycles bool
		cacheFlags  cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "snapshot [input]",
		Short: "Capture a PNG of the interactive page in a headless browser",
		Long: `Snapshot renders the interactive HTML page, loads it in headless Chrome,
waits for the client-side layout to settle, and writes a PNG screenshot.
A Chrome or Chromium binary must be installed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if err := errors.ValidateInputPath(input); err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".png"
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %s", input)
			}

			logger := loggerFromContext(cmd.Context())
			runner := c.newRunner(cmd.Context(), cacheFlags)
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Source:      data,
				SourceName:  input,
				InputFormat: inputFormat,
				BreakCycles: breakCycles,
				Palette:     c.Config.Palette,
				Formats:     []string{pipeline.FormatHTML},
				NoPhysics:   noPhysics,
				// The page is loaded from a file:// URL, so it must not
				// depend on the CDN being reachable from the browser.
				InlineRuntime: true,
				Logger:        logger,
			})
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(cmd.Context(), "Waiting for the browser layout to settle...")
			spin.Start()

			png, err := snapshot.Capture(cmd.Context(), result.Artifacts[pipeline.FormatHTML], snapshot.Options{
				Width:  width,
				Height: height,
				Settle: settle,
			})
			if err != nil {
				spin.StopWithError("Capture failed")
				return err
			}
			spin.Stop()

			if err := os.WriteFile(output, png, 0644); err != nil {
				return errors.Wrap(errors.ErrCodeRender, err, "write %s", output)
			}

			printSuccess("Captured %s", input)
			printFile(output)
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ClusterCount, result.CacheInfo.RenderHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default: input name with .png)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: dot, gomod, modgraph, json (default: detect)")
	cmd.Flags().IntVar(&width, "width", 0, "viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "viewport height in pixels")
	cmd.Flags().DurationVar(&settle, "settle", 0, "how long the physics simulation runs before the shot")
	cmd.Flags().BoolVar(&noPhysics, "no-physics", false, "freeze the client-side physics simulation")
	cmd.Flags().BoolVar(&breakCycles, "break-cycles", false, "drop cycle-closing edges")
	registerCacheFlags(cmd, &cacheFlags)

	return cmd
}

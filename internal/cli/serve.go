package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
	"github.com/Ezz-di/dot-to-html-graph/pkg/server"
	"github.com/Ezz-di/dot-to-html-graph/pkg/session"
)

// serveCommand creates the serve command: render the input and serve the
// interactive page over HTTP, optionally re-rendering on file changes.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		watch       bool
		debounce    time.Duration
		inputFormat string
		title       string
		noPhysics   bool
		breakCycles bool
		cacheFlags  cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "serve [input]",
		Short: "Serve the rendered graph with live reload",
		Long: `Serve renders the input once and exposes it on a local HTTP server.
With --watch the source file is monitored: every change re-renders the page
and connected browsers reload over a websocket. A failed re-render keeps
the previous page up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if err := errors.ValidateInputPath(input); err != nil {
				return err
			}
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			if err := errors.ValidateListenAddr(addr); err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				title = c.Config.Title
			}
			if !cmd.Flags().Changed("no-physics") {
				noPhysics = c.Config.NoPhysics
			}
			if !cmd.Flags().Changed("break-cycles") {
				breakCycles = c.Config.BreakCycles
			}

			logger := loggerFromContext(cmd.Context())
			runner := c.newRunner(cmd.Context(), cacheFlags)
			defer runner.Close()

			// Serving reads history but never writes it; runs are recorded
			// by explicit renders, not by every file save.
			var history session.Store
			if store, err := session.NewFileStore(""); err == nil {
				history = store
			} else {
				logger.Debug("history unavailable", "error", err)
			}

			pipeOpts := pipeline.Options{
				InputFormat: inputFormat,
				BreakCycles: breakCycles,
				Palette:     c.Config.Palette,
				Title:       title,
				NoPhysics:   noPhysics,
				Logger:      logger,
			}

			srv := server.New(runner, input, pipeOpts, server.Options{
				Addr:     addr,
				Watch:    watch,
				Debounce: debounce,
				History:  history,
				Logger:   logger,
			})

			printInfo("Serving %s on http://%s", input, addr)
			if watch {
				printDetail("watching for changes, ctrl-c to stop")
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, then 127.0.0.1:8080)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render and reload browsers on file changes")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period after a file change before re-rendering")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: dot, gomod, modgraph, json (default: detect)")
	cmd.Flags().StringVar(&title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&noPhysics, "no-physics", false, "freeze the client-side physics simulation")
	cmd.Flags().BoolVar(&breakCycles, "break-cycles", false, "drop cycle-closing edges")
	registerCacheFlags(cmd, &cacheFlags)

	return cmd
}

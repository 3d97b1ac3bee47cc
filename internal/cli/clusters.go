package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Ezz-di/dot-to-html-graph/pkg/errors"
	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// clustersCommand creates the clusters command: parse the input and list
// its clusters with node counts and the colors a render would assign.
func (c *CLI) clustersCommand() *cobra.Command {
	var (
		inputFormat string
		cacheFlags  cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "clusters [input]",
		Short: "List the clusters of a graph with their assigned colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if err := errors.ValidateInputPath(input); err != nil {
				return err
			}

			data, err := os.ReadFile(input)
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %s", input)
			}

			runner := c.newRunner(cmd.Context(), cacheFlags)
			defer runner.Close()

			g, err := runner.Parse(cmd.Context(), pipeline.Options{
				Source:      data,
				SourceName:  input,
				InputFormat: inputFormat,
				Logger:      loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}

			labels := g.Clusters()
			if len(labels) == 0 {
				printInfo("No clusters in %s", input)
				printDetail("%d nodes, %d edges, all uncolored", g.NodeCount(), g.EdgeCount())
				return nil
			}

			styles := style.Styles(labels, c.Config.Palette)

			rows := make([][]string, 0, len(styles)+1)
			for _, s := range styles {
				rows = append(rows, []string{
					swatch(s.Background),
					s.Label,
					fmt.Sprintf("%d", len(g.NodesInCluster(s.Label))),
					s.Background,
				})
			}

			unclustered := 0
			for _, n := range g.Nodes() {
				if n.Cluster == "" {
					unclustered++
				}
			}
			if unclustered > 0 {
				rows = append(rows, []string{"", unclusteredLabel, fmt.Sprintf("%d", unclustered), ""})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("", "Cluster", "Nodes", "Color").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 3 {
						return StyleDim
					}
					return StyleValue
				})

			fmt.Println(t.Render())
			printDetail("%d clusters · %d nodes · %d edges", len(labels), g.NodeCount(), g.EdgeCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: dot, gomod, modgraph, json (default: detect)")
	registerCacheFlags(cmd, &cacheFlags)

	return cmd
}

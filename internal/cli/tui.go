package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ezz-di/dot-to-html-graph/pkg/pipeline"
	"github.com/Ezz-di/dot-to-html-graph/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// unclusteredLabel is how the empty cluster label is shown in the picker
// and the clusters table.
const unclusteredLabel = "(unclustered)"

// clusterItem is one selectable row in the cluster picker.
type clusterItem struct {
	Label string // cluster label, "" for unclustered nodes
	Color string // palette color the styler would assign
	Nodes int
}

// ClusterPickerModel is the bubbletea model for interactive cluster
// selection. Every cluster starts selected; space toggles, enter confirms,
// q or esc cancels.
type ClusterPickerModel struct {
	Items     []clusterItem
	Cursor    int
	Checked   map[int]bool
	Confirmed bool
	Cancelled bool
}

// NewClusterPickerModel creates a picker with all clusters pre-selected.
func NewClusterPickerModel(items []clusterItem) ClusterPickerModel {
	checked := make(map[int]bool, len(items))
	for i := range items {
		checked[i] = true
	}
	return ClusterPickerModel{Items: items, Checked: checked}
}

func (m ClusterPickerModel) Init() tea.Cmd {
	return nil
}

func (m ClusterPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case " ":
			m.Checked[m.Cursor] = !m.Checked[m.Cursor]
		case "a":
			for i := range m.Items {
				m.Checked[i] = true
			}
		case "n":
			for i := range m.Items {
				m.Checked[i] = false
			}
		case "enter":
			if m.countChecked() == 0 {
				return m, nil // rendering nothing is never what was meant
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ClusterPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Clusters"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  n none  ⏎ render  q quit"))
	b.WriteString("\n\n")

	for i, item := range m.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		check := "[ ]"
		if m.Checked[i] {
			check = "[x]"
		}

		label := item.Label
		if label == "" {
			label = unclusteredLabel
		}

		line := fmt.Sprintf("%s%s %s %-24s %s", cursor, check, swatch(item.Color), label,
			listDimStyle.Render(fmt.Sprintf("%d nodes", item.Nodes)))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Checked[i]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d/%d selected", m.countChecked(), len(m.Items))))

	return b.String()
}

func (m ClusterPickerModel) countChecked() int {
	n := 0
	for i := range m.Items {
		if m.Checked[i] {
			n++
		}
	}
	return n
}

// Selection returns the chosen cluster labels, or nil when every cluster
// stayed selected (nil means "keep all" downstream, which also keeps nodes
// that belong to no cluster).
func (m ClusterPickerModel) Selection() []string {
	if m.countChecked() == len(m.Items) {
		return nil
	}
	var keep []string
	for i, item := range m.Items {
		if m.Checked[i] {
			keep = append(keep, item.Label)
		}
	}
	return keep
}

// pickClusters parses the input (cached, so the later Execute re-parse is
// free) and runs the picker. Returns the labels to keep, nil for all.
func (c *CLI) pickClusters(ctx context.Context, runner *pipeline.Runner, pipeOpts pipeline.Options) ([]string, bool, error) {
	g, err := runner.Parse(ctx, pipeOpts)
	if err != nil {
		return nil, false, err
	}

	labels := g.Clusters()
	unclustered := 0
	for _, n := range g.Nodes() {
		if n.Cluster == "" {
			unclustered++
		}
	}
	if len(labels) == 0 {
		return nil, false, nil // nothing to pick from
	}

	styles := style.Styles(labels, pipeOpts.Palette)
	colors := make(map[string]string, len(styles))
	for _, s := range styles {
		colors[s.Label] = s.Background
	}

	sort.Strings(labels)
	items := make([]clusterItem, 0, len(labels)+1)
	for _, label := range labels {
		items = append(items, clusterItem{
			Label: label,
			Color: colors[label],
			Nodes: len(g.NodesInCluster(label)),
		})
	}
	if unclustered > 0 {
		items = append(items, clusterItem{Label: "", Nodes: unclustered})
	}

	final, err := tea.NewProgram(NewClusterPickerModel(items)).Run()
	if err != nil {
		return nil, false, fmt.Errorf("cluster picker: %w", err)
	}

	model := final.(ClusterPickerModel)
	if model.Cancelled {
		return nil, true, nil
	}
	return model.Selection(), false, nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/energylevels/pkg/core/diagram"
	"github.com/matzehuels/energylevels/pkg/core/render"
	"github.com/matzehuels/energylevels/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

var detailBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1).
	MarginLeft(2)

// inspectCommand creates the interactive inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:               "inspect [diagram]",
		Short:             "Browse states and their label positions interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			withContextLogger(cmd.Context(), &opts)
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}
	layoutFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts pipeline.Options) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	d, laid, err := layoutFile(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	m := NewStateListModel(d, laid.Placements(d), laid.Crowded)
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// StateListModel - Interactive state browser
// =============================================================================

// StateListModel is the bubbletea model for browsing laid-out states.
type StateListModel struct {
	Diagram    *diagram.Diagram
	Placements []render.Placement
	Crowded    map[int]bool
	Cursor     int
	Height     int
	Offset     int
	MovedOnly  bool
}

// NewStateListModel creates a new state list model.
func NewStateListModel(d *diagram.Diagram, placements []render.Placement, crowded []int) StateListModel {
	m := StateListModel{
		Diagram:    d,
		Placements: placements,
		Crowded:    make(map[int]bool, len(crowded)),
		Height:     15,
	}
	for _, c := range crowded {
		m.Crowded[c] = true
	}
	return m
}

// visible returns the placements shown under the current filter.
func (m StateListModel) visible() []render.Placement {
	if !m.MovedOnly {
		return m.Placements
	}
	var out []render.Placement
	for _, p := range m.Placements {
		if p.Moved {
			out = append(out, p)
		}
	}
	return out
}

func (m StateListModel) Init() tea.Cmd {
	return nil
}

func (m StateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.visible())
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "m":
			m.MovedOnly = !m.MovedOnly
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m StateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("States"))
	if m.MovedOnly {
		b.WriteString(listDimStyle.Render("  (moved only)"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  m moved only  q quit"))
	b.WriteString("\n\n")

	states := m.visible()
	if len(states) == 0 {
		b.WriteString(listDimStyle.Render("  no labels were moved"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(states))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		p := states[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if p.Moved {
			mark = styleMoved.Render("~")
		}
		line := fmt.Sprintf("%s%s %-12s %8s", cursor, mark, p.Key, render.FormatEnergy(p.Energy))
		if i == m.Cursor {
			list.WriteString(listSelectedStyle.Render(line))
		} else {
			list.WriteString(listNormalStyle.Render(line))
		}
		list.WriteString("\n")
	}

	detail := detailBoxStyle.Render(m.detail(states[m.Cursor]))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), detail))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(states))))

	return b.String()
}

// detail describes one state for the side panel.
func (m StateListModel) detail(p render.Placement) string {
	s, _ := m.Diagram.State(p.Key)
	units := m.Diagram.EnergyUnits

	rows := [][2]string{
		{"label", p.Label},
		{"column", fmt.Sprint(p.Column + 1)},
		{"energy", strings.TrimSpace(render.FormatEnergy(p.Energy) + " " + units)},
		{"label at", fmt.Sprintf("%.3f", p.LabelPosition)},
		{"shift", fmt.Sprintf("%+.3f", p.Shift)},
	}
	if s.Color != "" {
		rows = append(rows, [2]string{"color", s.Color})
	}
	if len(s.LinksTo) > 0 {
		rows = append(rows, [2]string{"links to", strings.Join(s.LinksTo, ", ")})
	}
	if s.Legend != "" {
		rows = append(rows, [2]string{"legend", s.Legend})
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(p.Key))
	if m.Crowded[p.Column] {
		b.WriteString(" " + styleCrowded.Render("crowded"))
	}
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	for _, r := range rows {
		b.WriteString("\n" + keyStyle.Render(r[0]) + StyleValue.Render(r[1]))
	}
	return b.String()
}

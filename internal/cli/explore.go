package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oncogrid/pkg/grid"
	"github.com/matzehuels/oncogrid/pkg/model"
	"github.com/matzehuels/oncogrid/pkg/pipeline"
	"github.com/matzehuels/oncogrid/pkg/render/tooltip"
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "explore [dataset.json]",
		Short: "Browse a dataset in an interactive terminal grid",
		Long: `Browse a dataset in an interactive terminal grid.

Keys:
  arrows  move the cursor
  c       cluster donors and genes
  h       toggle heat map
  g       toggle grid lines
  x       toggle crosshair mode
  r       remove donors without mutations
  q       quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runExplore(cmd.Context(), opts)
		},
	}
	addBuildFlags(cmd, &opts, nil)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options) error {
	g, err := c.buildGrid(ctx, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(newExploreModel(g), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

var (
	exploreCursorStyle = lipgloss.NewStyle().Reverse(true)
	exploreLabelStyle  = lipgloss.NewStyle().Foreground(colorGray)
	exploreEmpty       = "·"
	exploreCell        = "■"
)

// exploreModel is the bubbletea model of the explore view. Grid operations
// run synchronously inside Update.
type exploreModel struct {
	g      *grid.Grid
	frame  *grid.Frame
	cells  map[[2]string]grid.Cell
	col    int
	row    int
	offset int
	width  int
	status string
}

func newExploreModel(g *grid.Grid) *exploreModel {
	m := &exploreModel{g: g, width: 80}
	m.refresh()
	return m
}

// refresh re-resolves the frame after a grid operation and clamps the
// cursor to the new domains.
func (m *exploreModel) refresh() {
	m.frame = m.g.Frame()
	m.cells = make(map[[2]string]grid.Cell, len(m.frame.Cells))
	for _, c := range m.frame.Cells {
		k := [2]string{c.DonorID, c.GeneID}
		if _, ok := m.cells[k]; !ok {
			m.cells[k] = c
		}
	}
	m.col = clamp(m.col, 0, len(m.frame.Columns)-1)
	m.row = clamp(m.row, 0, len(m.frame.Rows)-1)
}

func (m *exploreModel) Init() tea.Cmd { return nil }

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left":
			m.col = max(m.col-1, 0)
		case "right":
			m.col = min(m.col+1, len(m.frame.Columns)-1)
		case "up":
			m.row = max(m.row-1, 0)
		case "down":
			m.row = min(m.row+1, len(m.frame.Rows)-1)
		case "c":
			m.g.Cluster()
			m.status = "clustered"
		case "h":
			m.status = onOff("heat map", m.g.ToggleHeatmap())
		case "g":
			m.status = onOff("grid lines", m.g.ToggleGridLines())
		case "x":
			m.status = onOff("crosshair", m.g.ToggleCrosshair())
		case "r":
			removed := m.g.RemoveDonors(func(d *model.Donor) bool { return d.Count == 0 })
			m.status = fmt.Sprintf("removed %d donor(s)", len(removed))
		default:
			return m, nil
		}
		m.refresh()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor column inside the visible window.
func (m *exploreModel) scroll() {
	visible := m.visibleColumns()
	if m.col < m.offset {
		m.offset = m.col
	}
	if m.col >= m.offset+visible {
		m.offset = m.col - visible + 1
	}
}

func (m *exploreModel) labelWidth() int {
	w := 4
	for _, r := range m.frame.Rows {
		w = max(w, len(r.Label))
	}
	return w
}

func (m *exploreModel) visibleColumns() int {
	return max(m.width-m.labelWidth()-2, 1)
}

func (m *exploreModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("OncoGrid"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d donors × %d genes", len(m.frame.Columns), len(m.frame.Rows))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ move  c cluster  h heat  g grid  x crosshair  r remove clean  q quit"))
	b.WriteString("\n\n")

	lw := m.labelWidth()
	end := min(m.offset+m.visibleColumns(), len(m.frame.Columns))
	for ri, row := range m.frame.Rows {
		b.WriteString(exploreLabelStyle.Render(fmt.Sprintf("%*s ", lw, row.Label)))
		for ci := m.offset; ci < end; ci++ {
			glyph := m.glyph(m.frame.Columns[ci].ID, row.ID)
			if m.isCursor(ci, ri) {
				glyph = exploreCursorStyle.Render(glyph)
			}
			b.WriteString(glyph)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.hoverText())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// isCursor reports whether a cell is highlighted. In crosshair mode the
// whole donor column and gene row light up.
func (m *exploreModel) isCursor(col, row int) bool {
	if m.frame.Crosshair {
		return col == m.col || row == m.row
	}
	return col == m.col && row == m.row
}

func (m *exploreModel) glyph(donorID, geneID string) string {
	c, ok := m.cells[[2]string{donorID, geneID}]
	if !ok || c.Fill == "" {
		if m.frame.GridLines {
			return StyleDim.Render(exploreEmpty)
		}
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Fill)).Render(exploreCell)
}

// hoverText renders the tooltip under the cursor with the grid's templates.
func (m *exploreModel) hoverText() string {
	if len(m.frame.Columns) == 0 || len(m.frame.Rows) == 0 {
		return StyleDim.Render("empty grid")
	}
	x := m.frame.Columns[m.col].X + m.frame.CellWidth/2
	y := m.frame.Rows[m.row].Y + m.frame.CellHeight/2
	h, ok := m.g.Hover(x, y)
	if !ok {
		return StyleDim.Render(fmt.Sprintf("%s / %s", m.frame.Columns[m.col].ID, m.frame.Rows[m.row].Label))
	}
	s, err := tooltip.Hover(h)
	if err != nil {
		return StyleWarning.Render(err.Error())
	}
	return strings.ReplaceAll(tooltip.Plain(s), "\n", "  ")
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

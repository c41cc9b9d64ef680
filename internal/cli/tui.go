package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/analysis"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// InspectModel - Interactive analysis browser
// =============================================================================

// InspectModel is the bubbletea model of the inspect command. It lists
// every block with its level and reachability; enter toggles a detail pane
// with the blocks upstream and downstream of the one under the cursor.
type InspectModel struct {
	Graph  flow.Graph
	Report analysis.Report

	Cursor int
	Offset int
	Height int
	Detail bool

	levels map[string]int
}

// NewInspectModel creates an inspector over a normalized graph and its
// analysis.
func NewInspectModel(g flow.Graph, r analysis.Report) InspectModel {
	levels := make(map[string]int, len(r.Reachable))
	for i, level := range r.Levels {
		for _, n := range level {
			levels[n.ID] = i + 1
		}
	}
	return InspectModel{
		Graph:  g,
		Report: r,
		Height: 15,
		levels: levels,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Graph.Nodes)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Workflow"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Graph.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  empty graph"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Graph.Nodes))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, n.ID, n.Data.Title, m.kindOf(n), m.levelOf(n), m.statusOf(n)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Block", "Title", "Type", "Level", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Graph.Nodes) {
				return lipgloss.NewStyle()
			}
			n := m.Graph.Nodes[idx]
			base := lipgloss.NewStyle()
			switch {
			case n.IsNote():
				base = base.Foreground(colorDim)
			case !m.Report.IsReachable(n.ID):
				base = base.Foreground(colorYellow)
			case col == 5:
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d reachable  %d unreachable",
		m.Cursor+1, len(m.Graph.Nodes), len(m.Report.Reachable), len(m.Report.Orphaned))))
	b.WriteString("\n")

	if m.Detail {
		b.WriteString(listDetailStyle.Render(m.detail(m.Graph.Nodes[m.Cursor])))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the block under the cursor.
func (m InspectModel) Selected() (flow.Node, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Graph.Nodes) {
		return flow.Node{}, false
	}
	return m.Graph.Nodes[m.Cursor], true
}

func (m InspectModel) detail(n flow.Node) string {
	g := m.Graph
	lines := []string{
		StyleHighlight.Render(n.ID),
		"upstream:   " + orNone(joinIDs(analysis.UpstreamWithParent(g.Nodes, g.Edges, n.ID))),
		"downstream: " + orNone(joinIDs(after(g, n.ID))),
	}
	if kids := analysis.Children(g.Nodes, n.ID); len(kids) > 0 {
		lines = append(lines, "children:   "+joinIDs(kids))
	}
	if n.IsNested() {
		lines = append(lines, "parent:     "+n.ParentID)
	}
	if src, tgt := n.Data.ConnectedSourceHandles, n.Data.ConnectedTargetHandles; len(src)+len(tgt) > 0 {
		lines = append(lines, fmt.Sprintf("handles:    out %s  in %s", orNone(strings.Join(src, ", ")), orNone(strings.Join(tgt, ", "))))
	}
	return strings.Join(lines, "\n")
}

// after returns the blocks downstream of id, without id itself.
func after(g flow.Graph, id string) []flow.Node {
	down := analysis.Downstream(g.Nodes, g.Edges, id)
	if len(down) > 0 && down[0].ID == id {
		down = down[1:]
	}
	return down
}

func (m InspectModel) kindOf(n flow.Node) string {
	if n.IsNote() {
		return "note"
	}
	if n.Data.Type == "" {
		return "-"
	}
	return string(n.Data.Type)
}

func (m InspectModel) levelOf(n flow.Node) string {
	if level, ok := m.levels[n.ID]; ok {
		return strconv.Itoa(level)
	}
	return "-"
}

func (m InspectModel) statusOf(n flow.Node) string {
	switch {
	case n.ID == m.Report.Root:
		return "root"
	case m.Report.IsReachable(n.ID):
		return "reachable"
	}
	return "unreachable"
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

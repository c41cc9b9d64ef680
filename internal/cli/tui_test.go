package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/analysis"
)

func inspectGraph() flow.Graph {
	node := func(id string, typ flow.BlockType) flow.Node {
		return flow.Node{ID: id, Type: flow.TypeCustom, Data: flow.NodeData{Type: typ, Title: strings.ToUpper(id)}}
	}
	return flow.Graph{
		Nodes: []flow.Node{
			node("start", flow.EntryBlockType),
			node("chat", "LLM"),
			node("answer", "Answer"),
			node("stray", "Code"),
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "start", Target: "chat"},
			{ID: "e2", Source: "chat", Target: "answer"},
		},
	}
}

func newInspect() InspectModel {
	g := inspectGraph()
	return NewInspectModel(g, analysis.Analyze(g.Nodes, g.Edges))
}

func press(m InspectModel, keys ...tea.KeyMsg) InspectModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(InspectModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func TestInspectNavigation(t *testing.T) {
	m := newInspect()

	m = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor)
	}

	m = press(m, keyDown, runeKey('j'))
	if n, _ := m.Selected(); n.ID != "answer" {
		t.Errorf("selected %q, want answer", n.ID)
	}

	m = press(m, keyDown, keyDown, keyDown)
	if m.Cursor != 3 {
		t.Errorf("cursor ran past the last row: %d", m.Cursor)
	}

	m = press(m, runeKey('g'))
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("home: cursor %d offset %d", m.Cursor, m.Offset)
	}
	m = press(m, runeKey('G'))
	if m.Cursor != 3 {
		t.Errorf("end: cursor %d", m.Cursor)
	}
}

func TestInspectScrolls(t *testing.T) {
	m := newInspect()
	m.Height = 2

	m = press(m, keyDown, keyDown, keyDown)
	if m.Offset != 2 {
		t.Errorf("Offset = %d, want 2", m.Offset)
	}
	m = press(m, keyUp, keyUp, keyUp)
	if m.Offset != 0 {
		t.Errorf("Offset = %d after scrolling back, want 0", m.Offset)
	}
}

func TestInspectView(t *testing.T) {
	view := newInspect().View()
	for _, want := range []string{"Inspect Workflow", "start", "root", "reachable", "unreachable", "[1/4]", "3 reachable", "1 unreachable"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestInspectDetail(t *testing.T) {
	m := press(newInspect(), keyDown, keyEnter)
	if !m.Detail {
		t.Fatal("enter should open the detail pane")
	}
	view := m.View()
	for _, want := range []string{"upstream:   start", "downstream: answer"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail missing %q:\n%s", want, view)
		}
	}

	m = press(m, keyEnter)
	if m.Detail {
		t.Error("enter should close the detail pane")
	}
}

func TestInspectQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		if _, cmd := newInspect().Update(k); cmd == nil {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestInspectWindowSize(t *testing.T) {
	next, _ := newInspect().Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	if h := next.(InspectModel).Height; h != 28 {
		t.Errorf("Height = %d, want 28", h)
	}
	next, _ = newInspect().Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	if h := next.(InspectModel).Height; h != 5 {
		t.Errorf("Height = %d, want the minimum of 5", h)
	}
}

func TestInspectEmptyGraph(t *testing.T) {
	m := NewInspectModel(flow.Graph{}, analysis.Report{})
	if !strings.Contains(m.View(), "empty graph") {
		t.Error("empty graph should say so")
	}
	if _, ok := m.Selected(); ok {
		t.Error("nothing should be selected in an empty graph")
	}
}

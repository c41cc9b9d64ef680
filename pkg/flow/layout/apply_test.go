package layout

import (
	"testing"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func TestApply_CentersOnTallestInRank(t *testing.T) {
	b, c := node("b"), node("c")
	b.Height = 100
	c.Height = 300
	nodes := []flow.Node{node("a"), b, c}
	l := Compute(nodes, []flow.Edge{edge("a", "b"), edge("a", "c")})

	got, vp := Apply(nodes, l)

	want := map[string]flow.Position{
		"a": {X: 35, Y: 310 - 90 + 90},
		"b": {X: 320, Y: 310 - 50 + 150},
		"c": {X: 320, Y: 555 - 150 + 150},
	}
	for _, n := range got {
		if n.Position == nil || *n.Position != want[n.ID] {
			t.Errorf("%s position = %v, want %v", n.ID, n.Position, want[n.ID])
		}
	}
	if vp != (flow.Viewport{X: 0, Y: 0, Zoom: DefaultZoom}) {
		t.Errorf("viewport = %+v, want zoom %v at origin", vp, DefaultZoom)
	}
	if nodes[0].Position != nil {
		t.Error("input nodes were modified")
	}
}

func TestApply_KeepsUnlaidNodes(t *testing.T) {
	note := flow.Node{ID: "note", Type: flow.TypeNote, Position: &flow.Position{X: 7, Y: 8}}
	nodes := []flow.Node{node("a"), note}

	got, _ := Apply(nodes, Compute(nodes, nil))
	if *got[1].Position != (flow.Position{X: 7, Y: 8}) {
		t.Errorf("note position = %v, want {7 8}", got[1].Position)
	}
}

func TestApply_EmptyLayout(t *testing.T) {
	got, vp := Apply([]flow.Node{{ID: "n", Type: flow.TypeNote}}, Compute(nil, nil))
	if len(got) != 1 || got[0].Position != nil {
		t.Errorf("Apply() = %+v, want node untouched", got)
	}
	if vp.Zoom != DefaultZoom {
		t.Errorf("Zoom = %v, want %v", vp.Zoom, DefaultZoom)
	}
}

func TestArrange(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{node("a"), node("b")},
		Edges: []flow.Edge{edge("a", "b")},
	}
	out, l := Arrange(g)
	if l.Empty() {
		t.Fatal("Arrange() produced an empty layout")
	}
	if out.Viewport == nil || out.Viewport.Zoom != DefaultZoom {
		t.Errorf("Viewport = %v, want zoom %v", out.Viewport, DefaultZoom)
	}
	if out.Nodes[1].Position.X <= out.Nodes[0].Position.X {
		t.Errorf("b at x=%v is not right of a at x=%v", out.Nodes[1].Position.X, out.Nodes[0].Position.X)
	}
}

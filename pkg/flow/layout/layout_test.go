package layout

import (
	"reflect"
	"slices"
	"testing"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func node(id string) flow.Node { return flow.Node{ID: id, Type: flow.TypeCustom} }

func edge(src, dst string) flow.Edge {
	return flow.Edge{ID: src + "-" + dst, Source: src, Target: dst}
}

func TestCompute_Chain(t *testing.T) {
	l := Compute(
		[]flow.Node{node("start"), node("a"), node("b")},
		[]flow.Edge{edge("start", "a"), edge("a", "b")},
	)

	want := map[string]Placement{
		"start": {X: 145, Y: 310, Width: 220, Height: 180, Rank: 0},
		"a":     {X: 430, Y: 310, Width: 220, Height: 180, Rank: 1},
		"b":     {X: 715, Y: 310, Width: 220, Height: 180, Rank: 2},
	}
	if !reflect.DeepEqual(l.Nodes, want) {
		t.Errorf("Nodes = %+v, want %+v", l.Nodes, want)
	}
	if l.Width != 860 || l.Height != 620 {
		t.Errorf("size = %vx%v, want 860x620", l.Width, l.Height)
	}
	if len(l.Edges) != 2 || len(l.Edges[0].Points) != 2 {
		t.Errorf("Edges = %+v, want two straight routes", l.Edges)
	}
}

func TestCompute_FanOutStacksFromTop(t *testing.T) {
	l := Compute(
		[]flow.Node{node("a"), node("b"), node("c")},
		[]flow.Edge{edge("a", "b"), edge("a", "c")},
	)
	b, c := l.Nodes["b"], l.Nodes["c"]
	if b.Rank != 1 || c.Rank != 1 {
		t.Fatalf("ranks = %d/%d, want 1/1", b.Rank, c.Rank)
	}
	if b.Order != 0 || c.Order != 1 {
		t.Errorf("orders = %d/%d, want 0/1", b.Order, c.Order)
	}
	if got := c.Y - b.Y; got != DefaultHeight+NodeSep {
		t.Errorf("gap = %v, want %v", got, DefaultHeight+NodeSep)
	}
	if top := b.Y - b.Height/2; top != MarginY {
		t.Errorf("top = %v, want %v", top, MarginY)
	}
}

func TestCompute_ExcludesNestedAndDecorative(t *testing.T) {
	nested := node("inner")
	nested.ParentID = "loop"
	note := flow.Node{ID: "note", Type: flow.TypeNote}
	start := flow.Node{ID: "it-start", Type: flow.TypeIterationStart}

	l := Compute(
		[]flow.Node{node("loop"), nested, note, start, node("after")},
		[]flow.Edge{edge("loop", "inner"), edge("note", "after"), edge("it-start", "inner"), edge("loop", "after")},
	)

	for _, id := range []string{"inner", "note", "it-start"} {
		if _, ok := l.Nodes[id]; ok {
			t.Errorf("%s received a placement", id)
		}
	}
	if len(l.Nodes) != 2 {
		t.Errorf("Nodes = %d, want 2", len(l.Nodes))
	}
	if l.Nodes["after"].Rank != 1 {
		t.Errorf("after rank = %d, want 1", l.Nodes["after"].Rank)
	}
}

func TestCompute_IgnoresIterationEdges(t *testing.T) {
	e := edge("a", "b")
	e.Data.IsInIteration = true
	l := Compute([]flow.Node{node("a"), node("b")}, []flow.Edge{e})

	if l.Nodes["a"].Rank != 0 || l.Nodes["b"].Rank != 0 {
		t.Errorf("ranks = %d/%d, want 0/0", l.Nodes["a"].Rank, l.Nodes["b"].Rank)
	}
	if len(l.Edges) != 0 {
		t.Errorf("Edges = %v, want none", l.Edges)
	}
}

func TestCompute_Empty(t *testing.T) {
	tests := []struct {
		name  string
		nodes []flow.Node
	}{
		{"nil", nil},
		{"only notes", []flow.Node{{ID: "n", Type: flow.TypeNote}}},
		{"only nested", []flow.Node{{ID: "n", ParentID: "p"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compute(tt.nodes, []flow.Edge{edge("n", "m")})
			if !l.Empty() {
				t.Errorf("Compute() = %+v, want empty", l)
			}
			if len(l.Edges) != 0 || len(l.Ranks) != 0 {
				t.Errorf("Compute() edges/ranks = %v/%v, want none", l.Edges, l.Ranks)
			}
		})
	}
}

func TestCompute_Cycle(t *testing.T) {
	l := Compute([]flow.Node{node("a"), node("b")}, []flow.Edge{edge("a", "b"), edge("b", "a")})

	if l.Nodes["a"].Rank != 0 || l.Nodes["b"].Rank != 1 {
		t.Errorf("ranks = %d/%d, want 0/1", l.Nodes["a"].Rank, l.Nodes["b"].Rank)
	}
	back := l.Edges[1]
	if back.Source != "b" || back.Points[0].X != l.Nodes["b"].X {
		t.Errorf("reversed route %+v does not start at b", back)
	}
}

func TestCompute_TightTreePullsSources(t *testing.T) {
	// s1 only feeds x, which sits at rank 2 behind s2 -> y -> x.
	l := Compute(
		[]flow.Node{node("s1"), node("s2"), node("y"), node("x")},
		[]flow.Edge{edge("s1", "x"), edge("s2", "y"), edge("y", "x")},
	)
	if got := l.Nodes["s1"].Rank; got != 1 {
		t.Errorf("s1 rank = %d, want 1", got)
	}
	if got := l.Nodes["x"].Rank; got != 2 {
		t.Errorf("x rank = %d, want 2", got)
	}
}

func TestCompute_LongEdgeBends(t *testing.T) {
	l := Compute(
		[]flow.Node{node("a"), node("b"), node("c")},
		[]flow.Edge{edge("a", "b"), edge("b", "c"), edge("a", "c")},
	)
	var long Route
	for _, r := range l.Edges {
		if r.Source == "a" && r.Target == "c" {
			long = r
		}
	}
	if len(long.Points) != 3 {
		t.Fatalf("a->c points = %v, want 3", long.Points)
	}
	if mid := long.Points[1].X; mid != l.Nodes["b"].X {
		t.Errorf("bend x = %v, want rank 1 column %v", mid, l.Nodes["b"].X)
	}
	for _, layer := range l.Ranks {
		for _, id := range layer {
			if _, ok := l.Nodes[id]; !ok {
				t.Errorf("rank lists unknown node %q", id)
			}
		}
	}
}

func TestCompute_UsesNodeSize(t *testing.T) {
	a := node("a")
	a.Width, a.Height = 300, 90
	l := Compute([]flow.Node{a}, nil)

	p := l.Nodes["a"]
	if p.Width != 300 || p.Height != 90 {
		t.Errorf("footprint = %vx%v, want 300x90", p.Width, p.Height)
	}
	if p.X != MarginX+150 {
		t.Errorf("X = %v, want %v", p.X, MarginX+150)
	}
	if a.Width != 300 || a.Height != 90 {
		t.Error("input node changed")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	nodes := []flow.Node{node("a"), node("b"), node("c"), node("d"), node("e")}
	edges := []flow.Edge{edge("a", "c"), edge("b", "c"), edge("a", "d"), edge("b", "e"), edge("c", "e"), edge("d", "e")}

	first := Compute(nodes, edges)
	for i := 0; i < 10; i++ {
		if got := Compute(nodes, edges); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestFootprint(t *testing.T) {
	w, h := Footprint(flow.Node{Width: -1})
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Footprint() = %vx%v, want %vx%v", w, h, DefaultWidth, DefaultHeight)
	}
}

func TestLayerCrossings(t *testing.T) {
	g := newGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.addNode(&lnode{id: id})
	}
	g.addEdge("a", "d")
	g.addEdge("b", "c")

	if got := layerCrossings(g, []string{"a", "b"}, []string{"c", "d"}); got != 1 {
		t.Errorf("layerCrossings() = %d, want 1", got)
	}
	if got := layerCrossings(g, []string{"a", "b"}, []string{"d", "c"}); got != 0 {
		t.Errorf("layerCrossings() = %d, want 0", got)
	}
}

func TestOrderLayers_RemovesAvoidableCrossings(t *testing.T) {
	// Initial DFS order puts x before y in rank 1 while the sources feeding
	// them are ordered the other way round in rank 0.
	g := newGraph()
	for _, id := range []string{"r", "p", "q", "x", "y"} {
		g.addNode(&lnode{id: id})
	}
	for _, e := range [][2]string{{"r", "x"}, {"r", "y"}, {"p", "y"}, {"q", "x"}} {
		g.addEdge(e[0], e[1])
	}
	makeAcyclic(g)
	assignRanks(g)
	splitLongEdges(g)
	layers := orderLayers(g)

	if c := countCrossings(g, layers); c > countCrossings(g, initialOrder(g)) {
		t.Errorf("ordering increased crossings to %d", c)
	}
}

func TestComponents(t *testing.T) {
	g := newGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.addNode(&lnode{id: id})
	}
	g.addEdge("a", "c")
	got := components(g)
	want := [][]string{{"a", "c"}, {"b"}, {"d"}}
	if len(got) != len(want) {
		t.Fatalf("components() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

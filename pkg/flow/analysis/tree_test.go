package analysis

import (
	"slices"
	"testing"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func TestAnalyze_Reachability(t *testing.T) {
	r := Analyze(graph("A", "B", "C"), edgesOf("E>A", "E>B"))

	if want := []string{"E", "A", "B"}; !slices.Equal(r.ReachableIDs(), want) {
		t.Errorf("Reachable = %v, want %v", r.ReachableIDs(), want)
	}
	if want := []string{"C"}; !slices.Equal(r.OrphanedIDs(), want) {
		t.Errorf("Orphaned = %v, want %v", r.OrphanedIDs(), want)
	}
	want := [][]string{{"E", "A"}, {"E", "B"}}
	if !slices.EqualFunc(r.Paths, want, slices.Equal[[]string]) {
		t.Errorf("Paths = %v, want %v", r.Paths, want)
	}
	if r.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", r.MaxDepth)
	}
	if r.Root != "E" || !r.HasRoot() {
		t.Errorf("Root = %q, want E", r.Root)
	}
}

func TestAnalyze_Levels(t *testing.T) {
	r := Analyze(graph("A", "B", "C"), edgesOf("E>A", "A>B", "E>C"))

	tests := []struct {
		level int
		want  []string
	}{
		{1, []string{"E"}},
		{2, []string{"A", "C"}},
		{3, []string{"B"}},
		{4, nil},
		{0, nil},
	}
	for _, tt := range tests {
		if got := idsOf(r.Level(tt.level)); !slices.Equal(got, tt.want) {
			t.Errorf("Level(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
	if r.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", r.MaxDepth)
	}
}

func TestAnalyze_DiamondVisitsOnce(t *testing.T) {
	r := Analyze(graph("A", "B", "D"), edgesOf("E>A", "E>B", "A>D", "B>D"))

	if want := []string{"E", "A", "D", "B"}; !slices.Equal(r.ReachableIDs(), want) {
		t.Errorf("Reachable = %v, want %v", r.ReachableIDs(), want)
	}
	// B's only outgoer was already visited, so B ends no path.
	want := [][]string{{"E", "A", "D"}}
	if !slices.EqualFunc(r.Paths, want, slices.Equal[[]string]) {
		t.Errorf("Paths = %v, want %v", r.Paths, want)
	}
}

func TestAnalyze_OutgoersFollowNodeOrder(t *testing.T) {
	// Edge order says B first, node order says A first.
	r := Analyze(graph("A", "B"), edgesOf("E>B", "E>A"))
	if want := []string{"E", "A", "B"}; !slices.Equal(r.ReachableIDs(), want) {
		t.Errorf("Reachable = %v, want %v", r.ReachableIDs(), want)
	}
}

func TestAnalyze_CycleTerminates(t *testing.T) {
	r := Analyze(graph("A", "B"), edgesOf("E>A", "A>B", "B>A"))
	if want := []string{"E", "A", "B"}; !slices.Equal(r.ReachableIDs(), want) {
		t.Errorf("Reachable = %v, want %v", r.ReachableIDs(), want)
	}
	if len(r.Paths) != 0 {
		t.Errorf("Paths = %v, want none", r.Paths)
	}
}

func TestAnalyze_NoEntry(t *testing.T) {
	nodes := plain("A", "B")
	r := Analyze(nodes, edgesOf("A>B"))

	if r.HasRoot() || len(r.Reachable) != 0 || r.MaxDepth != 0 {
		t.Errorf("report = %+v, want empty walk", r)
	}
	if want := []string{"A", "B"}; !slices.Equal(r.OrphanedIDs(), want) {
		t.Errorf("Orphaned = %v, want %v", r.OrphanedIDs(), want)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(nil, nil)
	if len(r.Reachable) != 0 || len(r.Orphaned) != 0 {
		t.Errorf("report = %+v, want empty", r)
	}
}

func TestAnalyze_SingleEntryIsAPath(t *testing.T) {
	r := Analyze(graph(), nil)
	want := [][]string{{"E"}}
	if !slices.EqualFunc(r.Paths, want, slices.Equal[[]string]) {
		t.Errorf("Paths = %v, want %v", r.Paths, want)
	}
}

func TestAnalyze_DanglingEdgesIgnored(t *testing.T) {
	r := Analyze(graph("A"), edgesOf("E>A", "A>ghost"))
	want := [][]string{{"E", "A"}}
	if !slices.EqualFunc(r.Paths, want, slices.Equal[[]string]) {
		t.Errorf("Paths = %v, want %v", r.Paths, want)
	}
}

func TestAnalyzeFrom(t *testing.T) {
	nodes := graph("loop", "start", "body")
	nodes[2].ParentID = "loop"
	nodes[2].Data.IsIterationStart = true
	nodes[3].ParentID = "loop"
	edges := edgesOf("E>loop", "start>body")

	r := AnalyzeFrom(nodes, edges, "start")
	if want := []string{"start", "body"}; !slices.Equal(r.ReachableIDs(), want) {
		t.Errorf("Reachable = %v, want %v", r.ReachableIDs(), want)
	}
	if want := []string{"E", "loop"}; !slices.Equal(r.OrphanedIDs(), want) {
		t.Errorf("Orphaned = %v, want %v", r.OrphanedIDs(), want)
	}

	if r := AnalyzeFrom(nodes, edges, "missing"); r.HasRoot() || len(r.Orphaned) != len(nodes) {
		t.Errorf("unknown root: report = %+v, want all orphaned", r)
	}
}

func TestAnalyze_DoesNotAliasInput(t *testing.T) {
	nodes := graph("A")
	r := Analyze(nodes, edgesOf("E>A"))
	r.Reachable[0].Data.Title = "changed"
	if nodes[0].Data.Title != "" {
		t.Error("Analyze() result aliases the input nodes")
	}
}

func TestFindEntry(t *testing.T) {
	nodes := []flow.Node{plain("A")[0], entry("E1"), entry("E2")}
	n, ok := FindEntry(nodes)
	if !ok || n.ID != "E1" {
		t.Errorf("FindEntry() = %q, %v, want E1, true", n.ID, ok)
	}
	if _, ok := FindEntry(plain("A")); ok {
		t.Error("FindEntry() found an entry in a graph without one")
	}
}

package transform

import (
	"testing"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func sampleNodes() []flow.Node {
	return []flow.Node{
		{ID: "start", Data: flow.NodeData{Type: "Start", Title: "Begin"}},
		{ID: "llm", Data: flow.NodeData{Type: "OnlineLLM", Title: "Chat"}},
		{ID: "code", Data: flow.NodeData{Type: "Code"}},
	}
}

func TestNormalizeEdges_Defaults(t *testing.T) {
	edges := []flow.Edge{
		{ID: "e1", Source: "start", Target: "llm"},
		{ID: "e2", Source: "start", Target: "code", SourceHandle: "branch-2", Type: "custom-loop"},
	}
	got, removed := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})

	if len(removed) != 0 {
		t.Fatalf("removed = %v, want none", edgeIDs(removed))
	}
	if got[0].Type != flow.DefaultEdgeType {
		t.Errorf("Type = %q, want %q", got[0].Type, flow.DefaultEdgeType)
	}
	if got[1].Type != "custom-loop" {
		t.Errorf("Type = %q, want custom-loop", got[1].Type)
	}
	if got[0].SourceHandle != flow.DefaultSourceHandle || got[0].TargetHandle != flow.DefaultTargetHandle {
		t.Errorf("handles = %q/%q, want defaults", got[0].SourceHandle, got[0].TargetHandle)
	}
	if got[1].SourceHandle != "branch-2" {
		t.Errorf("SourceHandle = %q, want branch-2", got[1].SourceHandle)
	}
	if edges[0].SourceHandle != "" {
		t.Error("input edge was modified")
	}
}

func TestNormalizeEdges_StableHandleDefault(t *testing.T) {
	edges := []flow.Edge{
		{ID: "e1", Source: "start", Target: "llm"},
		{ID: "e2", Source: "start", Target: "code"},
	}
	got, _ := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})
	if got[0].SourceHandle != got[1].SourceHandle {
		t.Errorf("source handles %q and %q differ", got[0].SourceHandle, got[1].SourceHandle)
	}
}

func TestNormalizeEdges_Metadata(t *testing.T) {
	edges := []flow.Edge{
		{ID: "e1", Source: "start", Target: "llm"},
		{ID: "e2", Source: "llm", Target: "code"},
	}
	got, _ := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})

	d := got[0].Data
	if d.SourceType != "Start" || d.SourceNodeTitle != "Begin" {
		t.Errorf("source metadata = %q/%q, want Start/Begin", d.SourceType, d.SourceNodeTitle)
	}
	if d.TargetType != "OnlineLLM" || d.TargetNodeTitle != "Chat" {
		t.Errorf("target metadata = %q/%q, want OnlineLLM/Chat", d.TargetType, d.TargetNodeTitle)
	}
	if got[1].Data.TargetNodeTitle != UnknownTargetTitle {
		t.Errorf("TargetNodeTitle = %q, want %q", got[1].Data.TargetNodeTitle, UnknownTargetTitle)
	}
}

func TestNormalizeEdges_NonDestructiveMerge(t *testing.T) {
	edges := []flow.Edge{{
		ID: "e1", Source: "start", Target: "llm",
		Data: flow.EdgeData{SourceType: "Legacy", SourceNodeTitle: "Old title"},
	}}
	got, _ := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})

	if got[0].Data.SourceType != "Legacy" {
		t.Errorf("SourceType = %q, want Legacy", got[0].Data.SourceType)
	}
	if got[0].Data.SourceNodeTitle != "Old title" {
		t.Errorf("SourceNodeTitle = %q, want Old title", got[0].Data.SourceNodeTitle)
	}
	if got[0].Data.TargetType != "OnlineLLM" {
		t.Errorf("TargetType = %q, want OnlineLLM", got[0].Data.TargetType)
	}
}

func TestNormalizeEdges_MissingEndpoint(t *testing.T) {
	edges := []flow.Edge{{ID: "e1", Source: "ghost", Target: "llm"}}
	got, _ := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})

	if len(got) != 1 {
		t.Fatalf("edges = %d, want 1", len(got))
	}
	if got[0].Data.SourceType != "" || got[0].Data.SourceNodeTitle != "" {
		t.Errorf("source metadata filled for missing node: %+v", got[0].Data)
	}
	if got[0].Data.TargetType != "OnlineLLM" {
		t.Errorf("TargetType = %q, want OnlineLLM", got[0].Data.TargetType)
	}
}

func TestNormalizeEdges_DropsCycles(t *testing.T) {
	edges := []flow.Edge{
		{ID: "e1", Source: "start", Target: "llm"},
		{ID: "e2", Source: "llm", Target: "code"},
		{ID: "e3", Source: "code", Target: "llm"},
	}
	got, removed := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})

	if len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("edges = %v, want [e1]", edgeIDs(got))
	}
	if len(removed) != 2 {
		t.Errorf("removed = %v, want 2 edges", edgeIDs(removed))
	}
}

func TestNormalizeEdges_Selection(t *testing.T) {
	edges := []flow.Edge{
		{ID: "e1", Source: "start", Target: "llm"},
		{ID: "e2", Source: "llm", Target: "code"},
		{ID: "e3", Source: "start", Target: "code"},
	}

	t.Run("explicit", func(t *testing.T) {
		got, _ := NormalizeEdges(sampleNodes(), edges, EdgeOptions{SelectedNodeID: "llm"})
		want := []bool{true, true, false}
		for i, e := range got {
			if e.Data.LinkedNodeSelected == nil || *e.Data.LinkedNodeSelected != want[i] {
				t.Errorf("%s linked = %v, want %v", e.ID, e.Data.LinkedNodeSelected, want[i])
			}
		}
	})

	t.Run("from node data", func(t *testing.T) {
		nodes := sampleNodes()
		nodes[2].Data.Selected = true
		got, _ := NormalizeEdges(nodes, edges, EdgeOptions{})
		if !*got[1].Data.LinkedNodeSelected || *got[0].Data.LinkedNodeSelected {
			t.Error("selection taken from node data not applied")
		}
	})

	t.Run("none", func(t *testing.T) {
		got, _ := NormalizeEdges(sampleNodes(), edges, EdgeOptions{})
		for _, e := range got {
			if e.Data.LinkedNodeSelected != nil {
				t.Errorf("%s linked flag set without a selection", e.ID)
			}
		}
	})
}

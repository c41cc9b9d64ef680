package transform

import (
	"testing"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func TestStripTransient(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{{
			ID: "a",
			Data: flow.NodeData{
				Title:                  "A",
				ConnectedSourceHandles: []string{"source"},
				Extra:                  flow.Metadata{"_runningStatus": "running", "payload": 1},
			},
		}},
		Edges: []flow.Edge{{
			ID: "e",
			Data: flow.EdgeData{
				SourceType:         "Code",
				LinkedNodeSelected: flow.BoolPtr(true),
				Extra:              flow.Metadata{"_hovering": true},
			},
		}},
	}

	got := StripTransient(g)

	n := got.Nodes[0].Data
	if n.ConnectedSourceHandles != nil {
		t.Error("connected handles not stripped")
	}
	if _, ok := n.Extra["_runningStatus"]; ok {
		t.Error("_runningStatus not stripped")
	}
	if n.Extra["payload"] != 1 || n.Title != "A" {
		t.Errorf("persistent data lost: %+v", n)
	}
	e := got.Edges[0].Data
	if e.LinkedNodeSelected != nil || e.Extra != nil {
		t.Errorf("edge transient data kept: %+v", e)
	}
	if e.SourceType != "Code" {
		t.Errorf("SourceType = %q, want Code", e.SourceType)
	}
	if _, ok := g.Nodes[0].Data.Extra["_runningStatus"]; !ok {
		t.Error("input graph modified")
	}
}

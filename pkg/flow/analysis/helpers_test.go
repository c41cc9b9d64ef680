package analysis

import (
	"fmt"
	"strings"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func entry(id string) flow.Node {
	return flow.Node{ID: id, Type: flow.TypeCustom, Data: flow.NodeData{Type: flow.EntryBlockType}}
}

func plain(ids ...string) []flow.Node {
	out := make([]flow.Node, len(ids))
	for i, id := range ids {
		out[i] = flow.Node{ID: id, Type: flow.TypeCustom, Data: flow.NodeData{Type: "LLM"}}
	}
	return out
}

// graph builds nodes with "E" as the entry followed by the other ids.
func graph(others ...string) []flow.Node {
	return append([]flow.Node{entry("E")}, plain(others...)...)
}

// edgesOf builds edges from "a>b" pairs.
func edgesOf(pairs ...string) []flow.Edge {
	out := make([]flow.Edge, 0, len(pairs))
	for i, p := range pairs {
		src, dst, _ := strings.Cut(p, ">")
		out = append(out, flow.Edge{ID: fmt.Sprintf("e%d", i), Source: src, Target: dst})
	}
	return out
}

func idsOf(nodes []flow.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

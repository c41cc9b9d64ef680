package transform

import "github.com/matzehuels/wfgraph/pkg/flow"

// StripTransient returns a copy of g without editing state: every
// underscore-prefixed data key is removed from nodes and edges, including
// the connected-handle sets and the linked-selection flag.
func StripTransient(g flow.Graph) flow.Graph {
	out := g.Clone()
	for i := range out.Nodes {
		d := &out.Nodes[i].Data
		d.ConnectedSourceHandles = nil
		d.ConnectedTargetHandles = nil
		d.Extra = stripKeys(d.Extra)
	}
	for i := range out.Edges {
		d := &out.Edges[i].Data
		d.LinkedNodeSelected = nil
		d.Extra = stripKeys(d.Extra)
	}
	return out
}

func stripKeys(m flow.Metadata) flow.Metadata {
	for k := range m {
		if flow.IsTransientKey(k) {
			delete(m, k)
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

package transform

import "github.com/matzehuels/wfgraph/pkg/flow"

// Fallback titles for endpoints whose node has no title.
const (
	UnknownSourceTitle = "Unknown Source"
	UnknownTargetTitle = "Unknown Target"
)

// EdgeOptions configures [NormalizeEdges].
type EdgeOptions struct {
	// SelectedNodeID names the node currently selected on the canvas. When
	// empty, the last node whose data is flagged as selected is used. With no
	// selection at all the linked flag is left unset.
	SelectedNodeID string
}

// NormalizeEdges removes cycles with [BreakCycles] and fills defaults on the
// surviving edges:
//
//   - an empty type becomes [flow.DefaultEdgeType]
//   - absent handles become [flow.DefaultSourceHandle] and
//     [flow.DefaultTargetHandle]
//   - sourceType/sourceNodeTitle and targetType/targetNodeTitle are copied
//     from the endpoint nodes when absent; endpoints that do not exist are
//     left alone
//   - when a selection is known, every edge is flagged with whether it
//     touches the selected node
//
// Existing metadata is never overwritten. The returned edges are deep copies
// in input order; removed holds the cycle edges that were dropped.
func NormalizeEdges(nodes []flow.Node, edges []flow.Edge, opts EdgeOptions) (normalized, removed []flow.Edge) {
	ix := flow.NewIndex(nodes, nil)
	selected := opts.SelectedNodeID
	if selected == "" {
		selected = lastSelected(nodes)
	}

	kept, removed := BreakCycles(nodes, edges)
	normalized = make([]flow.Edge, len(kept))
	for i, e := range kept {
		normalized[i] = normalizeEdge(e.Clone(), ix, selected)
	}
	return normalized, removed
}

func normalizeEdge(e flow.Edge, ix *flow.Index, selected string) flow.Edge {
	if e.Type == "" {
		e.Type = flow.DefaultEdgeType
	}
	e.SourceHandle = e.SourceHandleOrDefault()
	e.TargetHandle = e.TargetHandleOrDefault()

	if src, ok := ix.Node(e.Source); ok && e.Data.SourceType == "" {
		e.Data.SourceType = src.Data.Type
		if e.Data.SourceNodeTitle == "" {
			e.Data.SourceNodeTitle = titleOr(src, UnknownSourceTitle)
		}
	}
	if dst, ok := ix.Node(e.Target); ok && e.Data.TargetType == "" {
		e.Data.TargetType = dst.Data.Type
		if e.Data.TargetNodeTitle == "" {
			e.Data.TargetNodeTitle = titleOr(dst, UnknownTargetTitle)
		}
	}

	if selected != "" {
		e.Data.LinkedNodeSelected = flow.BoolPtr(e.Touches(selected))
	}
	return e
}

func titleOr(n flow.Node, fallback string) string {
	if n.Data.Title == "" {
		return fallback
	}
	return n.Data.Title
}

func lastSelected(nodes []flow.Node) string {
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Data.Selected {
			return nodes[i].ID
		}
	}
	return ""
}

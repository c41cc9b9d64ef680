package transform

import "github.com/matzehuels/wfgraph/pkg/flow"

// Result is the outcome of [Normalize].
type Result struct {
	Graph flow.Graph
	// RemovedEdges are the cycle edges dropped from the input.
	RemovedEdges []flow.Edge
}

// Normalize runs the full normalization pipeline on g: cycle removal, edge
// defaults and node initialization. Connected-handle sets are computed from
// the surviving edges. The input graph is not modified.
func Normalize(g flow.Graph, opts EdgeOptions) Result {
	edges, removed := NormalizeEdges(g.Nodes, g.Edges, opts)
	out := flow.Graph{
		Nodes: InitializeNodes(g.Nodes, edges),
		Edges: edges,
	}
	if g.Viewport != nil {
		v := *g.Viewport
		out.Viewport = &v
	}
	return Result{Graph: out, RemovedEdges: removed}
}

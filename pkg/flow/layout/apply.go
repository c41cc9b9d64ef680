package layout

import "github.com/matzehuels/wfgraph/pkg/flow"

// Apply returns copies of nodes repositioned from l, and the viewport the
// canvas should reset to. Each laid-out node gets its top-left corner from
// its centre, shifted down by half the height of the tallest node sharing
// its rank so that a rank reads as one row of aligned blocks. Nodes missing
// from l keep their position.
func Apply(nodes []flow.Node, l *Layout) ([]flow.Node, flow.Viewport) {
	out := flow.CloneNodes(nodes)
	if l.Empty() {
		return out, ResetViewport()
	}

	tallest := make(map[int]float64)
	for _, p := range l.Nodes {
		tallest[p.Rank] = max(tallest[p.Rank], p.Height)
	}

	for i := range out {
		p, ok := l.Nodes[out[i].ID]
		if !ok {
			continue
		}
		out[i].Position = &flow.Position{
			X: p.X - p.Width/2,
			Y: p.Y - p.Height/2 + tallest[p.Rank]/2,
		}
	}
	return out, ResetViewport()
}

// ResetViewport is the viewport shown after auto-arranging.
func ResetViewport() flow.Viewport {
	return flow.Viewport{X: 0, Y: 0, Zoom: DefaultZoom}
}

// Arrange computes a layout of g and applies it, returning the repositioned
// graph with its viewport reset.
func Arrange(g flow.Graph) (flow.Graph, *Layout) {
	l := Compute(g.Nodes, g.Edges)
	nodes, vp := Apply(g.Nodes, l)
	return flow.Graph{Nodes: nodes, Edges: flow.CloneEdges(g.Edges), Viewport: &vp}, l
}

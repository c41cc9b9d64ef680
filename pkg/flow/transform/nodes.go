package transform

import (
	"slices"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Default placement for graphs loaded without positions. Node i is placed at
// (StartX + i*NodeOffset, StartY).
const (
	StartX     = 80
	StartY     = 282
	NodeOffset = 300
)

// PlaceNodes assigns positions along a horizontal line when the first node
// has no position. If the first node is placed, or the slice is empty, every
// position is left as it is. The returned nodes are deep copies.
func PlaceNodes(nodes []flow.Node) []flow.Node {
	out := flow.CloneNodes(nodes)
	if len(out) == 0 || out[0].Position != nil {
		return out
	}
	for i := range out {
		out[i].Position = &flow.Position{
			X: StartX + float64(i*NodeOffset),
			Y: StartY,
		}
	}
	return out
}

// ConnectedHandles returns the distinct source handles used by edges leaving
// id and the distinct target handles used by edges entering it, in
// first-seen edge order. Absent handles count as the default sentinels.
func ConnectedHandles(id string, edges []flow.Edge) (source, target []string) {
	for _, e := range edges {
		if e.Source == id {
			if h := e.SourceHandleOrDefault(); !slices.Contains(source, h) {
				source = append(source, h)
			}
		}
		if e.Target == id {
			if h := e.TargetHandleOrDefault(); !slices.Contains(target, h) {
				target = append(target, h)
			}
		}
	}
	return source, target
}

// InitializeNodes places an unpositioned graph with [PlaceNodes], defaults
// the category of every node to [flow.TypeCustom] and recomputes both
// connected-handle sets from edges. Sets that come out empty are cleared.
func InitializeNodes(nodes []flow.Node, edges []flow.Edge) []flow.Node {
	out := PlaceNodes(nodes)

	bySource := make(map[string][]flow.Edge)
	byTarget := make(map[string][]flow.Edge)
	for _, e := range edges {
		bySource[e.Source] = append(bySource[e.Source], e)
		byTarget[e.Target] = append(byTarget[e.Target], e)
	}

	for i := range out {
		n := &out[i]
		if n.Type == "" {
			n.Type = flow.TypeCustom
		}
		src, _ := ConnectedHandles(n.ID, bySource[n.ID])
		_, dst := ConnectedHandles(n.ID, byTarget[n.ID])
		n.Data.ConnectedSourceHandles = src
		n.Data.ConnectedTargetHandles = dst
	}
	return out
}

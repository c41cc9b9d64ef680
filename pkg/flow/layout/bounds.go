package layout

import (
	"math"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Footprint assumed for positioned nodes of unknown size when measuring
// bounds. This is the rendered size of a collapsed block, smaller than the
// layout default.
const (
	BoundsDefaultWidth  = 200.0
	BoundsDefaultHeight = 100.0
)

// DefaultPadding is the margin [OptimalViewport] leaves around the nodes.
const DefaultPadding = 50.0

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the centre point.
func (r Rect) Center() flow.Position {
	return flow.Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether r and o share any point, edges included.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X > o.Right() || r.Right() < o.X || r.Y > o.Bottom() || r.Bottom() < o.Y)
}

// NodeRect returns the rectangle covered by a positioned node.
func NodeRect(n flow.Node) (Rect, bool) {
	if n.Position == nil {
		return Rect{}, false
	}
	w, h := n.Width, n.Height
	if w <= 0 {
		w = BoundsDefaultWidth
	}
	if h <= 0 {
		h = BoundsDefaultHeight
	}
	return Rect{X: n.Position.X, Y: n.Position.Y, Width: w, Height: h}, true
}

// Bounds returns the smallest rectangle enclosing every positioned node.
// Unpositioned nodes are ignored; with none left the zero Rect is returned.
func Bounds(nodes []flow.Node) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, n := range nodes {
		r, ok := NodeRect(n)
		if !ok {
			continue
		}
		found = true
		minX, minY = min(minX, r.X), min(minY, r.Y)
		maxX, maxY = max(maxX, r.Right()), max(maxY, r.Bottom())
	}
	if !found {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// TopLeft returns the top-left corner of [Bounds].
func TopLeft(nodes []flow.Node) flow.Position {
	b := Bounds(nodes)
	return flow.Position{X: b.X, Y: b.Y}
}

// OptimalViewport returns a viewport at zoom 1 that shows the top-left of the
// graph with padding around it.
func OptimalViewport(nodes []flow.Node, padding float64) flow.Viewport {
	tl := TopLeft(nodes)
	return flow.Viewport{X: tl.X - padding, Y: tl.Y - padding, Zoom: 1}
}

// NodesInRegion returns the positioned nodes overlapping region, in node
// order.
func NodesInRegion(nodes []flow.Node, region Rect) []flow.Node {
	var out []flow.Node
	for _, n := range nodes {
		if r, ok := NodeRect(n); ok && r.Overlaps(region) {
			out = append(out, n)
		}
	}
	return out
}

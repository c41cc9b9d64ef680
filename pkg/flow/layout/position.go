package layout

import (
	"math"
	"slices"
)

// assignCoordinates turns ranks and orders into centre coordinates and
// returns the overall layout size including margins.
//
// Ranks run left to right: each rank is a column as wide as its widest
// node, separated by RankSep. Within a column nodes are stacked from the top
// in order, each pulled down to the median centre of its predecessors when
// that keeps it clear of the node above.
func assignCoordinates(g *lgraph, layers [][]string) (width, height float64) {
	left := MarginX
	for _, layer := range layers {
		colWidth := 0.0
		for _, id := range layer {
			colWidth = max(colWidth, g.nodes[id].width)
		}
		for _, id := range layer {
			g.nodes[id].x = left + colWidth/2
		}
		left += colWidth + RankSep
	}

	for r, layer := range layers {
		var prev *lnode
		for _, id := range layer {
			n := g.nodes[id]
			c := math.Inf(-1)
			if r > 0 {
				if m, ok := medianCenter(g, n); ok {
					c = m
				}
			}
			if prev != nil {
				c = max(c, prev.y+prev.height/2+separation(prev, n)+n.height/2)
			}
			if math.IsInf(c, -1) {
				c = n.height / 2
			}
			n.y = c
			prev = n
		}
	}

	top := math.Inf(1)
	for _, layer := range layers {
		for _, id := range layer {
			n := g.nodes[id]
			top = min(top, n.y-n.height/2)
		}
	}
	shift := MarginY - top
	for _, layer := range layers {
		for _, id := range layer {
			n := g.nodes[id]
			n.y += shift
			width = max(width, n.x+n.width/2+MarginX)
			height = max(height, n.y+n.height/2+MarginY)
		}
	}
	return width, height
}

// medianCenter returns the median y of the predecessors of n.
func medianCenter(g *lgraph, n *lnode) (float64, bool) {
	preds := g.in[n.id]
	if len(preds) == 0 {
		return 0, false
	}
	ys := make([]float64, len(preds))
	for i, p := range preds {
		ys[i] = g.nodes[p].y
	}
	slices.Sort(ys)
	mid := len(ys) / 2
	if len(ys)%2 == 1 {
		return ys[mid], true
	}
	return (ys[mid-1] + ys[mid]) / 2, true
}

// separation is the gap between two neighbours in a column. Virtual nodes
// only need edge spacing.
func separation(a, b *lnode) float64 {
	return (sepOf(a) + sepOf(b)) / 2
}

func sepOf(n *lnode) float64 {
	if n.virtual {
		return EdgeSep
	}
	return NodeSep
}

package layout

import "math"

// assignRanks ranks an acyclic working graph. Initial ranks come from a
// longest-path sweep; each weakly connected component is then tightened
// into a feasible tight tree and shifted so its smallest rank is zero.
func assignRanks(g *lgraph) {
	longestPath(g)
	for _, comp := range components(g) {
		tightTree(g, comp)
		normalizeRanks(g, comp)
	}
}

// longestPath places sources at rank 0 and every other node one rank after
// its deepest predecessor, using Kahn's algorithm.
func longestPath(g *lgraph) {
	inDegree := make(map[string]int, len(g.order))
	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		inDegree[id] = len(g.in[id])
		g.nodes[id].rank = 0
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.out[v] {
			if r := g.nodes[v].rank + 1; r > g.nodes[w].rank {
				g.nodes[w].rank = r
			}
			inDegree[w]--
			if inDegree[w] == 0 {
				queue = append(queue, w)
			}
		}
	}
}

// tightTree grows a spanning tree of zero-slack edges from the first node of
// comp. While the tree does not span the component, the crossing edge with
// the least slack is made tight by shifting every tree node towards it.
// Shifting by the minimum slack keeps all ranks feasible.
func tightTree(g *lgraph, comp []string) {
	if len(comp) < 2 {
		return
	}
	member := make(map[string]bool, len(comp))
	for _, id := range comp {
		member[id] = true
	}

	inTree := map[string]bool{comp[0]: true}
	tree := []string{comp[0]}

	var grow func(v string)
	grow = func(v string) {
		for _, w := range g.out[v] {
			if !inTree[w] && g.slack(ledge{v, w}) == 0 {
				inTree[w] = true
				tree = append(tree, w)
				grow(w)
			}
		}
		for _, u := range g.in[v] {
			if !inTree[u] && g.slack(ledge{u, v}) == 0 {
				inTree[u] = true
				tree = append(tree, u)
				grow(u)
			}
		}
	}

	for {
		for i := 0; i < len(tree); i++ {
			grow(tree[i])
		}
		if len(tree) >= len(comp) {
			return
		}

		best, bestSlack := ledge{}, math.MaxInt
		for _, e := range g.edges {
			if !member[e.v] || inTree[e.v] == inTree[e.w] {
				continue
			}
			if s := g.slack(e); s < bestSlack {
				best, bestSlack = e, s
			}
		}
		if bestSlack == math.MaxInt {
			return
		}

		delta := bestSlack
		if !inTree[best.v] {
			delta = -delta
		}
		for _, id := range tree {
			g.nodes[id].rank += delta
		}
	}
}

func normalizeRanks(g *lgraph, comp []string) {
	lowest := math.MaxInt
	for _, id := range comp {
		lowest = min(lowest, g.nodes[id].rank)
	}
	for _, id := range comp {
		g.nodes[id].rank -= lowest
	}
}

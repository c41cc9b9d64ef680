package layout

import (
	"cmp"
	"fmt"
	"slices"
)

// Ordering effort. Sweeps stop early once orderPatience consecutive sweeps
// fail to reduce crossings.
const (
	maxOrderSweeps = 24
	orderPatience  = 4
)

// splitLongEdges replaces every edge spanning more than one rank with a
// chain of virtual nodes, one per intermediate rank. The returned map lists
// the virtual nodes of each split edge from source to target.
func splitLongEdges(g *lgraph) map[ledge][]string {
	chains := make(map[ledge][]string)
	for _, e := range slices.Clone(g.edges) {
		span := g.nodes[e.w].rank - g.nodes[e.v].rank
		if span <= 1 {
			continue
		}
		g.removeEdge(e.v, e.w)
		prev := e.v
		ids := make([]string, 0, span-1)
		for i := 1; i < span; i++ {
			id := fmt.Sprintf("\x00%s\x00%s\x00%d", e.v, e.w, i)
			g.addNode(&lnode{id: id, virtual: true, rank: g.nodes[e.v].rank + i})
			g.addEdge(prev, id)
			ids = append(ids, id)
			prev = id
		}
		g.addEdge(prev, e.w)
		chains[e] = ids
	}
	return chains
}

// orderLayers groups nodes by rank and reduces crossings between adjacent
// ranks with alternating barycenter sweeps.
func orderLayers(g *lgraph) [][]string {
	layers := initialOrder(g)
	best := cloneLayers(layers)
	bestCrossings := countCrossings(g, layers)

	for i, stale := 0, 0; i < maxOrderSweeps && stale < orderPatience && bestCrossings > 0; i++ {
		sweep(g, layers, i%2 == 0)
		if c := countCrossings(g, layers); c < bestCrossings {
			best, bestCrossings = cloneLayers(layers), c
			stale = 0
		} else {
			stale++
		}
	}
	return best
}

// initialOrder assigns in-rank positions by depth-first visitation, starting
// from nodes sorted by rank and then by node order.
func initialOrder(g *lgraph) [][]string {
	maxRank := 0
	for _, id := range g.order {
		maxRank = max(maxRank, g.nodes[id].rank)
	}
	layers := make([][]string, maxRank+1)

	starts := slices.Clone(g.order)
	slices.SortStableFunc(starts, func(a, b string) int {
		return cmp.Compare(g.nodes[a].rank, g.nodes[b].rank)
	})

	visited := make(map[string]bool, len(g.order))
	var dfs func(v string)
	dfs = func(v string) {
		if visited[v] {
			return
		}
		visited[v] = true
		r := g.nodes[v].rank
		layers[r] = append(layers[r], v)
		for _, w := range g.out[v] {
			dfs(w)
		}
	}
	for _, id := range starts {
		dfs(id)
	}
	return layers
}

// sweep reorders every layer by the barycenter of its neighbours in the
// previous layer (down) or the next layer (up).
func sweep(g *lgraph, layers [][]string, down bool) {
	if down {
		for r := 1; r < len(layers); r++ {
			reorder(layers[r], posMap(layers[r-1]), g.in)
		}
		return
	}
	for r := len(layers) - 2; r >= 0; r-- {
		reorder(layers[r], posMap(layers[r+1]), g.out)
	}
}

// reorder sorts layer in place by barycenter. Nodes without neighbours in
// the fixed layer keep their index.
func reorder(layer []string, fixed map[string]int, nbrs map[string][]string) {
	type item struct {
		id string
		bc float64
	}
	var sortable []item
	pinned := make([]bool, len(layer))
	for i, id := range layer {
		sum, n := 0, 0
		for _, nb := range nbrs[id] {
			if p, ok := fixed[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			pinned[i] = true
			continue
		}
		sortable = append(sortable, item{id, float64(sum) / float64(n)})
	}
	slices.SortStableFunc(sortable, func(a, b item) int { return cmp.Compare(a.bc, b.bc) })

	next := 0
	for i := range layer {
		if pinned[i] {
			continue
		}
		layer[i] = sortable[next].id
		next++
	}
}

// countCrossings sums the crossings between every pair of adjacent layers.
func countCrossings(g *lgraph, layers [][]string) int {
	total := 0
	for r := 0; r+1 < len(layers); r++ {
		total += layerCrossings(g, layers[r], layers[r+1])
	}
	return total
}

// layerCrossings counts crossings between two adjacent layers as inversions
// of target positions, using a Fenwick tree. Two edges (u1,v1) and (u2,v2)
// cross iff pos(u1) < pos(u2) and pos(v1) > pos(v2).
func layerCrossings(g *lgraph, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}
	lowerPos := posMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, id := range upper {
		for _, w := range g.out[id] {
			if p, ok := lowerPos[w]; ok {
				edges = append(edges, edge{i, p})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}
	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

func posMap(layer []string) map[string]int {
	m := make(map[string]int, len(layer))
	for i, id := range layer {
		m[id] = i
	}
	return m
}

func cloneLayers(layers [][]string) [][]string {
	out := make([][]string, len(layers))
	for i, l := range layers {
		out[i] = slices.Clone(l)
	}
	return out
}

package layout

import "slices"

// lnode is a vertex of the working graph. Virtual nodes split long edges.
type lnode struct {
	id      string
	width   float64
	height  float64
	virtual bool
	rank    int
	x, y    float64
}

type ledge struct{ v, w string }

// lgraph is the working graph of one layout run. Adjacency lists keep
// insertion order so every stage is deterministic.
type lgraph struct {
	order []string
	nodes map[string]*lnode
	out   map[string][]string
	in    map[string][]string
	edges []ledge
	has   map[ledge]bool
}

func newGraph() *lgraph {
	return &lgraph{
		nodes: make(map[string]*lnode),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
		has:   make(map[ledge]bool),
	}
}

func (g *lgraph) addNode(n *lnode) {
	g.nodes[n.id] = n
	g.order = append(g.order, n.id)
}

// addEdge adds v->w unless it already exists or is a self-loop.
func (g *lgraph) addEdge(v, w string) bool {
	e := ledge{v, w}
	if v == w || g.has[e] {
		return false
	}
	g.has[e] = true
	g.edges = append(g.edges, e)
	g.out[v] = append(g.out[v], w)
	g.in[w] = append(g.in[w], v)
	return true
}

func (g *lgraph) removeEdge(v, w string) {
	e := ledge{v, w}
	if !g.has[e] {
		return
	}
	delete(g.has, e)
	g.edges = slices.DeleteFunc(g.edges, func(x ledge) bool { return x == e })
	g.out[v] = slices.DeleteFunc(g.out[v], func(x string) bool { return x == w })
	g.in[w] = slices.DeleteFunc(g.in[w], func(x string) bool { return x == v })
}

func (g *lgraph) hasEdgeOrChain(e ledge, chains map[ledge][]string) bool {
	if g.has[e] {
		return true
	}
	_, ok := chains[e]
	return ok
}

func (g *lgraph) slack(e ledge) int {
	return g.nodes[e.w].rank - g.nodes[e.v].rank - 1
}

// makeAcyclic reverses every depth-first back edge. Roots are visited in
// node order, children in edge order.
func makeAcyclic(g *lgraph) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.order))
	var back []ledge

	var dfs func(v string)
	dfs = func(v string) {
		color[v] = gray
		for _, w := range g.out[v] {
			switch color[w] {
			case white:
				dfs(w)
			case gray:
				back = append(back, ledge{v, w})
			}
		}
		color[v] = black
	}

	for _, id := range g.order {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range back {
		g.removeEdge(e.v, e.w)
		g.addEdge(e.w, e.v)
	}
}

// components returns the weakly connected components of g, each listed in
// node order, ordered by their first node.
func components(g *lgraph) [][]string {
	comp := make(map[string]int, len(g.order))
	var groups [][]string
	for _, start := range g.order {
		if _, ok := comp[start]; ok {
			continue
		}
		idx := len(groups)
		comp[start] = idx
		stack := []string{start}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, w := range slices.Concat(g.out[v], g.in[v]) {
				if _, ok := comp[w]; !ok {
					comp[w] = idx
					stack = append(stack, w)
				}
			}
		}
		groups = append(groups, nil)
	}
	for _, id := range g.order {
		groups[comp[id]] = append(groups[comp[id]], id)
	}
	return groups
}

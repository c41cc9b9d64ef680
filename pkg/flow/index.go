package flow

// Index provides adjacency lookups over one node/edge snapshot. Neighbour
// lists follow node-array order, matching how the canvas resolves outgoers
// and incomers.
//
// An Index is built once per operation and must not be reused after the
// snapshot changes.
type Index struct {
	nodes []Node
	pos   map[string]int
	out   map[string][]int // source id -> edge indices
	in    map[string][]int // target id -> edge indices
	edges []Edge
}

// NewIndex indexes nodes and edges. If two nodes share an id the first wins.
func NewIndex(nodes []Node, edges []Edge) *Index {
	ix := &Index{
		nodes: nodes,
		edges: edges,
		pos:   make(map[string]int, len(nodes)),
		out:   make(map[string][]int),
		in:    make(map[string][]int),
	}
	for i, n := range nodes {
		if _, ok := ix.pos[n.ID]; !ok {
			ix.pos[n.ID] = i
		}
	}
	for i, e := range edges {
		ix.out[e.Source] = append(ix.out[e.Source], i)
		ix.in[e.Target] = append(ix.in[e.Target], i)
	}
	return ix
}

// Nodes returns the indexed node slice.
func (ix *Index) Nodes() []Node { return ix.nodes }

// Edges returns the indexed edge slice.
func (ix *Index) Edges() []Edge { return ix.edges }

// Node returns the node with the given id.
func (ix *Index) Node(id string) (Node, bool) {
	i, ok := ix.pos[id]
	if !ok {
		return Node{}, false
	}
	return ix.nodes[i], true
}

// Has reports whether a node with the given id exists.
func (ix *Index) Has(id string) bool {
	_, ok := ix.pos[id]
	return ok
}

// Position returns the array position of a node, or -1.
func (ix *Index) Position(id string) int {
	if i, ok := ix.pos[id]; ok {
		return i
	}
	return -1
}

// OutEdges returns the edges leaving id in edge order.
func (ix *Index) OutEdges(id string) []Edge { return ix.pick(ix.out[id]) }

// InEdges returns the edges entering id in edge order.
func (ix *Index) InEdges(id string) []Edge { return ix.pick(ix.in[id]) }

// Outgoers returns the distinct nodes targeted by edges leaving id, in node
// order. Edges to missing nodes are skipped.
func (ix *Index) Outgoers(id string) []Node {
	targets := make(map[string]bool)
	for _, i := range ix.out[id] {
		targets[ix.edges[i].Target] = true
	}
	return ix.filter(targets)
}

// Incomers returns the distinct nodes with edges entering id, in node order.
func (ix *Index) Incomers(id string) []Node {
	sources := make(map[string]bool)
	for _, i := range ix.in[id] {
		sources[ix.edges[i].Source] = true
	}
	return ix.filter(sources)
}

// Children returns the nodes whose parent is id, in node order.
func (ix *Index) Children(id string) []Node {
	var out []Node
	for _, n := range ix.nodes {
		if n.ParentID == id {
			out = append(out, n)
		}
	}
	return out
}

func (ix *Index) pick(idx []int) []Edge {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Edge, len(idx))
	for j, i := range idx {
		out[j] = ix.edges[i]
	}
	return out
}

func (ix *Index) filter(ids map[string]bool) []Node {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Node, 0, len(ids))
	for _, n := range ix.nodes {
		if ids[n.ID] {
			out = append(out, n)
			delete(ids, n.ID)
		}
	}
	return out
}

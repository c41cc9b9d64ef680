package layout

import (
	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Fixed layout parameters.
const (
	RankDir = "LR"
	Align   = "UL"
	Ranker  = "tight-tree"

	NodeSep = 45.0
	RankSep = 65.0
	EdgeSep = 20.0
	MarginX = 35.0
	MarginY = 220.0

	DefaultWidth  = 220.0
	DefaultHeight = 180.0
)

// Version identifies the layout algorithm. Cached layouts carry it in their
// key, so it must change whenever the output for the same graph changes.
const Version = "1"

// DefaultZoom is the viewport zoom applied after auto-arranging.
const DefaultZoom = 0.7

// Placement is where a node ended up. X and Y are the centre of the node.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Rank   int     `json:"rank"`
	Order  int     `json:"order"`
}

// Route is an edge between two laid-out nodes, from the source centre to the
// target centre through the bend points of any virtual nodes.
type Route struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Points []flow.Position `json:"points"`
}

// Layout is the result of [Compute].
type Layout struct {
	Nodes  map[string]Placement `json:"nodes"`
	Ranks  [][]string           `json:"ranks"`
	Edges  []Route              `json:"edges"`
	Width  float64              `json:"width"`
	Height float64              `json:"height"`
}

// Empty reports whether no node was laid out.
func (l *Layout) Empty() bool { return l == nil || len(l.Nodes) == 0 }

// Placement returns the placement of one node.
func (l *Layout) Placement(id string) (Placement, bool) {
	if l == nil {
		return Placement{}, false
	}
	p, ok := l.Nodes[id]
	return p, ok
}

// Eligible reports whether n takes part in layout: it must be a standard
// block at the top level of the canvas.
func Eligible(n flow.Node) bool {
	return !n.IsNested() && n.IsStandard()
}

// Footprint returns the size used for n during layout. Missing or
// non-positive dimensions fall back to [DefaultWidth] and [DefaultHeight].
// The node itself is not changed.
func Footprint(n flow.Node) (width, height float64) {
	width, height = n.Width, n.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// Compute lays out the eligible nodes of a snapshot. Edges flagged as
// internal to an iteration and edges touching ineligible or missing nodes are
// ignored. A snapshot without eligible nodes yields an empty layout.
func Compute(nodes []flow.Node, edges []flow.Edge) *Layout {
	g, pairs := build(nodes, edges)
	if len(g.order) == 0 {
		return &Layout{Nodes: map[string]Placement{}}
	}

	makeAcyclic(g)
	assignRanks(g)
	chains := splitLongEdges(g)
	layers := orderLayers(g)
	width, height := assignCoordinates(g, layers)

	l := &Layout{
		Nodes:  make(map[string]Placement, len(nodes)),
		Ranks:  make([][]string, len(layers)),
		Width:  width,
		Height: height,
	}
	for r, layer := range layers {
		order := 0
		for _, id := range layer {
			n := g.nodes[id]
			if n.virtual {
				continue
			}
			l.Nodes[id] = Placement{
				X:      n.x,
				Y:      n.y,
				Width:  n.width,
				Height: n.height,
				Rank:   r,
				Order:  order,
			}
			l.Ranks[r] = append(l.Ranks[r], id)
			order++
		}
	}
	l.Edges = routes(g, pairs, chains)
	return l
}

// build collects eligible nodes and the distinct edges between them, in
// input order. The returned pairs keep the original edge orientation.
func build(nodes []flow.Node, edges []flow.Edge) (*lgraph, []ledge) {
	g := newGraph()
	for _, n := range nodes {
		if !Eligible(n) {
			continue
		}
		if _, dup := g.nodes[n.ID]; dup {
			continue
		}
		w, h := Footprint(n)
		g.addNode(&lnode{id: n.ID, width: w, height: h})
	}

	var pairs []ledge
	seen := make(map[ledge]bool)
	for _, e := range edges {
		if e.Data.IsInIteration || e.IsSelfLoop() {
			continue
		}
		if g.nodes[e.Source] == nil || g.nodes[e.Target] == nil {
			continue
		}
		p := ledge{e.Source, e.Target}
		if seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, p)
		g.addEdge(p.v, p.w)
	}
	return g, pairs
}

func routes(g *lgraph, pairs []ledge, chains map[ledge][]string) []Route {
	out := make([]Route, 0, len(pairs))
	for _, p := range pairs {
		hop, reversed := p, false
		if !g.hasEdgeOrChain(hop, chains) {
			hop, reversed = ledge{p.w, p.v}, true
		}
		ids := append([]string{hop.v}, chains[hop]...)
		ids = append(ids, hop.w)
		points := make([]flow.Position, len(ids))
		for i, id := range ids {
			n := g.nodes[id]
			points[i] = flow.Position{X: n.x, Y: n.y}
		}
		if reversed {
			for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
				points[i], points[j] = points[j], points[i]
			}
		}
		out = append(out, Route{Source: p.v, Target: p.w, Points: points})
	}
	return out
}

package analysis

import (
	"slices"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Report is the result of a tree analysis.
type Report struct {
	// Root is the id the walk started from, empty when no entry exists.
	Root string `json:"root,omitempty"`

	// Reachable holds every visited node in visit order.
	Reachable []flow.Node `json:"reachable"`

	// Levels groups reachable nodes by depth. Levels[0] is level 1 and
	// holds the root alone.
	Levels [][]flow.Node `json:"levels"`

	// Paths holds one id sequence from the root to each leaf, in the order
	// the leaves were reached.
	Paths [][]string `json:"paths"`

	// MaxDepth is the deepest level holding a node, 0 for an empty walk.
	MaxDepth int `json:"maxDepth"`

	// Orphaned holds the unreached nodes in node order.
	Orphaned []flow.Node `json:"orphaned"`
}

// HasRoot reports whether the walk found a root to start from.
func (r Report) HasRoot() bool { return r.Root != "" }

// IsReachable reports whether id was visited.
func (r Report) IsReachable(id string) bool {
	return slices.ContainsFunc(r.Reachable, func(n flow.Node) bool { return n.ID == id })
}

// Level returns the nodes first reached at the given 1-based level.
func (r Report) Level(level int) []flow.Node {
	if level < 1 || level > len(r.Levels) {
		return nil
	}
	return r.Levels[level-1]
}

// ReachableIDs returns the ids of the reachable nodes.
func (r Report) ReachableIDs() []string { return ids(r.Reachable) }

// OrphanedIDs returns the ids of the orphaned nodes.
func (r Report) OrphanedIDs() []string { return ids(r.Orphaned) }

// Analyze walks the graph from the first node whose block kind is an entry.
func Analyze(nodes []flow.Node, edges []flow.Edge) Report {
	if entry, ok := FindEntry(nodes); ok {
		return AnalyzeFrom(nodes, edges, entry.ID)
	}
	return unrooted(nodes)
}

// FindEntry returns the first node whose block kind carries the entry
// capability.
func FindEntry(nodes []flow.Node) (flow.Node, bool) {
	for _, n := range nodes {
		if n.Kind().Has(flow.CapEntry) {
			return n, true
		}
	}
	return flow.Node{}, false
}

// AnalyzeFrom walks the graph from rootID. An unknown root yields the same
// report as a graph without an entry.
func AnalyzeFrom(nodes []flow.Node, edges []flow.Edge, rootID string) Report {
	ix := flow.NewIndex(nodes, edges)
	root, ok := ix.Node(rootID)
	if !ok {
		return unrooted(nodes)
	}

	w := &walker{ix: ix, visited: make(map[string]bool, len(nodes))}
	w.visit(root, 1, nil)

	r := Report{
		Root:      rootID,
		Reachable: w.reachable,
		Levels:    w.levels,
		Paths:     w.paths,
		MaxDepth:  len(w.levels),
	}
	for _, n := range nodes {
		if !w.visited[n.ID] {
			r.Orphaned = append(r.Orphaned, n.Clone())
		}
	}
	return r
}

func unrooted(nodes []flow.Node) Report {
	return Report{Orphaned: flow.CloneNodes(nodes)}
}

type walker struct {
	ix        *flow.Index
	visited   map[string]bool
	reachable []flow.Node
	levels    [][]flow.Node
	paths     [][]string
}

func (w *walker) visit(n flow.Node, level int, path []string) {
	if w.visited[n.ID] {
		return
	}
	w.visited[n.ID] = true

	// Copy so sibling branches never share a backing array.
	path = append(slices.Clip(path), n.ID)

	c := n.Clone()
	w.reachable = append(w.reachable, c)
	if len(w.levels) < level {
		w.levels = append(w.levels, nil)
	}
	w.levels[level-1] = append(w.levels[level-1], c)

	outgoers := w.ix.Outgoers(n.ID)
	if len(outgoers) == 0 {
		w.paths = append(w.paths, path)
		return
	}
	for _, next := range outgoers {
		w.visit(next, level+1, path)
	}
}

func ids(nodes []flow.Node) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

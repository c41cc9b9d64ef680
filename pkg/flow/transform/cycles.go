package transform

import (
	"slices"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Cycle is the first cycle found by [FindCycle].
type Cycle struct {
	// Path lists the cycle's nodes in traversal order, starting at the node
	// the back edge points to. A self-loop yields a single node.
	Path []string
	// Edges are all edges whose source and target both lie on Path, in
	// edge order.
	Edges []flow.Edge
}

// Found reports whether a cycle was detected.
func (c Cycle) Found() bool { return len(c.Path) > 0 }

// Contains reports whether id lies on the cycle.
func (c Cycle) Contains(id string) bool { return slices.Contains(c.Path, id) }

// FindCycle returns the first cycle reachable by depth-first search. Roots
// are taken in node order and children in edge order, so the same snapshot
// always yields the same cycle. Edges pointing at unknown nodes are ignored.
// The zero Cycle is returned when the graph is acyclic.
func FindCycle(nodes []flow.Node, edges []flow.Edge) Cycle {
	const (
		white = iota
		gray
		black
	)

	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}
	adj := make(map[string][]string)
	for _, e := range edges {
		if known[e.Source] && known[e.Target] {
			adj[e.Source] = append(adj[e.Source], e.Target)
		}
	}

	color := make(map[string]int, len(nodes))
	var stack, path []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range adj[id] {
			switch color[next] {
			case gray:
				start := slices.Index(stack, next)
				path = slices.Clone(stack[start:])
				return true
			case white:
				if dfs(next) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, n := range nodes {
		if color[n.ID] == white && dfs(n.ID) {
			break
		}
	}
	if path == nil {
		return Cycle{}
	}

	onPath := make(map[string]bool, len(path))
	for _, id := range path {
		onPath[id] = true
	}
	var cycleEdges []flow.Edge
	for _, e := range edges {
		if onPath[e.Source] && onPath[e.Target] {
			cycleEdges = append(cycleEdges, e)
		}
	}
	return Cycle{Path: path, Edges: cycleEdges}
}

// FindCycleEdges returns the edges of the first cycle, or nil.
func FindCycleEdges(nodes []flow.Node, edges []flow.Edge) []flow.Edge {
	return FindCycle(nodes, edges).Edges
}

// RemoveCycle drops every edge sharing a source/target pair with an edge of
// c. Parallel edges between the same two nodes go together.
func RemoveCycle(edges []flow.Edge, c Cycle) (kept, removed []flow.Edge) {
	pairs := make(map[string]bool, len(c.Edges))
	for _, e := range c.Edges {
		pairs[e.Pair()] = true
	}
	kept = make([]flow.Edge, 0, len(edges))
	for _, e := range edges {
		if pairs[e.Pair()] {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}

// BreakCycles repeatedly finds and removes cycles until the graph is acyclic.
// Each round removes at least the closing back edge, so the loop terminates
// after at most len(edges) rounds. Removed edges are returned in the order
// they were dropped.
//
// Edges are copied shallowly; deep copy them with [flow.CloneEdges] before
// modifying their data.
func BreakCycles(nodes []flow.Node, edges []flow.Edge) (kept, removed []flow.Edge) {
	kept = slices.Clone(edges)
	for {
		c := FindCycle(nodes, kept)
		if !c.Found() {
			return kept, removed
		}
		var dropped []flow.Edge
		kept, dropped = RemoveCycle(kept, c)
		removed = append(removed, dropped...)
	}
}

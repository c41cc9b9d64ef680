package analysis

import (
	"slices"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

// Downstream returns the node with the given id followed by every node
// reachable from it, in depth-first pre-order. Unknown ids yield nil.
func Downstream(nodes []flow.Node, edges []flow.Edge, id string) []flow.Node {
	ix := flow.NewIndex(nodes, edges)
	start, ok := ix.Node(id)
	if !ok {
		return nil
	}
	seen := map[string]bool{id: true}
	out := []flow.Node{start.Clone()}
	var walk func(string)
	walk = func(cur string) {
		for _, next := range ix.Outgoers(cur) {
			if seen[next.ID] {
				continue
			}
			seen[next.ID] = true
			out = append(out, next.Clone())
			walk(next.ID)
		}
	}
	walk(id)
	return out
}

// Upstream returns every node that can reach id, farthest first. For a node
// inside a container the container's own upstream comes first, so the
// result lists everything a nested node can read from.
func Upstream(nodes []flow.Node, edges []flow.Edge, id string) []flow.Node {
	ix := flow.NewIndex(nodes, edges)
	seen := make(map[string]bool)
	return upstream(ix, id, seen)
}

// UpstreamWithParent is [Upstream] followed by the enclosing container
// itself, when there is one.
func UpstreamWithParent(nodes []flow.Node, edges []flow.Edge, id string) []flow.Node {
	ix := flow.NewIndex(nodes, edges)
	out := upstream(ix, id, make(map[string]bool))
	if n, ok := ix.Node(id); ok && n.IsNested() {
		if parent, ok := ix.Node(n.ParentID); ok {
			out = append(out, parent.Clone())
		}
	}
	return out
}

func upstream(ix *flow.Index, id string, seen map[string]bool) []flow.Node {
	n, ok := ix.Node(id)
	if !ok || seen[id] {
		return nil
	}
	seen[id] = true

	var out []flow.Node
	if n.IsNested() && ix.Has(n.ParentID) {
		out = upstream(ix, n.ParentID, seen)
	}

	// Collected nearest first, then reversed.
	var own []flow.Node
	var walk func(string)
	walk = func(cur string) {
		for _, prev := range ix.Incomers(cur) {
			if seen[prev.ID] {
				continue
			}
			seen[prev.ID] = true
			own = append(own, prev.Clone())
			walk(prev.ID)
		}
	}
	walk(id)
	slices.Reverse(own)
	return append(out, own...)
}

// LeafNodes returns the leaves reachable from the graph's entry without
// passing through id, followed by id's direct incomers, without duplicates.
// For a node inside a container the walk starts at the container's
// iteration-start node instead of the entry.
func LeafNodes(nodes []flow.Node, edges []flow.Edge, id string) []flow.Node {
	ix := flow.NewIndex(nodes, edges)
	root, ok := branchRoot(ix, id)
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var out []flow.Node
	add := func(n flow.Node) {
		if !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n.Clone())
		}
	}

	visited := make(map[string]bool)
	var walk func(flow.Node)
	walk = func(cur flow.Node) {
		if cur.ID == id || visited[cur.ID] {
			return
		}
		visited[cur.ID] = true
		outgoers := ix.Outgoers(cur.ID)
		if len(outgoers) == 0 {
			add(cur)
			return
		}
		for _, next := range outgoers {
			walk(next)
		}
	}
	walk(root)

	for _, prev := range ix.Incomers(id) {
		add(prev)
	}
	return out
}

func branchRoot(ix *flow.Index, id string) (flow.Node, bool) {
	if n, ok := ix.Node(id); ok && n.IsNested() {
		for _, c := range ix.Children(n.ParentID) {
			if c.IsIterationStart() {
				return c, true
			}
		}
		return flow.Node{}, false
	}
	return FindEntry(ix.Nodes())
}

// Children returns copies of the nodes whose parent is parentID.
func Children(nodes []flow.Node, parentID string) []flow.Node {
	var out []flow.Node
	for _, n := range nodes {
		if parentID != "" && n.ParentID == parentID {
			out = append(out, n.Clone())
		}
	}
	return out
}

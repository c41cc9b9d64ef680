package transform

import (
	"fmt"

	"github.com/matzehuels/wfgraph/pkg/flow"
)

func nodesOf(ids ...string) []flow.Node {
	out := make([]flow.Node, len(ids))
	for i, id := range ids {
		out[i] = flow.Node{ID: id}
	}
	return out
}

// edgesOf builds edges from "a>b" pairs.
func edgesOf(pairs ...string) []flow.Edge {
	out := make([]flow.Edge, 0, len(pairs))
	for i, p := range pairs {
		var src, dst string
		for j := 0; j < len(p); j++ {
			if p[j] == '>' {
				src, dst = p[:j], p[j+1:]
				break
			}
		}
		out = append(out, flow.Edge{ID: fmt.Sprintf("e%d", i), Source: src, Target: dst})
	}
	return out
}

// isAcyclic checks acyclicity with Kahn's algorithm, independent of FindCycle.
func isAcyclic(nodes []flow.Node, edges []flow.Edge) bool {
	known := make(map[string]bool)
	for _, n := range nodes {
		known[n.ID] = true
	}
	indeg := make(map[string]int)
	adj := make(map[string][]string)
	for _, e := range edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		indeg[e.Target]++
	}
	var queue []string
	for id := range known {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	seen := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		seen++
		for _, next := range adj[id] {
			indeg[next]--
			if indeg[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	return seen == len(known)
}

func edgeIDs(edges []flow.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}
	return out
}

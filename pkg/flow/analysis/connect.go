package analysis

import (
	"strings"

	"github.com/matzehuels/wfgraph/pkg/errors"
	"github.com/matzehuels/wfgraph/pkg/flow"
)

// LinkSuffix marks an aggregator created together with, and bound to,
// another node: "llm_link" aggregates the branches leaving "llm".
const LinkSuffix = "_link"

const aggregatorKind = "aggregator"

// CanConnect reports whether an edge from source to target may be drawn.
// It returns nil when the connection is allowed.
//
// A connection is rejected when:
//   - either endpoint does not exist
//   - the target is an iteration start, which only its container feeds
//   - either endpoint is a note
//   - the target is a bound aggregator and source is not its bound node or
//     downstream of it
//   - the edge would close a cycle, including a self-loop
func CanConnect(nodes []flow.Node, edges []flow.Edge, source, target string) error {
	ix := flow.NewIndex(nodes, edges)
	src, ok := ix.Node(source)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "source node %q not found", source)
	}
	dst, ok := ix.Node(target)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "target node %q not found", target)
	}

	if dst.IsIterationStart() {
		return errors.New(errors.ErrCodeInvalidConnection, "node %q is an iteration start and cannot be a target", target)
	}
	if src.IsNote() || dst.IsNote() {
		return errors.New(errors.ErrCodeInvalidConnection, "notes cannot be connected")
	}
	if bound, ok := boundSource(dst); ok && source != bound {
		if !ix.Has(bound) {
			return errors.New(errors.ErrCodeInvalidConnection, "aggregator %q is bound to missing node %q", target, bound)
		}
		if !reaches(ix.Incomers, source, bound) {
			return errors.New(errors.ErrCodeInvalidConnection, "aggregator %q only accepts branches of %q", target, bound)
		}
	}
	if source == target || reaches(ix.Outgoers, target, source) {
		return errors.New(errors.ErrCodeInvalidConnection, "connecting %q to %q would create a cycle", source, target)
	}
	return nil
}

// boundSource returns the id a bound aggregator was created for.
func boundSource(n flow.Node) (string, bool) {
	if !strings.Contains(n.ID, LinkSuffix) {
		return "", false
	}
	if kind, _ := n.Data.Extra["payload__kind"].(string); kind != aggregatorKind {
		return "", false
	}
	return strings.Replace(n.ID, LinkSuffix, "", 1), true
}

// reaches reports whether goal is reachable from start by repeatedly
// following next. start itself counts.
func reaches(next func(string) []flow.Node, start, goal string) bool {
	seen := make(map[string]bool)
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == goal {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		for _, n := range next(cur) {
			stack = append(stack, n.ID)
		}
	}
	return false
}

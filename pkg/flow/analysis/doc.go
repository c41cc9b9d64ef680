// Package analysis answers structural questions about a workflow snapshot:
// which nodes run, in which order, and which edits are allowed.
//
// # Tree Analysis
//
// [Analyze] walks the graph depth-first from its entry node, following
// outgoers in node-array order and visiting every node at most once. The
// [Report] lists the reachable nodes, groups them by the level at which they
// were first reached (the entry is level 1), records one execution path per
// leaf and collects everything unreached as orphaned. A graph without an
// entry node is not an error: nothing is reachable and every node is
// orphaned.
//
//	report := analysis.Analyze(g.Nodes, g.Edges)
//	if len(report.Orphaned) > 0 {
//	    // warn before running the workflow
//	}
//
// [AnalyzeFrom] starts at an explicit root instead, which is how the body of
// an iteration container is checked from its iteration-start node.
//
// # Branch Queries
//
// [Downstream], [Upstream] and [LeafNodes] answer the editor's variable
// pickers: which nodes come after a node, which come before it (crossing
// into the enclosing container), and which leaves of the graph a node can
// read from. [Children] lists the members of a container.
//
// # Connection Validation
//
// [CanConnect] decides whether the user may draw an edge between two nodes.
// Rejections carry the [errors.ErrCodeInvalidConnection] code, or
// [errors.ErrCodeNodeNotFound] when an endpoint does not exist.
package analysis

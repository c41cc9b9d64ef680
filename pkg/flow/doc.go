// Package flow defines the node and edge model of a workflow graph as it is
// edited on a canvas, together with the block kinds and identity rules every
// other engine package relies on.
//
// # Overview
//
// A workflow is an ordered collection of [Node] values and an ordered
// collection of [Edge] values. Nodes carry canvas fields (position, size,
// parent container) and a [NodeData] bag holding the block type, title and
// derived connection bookkeeping. Edges connect a source node handle to a
// target node handle and carry display metadata derived from their endpoints.
//
// The order of both slices is significant: cycle detection, traversal and
// layout all visit nodes in array order, which makes their results
// deterministic for a given snapshot.
//
// # Ownership
//
// Engine operations never mutate the slices they receive. Every
// transformation returns new slices; nodes and edges that change are deep
// copied with [Node.Clone] and [Edge.Clone].
//
// # Block Kinds
//
// The block type stored in [NodeData.Type] is an opaque [BlockType] string.
// [BlockType.Kind] resolves it to the closed [Kind] enumeration, and
// [Kind.Has] answers capability questions such as whether a block is the
// graph entry or may run on its own. Unknown block types resolve to
// [KindOther] and keep their original string.
//
// # Pass-through Fields
//
// Canvas and runtime fields the engine does not interpret are preserved in
// the Extra maps of nodes, edges and their data bags, and are written back
// unchanged when a graph is serialized.
//
// # Validation
//
// [Validate] checks the identity invariants of a snapshot: every node and
// edge id is non-empty and unique within its collection. It is the only
// failure the engine reports; every other anomaly is a normal graph state.
package flow

// Package layout computes deterministic left-to-right layered layouts for
// workflow graphs and positions nodes on the canvas from them.
//
// # Overview
//
// [Compute] lays out the top-level standard blocks of a workflow. Nodes inside
// iteration containers, notes and other decorative nodes are ignored, as are
// edges flagged as internal to an iteration. The result is a [Layout] holding
// each node's centre, footprint, rank and in-rank order.
//
// [Apply] turns a layout into canvas positions and returns the viewport the
// canvas should reset to.
//
// # Algorithm
//
// The engine is a compact Sugiyama-style pipeline with fixed parameters:
//
//  1. Acyclic: depth-first back edges are reversed, self-loops and parallel
//     edges dropped
//  2. Rank: longest-path ranks are tightened into a feasible tight tree per
//     weakly connected component, then shifted to start at rank 0
//  3. Virtual nodes: edges spanning several ranks are split into unit hops
//  4. Order: barycenter sweeps alternate downward and upward; the ordering
//     with the fewest crossings, counted with a Fenwick tree, wins
//  5. Coordinates: each rank becomes a column as wide as its widest node;
//     nodes are stacked from the top of their column and pulled toward the
//     median of their predecessors
//
// Virtual nodes never appear in the output, but their centres are used as
// bend points in [Route.Points].
//
// # Determinism
//
// Every stage iterates in node-array and edge-array order and sorts stably,
// so the same snapshot always produces the same layout.
//
// # Bounds
//
// [Bounds], [TopLeft], [OptimalViewport] and [NodesInRegion] answer
// geometric questions about already positioned nodes.
package layout

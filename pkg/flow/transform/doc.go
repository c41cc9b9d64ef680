// Package transform normalizes a workflow snapshot before it is shown on the
// canvas or handed to layout and analysis.
//
// # Overview
//
// Graphs arrive from the editor in whatever state the user left them: edges
// may form cycles, handles may be unset, and nodes loaded from an older draft
// may have no position at all. [Normalize] runs the complete pipeline:
//
//  1. [BreakCycles] removes edges until no cycle remains
//  2. [NormalizeEdges] fills defaults and endpoint display metadata
//  3. [InitializeNodes] places unpositioned graphs and recomputes the
//     connected-handle sets of every node
//
// Every function returns new slices and leaves its inputs untouched.
//
// # Cycle Detection
//
// [FindCycle] runs a three-colour depth-first search rooted at each
// unvisited node in array order and stops at the first back edge. The
// reported [Cycle] is the active DFS stack from the back edge's target to
// its source. Its edges are every edge whose endpoints both lie on that
// path, so parallel edges and chords inside the cycle are included.
//
// # Connection Tracking
//
// Interactive editing emits connect and disconnect events one at a time.
// [ConnectionTracker] applies them to per-node handle records seeded from the
// current node data, keeping them free of duplicates and logging every
// change. [ConnectionTracker.ApplyTo] writes the resulting sets onto copies
// of the nodes.
//
// # Persistence
//
// [StripTransient] removes the underscore-prefixed keys that only matter
// while a graph is being edited.
package transform

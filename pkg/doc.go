// Package pkg provides the core libraries of wfgraph, the graph engine behind
// a visual LLM workflow editor.
//
// # Overview
//
// A workflow is a set of blocks (nodes) joined by connections (edges) on a
// canvas. The engine keeps that graph consistent while it is edited: it
// breaks cycles, fills connection metadata, arranges the canvas left to
// right and works out which blocks are reachable from the start block.
//
// # Architecture
//
// The typical data flow:
//
//	Editor snapshot (JSON or YAML)
//	         ↓
//	    [graphio] package (decode + validate ids)
//	         ↓
//	    [flow/transform] package (break cycles, fill handles and metadata)
//	         ↓
//	    [flow/layout] package (ranks, positions, viewport)
//	         ↓
//	    [flow/analysis] package (levels, paths, orphans)
//	         ↓
//	    Arranged graph, report, DOT/SVG/PNG/PDF
//
// # Quick Start
//
// Normalize and arrange a graph by hand:
//
//	import (
//	    "github.com/matzehuels/wfgraph/pkg/flow/analysis"
//	    "github.com/matzehuels/wfgraph/pkg/flow/layout"
//	    "github.com/matzehuels/wfgraph/pkg/flow/transform"
//	)
//
//	res := transform.Normalize(g, transform.EdgeOptions{})
//	arranged, l := layout.Arrange(res.Graph)
//	report := analysis.Analyze(arranged.Nodes, arranged.Edges)
//
// Or run every stage with caching through [pipeline]:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, g, pipeline.Options{})
//
// # Main Packages
//
// [flow] - Graph model: nodes, edges, handles, block kinds and their
// capabilities, id validation and node generation.
//
// [flow/transform] - Cycle detection and removal, edge normalization,
// connected-handle bookkeeping and the connection tracker.
//
// [flow/layout] - Left-to-right layered layout of top-level blocks and the
// canvas geometry helpers.
//
// [flow/analysis] - Tree analysis from the entry block, upstream and
// downstream queries and interactive connection checks.
//
// [keyboard] - Platform detection and shortcut labels for the editor.
//
// [graphio] - JSON and YAML documents for graphs and layouts.
//
// [render] - DOT and Graphviz output plus SVG to PDF/PNG conversion.
//
// [pipeline] - The normalize → layout → analyze pipeline used by the CLI,
// with per-stage caching.
//
// [cache] - File, Redis and null caches behind one interface.
//
// [config], [errors], [observability] and [buildinfo] carry configuration,
// coded errors, logging hooks and version data.
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/flow
// [flow/transform]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/flow/transform
// [flow/layout]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/flow/layout
// [flow/analysis]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/flow/analysis
// [keyboard]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/keyboard
// [graphio]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/graphio
// [render]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/wfgraph/pkg/buildinfo
package pkg

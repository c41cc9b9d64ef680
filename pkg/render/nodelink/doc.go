// Package nodelink renders workflow graphs as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] turns a graph and its computed layout into DOT source that mirrors
// the canvas: ranks flow left to right, every rank of the layout becomes a
// rank=same group, and spacing is taken from the layout constants. Nodes
// inside an iteration container are drawn in a cluster named after the
// container. Notes appear as note shapes and never take part in ranking.
//
//	l := layout.Compute(g.Nodes, g.Edges)
//	dot := nodelink.ToDOT(g, l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Options
//
//   - Detailed: labels include the node id, block type and rank
//   - Orphaned: ids drawn dashed and tinted, typically taken from an
//     analysis report
//
// # Rendering
//
// [RenderSVG] uses the WebAssembly build of Graphviz bundled by
// github.com/goccy/go-graphviz, so no system Graphviz install is needed.
// PDF and PNG go through pkg/render and need rsvg-convert.
package nodelink

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/layout"
	"github.com/matzehuels/wfgraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the id, block type and rank to node labels.
	Detailed bool

	// Orphaned lists node ids to draw as unreachable.
	Orphaned []string
}

// pointsPerInch converts canvas pixels into Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a graph to Graphviz DOT. l may be nil, in which case no
// rank groups or sizes are emitted.
func ToDOT(g flow.Graph, l *layout.Layout, opts Options) string {
	orphaned := make(map[string]bool, len(opts.Orphaned))
	for _, id := range opts.Orphaned {
		orphaned[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", layout.RankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(layout.NodeSep))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(layout.RankSep))
	buf.WriteString("\n")

	known := make(map[string]bool, len(g.Nodes))
	var clusters []string
	members := make(map[string][]flow.Node)

	for _, n := range g.Nodes {
		if known[n.ID] {
			continue
		}
		known[n.ID] = true
		if n.IsNested() {
			if _, ok := members[n.ParentID]; !ok {
				clusters = append(clusters, n.ParentID)
			}
			members[n.ParentID] = append(members[n.ParentID], n)
			continue
		}
		writeNode(&buf, "  ", n, l, opts.Detailed, orphaned[n.ID])
	}

	for i, parent := range clusters {
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", parent)
		buf.WriteString("    style=\"rounded,dashed\";\n")
		for _, n := range members[parent] {
			writeNode(&buf, "    ", n, l, opts.Detailed, orphaned[n.ID])
		}
		buf.WriteString("  }\n")
	}

	if l != nil && len(l.Ranks) > 0 {
		buf.WriteString("\n")
		for _, rank := range l.Ranks {
			ids := make([]string, 0, len(rank))
			for _, id := range rank {
				ids = append(ids, strconv.Quote(id))
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if !known[e.Source] || !known[e.Target] {
			continue
		}
		var attrs []string
		if h := e.SourceHandleOrDefault(); h != flow.DefaultSourceHandle {
			attrs = append(attrs, fmt.Sprintf("taillabel=%q", h))
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, indent string, n flow.Node, l *layout.Layout, detailed, orphan bool) {
	p, placed := l.Placement(n.ID)
	attrs := []string{fmt.Sprintf("label=%q", label(n, p, placed, detailed))}
	switch {
	case n.IsNote():
		attrs = append(attrs, "shape=note", "fillcolor=lightyellow")
	case n.Kind().Has(flow.CapEntry):
		attrs = append(attrs, "peripheries=2")
	}
	if orphan {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=mistyrose")
	}
	if placed {
		attrs = append(attrs, "width="+inches(p.Width), "height="+inches(p.Height))
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, n.ID, strings.Join(attrs, ", "))
}

func label(n flow.Node, p layout.Placement, placed, detailed bool) string {
	title := n.Data.Title
	if title == "" {
		title = n.ID
	}
	if !detailed {
		return title
	}
	parts := []string{title, "id: " + n.ID}
	if n.Data.Type != "" {
		parts = append(parts, "type: "+string(n.Data.Type))
	}
	if placed {
		parts = append(parts, fmt.Sprintf("rank: %d", p.Rank))
	}
	return strings.Join(parts, "\n")
}

func inches(px float64) string {
	return strconv.FormatFloat(px/pointsPerInch, 'f', 2, 64)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg element with one whose viewBox
// starts at the origin and whose size matches it, so the image scales in
// a browser.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders DOT source as PDF via SVG.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// Render produces the requested output format from DOT source.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := render.ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatPDF:
		return RenderPDF(ctx, dot)
	case render.FormatPNG:
		return RenderPNG(ctx, dot, 2)
	}
	return RenderSVG(ctx, dot)
}

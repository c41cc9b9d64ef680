package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/pipeline"
	"github.com/matzehuels/wfgraph/pkg/render"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
		flags    runnerFlags
		opts     pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Draw a workflow graph as DOT, SVG, PNG or PDF",
		Long: `Render a workflow graph as a node-link diagram.

The graph is normalized, arranged and analyzed first. Blocks share a
column with the other blocks of their rank, blocks inside an iteration are
grouped in a cluster and unreachable blocks are drawn dashed.

SVG is rendered with an embedded Graphviz. PNG and PDF are converted from
the SVG and need rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = flags.refresh
			return c.runRender(cmd.Context(), args[0], output, parseFormats(formats), detailed, flags.noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <input> without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "svg", "output formats, comma separated: "+strings.Join(formatNames(), ", "))
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label blocks with their type and rank")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, formats []string, detailed, noCache bool, opts pipeline.Options) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}

	g, err := readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := c.newSpinner(ctx, "Rendering...")
	spinner.Start()

	res, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	var written []string
	for _, f := range formats {
		data, err := runner.Render(ctx, res, f, detailed)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", f, err)
		}
		path := base + "." + f
		if err := os.WriteFile(path, data, 0o644); err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("rendered %d file(s)", len(written)))

	out := c.printer()
	out.success("Rendered %s", input)
	for _, path := range written {
		out.file(path)
	}
	out.stats(res.Stats.NodeCount, len(res.Graph.Edges), res.CacheInfo.LayoutHit)
	if n := res.Stats.Orphaned; n > 0 {
		out.warning("%d unreachable block(s) drawn dashed", n)
	}
	return nil
}

func formatNames() []string {
	return []string{render.FormatDOT, render.FormatSVG, render.FormatPNG, render.FormatPDF}
}

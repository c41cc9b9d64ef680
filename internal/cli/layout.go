package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/graphio"
	"github.com/matzehuels/wfgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for auto-arranging a graph.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		layoutPath string
		flags      runnerFlags
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Auto-arrange the blocks of a workflow graph",
		Long: `Auto-arrange a workflow graph left to right.

The graph is normalized first; then top-level blocks are placed in ranks
with fixed spacing. Notes and blocks inside an iteration keep their
position. The viewport is reset so the whole graph is in view.

The arranged graph is written as <name>.arranged.<ext> unless -o is given.
--layout additionally writes the raw layout (ranks, placements and edge
routes) as JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = flags.refresh
			return c.runLayout(cmd.Context(), args[0], output, layoutPath, flags.noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.arranged.<ext>)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "also write the layout document to this JSON file")
	cmd.Flags().StringVar(&opts.SelectedNodeID, "selected", "", "id of the selected block")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output, layoutPath string, noCache bool, opts pipeline.Options) error {
	g, err := readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := c.newSpinner(ctx, "Computing layout...")
	spinner.Start()

	res, err := runner.Execute(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if output == "-" {
		return c.writeGraph(res.Graph, input)
	}
	if output == "" {
		output = derivedPath(input, ".arranged", "")
	}
	if err := graphio.WriteFile(res.Graph, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	out := c.printer()
	out.success("Layout complete")
	out.file(output)

	if layoutPath != "" {
		doc := graphio.LayoutDocument{Layout: res.Layout, Viewport: res.Viewport}
		if err := graphio.WriteLayoutFile(doc, layoutPath); err != nil {
			return fmt.Errorf("write layout %s: %w", layoutPath, err)
		}
		out.file(layoutPath)
	}

	out.stats(res.Stats.NodeCount, len(res.Graph.Edges), res.CacheInfo.LayoutHit)
	out.detail("%d ranks, %.0f × %.0f px", res.Stats.RankCount, res.Layout.Width, res.Layout.Height)
	out.newline()
	out.nextStep("Render", appName+" render "+output)
	return nil
}

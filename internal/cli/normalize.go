package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/graphio"
	"github.com/matzehuels/wfgraph/pkg/pipeline"
)

// normalizeCommand creates the normalize command.
func (c *CLI) normalizeCommand() *cobra.Command {
	var (
		output string
		flags  runnerFlags
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "normalize [graph]",
		Short: "Break cycles and fill connection metadata",
		Long: `Normalize a workflow graph file (JSON or YAML).

Edges that close a cycle are removed. The remaining edges get default
handles and endpoint metadata, and every block records which of its handles
are connected. Existing metadata is never overwritten.

The result is written next to the input as <name>.normalized.<ext>
unless -o is given. Use -o - to write to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = flags.refresh
			return c.runNormalize(cmd.Context(), args[0], output, flags.noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.normalized.<ext>)")
	cmd.Flags().StringVar(&opts.SelectedNodeID, "selected", "", "id of the selected block; edges touching it are flagged")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runNormalize(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	g, err := readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, cacheHit, err := runner.NormalizeWithCacheInfo(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		return c.writeGraph(res.Graph, input)
	}
	if output == "" {
		output = derivedPath(input, ".normalized", "")
	}
	if err := graphio.WriteFile(res.Graph, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	out := c.printer()
	out.success("Normalized graph")
	out.file(output)
	out.stats(len(res.Graph.Nodes), len(res.Graph.Edges), cacheHit)
	if n := len(res.RemovedEdges); n > 0 {
		out.warning("Removed %d edge(s) closing a cycle", n)
		for _, e := range res.RemovedEdges {
			out.detail("%s: %s → %s", e.ID, e.Source, e.Target)
		}
	}
	out.newline()
	out.nextStep("Arrange", appName+" layout "+output)
	return nil
}

// readGraph loads and validates a graph file.
func readGraph(path string) (flow.Graph, error) {
	g, err := graphio.ReadFile(path)
	if err != nil {
		return flow.Graph{}, fmt.Errorf("load graph: %w", err)
	}
	return g, nil
}

// writeGraph writes g to the command output in the format of input.
func (c *CLI) writeGraph(g flow.Graph, input string) error {
	f, err := graphio.FormatFromPath(input)
	if err != nil {
		return err
	}
	return graphio.Write(c.Out, g, f)
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/errors"
	"github.com/matzehuels/wfgraph/pkg/flow"
	"github.com/matzehuels/wfgraph/pkg/flow/analysis"
	"github.com/matzehuels/wfgraph/pkg/pipeline"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		asJSON bool
		strict bool
		flags  runnerFlags
		opts   pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "analyze [graph]",
		Short: "Report which blocks are reachable from the start block",
		Long: `Walk a workflow graph from its start block and report the blocks found
at each level, every root-to-leaf path and the blocks that are not reachable.

With --strict the command fails when the graph has no start block or when
any block is unreachable, which is what saving or running a workflow
requires.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = flags.refresh
			return c.runAnalyze(cmd.Context(), args[0], asJSON, strict, flags.noCache, opts)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when blocks are unreachable")
	cmd.Flags().StringVar(&opts.Root, "root", "", "walk from this block instead of the start block")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, asJSON, strict, noCache bool, opts pipeline.Options) error {
	report, cacheHit, err := c.analyze(ctx, input, noCache, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		c.printReport(report, cacheHit)
	}

	if strict {
		return checkReport(report)
	}
	return nil
}

// analyze normalizes the graph at input and walks it.
func (c *CLI) analyze(ctx context.Context, input string, noCache bool, opts pipeline.Options) (analysis.Report, bool, error) {
	g, err := readGraph(input)
	if err != nil {
		return analysis.Report{}, false, err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return analysis.Report{}, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	norm, err := runner.Normalize(ctx, g, opts)
	if err != nil {
		return analysis.Report{}, false, fmt.Errorf("normalize: %w", err)
	}
	report, hit, err := runner.AnalyzeWithCacheInfo(ctx, norm.Graph, opts)
	if err != nil {
		return analysis.Report{}, false, fmt.Errorf("analyze: %w", err)
	}
	return report, hit, nil
}

func (c *CLI) printReport(r analysis.Report, cacheHit bool) {
	out := c.printer()
	if !r.HasRoot() {
		out.warning("No start block found")
		out.detail("%d block(s), none reachable", len(r.Orphaned))
		return
	}

	out.success("Analyzed graph from %s", StyleHighlight.Render(r.Root))
	out.keyValue("reachable", strconv.Itoa(len(r.Reachable)))
	out.keyValue("depth", strconv.Itoa(r.MaxDepth))
	out.keyValue("paths", strconv.Itoa(len(r.Paths)))
	out.newline()

	rows := make([][]string, 0, len(r.Levels))
	for i, level := range r.Levels {
		if len(level) == 0 {
			continue
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), joinIDs(level)})
	}
	out.table([]string{"Level", "Blocks"}, rows)

	if len(r.Orphaned) == 0 {
		out.success("Every block is reachable")
	} else {
		out.warning("%d unreachable block(s): %s", len(r.Orphaned), joinIDs(r.Orphaned))
	}
	if cacheHit {
		out.detail(iconCached)
	}
}

// checkReport fails when the graph could not be saved or run as is.
func checkReport(r analysis.Report) error {
	if !r.HasRoot() {
		return errors.New(errors.ErrCodeNotFound, "graph has no start block")
	}
	if len(r.Orphaned) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "%d block(s) not reachable from %s: %s",
			len(r.Orphaned), r.Root, joinIDs(r.Orphaned))
	}
	return nil
}

func joinIDs(nodes []flow.Node) string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return strings.Join(ids, ", ")
}

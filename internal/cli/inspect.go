package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/pipeline"
)

// inspectCommand creates the interactive inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags runnerFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "inspect [graph]",
		Short: "Browse blocks, levels and connections interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Refresh = flags.refresh
			return c.runInspect(cmd.Context(), args[0], flags.noCache, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "walk from this block instead of the start block")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, noCache bool, opts pipeline.Options) error {
	g, err := readGraph(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	norm, err := runner.Normalize(ctx, g, opts)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	report, err := runner.Analyze(ctx, norm.Graph, opts)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	p := tea.NewProgram(NewInspectModel(norm.Graph, report), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

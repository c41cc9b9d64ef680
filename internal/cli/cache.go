package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/cache"
	"github.com/matzehuels/wfgraph/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached pipeline results",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached normalizations, layouts and reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer ch.Close()

			if err := cache.Clear(cmd.Context(), ch); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			out := c.printer()
			out.success("Cleared cache")
			out.detail("Location: %s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where results are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Out, c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, a redis:// address otherwise.
func (c *CLI) cacheLocation() string {
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return "disabled"
	case config.BackendRedis:
		return "redis://" + c.Config.Cache.RedisAddr
	}
	dir, err := c.cacheDir()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}

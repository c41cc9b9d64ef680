// Package cli implements the wfgraph command-line interface.
//
// The commands read workflow graph files (JSON or YAML), run them through
// the engine pipeline and write the results back out:
//   - normalize: break cycles and fill edge and node defaults
//   - layout: auto-arrange the canvas
//   - analyze: report reachability from the entry block
//   - render: draw the graph as DOT, SVG, PNG or PDF
//   - inspect: browse the analysis interactively
//   - keys: show editor shortcuts for the configured keyboard
//   - cache: manage cached pipeline results
//
// All commands support --verbose (-v) for debug-level logging and --config
// to point at a configuration file other than the default one.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wfgraph/pkg/buildinfo"
	"github.com/matzehuels/wfgraph/pkg/cache"
	"github.com/matzehuels/wfgraph/pkg/config"
	"github.com/matzehuels/wfgraph/pkg/keyboard"
	"github.com/matzehuels/wfgraph/pkg/observability"
	"github.com/matzehuels/wfgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "wfgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Logs and spinners go to the logger's
	// writer.
	Out io.Writer
	Err io.Writer

	// Config and Keyboard are resolved once before any command runs.
	Config   config.Config
	Keyboard keyboard.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Out:      os.Stdout,
		Err:      w,
		Config:   config.Default(),
		Keyboard: config.Default().KeyboardConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "wfgraph normalizes, arranges and validates workflow graphs",
		Long:         `wfgraph is a CLI tool for the graph behind a visual LLM workflow editor. It breaks cycles, fills connection metadata, auto-arranges blocks left to right and checks that every block is reachable from the start block.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default: "+defaultConfigHint()+")")

	root.AddCommand(c.normalizeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.keysCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// configure loads the configuration file and applies it. --verbose wins
// over the configured log level.
func (c *CLI) configure() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Keyboard = cfg.KeyboardConfig()

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	return nil
}

func defaultConfigHint() string {
	if p, err := config.DefaultPath(); err == nil {
		return p
	}
	return filepath.Join("$XDG_CONFIG_HOME", appName, config.FileName)
}

// =============================================================================
// Runner Factory
// =============================================================================

// runnerFlags are the cache flags shared by the pipeline commands.
type runnerFlags struct {
	noCache bool
	refresh bool
}

func (f *runnerFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and recompute")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if scope := c.Config.Cache.Scope; scope != "" {
		keyer = cache.NewScopedKeyer(nil, scope+":")
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	hooks := observability.NewLogHooks(c.Logger)
	runner.Hooks = observability.Hooks{Engine: hooks, Cache: hooks}
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner, nil
}

// newCache opens the configured cache backend. A file cache that cannot be
// created degrades to no caching; a configured Redis that cannot be reached
// is an error.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Cache.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG one
// (~/.cache/wfgraph/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// derivedPath returns input with its extension replaced by suffix+ext, so
// "flow.yaml" becomes "flow.arranged.yaml".
func derivedPath(input, suffix, ext string) string {
	if ext == "" {
		ext = filepath.Ext(input)
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ext
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

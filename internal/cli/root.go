// Package cli provides the cobra commands for lfucache.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lfucache/internal/cache"
	"lfucache/internal/config"
	"lfucache/internal/logging"
	"lfucache/internal/script"
)

// app carries state resolved by the root command for its subcommands.
type app struct {
	configPath string
	table      bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "lfucache",
		Short: "Fixed-capacity LFU cache driver",
		Long: `lfucache runs operation scripts against a fixed-capacity cache that
evicts the least frequently used entry when a new key arrives at capacity.

Ties between equally used entries go to the most recently inserted one unless
--tie-break=oldest is given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need a cache
			switch cmd.Name() {
			case "help", "completion", "schema":
				return nil
			}
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (yaml, toml or json)")
	pf.Int("capacity", config.DefaultCapacity, "maximum number of entries")
	pf.String("tie-break", config.DefaultTieBreak, "eviction tie-break: newest or oldest")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error")
	pf.String("log-format", logging.FormatConsole, "log format: console or json")
	pf.BoolVar(&a.table, "table", false, "render dumps as a table")

	root.AddCommand(newDemoCommand(a), newRunCommand(a), newSchemaCommand())
	return root
}

// Execute runs the root command.
func Execute() {
	// Signal-aware context is the root of ownership for the run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	lc, err := cfg.LoggingSettings()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(lc, cmd.ErrOrStderr())
	a.log.Debug().
		Str("config", a.configPath).
		Int("capacity", cfg.Cache.Capacity).
		Str("tie_break", cfg.Cache.TieBreak).
		Msg("configuration loaded")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithContext(ctx, a.log))
	return nil
}

// runner builds a fresh cache and a script runner writing to out.
// Evictions are announced on out and logged.
func (a *app) runner(out io.Writer) (*script.Runner, func() error, error) {
	cc, err := a.cfg.CacheSettings()
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.New[string, string](cc, cache.WithEvictionListener(func(key, _ string, uses int) {
		a.log.Debug().Str("key", key).Int("uses", uses).Msg("evict")
		fmt.Fprintf(out, "DISCARD: %s\n", key)
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("create cache: %w", err)
	}

	r := &script.Runner{Cache: c, Out: out}
	if a.table {
		r.Render = renderTable
	}
	return r, c.Close, nil
}

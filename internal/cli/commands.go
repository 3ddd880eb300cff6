package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lfucache/internal/config"
	"lfucache/internal/script"
)

func newDemoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demonstration script",
		Long: `Run the built-in demonstration: fill a cache with A-D, read B, insert E,
update C, read A-C, insert F-I, read I and H, insert J and K, dumping the
cache after each step. Evicted keys are printed as "DISCARD: <key>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, script.Demo())
		},
	}
}

func newRunCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script|->",
		Short: "Run an operation script",
		Long: `Run an operation script against a fresh cache. Use "-" to read from stdin.

Script lines:
  # comment
  echo <text...>
  put <key> <value...>
  get <key>
  dump
  stats`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			ops, err := script.Parse(in)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			return a.run(cmd, ops)
		},
	}
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func (a *app) run(cmd *cobra.Command, ops []script.Op) error {
	r, closeCache, err := a.runner(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeCache()

	if err := r.Run(cmd.Context(), ops); err != nil {
		a.log.Error().Err(err).Msg("script failed")
		return err
	}
	return nil
}

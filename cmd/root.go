// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/hydrate/cliparse"
)

// cfg is bound to the persistent flags and resolved before every command
var cfg cliparse.Config

var rootCmd = &cobra.Command{
	Use:   "hydrate",
	Short: "Multi-user water intake tracker",
	Long: `Hydrate tracks daily water intake for a small group of people.

Run without a subcommand it serves the JSON API and the pages, same as
"hydrate serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cliparse.Resolve(&cfg); err != nil {
			return err
		}
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg))
		return nil
	},
	RunE: runServe,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cliparse.BindFlags(rootCmd.PersistentFlags(), &cfg)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(w io.Writer, cfg cliparse.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/hydrate/cliparse"
	"github.com/danielhkuo/hydrate/db"
	"github.com/danielhkuo/hydrate/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DatabaseType == cliparse.DatabaseMemory {
			return fmt.Errorf("nothing to migrate for the %s store", cfg.DatabaseType)
		}
		if cfg.DatabaseURL == "" {
			return store.ErrNotConfigured
		}

		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := db.Migrate(cmd.Context(), conn, cfg.DatabaseType); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Migrations up to date")
		return nil
	},
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/hydrate/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default users if there are none",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := store.Seed(cmd.Context(), st)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d users)\n", res.Message, res.Count)
		return nil
	},
}

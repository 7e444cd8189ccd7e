// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog into an empty database",
	Long: `Import the built-in sample categories, tags and prompts.

Nothing happens when the database already holds at least one prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		core, _, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer core.Close()

		result, seeded, err := core.Transfer.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(cmd.ErrOrStderr(), "database already has prompts; nothing to seed")
			return nil
		}
		return writeValue(cmd.OutOrStdout(), outputFormat, result)
	},
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the catalog as a snapshot",
	Long: `Export every category, tag and prompt with natural-key references.

Examples:
  promptctl export > prompts.json
  promptctl export --format yaml --out prompts.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		core, _, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer core.Close()

		snapshot, err := core.Transfer.Export(cmd.Context())
		if err != nil {
			return err
		}

		var writer io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			file, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer file.Close()
			writer = file
		}

		return writeValue(writer, exportFormat, snapshot)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "destination file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", formatJSON, "snapshot format: json or yaml")
}

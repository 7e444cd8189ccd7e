// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/promptdb/internal/core/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge a snapshot file into the catalog",
	Long: `Import a snapshot produced by export (or written by hand).

Files ending in .yaml or .yml are read as YAML, everything else as JSON.
Categories are matched by slug and updated, tags matched by slug are kept,
and every prompt is inserted as a new row.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := readSnapshot(args[0])
		if err != nil {
			return err
		}

		core, _, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer core.Close()

		result, err := core.Transfer.ImportSnapshot(cmd.Context(), snapshot)
		if err != nil {
			return err
		}
		return writeValue(cmd.OutOrStdout(), outputFormat, result)
	},
}

// readSnapshot decodes path by its extension.
func readSnapshot(path string) (*transfer.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return transfer.DecodeYAML(raw)
	default:
		return transfer.Decode(raw)
	}
}

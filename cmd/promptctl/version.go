// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/taibuivan/promptdb/internal/platform/constants"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, constants.AppVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "  Go:       %s\n", runtime.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "  Snapshot: %s\n", constants.SnapshotVersion)
	},
}

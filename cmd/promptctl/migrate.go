// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/promptdb/internal/platform/config"
	"github.com/taibuivan/promptdb/internal/platform/migration"
	"github.com/taibuivan/promptdb/internal/platform/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Bring the configured database schema up to date.

PostgreSQL runs the golang-migrate migrations (embedded, or MIGRATION_PATH).
SQLite applies the embedded idempotent schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cfg.UsesSQLite() {
			db, err := sqlite.Open(cmd.Context(), cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			return db.Close()
		}

		status, err := migration.Up(cfg.DatabaseURL, cfg.MigrationPath, logger)
		if err != nil {
			return err
		}

		if status.Applied {
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d -> %d\n", status.From, status.To)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "already at version %d\n", status.To)
		}
		return nil
	},
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/promptdb/internal/catalog"
	"github.com/taibuivan/promptdb/internal/platform/config"
	"github.com/taibuivan/promptdb/internal/platform/constants"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "Manage a promptdb catalog",
	Long: `promptctl works directly against the database configured for the API
server (DATABASE_DRIVER, DATABASE_URL, REDIS_URL).

Commands:
  - migrate: apply the schema
  - seed:    load the sample catalog into an empty database
  - export:  write a snapshot as JSON or YAML
  - import:  merge a snapshot file into the catalog`,
	Version:       constants.AppVersion,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", formatJSON, "result format: json or yaml",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "log at debug level",
	)

	rootCmd.AddCommand(migrateCmd, seedCmd, exportCmd, importCmd, versionCmd)
}

// newLogger writes to stderr so stdout stays clean for snapshots.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openCatalog loads the environment and opens the configured backend.
func openCatalog(cmd *cobra.Command) (*catalog.Catalog, *slog.Logger, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	core, err := catalog.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return core, logger, nil
}

// writeValue renders v in format (json or yaml).
func writeValue(writer io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown format %q (want %q or %q)", format, formatJSON, formatYAML)
	}
}

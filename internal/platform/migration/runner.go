// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the PostgreSQL schema with golang-migrate.
//
// The SQL files come from the binary (data.Migrations) unless a directory on
// disk is configured. SQLite does not go through here; it applies its own
// idempotent schema in package sqlite.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/promptdb/data"
)

// Status describes the schema after a run.
type Status struct {
	From    uint
	To      uint
	Applied bool
}

// RunUp migrates the database at dsn to the newest version.
//
// migrationsPath overrides the embedded files when non-empty. A dirty schema
// (a previous run died mid-file) is reported and never forced.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	_, err := Up(dsn, migrationsPath, logger)
	return err
}

// Up is [RunUp] that also reports the versions before and after.
func Up(dsn string, migrationsPath string, logger *slog.Logger) (Status, error) {
	migrator, err := open(convertToPgx5DSN(dsn), migrationsPath)
	if err != nil {
		return Status{}, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Warn("migration_close_failed", slog.Any("source_error", sourceErr), slog.Any("db_error", dbErr))
		}
	}()

	from, err := version(migrator)
	if err != nil {
		return Status{}, err
	}

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return Status{From: from, To: from}, nil
	case err != nil:
		return Status{}, fmt.Errorf("migration: up from version %d: %w", from, err)
	}

	to, err := version(migrator)
	if err != nil {
		return Status{}, err
	}

	logger.Info("migration_applied", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return Status{From: from, To: to, Applied: true}, nil
}

// version treats an empty schema as version 0 and refuses dirty ones.
func version(migrator *migrate.Migrate) (uint, error) {
	current, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migration: read version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("migration: schema is dirty at version %d, fix it by hand and run `migrate force`", current)
	}
	return current, nil
}

func open(databaseURL, migrationsPath string) (*migrate.Migrate, error) {
	if migrationsPath != "" {
		return migrate.New("file://"+migrationsPath, databaseURL)
	}

	source, err := iofs.New(data.Migrations, data.MigrationsDir)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithSourceInstance("iofs", source, databaseURL)
}

// convertToPgx5DSN swaps the postgres scheme for the pgx5 one golang-migrate registers.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger routes golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return false
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package testdb provisions throwaway databases for repository and service tests.

SQLite databases live in t.TempDir() and need nothing installed. PostgreSQL
and Redis containers (postgres.go) are only compiled with -tags integration
and need Docker.
*/
package testdb

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/taibuivan/promptdb/internal/platform/sqlite"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SQLite opens a fresh, migrated database file and closes it on cleanup.
// A file is used instead of :memory: because every pooled connection to
// :memory: would see its own empty database.
func SQLite(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "promptdb.sqlite")
	db, err := sqlite.Open(context.Background(), path, Logger())
	if err != nil {
		t.Fatalf("testdb: open sqlite: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

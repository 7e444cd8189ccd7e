// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/data"
)

/*
TestConvertToPgx5DSN rewrites only the postgres schemes.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres", "postgres://u:p@db:5432/promptdb", "pgx5://u:p@db:5432/promptdb"},
		{"postgresql", "postgresql://db/promptdb?sslmode=disable", "pgx5://db/promptdb?sslmode=disable"},
		{"already_pgx5", "pgx5://db/promptdb", "pgx5://db/promptdb"},
		{"other", "host=db dbname=promptdb", "host=db dbname=promptdb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.dsn))
		})
	}
}

/*
TestEmbeddedSourceOpens checks the embedded files parse as a migration source.
*/
func TestEmbeddedSourceOpens(t *testing.T) {
	source, err := iofs.New(data.Migrations, data.MigrationsDir)
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}

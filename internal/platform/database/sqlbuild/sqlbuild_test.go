// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlbuild_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
)

/*
TestBuilder_Placeholders numbers arguments per dialect.
*/
func TestBuilder_Placeholders(t *testing.T) {
	tests := []struct {
		name    string
		dialect sqlbuild.Dialect
		want    string
	}{
		{"postgres", sqlbuild.Postgres, "WHERE a = $1 AND b IN ($2, $3)"},
		{"sqlite", sqlbuild.SQLite, "WHERE a = ? AND b IN (?, ?)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sqlbuild.New(tt.dialect)
			b.Write("WHERE a = ").Write(b.Arg(1))
			b.Write(" AND b IN (").Write(b.ArgList([]string{"x", "y"})).Write(")")

			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, []any{1, "x", "y"}, b.Args())
		})
	}
}

/*
TestAssignments builds a SET list sharing the builder's argument counter.
*/
func TestAssignments(t *testing.T) {
	b := sqlbuild.New(sqlbuild.Postgres)
	set := b.Set().Add("name", "Coding").Add("sortorder", 2)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "name = $1, sortorder = $2", set.String())
	assert.Equal(t, "$3", b.Arg("id"))
}

/*
TestContainsPattern escapes LIKE wildcards.
*/
func TestContainsPattern(t *testing.T) {
	assert.Equal(t, `%100\%%`, sqlbuild.ContainsPattern("100%"))
	assert.Equal(t, `%a\_b%`, sqlbuild.ContainsPattern("a_b"))
	assert.Equal(t, `%c:\\d%`, sqlbuild.ContainsPattern(`c:\d`))
	assert.Equal(t, "%review%", sqlbuild.ContainsPattern("review"))
}

/*
TestContainsMatch folds both operands on SQLite and uses ILIKE on PostgreSQL.
*/
func TestContainsMatch(t *testing.T) {
	assert.Equal(t, `p.title ILIKE $1 ESCAPE '\'`, sqlbuild.Postgres.ContainsMatch("p.title", "$1"))
	assert.Equal(t, `casefold(p.title) LIKE casefold(?) ESCAPE '\'`, sqlbuild.SQLite.ContainsMatch("p.title", "?"))
}

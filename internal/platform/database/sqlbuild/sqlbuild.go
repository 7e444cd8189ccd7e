// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sqlbuild assembles parameterized SQL for both storage backends.

Queries are written once with a [Builder]; each call to [Builder.Arg] records
the value and returns the placeholder the dialect expects ($N for PostgreSQL,
? for SQLite). Values never touch the SQL text.

	b := sqlbuild.New(sqlbuild.Postgres)
	b.Write("SELECT id FROM prompt WHERE status = ").Write(b.Arg("DRAFT"))
	rows, err := pool.Query(ctx, b.String(), b.Args()...)
*/
package sqlbuild

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax and operator spelling.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Placeholder returns the marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// FoldFunction is the SQL function the sqlite package registers to lower
// text with Unicode rules.
const FoldFunction = "casefold"

// ContainsMatch is a case-insensitive LIKE of column against the bound
// pattern. SQLite's built-in LIKE folds ASCII only, so both operands go
// through [FoldFunction] there.
func (d Dialect) ContainsMatch(column, placeholder string) string {
	if d == Postgres {
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, column, placeholder)
	}
	return fmt.Sprintf(`%[1]s(%[2]s) LIKE %[1]s(%[3]s) ESCAPE '\'`, FoldFunction, column, placeholder)
}

// likeEscaper neutralizes LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern wraps s as a substring pattern for use with ESCAPE '\'.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Builder accumulates SQL text and its arguments.
type Builder struct {
	dialect Dialect
	text    strings.Builder
	args    []any
}

// New starts an empty query.
func New(dialect Dialect) *Builder {
	return &Builder{dialect: dialect}
}

// Dialect reports the builder's dialect.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// Write appends raw SQL.
func (b *Builder) Write(sql string) *Builder {
	b.text.WriteString(sql)
	return b
}

// Arg records value and returns its placeholder.
func (b *Builder) Arg(value any) string {
	b.args = append(b.args, value)
	return b.dialect.Placeholder(len(b.args))
}

// ArgList records each value and returns "p1, p2, ...".
func (b *Builder) ArgList(values []string) string {
	placeholders := make([]string, len(values))
	for i, value := range values {
		placeholders[i] = b.Arg(value)
	}
	return strings.Join(placeholders, ", ")
}

// String returns the SQL text.
func (b *Builder) String() string {
	return b.text.String()
}

// Args returns the recorded arguments in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// # UPDATE helpers

// Assignments collects "col = placeholder" pairs for an UPDATE ... SET list.
type Assignments struct {
	builder *Builder
	parts   []string
}

// Set is a convenience for b.Assignments().
func (b *Builder) Set() *Assignments {
	return &Assignments{builder: b}
}

// Add records column = value.
func (a *Assignments) Add(column string, value any) *Assignments {
	a.parts = append(a.parts, column+" = "+a.builder.Arg(value))
	return a
}

// Len reports how many assignments were recorded.
func (a *Assignments) Len() int {
	return len(a.parts)
}

// String joins the assignments with commas.
func (a *Assignments) String() string {
	return strings.Join(a.parts, ", ")
}

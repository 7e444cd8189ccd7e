// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/database/schema"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
)

/*
hydratedSelect returns the prompt read shared by both backends.

The tag list is aggregated into a JSON array text column, so one row carries
the whole read model. Scan order: the 20 prompt columns in [schema.PromptTable]
order, category id, category name, category slug, tags JSON.
*/
func hydratedSelect(dialect sqlbuild.Dialect) string {
	aggregate := "json_group_array(json_object('id', t.%s, 'name', t.%s, 'slug', t.%s))"
	if dialect == sqlbuild.Postgres {
		aggregate = "json_agg(json_build_object('id', t.%s, 'name', t.%s, 'slug', t.%s))::text"
	}
	aggregate = fmt.Sprintf(aggregate, schema.Tag.ID, schema.Tag.Name, schema.Tag.Slug)

	columns := schema.Prompt.Columns()
	for i, column := range columns {
		columns[i] = "p." + column
	}

	return fmt.Sprintf(`
	SELECT %s,
	       c.%s, c.%s, c.%s,
	       COALESCE((
	           SELECT %s
	           FROM %s t
	           JOIN %s pt ON pt.%s = t.%s
	           WHERE pt.%s = p.%s
	       ), '[]')
	FROM %s p
	LEFT JOIN %s c ON c.%s = p.%s`,
		strings.Join(columns, ", "),
		schema.Category.ID, schema.Category.Name, schema.Category.Slug,
		aggregate,
		schema.Tag.Table,
		schema.PromptTag.Table, schema.PromptTag.TagID, schema.Tag.ID,
		schema.PromptTag.PromptID, schema.Prompt.ID,
		schema.Prompt.Table,
		schema.Category.Table, schema.Category.ID, schema.Prompt.CategoryID,
	)
}

var (
	selectPostgres = hydratedSelect(sqlbuild.Postgres)
	selectSQLite   = hydratedSelect(sqlbuild.SQLite)
)

func selectFor(dialect sqlbuild.Dialect) string {
	if dialect == sqlbuild.Postgres {
		return selectPostgres
	}
	return selectSQLite
}

func listQuery(dialect sqlbuild.Dialect, filter Filter) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(selectFor(dialect))
	writeWhere(b, filter)
	b.Write(listOrder)
	return b
}

func selectByID(dialect sqlbuild.Dialect, id string) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(selectFor(dialect)).Write(" WHERE p." + schema.Prompt.ID + " = ").Write(b.Arg(id))
	return b
}

var countQuery = "SELECT COUNT(*) FROM " + schema.Prompt.Table

// insertStatement writes every column except the usage pair, which keeps
// its database defaults.
func insertStatement(dialect sqlbuild.Dialect, prompt *Prompt, encodeTime func(time.Time) any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	set := []struct {
		column string
		value  any
	}{
		{schema.Prompt.ID, prompt.ID},
		{schema.Prompt.Title, prompt.Title},
		{schema.Prompt.Description, prompt.Description},
		{schema.Prompt.Body, prompt.Body},
		{schema.Prompt.Type, string(prompt.Type)},
		{schema.Prompt.Platform, string(prompt.Platform)},
		{schema.Prompt.ModelHint, prompt.ModelHint},
		{schema.Prompt.Language, prompt.Language},
		{schema.Prompt.UseCase, prompt.UseCase},
		{schema.Prompt.ClientOrProject, prompt.ClientOrProject},
		{schema.Prompt.Status, string(prompt.Status)},
		{schema.Prompt.IsFavorite, prompt.IsFavorite},
		{schema.Prompt.Version, prompt.Version},
		{schema.Prompt.Changelog, prompt.Changelog},
		{schema.Prompt.Notes, prompt.Notes},
		{schema.Prompt.CategoryID, prompt.CategoryID},
		{schema.Prompt.CreatedAt, encodeTime(prompt.CreatedAt)},
		{schema.Prompt.UpdatedAt, encodeTime(prompt.UpdatedAt)},
	}

	columns := make([]string, len(set))
	placeholders := make([]string, len(set))
	for i, pair := range set {
		columns[i] = pair.column
		placeholders[i] = b.Arg(pair.value)
	}

	b.Write(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.Prompt.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", ")))
	return b
}

// updateStatement builds a partial UPDATE from patch. updatedat is always set.
func updateStatement(dialect sqlbuild.Dialect, id string, patch Patch, at any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	set := b.Set().Add(schema.Prompt.UpdatedAt, at)

	if patch.Title != nil {
		set.Add(schema.Prompt.Title, *patch.Title)
	}
	if patch.Description.Set {
		set.Add(schema.Prompt.Description, patch.Description.Value)
	}
	if patch.Body != nil {
		set.Add(schema.Prompt.Body, *patch.Body)
	}
	if patch.Type != nil {
		set.Add(schema.Prompt.Type, string(*patch.Type))
	}
	if patch.Platform != nil {
		set.Add(schema.Prompt.Platform, string(*patch.Platform))
	}
	if patch.ModelHint.Set {
		set.Add(schema.Prompt.ModelHint, patch.ModelHint.Value)
	}
	if patch.Language != nil {
		set.Add(schema.Prompt.Language, *patch.Language)
	}
	if patch.UseCase != nil {
		set.Add(schema.Prompt.UseCase, *patch.UseCase)
	}
	if patch.ClientOrProject.Set {
		set.Add(schema.Prompt.ClientOrProject, patch.ClientOrProject.Value)
	}
	if patch.Status != nil {
		set.Add(schema.Prompt.Status, string(*patch.Status))
	}
	if patch.IsFavorite != nil {
		set.Add(schema.Prompt.IsFavorite, *patch.IsFavorite)
	}
	if patch.Version != nil {
		set.Add(schema.Prompt.Version, *patch.Version)
	}
	if patch.Changelog.Set {
		set.Add(schema.Prompt.Changelog, patch.Changelog.Value)
	}
	if patch.Notes.Set {
		set.Add(schema.Prompt.Notes, patch.Notes.Value)
	}
	if patch.CategoryID.Set {
		set.Add(schema.Prompt.CategoryID, patch.CategoryID.Value)
	}

	b.Write(fmt.Sprintf("UPDATE %s SET %s WHERE %s = ", schema.Prompt.Table, set.String(), schema.Prompt.ID))
	b.Write(b.Arg(id))
	return b
}

// incrementUsageStatement bumps the counter in a single statement so
// concurrent calls never lose an increment.
func incrementUsageStatement(dialect sqlbuild.Dialect, id string, at any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(fmt.Sprintf("UPDATE %s SET %s = %s + 1, %s = ",
		schema.Prompt.Table, schema.Prompt.UsageCount, schema.Prompt.UsageCount, schema.Prompt.LastUsedAt))
	b.Write(b.Arg(at))
	b.Write(fmt.Sprintf(" WHERE %s = ", schema.Prompt.ID)).Write(b.Arg(id))
	return b
}

func deleteStatement(dialect sqlbuild.Dialect, id string) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(fmt.Sprintf("DELETE FROM %s WHERE %s = ", schema.Prompt.Table, schema.Prompt.ID)).Write(b.Arg(id))
	return b
}

// # Tag links

func clearTagsStatement(dialect sqlbuild.Dialect) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		schema.PromptTag.Table, schema.PromptTag.PromptID, dialect.Placeholder(1))
}

func linkTagStatement(dialect sqlbuild.Dialect) string {
	return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s, %s)",
		schema.PromptTag.Table, schema.PromptTag.PromptID, schema.PromptTag.TagID,
		dialect.Placeholder(1), dialect.Placeholder(2))
}

// decodeTags parses the aggregated tag column and orders it by name.
func decodeTags(raw string) ([]TagRef, error) {
	tags := make([]TagRef, 0)
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	slices.SortFunc(tags, func(a, b TagRef) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return tags, nil
}

// categoryRef builds the embedded category from the LEFT JOIN columns.
func categoryRef(id, name, slug *string) *CategoryRef {
	if id == nil {
		return nil
	}
	ref := &CategoryRef{ID: *id}
	if name != nil {
		ref.Name = *name
	}
	if slug != nil {
		ref.Slug = *slug
	}
	return ref
}

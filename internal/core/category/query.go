// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"fmt"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/database/schema"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
)

// selectColumns is the hydrated read shared by both backends. Scan order:
// id, name, slug, parentid, sortorder, createdat, updatedat, parent name,
// prompt count, child count.
var selectColumns = fmt.Sprintf(`
	SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
	       parent.%s,
	       (SELECT COUNT(*) FROM %s pr WHERE pr.%s = c.%s),
	       (SELECT COUNT(*) FROM %s child WHERE child.%s = c.%s)
	FROM %s c
	LEFT JOIN %s parent ON parent.%s = c.%s`,
	schema.Category.ID, schema.Category.Name, schema.Category.Slug, schema.Category.ParentID,
	schema.Category.SortOrder, schema.Category.CreatedAt, schema.Category.UpdatedAt,
	schema.Category.Name,
	schema.Prompt.Table, schema.Prompt.CategoryID, schema.Category.ID,
	schema.Category.Table, schema.Category.ParentID, schema.Category.ID,
	schema.Category.Table,
	schema.Category.Table, schema.Category.ID, schema.Category.ParentID,
)

var listOrder = fmt.Sprintf(" ORDER BY c.%s ASC, c.%s ASC, c.%s ASC",
	schema.Category.SortOrder, schema.Category.Name, schema.Category.ID)

func selectByID(dialect sqlbuild.Dialect, id string) *sqlbuild.Builder {
	return selectWhere(dialect, schema.Category.ID, id)
}

func selectBySlug(dialect sqlbuild.Dialect, slug string) *sqlbuild.Builder {
	return selectWhere(dialect, schema.Category.Slug, slug)
}

// selectWhere builds the hydrated read filtered on one column.
func selectWhere(dialect sqlbuild.Dialect, column string, value any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(selectColumns).Write(" WHERE c." + column + " = ").Write(b.Arg(value))
	return b
}

// insertStatement builds the INSERT for a new row. encodeTime adapts
// timestamps to the backend's column type.
func insertStatement(dialect sqlbuild.Dialect, category *Category, encodeTime func(time.Time) any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s) VALUES (",
		schema.Category.Table,
		schema.Category.ID, schema.Category.Name, schema.Category.Slug, schema.Category.ParentID,
		schema.Category.SortOrder, schema.Category.CreatedAt, schema.Category.UpdatedAt,
	))
	b.Write(b.Arg(category.ID)).Write(", ")
	b.Write(b.Arg(category.Name)).Write(", ")
	b.Write(b.Arg(category.Slug)).Write(", ")
	b.Write(b.Arg(category.ParentID)).Write(", ")
	b.Write(b.Arg(category.SortOrder)).Write(", ")
	b.Write(b.Arg(encodeTime(category.CreatedAt))).Write(", ")
	b.Write(b.Arg(encodeTime(category.UpdatedAt))).Write(")")
	return b
}

// updateStatement builds a partial UPDATE from patch.
func updateStatement(dialect sqlbuild.Dialect, id string, patch Patch, at any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	set := b.Set().Add(schema.Category.UpdatedAt, at)

	if patch.Name != nil {
		set.Add(schema.Category.Name, *patch.Name)
	}
	if patch.Slug != nil {
		set.Add(schema.Category.Slug, *patch.Slug)
	}
	if patch.ParentID.Set {
		set.Add(schema.Category.ParentID, patch.ParentID.Value)
	}
	if patch.SortOrder != nil {
		set.Add(schema.Category.SortOrder, *patch.SortOrder)
	}

	b.Write(fmt.Sprintf("UPDATE %s SET %s WHERE %s = ", schema.Category.Table, set.String(), schema.Category.ID))
	b.Write(b.Arg(id))
	return b
}

func deleteStatement(dialect sqlbuild.Dialect, id string) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(fmt.Sprintf("DELETE FROM %s WHERE %s = ", schema.Category.Table, schema.Category.ID)).Write(b.Arg(id))
	return b
}

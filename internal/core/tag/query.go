// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"fmt"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/database/schema"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
)

// selectColumns scan order: id, name, slug, createdat, updatedat, prompt count.
var selectColumns = fmt.Sprintf(`
	SELECT t.%s, t.%s, t.%s, t.%s, t.%s,
	       (SELECT COUNT(*) FROM %s pt WHERE pt.%s = t.%s)
	FROM %s t`,
	schema.Tag.ID, schema.Tag.Name, schema.Tag.Slug, schema.Tag.CreatedAt, schema.Tag.UpdatedAt,
	schema.PromptTag.Table, schema.PromptTag.TagID, schema.Tag.ID,
	schema.Tag.Table,
)

var listOrder = fmt.Sprintf(" ORDER BY t.%s ASC, t.%s ASC", schema.Tag.Name, schema.Tag.ID)

func selectWhere(dialect sqlbuild.Dialect, column, value string) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(selectColumns).Write(" WHERE t." + column + " = ").Write(b.Arg(value))
	return b
}

func insertStatement(dialect sqlbuild.Dialect, tag *Tag, encodeTime func(time.Time) any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (",
		schema.Tag.Table, schema.Tag.ID, schema.Tag.Name, schema.Tag.Slug, schema.Tag.CreatedAt, schema.Tag.UpdatedAt))
	b.Write(b.Arg(tag.ID)).Write(", ")
	b.Write(b.Arg(tag.Name)).Write(", ")
	b.Write(b.Arg(tag.Slug)).Write(", ")
	b.Write(b.Arg(encodeTime(tag.CreatedAt))).Write(", ")
	b.Write(b.Arg(encodeTime(tag.UpdatedAt))).Write(")")
	return b
}

func updateStatement(dialect sqlbuild.Dialect, id string, patch Patch, at any) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	set := b.Set().Add(schema.Tag.UpdatedAt, at)

	if patch.Name != nil {
		set.Add(schema.Tag.Name, *patch.Name)
	}
	if patch.Slug != nil {
		set.Add(schema.Tag.Slug, *patch.Slug)
	}

	b.Write(fmt.Sprintf("UPDATE %s SET %s WHERE %s = ", schema.Tag.Table, set.String(), schema.Tag.ID))
	b.Write(b.Arg(id))
	return b
}

func deleteStatement(dialect sqlbuild.Dialect, id string) *sqlbuild.Builder {
	b := sqlbuild.New(dialect)
	b.Write(fmt.Sprintf("DELETE FROM %s WHERE %s = ", schema.Tag.Table, schema.Tag.ID)).Write(b.Arg(id))
	return b
}

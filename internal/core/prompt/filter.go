// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"fmt"
	"strings"

	"github.com/taibuivan/promptdb/internal/platform/database/schema"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
)

// # Search & Filtering

// Filter holds the optional criteria of a prompt listing. Zero values
// impose no constraint; every active criterion is ANDed with the others.
type Filter struct {
	// Search matches a substring of title, description or body, ignoring case.
	Search string

	CategoryID string

	// TagIDs matches prompts carrying at least one of the tags.
	TagIDs []string

	Platform   Platform
	Status     Status
	IsFavorite *bool
	Language   string
}

// IsEmpty reports whether the filter matches every prompt.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.CategoryID == "" && len(f.TagIDs) == 0 &&
		f.Platform == "" && f.Status == "" && f.IsFavorite == nil && f.Language == ""
}

/*
writeWhere appends the WHERE clause for filter to b.

Description: Each active criterion contributes one condition referencing the
prompt alias "p". Values are always bound through the builder. The search term
is escaped so that %, _ and \ match literally.

Parameters:
  - b: *sqlbuild.Builder positioned right after the FROM/JOIN section
  - filter: Filter criteria to translate
*/
func writeWhere(b *sqlbuild.Builder, filter Filter) {
	var conditions []string

	// Free text search over the three text columns
	if filter.Search != "" {
		pattern := sqlbuild.ContainsPattern(filter.Search)

		var parts []string
		for _, column := range []string{schema.Prompt.Title, schema.Prompt.Description, schema.Prompt.Body} {
			parts = append(parts, b.Dialect().ContainsMatch("p."+column, b.Arg(pattern)))
		}
		conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")
	}

	// Exact match dimensions
	if filter.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", schema.Prompt.CategoryID, b.Arg(filter.CategoryID)))
	}
	if filter.Platform != "" {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", schema.Prompt.Platform, b.Arg(string(filter.Platform))))
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", schema.Prompt.Status, b.Arg(string(filter.Status))))
	}
	if filter.IsFavorite != nil {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", schema.Prompt.IsFavorite, b.Arg(*filter.IsFavorite)))
	}
	if filter.Language != "" {
		conditions = append(conditions, fmt.Sprintf("p.%s = %s", schema.Prompt.Language, b.Arg(filter.Language)))
	}

	// Tag Filtering (OR logic: any one of the tags is enough)
	if len(filter.TagIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s ft WHERE ft.%s = p.%s AND ft.%s IN (%s))",
			schema.PromptTag.Table, schema.PromptTag.PromptID, schema.Prompt.ID,
			schema.PromptTag.TagID, b.ArgList(distinct(filter.TagIDs)),
		))
	}

	if len(conditions) > 0 {
		b.Write(" WHERE " + strings.Join(conditions, " AND "))
	}
}

// listOrder puts the most recently modified prompts first; id breaks ties.
var listOrder = fmt.Sprintf(" ORDER BY p.%s DESC, p.%s ASC", schema.Prompt.UpdatedAt, schema.Prompt.ID)

// distinct drops repeated ids while keeping first-seen order.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

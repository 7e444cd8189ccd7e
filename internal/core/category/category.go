// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the hierarchical grouping of prompts.

A category may point at a parent category. Names are free text; slugs are the
unique natural key used by import and export to match rows across databases.
*/
package category

import (
	"time"

	"github.com/taibuivan/promptdb/pkg/optional"
)

// Validation field names, matching the JSON keys.
const (
	FieldName      = "name"
	FieldSlug      = "slug"
	FieldParentID  = "parentId"
	FieldSortOrder = "sortOrder"
)

// Resource is the name used in client-facing error messages.
const Resource = "Category"

// MaxNameLength bounds display names.
const MaxNameLength = 100

// Category is a node in the prompt classification tree.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parentId"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Read-model fields, filled by repository reads only.
	ParentName  *string `json:"parentName"`
	PromptCount int     `json:"promptCount"`
	ChildCount  int     `json:"childCount"`
}

// Patch lists the columns an update may change. Nil (or unset) leaves the
// column alone; ParentID set to null detaches the category from its parent.
type Patch struct {
	Name      *string
	Slug      *string
	ParentID  optional.Field[string]
	SortOrder *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && !p.ParentID.Set && p.SortOrder == nil
}

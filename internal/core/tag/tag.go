// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tag manages the flat labels attached to prompts.
package tag

import "time"

// Validation field names, matching the JSON keys.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Resource is the name used in client-facing error messages.
const Resource = "Tag"

// MaxNameLength bounds display names.
const MaxNameLength = 60

// Tag is a free-form label. Slug is its unique natural key.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// PromptCount is filled by repository reads.
	PromptCount int `json:"promptCount"`
}

// Patch lists the columns an update may change; nil leaves a column alone.
type Patch struct {
	Name *string
	Slug *string
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package prompt defines the central entity of the catalog: a reusable AI prompt.

Core Responsibility:

  - Catalog: title, body, target platform and lifecycle status of each prompt.
  - Classification: an optional category and any number of tags.
  - Usage: a monotonically increasing counter bumped when a prompt is copied.

The listing filter lives in filter.go; persistence for both backends lives in
the store_*.go files.
*/
package prompt

import (
	"time"

	"github.com/taibuivan/promptdb/pkg/optional"
	"github.com/taibuivan/promptdb/pkg/slice"
)

// # Domain Enums

// Type is the conversational role the prompt is written for.
type Type string

const (
	TypeSystem Type = "SYSTEM"
	TypeUser   Type = "USER"
	TypeTool   Type = "TOOL"
)

// Types lists every valid [Type] in display order.
var Types = []string{string(TypeSystem), string(TypeUser), string(TypeTool)}

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	switch t {
	case TypeSystem, TypeUser, TypeTool:
		return true
	}
	return false
}

// Platform is the product the prompt targets.
type Platform string

const (
	PlatformChatGPT    Platform = "CHATGPT"
	PlatformCursor     Platform = "CURSOR"
	PlatformMidjourney Platform = "MIDJOURNEY"
	PlatformSuno       Platform = "SUNO"
	PlatformOther      Platform = "OTHER"
)

// Platforms lists every valid [Platform].
var Platforms = []string{
	string(PlatformChatGPT),
	string(PlatformCursor),
	string(PlatformMidjourney),
	string(PlatformSuno),
	string(PlatformOther),
}

// IsValid reports whether p is a recognised [Platform] value.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformChatGPT, PlatformCursor, PlatformMidjourney, PlatformSuno, PlatformOther:
		return true
	}
	return false
}

// Status tracks how far a prompt has been validated.
type Status string

const (
	// StatusDraft is the default for new prompts.
	StatusDraft Status = "DRAFT"

	// StatusTested marks prompts that were tried at least once.
	StatusTested Status = "TESTED"

	// StatusProduction marks prompts in regular use.
	StatusProduction Status = "PRODUCTION"
)

// Statuses lists every valid [Status].
var Statuses = []string{string(StatusDraft), string(StatusTested), string(StatusProduction)}

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusTested, StatusProduction:
		return true
	}
	return false
}

// # Defaults

const (
	DefaultLanguage = "en"
	DefaultStatus   = StatusDraft
	DefaultVersion  = 1
)

// # Field Identifiers

// Validation field names, matching the JSON keys.
const (
	FieldTitle      = "title"
	FieldBody       = "body"
	FieldType       = "type"
	FieldPlatform   = "platform"
	FieldLanguage   = "language"
	FieldUseCase    = "useCase"
	FieldStatus     = "status"
	FieldVersion    = "version"
	FieldCategoryID = "categoryId"
	FieldTagIDs     = "tagIds"
)

// Resource is the name used in client-facing error messages.
const Resource = "Prompt"

// MaxTitleLength bounds prompt titles.
const MaxTitleLength = 200

// # Core Entities

// Prompt is a single reusable prompt with its metadata.
type Prompt struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Body            string     `json:"body"`
	Type            Type       `json:"type"`
	Platform        Platform   `json:"platform"`
	ModelHint       *string    `json:"modelHint"`
	Language        string     `json:"language"`
	UseCase         string     `json:"useCase"`
	ClientOrProject *string    `json:"clientOrProject"`
	Status          Status     `json:"status"`
	IsFavorite      bool       `json:"isFavorite"`
	Version         int        `json:"version"`
	Changelog       *string    `json:"changelog"`
	Notes           *string    `json:"notes"`
	UsageCount      int        `json:"usageCount"`
	LastUsedAt      *time.Time `json:"lastUsedAt"`
	CategoryID      *string    `json:"categoryId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Read model, filled by repository reads.
	Category *CategoryRef `json:"category"`
	Tags     []TagRef     `json:"tags"`

	// TagIDs is write-only input for Create.
	TagIDs []string `json:"-"`
}

// CategoryRef is the embedded category of a [Prompt].
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRef is one embedded tag of a [Prompt].
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagNames returns the names of the attached tags in order.
func (p *Prompt) TagNames() []string {
	return slice.Map(p.Tags, func(tag TagRef) string { return tag.Name })
}

// Patch lists the columns an update may change. Pointer fields are left alone
// when nil; optional fields can also be cleared with an explicit null.
// TagIDs, when non-nil, replaces the whole tag set.
type Patch struct {
	Title           *string
	Description     optional.Field[string]
	Body            *string
	Type            *Type
	Platform        *Platform
	ModelHint       optional.Field[string]
	Language        *string
	UseCase         *string
	ClientOrProject optional.Field[string]
	Status          *Status
	IsFavorite      *bool
	Version         *int
	Changelog       optional.Field[string]
	Notes           optional.Field[string]
	CategoryID      optional.Field[string]
	TagIDs          *[]string
}

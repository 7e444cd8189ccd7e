// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package transfer moves the catalog in and out of the database as a portable
snapshot document.

Snapshots never carry storage ids. Categories and tags are matched by slug,
references between entries use names, so a snapshot exported from one database
can be imported into any other.

Core Responsibility:

  - Export: read categories, tags and prompts and flatten them into a [Snapshot].
  - Import: merge a [Snapshot] into the store in dependency order (see [Reconciler]).
  - Seed: load the embedded sample catalog into an empty database.
*/
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// exportedAtLayout is RFC 3339 in UTC with millisecond precision.
const exportedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// # Document Shape

// Snapshot is the import/export document.
type Snapshot struct {
	Version    string          `json:"version" yaml:"version"`
	ExportedAt string          `json:"exportedAt" yaml:"exportedAt"`
	Categories []CategoryEntry `json:"categories" yaml:"categories"`
	Tags       []TagEntry      `json:"tags" yaml:"tags"`
	Prompts    []PromptEntry   `json:"prompts" yaml:"prompts"`
}

// CategoryEntry references its parent by name.
type CategoryEntry struct {
	Name      string  `json:"name" yaml:"name"`
	Slug      string  `json:"slug" yaml:"slug"`
	Parent    *string `json:"parent" yaml:"parent"`
	SortOrder *int    `json:"sortOrder" yaml:"sortOrder"`
}

type TagEntry struct {
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// PromptEntry carries every scalar field of a prompt, its category as a name
// and its tags as a list of names. Usage and timestamps are informational:
// import always starts a fresh row.
type PromptEntry struct {
	Title           string     `json:"title" yaml:"title"`
	Description     *string    `json:"description" yaml:"description"`
	Body            string     `json:"body" yaml:"body"`
	Type            string     `json:"type" yaml:"type"`
	Platform        string     `json:"platform" yaml:"platform"`
	ModelHint       *string    `json:"modelHint" yaml:"modelHint"`
	Language        string     `json:"language" yaml:"language"`
	UseCase         string     `json:"useCase" yaml:"useCase"`
	ClientOrProject *string    `json:"clientOrProject" yaml:"clientOrProject"`
	Status          string     `json:"status" yaml:"status"`
	IsFavorite      bool       `json:"isFavorite" yaml:"isFavorite"`
	Version         int        `json:"version" yaml:"version"`
	Changelog       *string    `json:"changelog" yaml:"changelog"`
	Notes           *string    `json:"notes" yaml:"notes"`
	UsageCount      int        `json:"usageCount" yaml:"usageCount"`
	LastUsedAt      *time.Time `json:"lastUsedAt" yaml:"lastUsedAt"`
	CreatedAt       *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Category        *string    `json:"category" yaml:"category"`
	Tags            []string   `json:"tags" yaml:"tags"`
}

// # Decoding

/*
Decode validates raw JSON against the snapshot schema and decodes it.

Description: The document is checked as a whole before anything is written, so
a wrong type anywhere (for example "categories": "x") fails the import up front.

Returns:
  - *Snapshot: The decoded document
  - error: apperr VALIDATION_ERROR with one detail per schema violation
*/
func Decode(raw []byte) (*Snapshot, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, invalidFormat(fmt.Errorf("decode: %w", err))
	}

	if err := validateDocument(document); err != nil {
		return nil, err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, invalidFormat(err)
	}
	return &snapshot, nil
}

// DecodeYAML accepts the same document written as YAML.
func DecodeYAML(raw []byte) (*Snapshot, error) {
	var document any
	if err := yaml.Unmarshal(raw, &document); err != nil {
		return nil, invalidFormat(fmt.Errorf("yaml: %w", err))
	}

	asJSON, err := json.Marshal(document)
	if err != nil {
		return nil, invalidFormat(fmt.Errorf("yaml to json: %w", err))
	}
	return Decode(asJSON)
}

// EncodeYAML renders snapshot as YAML.
func EncodeYAML(snapshot *Snapshot) ([]byte, error) {
	var buffer bytes.Buffer

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(snapshot); err != nil {
		return nil, fmt.Errorf("transfer: encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("transfer: encode yaml: %w", err)
	}
	return buffer.Bytes(), nil
}

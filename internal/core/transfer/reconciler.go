// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/validate"
	"github.com/taibuivan/promptdb/pkg/optional"
	"github.com/taibuivan/promptdb/pkg/pointer"
	"github.com/taibuivan/promptdb/pkg/uuid"
)

// # Import Report

// Warning kinds.
const (
	WarningInvalid            = "invalid"
	WarningFailed             = "failed"
	WarningUnresolvedParent   = "unresolved_parent"
	WarningUnresolvedCategory = "unresolved_category"
	WarningUnresolvedTag      = "unresolved_tag"
)

// Entity kinds named in warnings.
const (
	EntityCategory = "category"
	EntityTag      = "tag"
	EntityPrompt   = "prompt"
)

// Warning describes one row that was skipped or one reference that was dropped.
type Warning struct {
	Kind    string `json:"kind"`
	Entity  string `json:"entity"`
	Ref     string `json:"ref"`
	Message string `json:"message"`
}

// Summary counts what an import touched. Categories and Tags are the sizes
// of the name maps, so matched rows count as well as created ones.
type Summary struct {
	Prompts    int `json:"prompts"`
	Categories int `json:"categories"`
	Tags       int `json:"tags"`
}

// Result is the outcome of one import run.
type Result struct {
	Imported Summary   `json:"imported"`
	Warnings []Warning `json:"warnings"`
}

// PromptRestorer validates and stores one snapshot prompt. *prompt.Service
// satisfies it.
type PromptRestorer interface {
	Restore(context context.Context, input prompt.CreateInput) (*prompt.Prompt, error)
}

// # Reconciler

/*
Reconciler merges a [Snapshot] into the store.

Description: Rows are processed in foreign key order: categories (create or
update by slug), category parent links, tags (create by slug, never modified),
then prompts (always inserted). Name to id maps built along the way resolve
the references. Each row is written on its own; a failing row becomes a
[Warning] and the run continues.

Slugs are opaque keys here. Rows only need a name and a slug; the format and
length rules of the API do not apply to imported data.
*/
type Reconciler struct {
	categories category.Repository
	tags       tag.Repository
	prompts    PromptRestorer
	logger     *slog.Logger
	now        func() time.Time
}

// NewReconciler constructs a new [Reconciler].
func NewReconciler(categories category.Repository, tags tag.Repository, prompts PromptRestorer, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		categories: categories,
		tags:       tags,
		prompts:    prompts,
		logger:     logger,
		now:        time.Now,
	}
}

// pass is one ordered step of an import.
type pass func(context.Context, *Snapshot) error

// run holds the transient state of a single import.
type run struct {
	*Reconciler
	categoryIDs map[string]string
	tagIDs      map[string]string

	// Names present in the snapshot, imported or not.
	categoryNames map[string]bool
	tagNames      map[string]bool

	result Result
}

/*
Reconcile applies snapshot.

Parameters:
  - context: context.Context (cancellation stops the run between rows)

Returns:
  - *Result: Counts and warnings, also when an error is returned
  - error: Only context cancellation; row failures are warnings
*/
func (reconciler *Reconciler) Reconcile(context context.Context, snapshot *Snapshot) (*Result, error) {
	current := &run{
		Reconciler:  reconciler,
		categoryIDs:   make(map[string]string),
		tagIDs:        make(map[string]string),
		categoryNames: make(map[string]bool, len(snapshot.Categories)),
		tagNames:      make(map[string]bool, len(snapshot.Tags)),
		result:        Result{Warnings: make([]Warning, 0)},
	}
	for _, entry := range snapshot.Categories {
		current.categoryNames[entry.Name] = true
	}
	for _, entry := range snapshot.Tags {
		current.tagNames[entry.Name] = true
	}

	steps := []pass{
		current.mergeCategories,
		current.linkParents,
		current.mergeTags,
		current.insertPrompts,
	}

	var err error
	for _, step := range steps {
		if err = step(context, snapshot); err != nil {
			break
		}
	}

	current.result.Imported.Categories = len(current.categoryIDs)
	current.result.Imported.Tags = len(current.tagIDs)

	reconciler.logger.InfoContext(context, "import_finished",
		slog.Int("prompts", current.result.Imported.Prompts),
		slog.Int("categories", current.result.Imported.Categories),
		slog.Int("tags", current.result.Imported.Tags),
		slog.Int("warnings", len(current.result.Warnings)),
	)

	return &current.result, err
}

// # Passes

// mergeCategories creates unknown slugs and refreshes name and sortOrder of
// known ones. Parents are left alone here.
func (r *run) mergeCategories(context context.Context, snapshot *Snapshot) error {
	for _, entry := range snapshot.Categories {
		if err := context.Err(); err != nil {
			return err
		}

		validator := &validate.Validator{}
		validator.Required(category.FieldName, entry.Name).Required(category.FieldSlug, entry.Slug)
		if validator.HasErrors() {
			r.warn(context, WarningInvalid, EntityCategory, entryRef(entry.Name, entry.Slug), validator.Summary())
			continue
		}

		sortOrder := pointer.Val(entry.SortOrder)
		now := r.now().UTC()

		existing, err := r.categories.FindBySlug(context, entry.Slug)
		switch {
		case apperr.IsCode(err, apperr.CodeNotFound):
			created := &category.Category{
				ID:        uuid.New(),
				Name:      entry.Name,
				Slug:      entry.Slug,
				SortOrder: sortOrder,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := r.categories.Create(context, created); err != nil {
				r.warn(context, WarningFailed, EntityCategory, entry.Slug, describe(err))
				continue
			}
			r.categoryIDs[entry.Name] = created.ID

		case err != nil:
			r.warn(context, WarningFailed, EntityCategory, entry.Slug, describe(err))

		default:
			patch := category.Patch{Name: &entry.Name, SortOrder: &sortOrder}
			if _, err := r.categories.Update(context, existing.ID, patch, now); err != nil {
				r.warn(context, WarningFailed, EntityCategory, entry.Slug, describe(err))
				continue
			}
			r.categoryIDs[entry.Name] = existing.ID
		}
	}
	return nil
}

// linkParents wires parent references now that every category exists.
func (r *run) linkParents(context context.Context, snapshot *Snapshot) error {
	for _, entry := range snapshot.Categories {
		if err := context.Err(); err != nil {
			return err
		}

		parentName := pointer.Val(entry.Parent)
		if parentName == "" {
			continue
		}

		childID, ok := r.categoryIDs[entry.Name]
		if !ok {
			continue // already reported by mergeCategories
		}

		parentID, ok := r.categoryIDs[parentName]
		if !ok {
			r.warn(context, WarningUnresolvedParent, EntityCategory, entry.Name,
				unresolved("parent", parentName, r.categoryNames))
			continue
		}

		patch := category.Patch{ParentID: optional.Of(parentID)}
		if _, err := r.categories.Update(context, childID, patch, r.now().UTC()); err != nil {
			r.warn(context, WarningFailed, EntityCategory, entry.Name, describe(err))
		}
	}
	return nil
}

// mergeTags creates unknown slugs. Matched tags are never modified.
func (r *run) mergeTags(context context.Context, snapshot *Snapshot) error {
	for _, entry := range snapshot.Tags {
		if err := context.Err(); err != nil {
			return err
		}

		validator := &validate.Validator{}
		validator.Required(tag.FieldName, entry.Name).Required(tag.FieldSlug, entry.Slug)
		if validator.HasErrors() {
			r.warn(context, WarningInvalid, EntityTag, entryRef(entry.Name, entry.Slug), validator.Summary())
			continue
		}

		existing, err := r.tags.FindBySlug(context, entry.Slug)
		switch {
		case apperr.IsCode(err, apperr.CodeNotFound):
			now := r.now().UTC()
			created := &tag.Tag{ID: uuid.New(), Name: entry.Name, Slug: entry.Slug, CreatedAt: now, UpdatedAt: now}
			if err := r.tags.Create(context, created); err != nil {
				r.warn(context, WarningFailed, EntityTag, entry.Slug, describe(err))
				continue
			}
			r.tagIDs[entry.Name] = created.ID

		case err != nil:
			r.warn(context, WarningFailed, EntityTag, entry.Slug, describe(err))

		default:
			r.tagIDs[entry.Name] = existing.ID
		}
	}
	return nil
}

// insertPrompts always creates new rows; re-importing duplicates prompts.
func (r *run) insertPrompts(context context.Context, snapshot *Snapshot) error {
	for _, entry := range snapshot.Prompts {
		if err := context.Err(); err != nil {
			return err
		}

		var categoryID *string
		if name := pointer.Val(entry.Category); name != "" {
			if id, ok := r.categoryIDs[name]; ok {
				categoryID = &id
			} else {
				r.warn(context, WarningUnresolvedCategory, EntityPrompt, entry.Title,
					unresolved(EntityCategory, name, r.categoryNames))
			}
		}

		tagIDs := make([]string, 0, len(entry.Tags))
		for _, name := range entry.Tags {
			id, ok := r.tagIDs[name]
			if !ok {
				r.warn(context, WarningUnresolvedTag, EntityPrompt, entry.Title,
					unresolved(EntityTag, name, r.tagNames))
				continue
			}
			tagIDs = append(tagIDs, id)
		}

		_, err := r.prompts.Restore(context, prompt.CreateInput{
			Title:           entry.Title,
			Description:     entry.Description,
			Body:            entry.Body,
			Type:            prompt.Type(entry.Type),
			Platform:        prompt.Platform(entry.Platform),
			ModelHint:       entry.ModelHint,
			Language:        entry.Language,
			UseCase:         entry.UseCase,
			ClientOrProject: entry.ClientOrProject,
			Status:          prompt.Status(entry.Status),
			IsFavorite:      entry.IsFavorite,
			Version:         entry.Version,
			Changelog:       entry.Changelog,
			Notes:           entry.Notes,
			CategoryID:      categoryID,
			TagIDs:          tagIDs,
		})
		if err != nil {
			kind := WarningFailed
			if apperr.IsCode(err, apperr.CodeValidation) {
				kind = WarningInvalid
			}
			r.warn(context, kind, EntityPrompt, entry.Title, describe(err))
			continue
		}

		r.result.Imported.Prompts++
	}
	return nil
}

// # Helpers

func (r *run) warn(context context.Context, kind, entity, ref, message string) {
	r.result.Warnings = append(r.result.Warnings, Warning{Kind: kind, Entity: entity, Ref: ref, Message: message})

	r.logger.WarnContext(context, "import_row_skipped",
		slog.String("kind", kind),
		slog.String("entity", entity),
		slog.String("ref", ref),
		slog.String("reason", message),
	)
}

// unresolved tells a name the snapshot never listed from one whose row was
// skipped earlier in the run.
func unresolved(what, name string, listed map[string]bool) string {
	if listed[name] {
		return fmt.Sprintf("%s %q was not imported", what, name)
	}
	return fmt.Sprintf("%s %q is not in the snapshot", what, name)
}

func entryRef(name, slug string) string {
	if slug != "" {
		return slug
	}
	return name
}

// describe renders a client-safe reason for a failed row.
func describe(err error) string {
	ae := apperr.As(err)
	if ae == nil {
		return "unexpected error"
	}
	if len(ae.Details) == 0 {
		return ae.Message
	}

	parts := make([]string, len(ae.Details))
	for i, detail := range ae.Details {
		parts[i] = detail.Field + ": " + detail.Message
	}
	return strings.Join(parts, "; ")
}

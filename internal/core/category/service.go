// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/validate"
	"github.com/taibuivan/promptdb/pkg/slug"
	"github.com/taibuivan/promptdb/pkg/uuid"
)

// # Service Layer

// Service holds the business rules for categories: slug derivation,
// validation, and the parent-cycle guard on updates.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateInput carries the client-controlled fields of a new category.
type CreateInput struct {
	Name      string
	Slug      string
	ParentID  *string
	SortOrder int
}

// # Lookups

// List returns every category ordered by sortOrder, then name.
func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// Get returns a single category.
func (service *Service) Get(context context.Context, id string) (*Category, error) {
	return service.repo.FindByID(context, id)
}

// Tree returns the hierarchy view. See [BuildTree].
func (service *Service) Tree(context context.Context) ([]*Node, error) {
	categories, err := service.repo.List(context)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

// # Management

/*
Create validates input and persists a new category.

Description: The slug defaults to one derived from the name. The stored row
is read back so the response carries the same derived fields as a GET.

Returns:
  - *Category: The persisted category
  - error: VALIDATION_ERROR, CONFLICT on a duplicate slug, or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLength)
	validator.Slug(FieldSlug, input.Slug)
	validator.OptionalUUID(FieldParentID, input.ParentID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	category := &Category{
		ID:        uuid.New(),
		Name:      input.Name,
		Slug:      input.Slug,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)

	return service.repo.FindByID(context, category.ID)
}

/*
Update applies a partial change to a category.

Description: A new parent may not be the category itself or any of its
descendants; either would detach a subtree from every root.
*/
func (service *Service) Update(context context.Context, id string, patch Patch) (*Category, error) {
	validator := &validate.Validator{}

	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, MaxNameLength)
	}
	if patch.Slug != nil {
		validator.Slug(FieldSlug, *patch.Slug)
	}
	if patch.ParentID.Set {
		validator.OptionalUUID(FieldParentID, patch.ParentID.Value)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if patch.ParentID.Set && patch.ParentID.Value != nil {
		if err := service.checkParent(context, id, *patch.ParentID.Value); err != nil {
			return nil, err
		}
	}

	category, err := service.repo.Update(context, id, patch, service.now().UTC())
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_updated", slog.String("category_id", id))
	return category, nil
}

// Delete removes a category. Its children become roots and its prompts
// become uncategorized.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "category_deleted", slog.String("category_id", id))
	return nil
}

// checkParent rejects parentID when it is id or lies below id.
func (service *Service) checkParent(context context.Context, id, parentID string) error {
	if parentID == id {
		return validate.Fail(FieldParentID, "A category cannot be its own parent")
	}

	categories, err := service.repo.List(context)
	if err != nil {
		return err
	}

	if isDescendant(categories, id, parentID) {
		return validate.Fail(FieldParentID, "A category cannot be moved under its own descendant")
	}
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/validate"
	"github.com/taibuivan/promptdb/pkg/slug"
	"github.com/taibuivan/promptdb/pkg/uuid"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (service *Service) List(context context.Context) ([]*Tag, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id string) (*Tag, error) {
	return service.repo.FindByID(context, id)
}

// Create persists a tag. An empty slug is derived from the name.
func (service *Service) Create(context context.Context, name, tagSlug string) (*Tag, error) {
	if tagSlug == "" {
		tagSlug = slug.From(name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	validator.Slug(FieldSlug, tagSlug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now().UTC()
	tag := &Tag{
		ID:        uuid.New(),
		Name:      name,
		Slug:      tagSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repo.Create(context, tag); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "tag_created", slog.String("tag_id", tag.ID), slog.String("slug", tag.Slug))
	return service.repo.FindByID(context, tag.ID)
}

func (service *Service) Update(context context.Context, id string, patch Patch) (*Tag, error) {
	validator := &validate.Validator{}
	if patch.Name != nil {
		validator.Required(FieldName, *patch.Name).MaxLen(FieldName, *patch.Name, MaxNameLength)
	}
	if patch.Slug != nil {
		validator.Slug(FieldSlug, *patch.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag, err := service.repo.Update(context, id, patch, service.now().UTC())
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "tag_updated", slog.String("tag_id", id))
	return tag, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "tag_deleted", slog.String("tag_id", id))
	return nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/validate"
	"github.com/taibuivan/promptdb/pkg/pointer"
	"github.com/taibuivan/promptdb/pkg/uuid"
)

// Service owns prompt validation, defaults and the usage tracker.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateInput carries the writable fields of a new prompt. Zero Language,
// Status and Version fall back to the documented defaults.
type CreateInput struct {
	Title           string
	Description     *string
	Body            string
	Type            Type
	Platform        Platform
	ModelHint       *string
	Language        string
	UseCase         string
	ClientOrProject *string
	Status          Status
	IsFavorite      bool
	Version         int
	Changelog       *string
	Notes           *string
	CategoryID      *string
	TagIDs          []string
}

// # Queries

// List validates the filter's enum values and returns the matching prompts.
func (service *Service) List(context context.Context, filter Filter) ([]*Prompt, error) {
	validator := &validate.Validator{}
	if filter.Platform != "" {
		validator.OneOf(FieldPlatform, string(filter.Platform), Platforms...)
	}
	if filter.Status != "" {
		validator.OneOf(FieldStatus, string(filter.Status), Statuses...)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.List(context, filter)
}

func (service *Service) Get(context context.Context, id string) (*Prompt, error) {
	return service.repo.FindByID(context, id)
}

// Count reports how many prompts are stored.
func (service *Service) Count(context context.Context) (int, error) {
	return service.repo.Count(context)
}

// # Mutations

/*
Create validates input, applies defaults and stores a new prompt.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Prompt: The stored prompt, re-read with category and tags
  - error: VALIDATION_ERROR for bad input or unknown references
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Prompt, error) {
	input = withDefaults(input)

	validator := checkInput(input)
	validator.MaxLen(FieldTitle, input.Title, MaxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.insert(context, input)
}

// Restore stores a prompt read from a snapshot. It applies the same defaults
// and required-field rules as [Service.Create] but no length limits, so rows
// written by other installations are accepted as they are.
func (service *Service) Restore(context context.Context, input CreateInput) (*Prompt, error) {
	input = withDefaults(input)

	if err := checkInput(input).Err(); err != nil {
		return nil, err
	}

	return service.insert(context, input)
}

func withDefaults(input CreateInput) CreateInput {
	if input.Language == "" {
		input.Language = DefaultLanguage
	}
	if input.Status == "" {
		input.Status = DefaultStatus
	}
	if input.Version == 0 {
		input.Version = DefaultVersion
	}
	return input
}

// checkInput applies the rules shared by every insert path.
func checkInput(input CreateInput) *validate.Validator {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title)
	validator.Required(FieldBody, input.Body)
	validator.OneOf(FieldType, string(input.Type), Types...)
	validator.OneOf(FieldPlatform, string(input.Platform), Platforms...)
	validator.OneOf(FieldStatus, string(input.Status), Statuses...)
	validator.Required(FieldUseCase, input.UseCase)
	validator.Custom(FieldVersion, input.Version < 1, "Must be at least 1")
	validator.OptionalUUID(FieldCategoryID, input.CategoryID)
	for _, tagID := range input.TagIDs {
		validator.UUID(FieldTagIDs, tagID)
	}
	return validator
}

func (service *Service) insert(context context.Context, input CreateInput) (*Prompt, error) {
	now := service.now().UTC()
	prompt := &Prompt{
		ID:              uuid.New(),
		Title:           input.Title,
		Description:     input.Description,
		Body:            input.Body,
		Type:            input.Type,
		Platform:        input.Platform,
		ModelHint:       input.ModelHint,
		Language:        input.Language,
		UseCase:         input.UseCase,
		ClientOrProject: input.ClientOrProject,
		Status:          input.Status,
		IsFavorite:      input.IsFavorite,
		Version:         input.Version,
		Changelog:       input.Changelog,
		Notes:           input.Notes,
		CategoryID:      input.CategoryID,
		TagIDs:          input.TagIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := service.repo.Create(context, prompt); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "prompt_created",
		slog.String("prompt_id", prompt.ID),
		slog.Int("tags", len(prompt.TagIDs)),
	)
	return service.repo.FindByID(context, prompt.ID)
}

// Update validates the present fields of patch and applies it.
func (service *Service) Update(context context.Context, id string, patch Patch) (*Prompt, error) {
	validator := &validate.Validator{}
	if patch.Title != nil {
		validator.Required(FieldTitle, *patch.Title).MaxLen(FieldTitle, *patch.Title, MaxTitleLength)
	}
	if patch.Body != nil {
		validator.Required(FieldBody, *patch.Body)
	}
	if patch.Type != nil {
		validator.OneOf(FieldType, string(*patch.Type), Types...)
	}
	if patch.Platform != nil {
		validator.OneOf(FieldPlatform, string(*patch.Platform), Platforms...)
	}
	if patch.Status != nil {
		validator.OneOf(FieldStatus, string(*patch.Status), Statuses...)
	}
	if patch.UseCase != nil {
		validator.Required(FieldUseCase, *patch.UseCase)
	}
	if patch.Language != nil {
		validator.Required(FieldLanguage, *patch.Language)
	}
	if patch.Version != nil {
		validator.Custom(FieldVersion, *patch.Version < 1, "Must be at least 1")
	}
	if patch.CategoryID.Set {
		validator.OptionalUUID(FieldCategoryID, patch.CategoryID.Value)
	}
	for _, tagID := range pointer.Val(patch.TagIDs) {
		validator.UUID(FieldTagIDs, tagID)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	prompt, err := service.repo.Update(context, id, patch, service.now().UTC())
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "prompt_updated", slog.String("prompt_id", id))
	return prompt, nil
}

func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "prompt_deleted", slog.String("prompt_id", id))
	return nil
}

// TrackUsage records that the prompt was used once, now.
func (service *Service) TrackUsage(context context.Context, id string) (*Prompt, error) {
	prompt, err := service.repo.IncrementUsage(context, id, service.now().UTC())
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "prompt_used",
		slog.String("prompt_id", id),
		slog.Int("usage_count", prompt.UsageCount),
	)
	return prompt, nil
}

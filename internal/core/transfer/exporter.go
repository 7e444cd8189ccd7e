// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/platform/constants"
	"github.com/taibuivan/promptdb/pkg/slice"
)

// Exporter flattens the store into a [Snapshot].
type Exporter struct {
	categories category.Repository
	tags       tag.Repository
	prompts    prompt.Repository
	now        func() time.Time
}

// NewExporter constructs a new [Exporter].
func NewExporter(categories category.Repository, tags tag.Repository, prompts prompt.Repository) *Exporter {
	return &Exporter{categories: categories, tags: tags, prompts: prompts, now: time.Now}
}

/*
Export reads the three entity sets concurrently and converts them.

Description: Ids are replaced by natural keys: a category names its parent, a
prompt names its category and lists its tag names. The result can be fed
straight back into [Reconciler.Reconcile] on any database.

Returns:
  - *Snapshot: Version "1.0", exportedAt in UTC with millisecond precision
  - error: The first read failure
*/
func (exporter *Exporter) Export(ctx context.Context) (*Snapshot, error) {
	var (
		categories []*category.Category
		tags       []*tag.Tag
		prompts    []*prompt.Prompt
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		categories, err = exporter.categories.List(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		tags, err = exporter.tags.List(groupCtx)
		return err
	})
	group.Go(func() (err error) {
		prompts, err = exporter.prompts.List(groupCtx, prompt.Filter{})
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("transfer: export: %w", err)
	}

	snapshot := &Snapshot{
		Version:    constants.SnapshotVersion,
		ExportedAt: exporter.now().UTC().Format(exportedAtLayout),
		Categories: slice.Map(categories, categoryEntry),
		Tags:       slice.Map(tags, tagEntry),
		Prompts:    slice.Map(prompts, promptEntry),
	}

	return snapshot, nil
}

func categoryEntry(c *category.Category) CategoryEntry {
	sortOrder := c.SortOrder
	return CategoryEntry{Name: c.Name, Slug: c.Slug, Parent: c.ParentName, SortOrder: &sortOrder}
}

func tagEntry(t *tag.Tag) TagEntry {
	return TagEntry{Name: t.Name, Slug: t.Slug}
}

func promptEntry(p *prompt.Prompt) PromptEntry {
	entry := PromptEntry{
		Title:           p.Title,
		Description:     p.Description,
		Body:            p.Body,
		Type:            string(p.Type),
		Platform:        string(p.Platform),
		ModelHint:       p.ModelHint,
		Language:        p.Language,
		UseCase:         p.UseCase,
		ClientOrProject: p.ClientOrProject,
		Status:          string(p.Status),
		IsFavorite:      p.IsFavorite,
		Version:         p.Version,
		Changelog:       p.Changelog,
		Notes:           p.Notes,
		UsageCount:      p.UsageCount,
		LastUsedAt:      p.LastUsedAt,
		CreatedAt:       &p.CreatedAt,
		UpdatedAt:       &p.UpdatedAt,
		Tags:            p.TagNames(),
	}
	if p.Category != nil {
		entry.Category = &p.Category.Name
	}
	return entry
}

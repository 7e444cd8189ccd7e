// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/testdb"
	"github.com/taibuivan/promptdb/pkg/pointer"
	"github.com/taibuivan/promptdb/pkg/uuid"
)

func newTag(name, slug string) *tag.Tag {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &tag.Tag{ID: uuid.New(), Name: name, Slug: slug, CreatedAt: now, UpdatedAt: now}
}

/*
testRepository exercises the [tag.Repository] contract on any backend.
*/
func testRepository(t *testing.T, repo tag.Repository) {
	ctx := context.Background()

	review := newTag("review", "review")
	require.NoError(t, repo.Create(ctx, review))
	require.NoError(t, repo.Create(ctx, newTag("api", "api")))

	t.Run("list_orders_by_name", func(t *testing.T) {
		tags, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "api", tags[0].Name)
		assert.Equal(t, "review", tags[1].Name)
		assert.Zero(t, tags[0].PromptCount)
	})

	t.Run("find_by_slug", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "review")
		require.NoError(t, err)
		assert.Equal(t, review.ID, found.ID)
		assert.True(t, review.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("duplicate_slug_conflicts", func(t *testing.T) {
		err := repo.Create(ctx, newTag("Review", "review"))
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict), "got %v", err)
	})

	t.Run("update_renames", func(t *testing.T) {
		at := time.Now().UTC().Add(time.Minute).Truncate(time.Microsecond)
		updated, err := repo.Update(ctx, review.ID, tag.Patch{Name: pointer.To("code review")}, at)
		require.NoError(t, err)
		assert.Equal(t, "code review", updated.Name)
		assert.Equal(t, "review", updated.Slug)
		assert.True(t, at.Equal(updated.UpdatedAt))
	})

	t.Run("missing_rows_are_not_found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

		_, err = repo.Update(ctx, uuid.New(), tag.Patch{Name: pointer.To("x")}, time.Now())
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

		assert.True(t, apperr.IsCode(repo.Delete(ctx, uuid.New()), apperr.CodeNotFound))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, review.ID))
		_, err := repo.FindByID(ctx, review.ID)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}

/*
TestSQLiteRepository runs the repository contract on SQLite.
*/
func TestSQLiteRepository(t *testing.T) {
	testRepository(t, tag.NewSQLiteRepository(testdb.SQLite(t)))
}

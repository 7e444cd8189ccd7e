// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/testdb"
	"github.com/taibuivan/promptdb/pkg/optional"
	"github.com/taibuivan/promptdb/pkg/pointer"
	"github.com/taibuivan/promptdb/pkg/uuid"
)

func newCategory(name, slug string, parentID *string, sortOrder int) *category.Category {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &category.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		ParentID:  parentID,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

/*
testRepository exercises the [category.Repository] contract. It runs against
SQLite here and against PostgreSQL in the integration build.
*/
func testRepository(t *testing.T, repo category.Repository) {
	ctx := context.Background()

	coding := newCategory("Coding", "coding", nil, 1)
	require.NoError(t, repo.Create(ctx, coding))

	golang := newCategory("Go", "go", &coding.ID, 0)
	require.NoError(t, repo.Create(ctx, golang))

	writing := newCategory("Writing", "writing", nil, 0)
	require.NoError(t, repo.Create(ctx, writing))

	t.Run("list_orders_by_sort_order_then_name", func(t *testing.T) {
		categories, err := repo.List(ctx)
		require.NoError(t, err)

		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = c.Name
		}
		assert.Equal(t, []string{"Go", "Writing", "Coding"}, names)
	})

	t.Run("find_hydrates_derived_fields", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, "go")
		require.NoError(t, err)
		assert.Equal(t, golang.ID, found.ID)
		assert.Equal(t, pointer.To("Coding"), found.ParentName)
		assert.True(t, golang.CreatedAt.Equal(found.CreatedAt))

		parent, err := repo.FindByID(ctx, coding.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, parent.ChildCount)
		assert.Nil(t, parent.ParentID)
	})

	t.Run("duplicate_slug_conflicts", func(t *testing.T) {
		err := repo.Create(ctx, newCategory("Coding again", "coding", nil, 0))
		assert.True(t, apperr.IsCode(err, apperr.CodeConflict), "got %v", err)
	})

	t.Run("unknown_parent_is_validation_error", func(t *testing.T) {
		err := repo.Create(ctx, newCategory("Orphan", "orphan", pointer.To(uuid.New()), 0))
		assert.True(t, apperr.IsCode(err, apperr.CodeValidation), "got %v", err)
	})

	t.Run("missing_rows_are_not_found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

		_, err = repo.Update(ctx, uuid.New(), category.Patch{Name: pointer.To("x")}, time.Now())
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

		err = repo.Delete(ctx, uuid.New())
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})

	t.Run("update_patches_only_given_columns", func(t *testing.T) {
		at := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
		updated, err := repo.Update(ctx, golang.ID, category.Patch{
			Name:     pointer.To("Golang"),
			ParentID: optional.Null[string](),
		}, at)
		require.NoError(t, err)

		assert.Equal(t, "Golang", updated.Name)
		assert.Equal(t, "go", updated.Slug)
		assert.Nil(t, updated.ParentID)
		assert.True(t, at.Equal(updated.UpdatedAt))
	})

	t.Run("delete_detaches_children", func(t *testing.T) {
		child := newCategory("Essays", "essays", &writing.ID, 0)
		require.NoError(t, repo.Create(ctx, child))

		require.NoError(t, repo.Delete(ctx, writing.ID))

		orphan, err := repo.FindByID(ctx, child.ID)
		require.NoError(t, err)
		assert.Nil(t, orphan.ParentID)
	})
}

/*
TestSQLiteRepository runs the repository contract on SQLite.
*/
func TestSQLiteRepository(t *testing.T) {
	testRepository(t, category.NewSQLiteRepository(testdb.SQLite(t)))
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"time"
)

// Repository persists categories.
//
// Every method is atomic on its own. Missing rows surface as a NOT_FOUND
// [apperr.AppError]; a duplicate slug as CONFLICT.
type Repository interface {
	// List returns every category ordered by sortOrder, then name.
	List(ctx context.Context) ([]*Category, error)

	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	Create(ctx context.Context, category *Category) error

	// Update applies patch and stamps updatedAt with at.
	Update(ctx context.Context, id string, patch Patch, at time.Time) (*Category, error)

	Delete(ctx context.Context, id string) error
}

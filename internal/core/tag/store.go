// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"time"
)

// Repository persists tags.
type Repository interface {
	// List returns every tag ordered by name.
	List(ctx context.Context) ([]*Tag, error)

	FindByID(ctx context.Context, id string) (*Tag, error)
	FindBySlug(ctx context.Context, slug string) (*Tag, error)

	Create(ctx context.Context, tag *Tag) error
	Update(ctx context.Context, id string, patch Patch, at time.Time) (*Tag, error)

	// Delete removes the tag and, by cascade, its prompt links.
	Delete(ctx context.Context, id string) error
}

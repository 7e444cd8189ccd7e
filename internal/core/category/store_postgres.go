// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
	"github.com/taibuivan/promptdb/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed category store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List implements [Repository].
func (repository *PostgresRepository) List(context context.Context) ([]*Category, error) {
	rows, err := repository.pool.Query(context, selectColumns+listOrder)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to list categories: %w", err), Resource)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category, err := scanPostgres(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan category: %w", err), Resource)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: category rows: %w", err), Resource)
	}

	return categories, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	return repository.findOne(context, selectByID(sqlbuild.Postgres, id))
}

// FindBySlug implements [Repository].
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	return repository.findOne(context, selectBySlug(sqlbuild.Postgres, slug))
}

func (repository *PostgresRepository) findOne(context context.Context, query *sqlbuild.Builder) (*Category, error) {
	category, err := scanPostgres(repository.pool.QueryRow(context, query.String(), query.Args()...))
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return category, nil
}

// Create implements [Repository].
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	statement := insertStatement(sqlbuild.Postgres, category, func(t time.Time) any { return t })

	if _, err := repository.pool.Exec(context, statement.String(), statement.Args()...); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to create category: %w", err), Resource)
	}
	return nil
}

// Update implements [Repository].
func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch, at time.Time) (*Category, error) {
	statement := updateStatement(sqlbuild.Postgres, id, patch, at)

	result, err := repository.pool.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to update category: %w", err), Resource)
	}

	if result.RowsAffected() == 0 {
		return nil, apperr.NotFound(Resource)
	}

	return repository.FindByID(context, id)
}

// Delete implements [Repository]. Children and prompts are detached by the
// ON DELETE SET NULL foreign keys.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	statement := deleteStatement(sqlbuild.Postgres, id)

	result, err := repository.pool.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to delete category: %w", err), Resource)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(Resource)
	}
	return nil
}

func scanPostgres(row pgx.Row) (*Category, error) {
	category := &Category{}
	err := row.Scan(
		&category.ID, &category.Name, &category.Slug, &category.ParentID, &category.SortOrder,
		&category.CreatedAt, &category.UpdatedAt,
		&category.ParentName, &category.PromptCount, &category.ChildCount,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/database/schema"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
	"github.com/taibuivan/promptdb/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed tag store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Tag, error) {
	rows, err := repository.pool.Query(context, selectColumns+listOrder)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to list tags: %w", err), Resource)
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag, err := scanPostgres(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan tag: %w", err), Resource)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: tag rows: %w", err), Resource)
	}
	return tags, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tag, error) {
	return repository.findOne(context, selectWhere(sqlbuild.Postgres, schema.Tag.ID, id))
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Tag, error) {
	return repository.findOne(context, selectWhere(sqlbuild.Postgres, schema.Tag.Slug, slug))
}

func (repository *PostgresRepository) findOne(context context.Context, query *sqlbuild.Builder) (*Tag, error) {
	tag, err := scanPostgres(repository.pool.QueryRow(context, query.String(), query.Args()...))
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return tag, nil
}

func (repository *PostgresRepository) Create(context context.Context, tag *Tag) error {
	statement := insertStatement(sqlbuild.Postgres, tag, func(t time.Time) any { return t })

	if _, err := repository.pool.Exec(context, statement.String(), statement.Args()...); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to create tag: %w", err), Resource)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch, at time.Time) (*Tag, error) {
	statement := updateStatement(sqlbuild.Postgres, id, patch, at)

	result, err := repository.pool.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to update tag: %w", err), Resource)
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.NotFound(Resource)
	}

	return repository.FindByID(context, id)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	statement := deleteStatement(sqlbuild.Postgres, id)

	result, err := repository.pool.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to delete tag: %w", err), Resource)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(Resource)
	}
	return nil
}

func scanPostgres(row pgx.Row) (*Tag, error) {
	tag := &Tag{}
	if err := row.Scan(&tag.ID, &tag.Name, &tag.Slug, &tag.CreatedAt, &tag.UpdatedAt, &tag.PromptCount); err != nil {
		return nil, err
	}
	return tag, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

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

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed prompt store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Prompt, error) {
	query := listQuery(sqlbuild.Postgres, filter)

	rows, err := repository.pool.Query(context, query.String(), query.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to list prompts: %w", err), Resource)
	}
	defer rows.Close()

	prompts := make([]*Prompt, 0)
	for rows.Next() {
		prompt, err := scanPostgres(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("postgres: failed to scan prompt: %w", err), Resource)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: prompt rows: %w", err), Resource)
	}
	return prompts, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Prompt, error) {
	query := selectByID(sqlbuild.Postgres, id)

	prompt, err := scanPostgres(repository.pool.QueryRow(context, query.String(), query.Args()...))
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return prompt, nil
}

func (repository *PostgresRepository) Count(context context.Context) (int, error) {
	var count int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&count); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("postgres: failed to count prompts: %w", err), Resource)
	}
	return count, nil
}

func (repository *PostgresRepository) Create(context context.Context, prompt *Prompt) error {
	statement := insertStatement(sqlbuild.Postgres, prompt, func(t time.Time) any { return t })

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: create transaction begin failed: %w", err), Resource)
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context, statement.String(), statement.Args()...); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to create prompt: %w", err), Resource)
	}

	if err := replaceTagsPostgres(context, transaction, prompt.ID, prompt.TagIDs); err != nil {
		return dberr.Wrap(err, Resource)
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: create transaction commit failed: %w", err), Resource)
	}
	return nil
}

func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch, at time.Time) (*Prompt, error) {
	statement := updateStatement(sqlbuild.Postgres, id, patch, at)

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: update transaction begin failed: %w", err), Resource)
	}
	defer transaction.Rollback(context)

	result, err := transaction.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to update prompt: %w", err), Resource)
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.NotFound(Resource)
	}

	// Tag set replacement only when the caller sent one
	if patch.TagIDs != nil {
		if err := replaceTagsPostgres(context, transaction, id, *patch.TagIDs); err != nil {
			return nil, dberr.Wrap(err, Resource)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: update transaction commit failed: %w", err), Resource)
	}

	return repository.FindByID(context, id)
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	statement := deleteStatement(sqlbuild.Postgres, id)

	result, err := repository.pool.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to delete prompt: %w", err), Resource)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(Resource)
	}
	return nil
}

func (repository *PostgresRepository) IncrementUsage(context context.Context, id string, at time.Time) (*Prompt, error) {
	statement := incrementUsageStatement(sqlbuild.Postgres, id, at)

	result, err := repository.pool.Exec(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres: failed to increment usage: %w", err), Resource)
	}
	if result.RowsAffected() == 0 {
		return nil, apperr.NotFound(Resource)
	}

	return repository.FindByID(context, id)
}

/*
replaceTagsPostgres synchronizes the prompt's tag links.

Description: Clears every existing link for the prompt, then queues one INSERT
per tag on a single pgx.Batch so the whole set travels in one round trip.
Duplicate ids are collapsed first.
*/
func replaceTagsPostgres(context context.Context, transaction pgx.Tx, promptID string, tagIDs []string) error {
	if _, err := transaction.Exec(context, clearTagsStatement(sqlbuild.Postgres), promptID); err != nil {
		return fmt.Errorf("postgres: failed to clear prompt tags: %w", err)
	}

	tagIDs = distinct(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	insert := linkTagStatement(sqlbuild.Postgres)
	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(insert, promptID, tagID)
	}

	response := transaction.SendBatch(context, batch)
	if err := response.Close(); err != nil {
		return fmt.Errorf("postgres: failed to link prompt tags: %w", err)
	}
	return nil
}

func scanPostgres(row pgx.Row) (*Prompt, error) {
	var (
		prompt                                 = &Prompt{}
		categoryID, categoryName, categorySlug *string
		tags                                   string
	)

	err := row.Scan(
		&prompt.ID, &prompt.Title, &prompt.Description, &prompt.Body, &prompt.Type, &prompt.Platform,
		&prompt.ModelHint, &prompt.Language, &prompt.UseCase, &prompt.ClientOrProject, &prompt.Status,
		&prompt.IsFavorite, &prompt.Version, &prompt.Changelog, &prompt.Notes, &prompt.UsageCount,
		&prompt.LastUsedAt, &prompt.CategoryID, &prompt.CreatedAt, &prompt.UpdatedAt,
		&categoryID, &categoryName, &categorySlug, &tags,
	)
	if err != nil {
		return nil, err
	}

	if prompt.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	prompt.Category = categoryRef(categoryID, categoryName, categorySlug)
	return prompt, nil
}

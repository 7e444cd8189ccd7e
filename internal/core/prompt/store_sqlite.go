// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
	"github.com/taibuivan/promptdb/internal/platform/dberr"
	"github.com/taibuivan/promptdb/internal/platform/sqlite"
)

// SQLiteRepository implements [Repository] on modernc.org/sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLite backed prompt store.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) List(context context.Context, filter Filter) ([]*Prompt, error) {
	query := listQuery(sqlbuild.SQLite, filter)

	rows, err := repository.db.QueryContext(context, query.String(), query.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to list prompts: %w", err), Resource)
	}
	defer rows.Close()

	prompts := make([]*Prompt, 0)
	for rows.Next() {
		prompt, err := scanSQLite(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to scan prompt: %w", err), Resource)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: prompt rows: %w", err), Resource)
	}
	return prompts, nil
}

func (repository *SQLiteRepository) FindByID(context context.Context, id string) (*Prompt, error) {
	query := selectByID(sqlbuild.SQLite, id)

	prompt, err := scanSQLite(repository.db.QueryRowContext(context, query.String(), query.Args()...))
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return prompt, nil
}

func (repository *SQLiteRepository) Count(context context.Context) (int, error) {
	var count int
	if err := repository.db.QueryRowContext(context, countQuery).Scan(&count); err != nil {
		return 0, dberr.Wrap(fmt.Errorf("sqlite: failed to count prompts: %w", err), Resource)
	}
	return count, nil
}

func (repository *SQLiteRepository) Create(context context.Context, prompt *Prompt) error {
	statement := insertStatement(sqlbuild.SQLite, prompt, func(t time.Time) any { return sqlite.FormatTime(t) })

	transaction, err := repository.db.BeginTx(context, nil)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: create transaction begin failed: %w", err), Resource)
	}
	defer transaction.Rollback()

	if _, err := transaction.ExecContext(context, statement.String(), statement.Args()...); err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: failed to create prompt: %w", err), Resource)
	}

	if err := replaceTagsSQLite(context, transaction, prompt.ID, prompt.TagIDs); err != nil {
		return dberr.Wrap(err, Resource)
	}

	if err := transaction.Commit(); err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: create transaction commit failed: %w", err), Resource)
	}
	return nil
}

func (repository *SQLiteRepository) Update(context context.Context, id string, patch Patch, at time.Time) (*Prompt, error) {
	statement := updateStatement(sqlbuild.SQLite, id, patch, sqlite.FormatTime(at))

	transaction, err := repository.db.BeginTx(context, nil)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: update transaction begin failed: %w", err), Resource)
	}
	defer transaction.Rollback()

	result, err := transaction.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to update prompt: %w", err), Resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound(Resource)
	}

	if patch.TagIDs != nil {
		if err := replaceTagsSQLite(context, transaction, id, *patch.TagIDs); err != nil {
			return nil, dberr.Wrap(err, Resource)
		}
	}

	if err := transaction.Commit(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: update transaction commit failed: %w", err), Resource)
	}

	return repository.FindByID(context, id)
}

func (repository *SQLiteRepository) Delete(context context.Context, id string) error {
	statement := deleteStatement(sqlbuild.SQLite, id)

	result, err := repository.db.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: failed to delete prompt: %w", err), Resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(Resource)
	}
	return nil
}

func (repository *SQLiteRepository) IncrementUsage(context context.Context, id string, at time.Time) (*Prompt, error) {
	statement := incrementUsageStatement(sqlbuild.SQLite, id, sqlite.FormatTime(at))

	result, err := repository.db.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to increment usage: %w", err), Resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound(Resource)
	}

	return repository.FindByID(context, id)
}

// replaceTagsSQLite clears and re-inserts the prompt's tag links inside transaction.
func replaceTagsSQLite(context context.Context, transaction *sql.Tx, promptID string, tagIDs []string) error {
	if _, err := transaction.ExecContext(context, clearTagsStatement(sqlbuild.SQLite), promptID); err != nil {
		return fmt.Errorf("sqlite: failed to clear prompt tags: %w", err)
	}

	tagIDs = distinct(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	insert, err := transaction.PrepareContext(context, linkTagStatement(sqlbuild.SQLite))
	if err != nil {
		return fmt.Errorf("sqlite: failed to prepare tag link: %w", err)
	}
	defer insert.Close()

	for _, tagID := range tagIDs {
		if _, err := insert.ExecContext(context, promptID, tagID); err != nil {
			return fmt.Errorf("sqlite: failed to link prompt tags: %w", err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row rowScanner) (*Prompt, error) {
	var (
		prompt                                 = &Prompt{}
		categoryID, categoryName, categorySlug *string
		lastUsedAt                             sql.NullString
		createdAt, updatedAt, tags             string
		err                                    error
	)

	err = row.Scan(
		&prompt.ID, &prompt.Title, &prompt.Description, &prompt.Body, &prompt.Type, &prompt.Platform,
		&prompt.ModelHint, &prompt.Language, &prompt.UseCase, &prompt.ClientOrProject, &prompt.Status,
		&prompt.IsFavorite, &prompt.Version, &prompt.Changelog, &prompt.Notes, &prompt.UsageCount,
		&lastUsedAt, &prompt.CategoryID, &createdAt, &updatedAt,
		&categoryID, &categoryName, &categorySlug, &tags,
	)
	if err != nil {
		return nil, err
	}

	if prompt.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad createdat %q: %w", createdAt, err)
	}
	if prompt.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad updatedat %q: %w", updatedAt, err)
	}
	if prompt.LastUsedAt, err = sqlite.ParseNullableTime(lastUsedAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad lastusedat %q: %w", lastUsedAt.String, err)
	}

	if prompt.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	prompt.Category = categoryRef(categoryID, categoryName, categorySlug)
	return prompt, nil
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

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

// # SQLite Repository

// SQLiteRepository implements [Repository] on database/sql with modernc.org/sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLite backed category store.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// List implements [Repository].
func (repository *SQLiteRepository) List(context context.Context) ([]*Category, error) {
	rows, err := repository.db.QueryContext(context, selectColumns+listOrder)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to list categories: %w", err), Resource)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category, err := scanSQLite(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to scan category: %w", err), Resource)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: category rows: %w", err), Resource)
	}

	return categories, nil
}

// FindByID implements [Repository].
func (repository *SQLiteRepository) FindByID(context context.Context, id string) (*Category, error) {
	return repository.findOne(context, selectByID(sqlbuild.SQLite, id))
}

// FindBySlug implements [Repository].
func (repository *SQLiteRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	return repository.findOne(context, selectBySlug(sqlbuild.SQLite, slug))
}

func (repository *SQLiteRepository) findOne(context context.Context, query *sqlbuild.Builder) (*Category, error) {
	category, err := scanSQLite(repository.db.QueryRowContext(context, query.String(), query.Args()...))
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return category, nil
}

// Create implements [Repository].
func (repository *SQLiteRepository) Create(context context.Context, category *Category) error {
	statement := insertStatement(sqlbuild.SQLite, category, func(t time.Time) any { return sqlite.FormatTime(t) })

	if _, err := repository.db.ExecContext(context, statement.String(), statement.Args()...); err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: failed to create category: %w", err), Resource)
	}
	return nil
}

// Update implements [Repository].
func (repository *SQLiteRepository) Update(context context.Context, id string, patch Patch, at time.Time) (*Category, error) {
	statement := updateStatement(sqlbuild.SQLite, id, patch, sqlite.FormatTime(at))

	result, err := repository.db.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to update category: %w", err), Resource)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound(Resource)
	}

	return repository.FindByID(context, id)
}

// Delete implements [Repository].
func (repository *SQLiteRepository) Delete(context context.Context, id string) error {
	statement := deleteStatement(sqlbuild.SQLite, id)

	result, err := repository.db.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: failed to delete category: %w", err), Resource)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(Resource)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row rowScanner) (*Category, error) {
	var (
		category             = &Category{}
		createdAt, updatedAt string
		err                  error
	)

	err = row.Scan(
		&category.ID, &category.Name, &category.Slug, &category.ParentID, &category.SortOrder,
		&createdAt, &updatedAt,
		&category.ParentName, &category.PromptCount, &category.ChildCount,
	)
	if err != nil {
		return nil, err
	}

	if category.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad createdat %q: %w", createdAt, err)
	}
	if category.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad updatedat %q: %w", updatedAt, err)
	}

	return category, nil
}

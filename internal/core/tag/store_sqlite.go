// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/database/schema"
	"github.com/taibuivan/promptdb/internal/platform/database/sqlbuild"
	"github.com/taibuivan/promptdb/internal/platform/dberr"
	"github.com/taibuivan/promptdb/internal/platform/sqlite"
)

// SQLiteRepository implements [Repository] on modernc.org/sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a SQLite backed tag store.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) List(context context.Context) ([]*Tag, error) {
	rows, err := repository.db.QueryContext(context, selectColumns+listOrder)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to list tags: %w", err), Resource)
	}
	defer rows.Close()

	tags := make([]*Tag, 0)
	for rows.Next() {
		tag, err := scanSQLite(rows)
		if err != nil {
			return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to scan tag: %w", err), Resource)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: tag rows: %w", err), Resource)
	}
	return tags, nil
}

func (repository *SQLiteRepository) FindByID(context context.Context, id string) (*Tag, error) {
	return repository.findOne(context, selectWhere(sqlbuild.SQLite, schema.Tag.ID, id))
}

func (repository *SQLiteRepository) FindBySlug(context context.Context, slug string) (*Tag, error) {
	return repository.findOne(context, selectWhere(sqlbuild.SQLite, schema.Tag.Slug, slug))
}

func (repository *SQLiteRepository) findOne(context context.Context, query *sqlbuild.Builder) (*Tag, error) {
	tag, err := scanSQLite(repository.db.QueryRowContext(context, query.String(), query.Args()...))
	if err != nil {
		return nil, dberr.Wrap(err, Resource)
	}
	return tag, nil
}

func (repository *SQLiteRepository) Create(context context.Context, tag *Tag) error {
	statement := insertStatement(sqlbuild.SQLite, tag, func(t time.Time) any { return sqlite.FormatTime(t) })

	if _, err := repository.db.ExecContext(context, statement.String(), statement.Args()...); err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: failed to create tag: %w", err), Resource)
	}
	return nil
}

func (repository *SQLiteRepository) Update(context context.Context, id string, patch Patch, at time.Time) (*Tag, error) {
	statement := updateStatement(sqlbuild.SQLite, id, patch, sqlite.FormatTime(at))

	result, err := repository.db.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("sqlite: failed to update tag: %w", err), Resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return nil, apperr.NotFound(Resource)
	}

	return repository.FindByID(context, id)
}

func (repository *SQLiteRepository) Delete(context context.Context, id string) error {
	statement := deleteStatement(sqlbuild.SQLite, id)

	result, err := repository.db.ExecContext(context, statement.String(), statement.Args()...)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("sqlite: failed to delete tag: %w", err), Resource)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return apperr.NotFound(Resource)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row rowScanner) (*Tag, error) {
	var (
		tag                  = &Tag{}
		createdAt, updatedAt string
		err                  error
	)

	if err = row.Scan(&tag.ID, &tag.Name, &tag.Slug, &createdAt, &updatedAt, &tag.PromptCount); err != nil {
		return nil, err
	}

	if tag.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad createdat %q: %w", createdAt, err)
	}
	if tag.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: bad updatedat %q: %w", updatedAt, err)
	}
	return tag, nil
}

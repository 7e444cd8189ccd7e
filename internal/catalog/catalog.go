// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog opens the configured storage backend and builds every domain
service on top of it.

Both binaries start here: cmd/api mounts the services behind HTTP handlers,
cmd/promptctl calls them directly.

Backends:

  - postgres: pgxpool plus golang-migrate migrations.
  - sqlite: a single database file with the embedded schema.

When REDIS_URL is set the import lock lives in Redis, otherwise in process.
*/
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/core/transfer"
	"github.com/taibuivan/promptdb/internal/platform/config"
	"github.com/taibuivan/promptdb/internal/platform/lock"
	"github.com/taibuivan/promptdb/internal/platform/migration"
	"github.com/taibuivan/promptdb/internal/platform/postgres"
	"github.com/taibuivan/promptdb/internal/platform/redis"
	"github.com/taibuivan/promptdb/internal/platform/sqlite"
)

// Repositories groups the three entity stores of one backend.
type Repositories struct {
	Categories category.Repository
	Tags       tag.Repository
	Prompts    prompt.Repository
}

// Catalog is the fully wired application core.
type Catalog struct {
	Categories *category.Service
	Tags       *tag.Service
	Prompts    *prompt.Service
	Transfer   *transfer.Service

	// PingDatabase and PingCache back the readiness probe. PingCache is nil
	// without Redis.
	PingDatabase func(ctx context.Context) error
	PingCache    func(ctx context.Context) error

	closers []func() error
	logger  *slog.Logger
}

/*
Open connects to the configured backend and wires the services.

Description: Postgres databases are migrated with golang-migrate before any
repository is built. SQLite files get the embedded schema. A Redis client is
created only when cfg.RedisURL is set.

Returns:
  - *Catalog: Ready to serve; call Close when done
  - error: Connection or migration failure
*/
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{logger: logger}

	repos, err := c.openStorage(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	locker, err := c.openLocker(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	c.wire(repos, locker, cfg)
	return c, nil
}

// New wires services over already constructed repositories. Tests use it with
// SQLite; Open uses it for both backends.
func New(repos Repositories, locker lock.Locker, cfg *config.Config, logger *slog.Logger) *Catalog {
	c := &Catalog{logger: logger}
	c.wire(repos, locker, cfg)
	return c
}

func (c *Catalog) wire(repos Repositories, locker lock.Locker, cfg *config.Config) {
	c.Categories = category.NewService(repos.Categories, c.logger)
	c.Tags = tag.NewService(repos.Tags, c.logger)
	c.Prompts = prompt.NewService(repos.Prompts, c.logger)

	reconciler := transfer.NewReconciler(repos.Categories, repos.Tags, c.Prompts, c.logger)
	exporter := transfer.NewExporter(repos.Categories, repos.Tags, repos.Prompts)
	c.Transfer = transfer.NewService(reconciler, exporter, locker, cfg.ImportLockTTL, c.Prompts, c.logger)
}

func (c *Catalog) openStorage(ctx context.Context, cfg *config.Config) (Repositories, error) {
	if cfg.UsesSQLite() {
		db, err := sqlite.Open(ctx, cfg.DatabaseURL, c.logger)
		if err != nil {
			return Repositories{}, err
		}
		c.closers = append(c.closers, db.Close)
		c.PingDatabase = func(ctx context.Context) error { return db.PingContext(ctx) }
		return sqliteRepositories(db), nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, c.logger)
	if err != nil {
		return Repositories{}, err
	}
	c.closers = append(c.closers, func() error { pool.Close(); return nil })
	c.PingDatabase = func(ctx context.Context) error { return postgres.Ping(ctx, pool) }

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, c.logger); err != nil {
		return Repositories{}, err
	}

	return postgresRepositories(pool), nil
}

func (c *Catalog) openLocker(ctx context.Context, cfg *config.Config) (lock.Locker, error) {
	if cfg.RedisURL == "" {
		c.logger.Info("import_lock_local")
		return lock.NewLocal(), nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL, c.logger)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, client.Close)
	c.PingCache = func(ctx context.Context) error { return redis.Ping(ctx, client) }

	return lock.NewRedis(client), nil
}

func sqliteRepositories(db *sql.DB) Repositories {
	return Repositories{
		Categories: category.NewSQLiteRepository(db),
		Tags:       tag.NewSQLiteRepository(db),
		Prompts:    prompt.NewSQLiteRepository(db),
	}
}

func postgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Categories: category.NewPostgresRepository(pool),
		Tags:       tag.NewPostgresRepository(pool),
		Prompts:    prompt.NewPostgresRepository(pool),
	}
}

// Close releases connections in reverse order of opening.
func (c *Catalog) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, fmt.Errorf("catalog: close: %w", err))
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

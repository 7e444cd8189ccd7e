// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/constants"
	"github.com/taibuivan/promptdb/internal/platform/lock"
)

// ErrImportRunning is returned while another import holds the lock.
var ErrImportRunning = apperr.Conflict("Another import is already running")

// ErrImportInterrupted reports a run stopped between rows. Earlier rows stay.
var ErrImportInterrupted = apperr.ServiceUnavailable("Import was interrupted; rows already written were kept")

// Counter reports how many prompts exist. *prompt.Service satisfies it.
type Counter interface {
	Count(context context.Context) (int, error)
}

// Service coordinates export, locked imports and seeding.
type Service struct {
	reconciler *Reconciler
	exporter   *Exporter
	locker     lock.Locker
	lockTTL    time.Duration
	prompts    Counter
	logger     *slog.Logger
}

// NewService constructs a new [Service]. lockTTL bounds how long a crashed
// importer can block the next one.
func NewService(reconciler *Reconciler, exporter *Exporter, locker lock.Locker, lockTTL time.Duration, prompts Counter, logger *slog.Logger) *Service {
	return &Service{
		reconciler: reconciler,
		exporter:   exporter,
		locker:     locker,
		lockTTL:    lockTTL,
		prompts:    prompts,
		logger:     logger,
	}
}

// Export returns the current catalog as a snapshot.
func (service *Service) Export(ctx context.Context) (*Snapshot, error) {
	snapshot, err := service.exporter.Export(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "export_finished",
		slog.Int("prompts", len(snapshot.Prompts)),
		slog.Int("categories", len(snapshot.Categories)),
		slog.Int("tags", len(snapshot.Tags)),
	)
	return snapshot, nil
}

// Import validates raw JSON and merges it under the import lock.
func (service *Service) Import(ctx context.Context, raw []byte) (*Result, error) {
	snapshot, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return service.ImportSnapshot(ctx, snapshot)
}

/*
ImportSnapshot merges an already decoded snapshot under the import lock.

Returns:
  - *Result: Counts and warnings
  - error: CONFLICT while another import runs, or the cancellation cause
*/
func (service *Service) ImportSnapshot(ctx context.Context, snapshot *Snapshot) (*Result, error) {
	release, err := service.locker.Acquire(ctx, constants.ImportLockKey, service.lockTTL)
	if errors.Is(err, lock.ErrHeld) {
		return nil, ErrImportRunning
	}
	if err != nil {
		return nil, apperr.ServiceUnavailable("Import lock is unavailable").WithCause(err)
	}

	defer func() {
		// The lock must be freed even when the request was cancelled.
		if err := release(context.WithoutCancel(ctx)); err != nil {
			service.logger.WarnContext(ctx, "import_lock_release_failed", slog.String("error", err.Error()))
		}
	}()

	service.logger.InfoContext(ctx, "import_started",
		slog.String("version", snapshot.Version),
		slog.Int("prompts", len(snapshot.Prompts)),
	)

	return service.reconciler.Reconcile(ctx, snapshot)
}

// Seed imports the embedded sample catalog when no prompt exists yet.
// The boolean reports whether anything was imported.
func (service *Service) Seed(ctx context.Context) (*Result, bool, error) {
	count, err := service.prompts.Count(ctx)
	if err != nil {
		return nil, false, err
	}
	if count > 0 {
		service.logger.InfoContext(ctx, "seed_skipped", slog.Int("prompts", count))
		return nil, false, nil
	}

	snapshot, err := SeedSnapshot()
	if err != nil {
		return nil, false, err
	}

	result, err := service.ImportSnapshot(ctx, snapshot)
	if err != nil {
		return nil, false, err
	}
	return result, true, nil
}

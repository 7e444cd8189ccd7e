// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer_test

import (
	"testing"
	"time"

	"github.com/taibuivan/promptdb/internal/core/category"
	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/core/transfer"
	"github.com/taibuivan/promptdb/internal/platform/lock"
	"github.com/taibuivan/promptdb/internal/platform/testdb"
)

// fixture is one SQLite database with every layer wired on top.
type fixture struct {
	categories category.Repository
	tags       tag.Repository
	prompts    prompt.Repository
	locker     *lock.Local
	service    *transfer.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.SQLite(t)
	logger := testdb.Logger()

	f := &fixture{
		categories: category.NewSQLiteRepository(db),
		tags:       tag.NewSQLiteRepository(db),
		prompts:    prompt.NewSQLiteRepository(db),
		locker:     lock.NewLocal(),
	}

	prompts := prompt.NewService(f.prompts, logger)
	reconciler := transfer.NewReconciler(f.categories, f.tags, prompts, logger)
	exporter := transfer.NewExporter(f.categories, f.tags, f.prompts)
	f.service = transfer.NewService(reconciler, exporter, f.locker, time.Minute, prompts, logger)

	return f
}

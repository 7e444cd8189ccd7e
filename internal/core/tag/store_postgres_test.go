// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package tag_test

import (
	"testing"

	"github.com/taibuivan/promptdb/internal/core/tag"
	"github.com/taibuivan/promptdb/internal/platform/testdb"
)

func TestPostgresRepository(t *testing.T) {
	testRepository(t, tag.NewPostgresRepository(testdb.Postgres(t)))
}

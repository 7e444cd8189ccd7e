// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/core/transfer"
)

// ignoreVolatile drops what legitimately differs between two databases.
var ignoreVolatile = cmp.Options{
	cmpopts.IgnoreFields(transfer.Snapshot{}, "ExportedAt"),
	cmpopts.IgnoreFields(transfer.PromptEntry{}, "CreatedAt", "UpdatedAt", "UsageCount", "LastUsedAt"),
	cmpopts.SortSlices(func(a, b transfer.PromptEntry) bool { return a.Title < b.Title }),
	cmpopts.SortSlices(func(a, b transfer.CategoryEntry) bool { return a.Slug < b.Slug }),
	cmpopts.SortSlices(func(a, b transfer.TagEntry) bool { return a.Slug < b.Slug }),
	cmpopts.EquateEmpty(),
}

/*
TestExport_RoundTrip exports one database, imports into an empty one and
compares the two exports.
*/
func TestExport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	source := newFixture(t)
	_, err := source.service.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)

	exported, err := source.service.Export(ctx)
	require.NoError(t, err)

	raw, err := json.Marshal(exported)
	require.NoError(t, err)

	target := newFixture(t)
	result, err := target.service.Import(ctx, raw)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	again, err := target.service.Export(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(exported, again, ignoreVolatile); diff != "" {
		t.Errorf("round trip mismatch (-source +target):\n%s", diff)
	}
}

/*
TestExport_Shape checks metadata and natural keys.
*/
func TestExport_Shape(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)

	snapshot, err := f.service.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1.0", snapshot.Version)
	exportedAt, err := time.Parse(time.RFC3339, snapshot.ExportedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), exportedAt, time.Minute)
	assert.Len(t, snapshot.ExportedAt, len("2006-01-02T15:04:05.000Z"))

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"id"`)
	assert.NotContains(t, string(raw), `"categoryId"`)
	assert.Contains(t, string(raw), `"parent":"Root"`)
	assert.Contains(t, string(raw), `"category":"Sub"`)
	assert.Contains(t, string(raw), `"tags":["A","B"]`)
}

/*
TestExport_Empty still returns arrays, never null.
*/
func TestExport_Empty(t *testing.T) {
	snapshot, err := newFixture(t).service.Export(context.Background())
	require.NoError(t, err)

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"categories":[]`)
	assert.Contains(t, string(raw), `"prompts":[]`)
}

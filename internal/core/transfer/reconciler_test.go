// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/core/prompt"
	"github.com/taibuivan/promptdb/internal/core/transfer"
	"github.com/taibuivan/promptdb/pkg/pointer"
)

func samplePrompt(title string, category *string, tags ...string) transfer.PromptEntry {
	return transfer.PromptEntry{
		Title:    title,
		Body:     "body of " + title,
		Type:     "USER",
		Platform: "CHATGPT",
		UseCase:  "testing",
		Category: category,
		Tags:     tags,
	}
}

func sampleSnapshot() *transfer.Snapshot {
	return &transfer.Snapshot{
		Version: "1.0",
		Categories: []transfer.CategoryEntry{
			{Name: "Sub", Slug: "sub", Parent: pointer.To("Root")},
			{Name: "Root", Slug: "root", SortOrder: pointer.To(3)},
		},
		Tags: []transfer.TagEntry{
			{Name: "A", Slug: "a"},
			{Name: "B", Slug: "b"},
		},
		Prompts: []transfer.PromptEntry{
			samplePrompt("First", pointer.To("Sub"), "A", "B"),
			samplePrompt("Second", nil),
		},
	}
}

func warningsOf(result *transfer.Result, kind string) []transfer.Warning {
	var out []transfer.Warning
	for _, w := range result.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

/*
TestReconcile_LinksChildBeforeParent resolves parents listed after their children.
*/
func TestReconcile_LinksChildBeforeParent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	result, err := f.service.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, transfer.Summary{Prompts: 2, Categories: 2, Tags: 2}, result.Imported)
	assert.Empty(t, result.Warnings)

	root, err := f.categories.FindBySlug(ctx, "root")
	require.NoError(t, err)
	sub, err := f.categories.FindBySlug(ctx, "sub")
	require.NoError(t, err)

	require.NotNil(t, sub.ParentID)
	assert.Equal(t, root.ID, *sub.ParentID)
	assert.Equal(t, 3, root.SortOrder)
	assert.Nil(t, root.ParentID)

	prompts, err := f.prompts.List(ctx, prompt.Filter{CategoryID: sub.ID})
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, []string{"A", "B"}, prompts[0].TagNames())
	assert.Equal(t, prompt.DefaultLanguage, prompts[0].Language)
	assert.Equal(t, prompt.StatusDraft, prompts[0].Status)
	assert.Equal(t, 1, prompts[0].Version)
}

/*
TestReconcile_ReimportMergesCategoriesAndTagsButDuplicatesPrompts documents
that category and tag merges are idempotent while prompt import is not.
*/
func TestReconcile_ReimportMergesCategoriesAndTagsButDuplicatesPrompts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for range 2 {
		_, err := f.service.ImportSnapshot(ctx, sampleSnapshot())
		require.NoError(t, err)
	}

	categories, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)

	tags, err := f.tags.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	count, err := f.prompts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count, "prompt import always inserts")
}

/*
TestReconcile_UpdatesMatchedCategoryButNotMatchedTag checks the merge policy asymmetry.
*/
func TestReconcile_UpdatesMatchedCategoryButNotMatchedTag(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.service.ImportSnapshot(ctx, sampleSnapshot())
	require.NoError(t, err)

	second := &transfer.Snapshot{
		Categories: []transfer.CategoryEntry{{Name: "Root renamed", Slug: "root", SortOrder: pointer.To(9)}},
		Tags:       []transfer.TagEntry{{Name: "A renamed", Slug: "a"}},
		Prompts:    []transfer.PromptEntry{samplePrompt("Third", pointer.To("Root renamed"), "A renamed")},
	}

	result, err := f.service.ImportSnapshot(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	root, err := f.categories.FindBySlug(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "Root renamed", root.Name)
	assert.Equal(t, 9, root.SortOrder)

	a, err := f.tags.FindBySlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", a.Name, "matched tags are never modified")

	// The snapshot's own name still resolves to the matched tag
	third, err := f.prompts.List(ctx, prompt.Filter{Search: "Third"})
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, []string{"A"}, third[0].TagNames())
	assert.Equal(t, root.ID, *third[0].CategoryID)
}

/*
TestReconcile_UnresolvedReferences are skipped, kept out of the store and reported.
*/
func TestReconcile_UnresolvedReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	snapshot := &transfer.Snapshot{
		Categories: []transfer.CategoryEntry{{Name: "Orphan", Slug: "orphan", Parent: pointer.To("Ghost")}},
		Tags:       []transfer.TagEntry{{Name: "Known", Slug: "known"}},
		Prompts: []transfer.PromptEntry{
			samplePrompt("Loose", pointer.To("Nowhere"), "Known", "Unknown"),
		},
	}

	result, err := f.service.ImportSnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported.Prompts)

	orphan, err := f.categories.FindBySlug(ctx, "orphan")
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)

	loose, err := f.prompts.List(ctx, prompt.Filter{})
	require.NoError(t, err)
	require.Len(t, loose, 1)
	assert.Nil(t, loose[0].CategoryID)
	assert.Equal(t, []string{"Known"}, loose[0].TagNames())

	parents := warningsOf(result, transfer.WarningUnresolvedParent)
	require.Len(t, parents, 1)
	assert.Equal(t, "Orphan", parents[0].Ref)

	assert.Len(t, warningsOf(result, transfer.WarningUnresolvedCategory), 1)

	tags := warningsOf(result, transfer.WarningUnresolvedTag)
	require.Len(t, tags, 1)
	assert.Contains(t, tags[0].Message, `"Unknown"`)
}

/*
TestReconcile_KeepsNonCanonicalRows imports slugs and titles that the API
itself would reject, and keeps the references between them.
*/
func TestReconcile_KeepsNonCanonicalRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	title := strings.Repeat("x", prompt.MaxTitleLength+50)
	snapshot := &transfer.Snapshot{
		Categories: []transfer.CategoryEntry{{Name: "AI Tools", Slug: "AI_Tools"}},
		Tags:       []transfer.TagEntry{{Name: "C++", Slug: "c++"}},
		Prompts:    []transfer.PromptEntry{samplePrompt(title, pointer.To("AI Tools"), "C++")},
	}

	result, err := f.service.ImportSnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, transfer.Summary{Prompts: 1, Categories: 1, Tags: 1}, result.Imported)
	assert.Empty(t, result.Warnings)

	tools, err := f.categories.FindBySlug(ctx, "AI_Tools")
	require.NoError(t, err)
	cpp, err := f.tags.FindBySlug(ctx, "c++")
	require.NoError(t, err)

	stored, err := f.prompts.List(ctx, prompt.Filter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, title, stored[0].Title)
	require.NotNil(t, stored[0].CategoryID)
	assert.Equal(t, tools.ID, *stored[0].CategoryID)
	require.Len(t, stored[0].Tags, 1)
	assert.Equal(t, cpp.ID, stored[0].Tags[0].ID)
}

/*
TestReconcile_SkippedRowReferences names rows that were listed but not stored
differently from names the snapshot never had.
*/
func TestReconcile_SkippedRowReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	snapshot := &transfer.Snapshot{
		Categories: []transfer.CategoryEntry{{Name: "Slugless"}},
		Tags:       []transfer.TagEntry{{Name: "Empty"}},
		Prompts:    []transfer.PromptEntry{samplePrompt("Refs", pointer.To("Slugless"), "Empty", "Absent")},
	}

	result, err := f.service.ImportSnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported.Prompts)

	categories := warningsOf(result, transfer.WarningUnresolvedCategory)
	require.Len(t, categories, 1)
	assert.Equal(t, `category "Slugless" was not imported`, categories[0].Message)

	tags := warningsOf(result, transfer.WarningUnresolvedTag)
	require.Len(t, tags, 2)
	assert.Equal(t, `tag "Empty" was not imported`, tags[0].Message)
	assert.Equal(t, `tag "Absent" is not in the snapshot`, tags[1].Message)
}

/*
TestReconcile_BadRowsDoNotAbortTheBatch keeps earlier and later rows.
*/
func TestReconcile_BadRowsDoNotAbortTheBatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bad := samplePrompt("Bad platform", nil)
	bad.Platform = "MYSPACE"

	snapshot := &transfer.Snapshot{
		Categories: []transfer.CategoryEntry{{Name: "No slug"}, {Name: "Fine", Slug: "fine"}},
		Tags:       []transfer.TagEntry{{Name: "Blank slug", Slug: " "}},
		Prompts:    []transfer.PromptEntry{samplePrompt("Before", nil), bad, samplePrompt("After", nil)},
	}

	result, err := f.service.ImportSnapshot(ctx, snapshot)
	require.NoError(t, err)
	assert.Equal(t, transfer.Summary{Prompts: 2, Categories: 1, Tags: 0}, result.Imported)

	invalid := warningsOf(result, transfer.WarningInvalid)
	require.Len(t, invalid, 3)
	assert.Equal(t, transfer.EntityCategory, invalid[0].Entity)
	assert.Equal(t, transfer.EntityTag, invalid[1].Entity)
	assert.Equal(t, transfer.EntityPrompt, invalid[2].Entity)
	assert.Contains(t, invalid[2].Message, "platform")
}

/*
TestReconcile_StopsOnCancel returns the partial result with the context error.
*/
func TestReconcile_StopsOnCancel(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.service.ImportSnapshot(ctx, sampleSnapshot())
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Zero(t, result.Imported.Prompts)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/core/transfer"
	"github.com/taibuivan/promptdb/internal/platform/apperr"
)

/*
TestDecode_RejectsWrongShapes fails before any write for type errors.
*/
func TestDecode_RejectsWrongShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"categories_not_array", `{"categories":"x"}`, "/categories"},
		{"prompts_not_array", `{"prompts":{}}`, "/prompts"},
		{"tag_name_number", `{"tags":[{"name":1,"slug":"a"}]}`, "/tags/0/name"},
		{"sort_order_fraction", `{"categories":[{"name":"a","slug":"a","sortOrder":1.5}]}`, "/categories/0/sortOrder"},
		{"prompt_tags_not_strings", `{"prompts":[{"tags":[1]}]}`, "/prompts/0/tags/0"},
		{"bad_timestamp", `{"prompts":[{"lastUsedAt":"yesterday"}]}`, "/prompts/0/lastUsedAt"},
		{"top_level_array", `[]`, "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := transfer.Decode([]byte(tt.input))

			ae := apperr.As(err)
			require.NotNil(t, ae, "got %v", err)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestDecode_Malformed maps unparsable JSON to a validation error.
*/
func TestDecode_Malformed(t *testing.T) {
	_, err := transfer.Decode([]byte(`{"prompts":[`))
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

/*
TestDecode_AcceptsMinimalAndNulls allows every section to be missing or null.
*/
func TestDecode_AcceptsMinimalAndNulls(t *testing.T) {
	snapshot, err := transfer.Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, snapshot.Prompts)

	snapshot, err = transfer.Decode([]byte(`{"categories":null,"prompts":[{"title":"t","category":null,"tags":null,"extra":true}]}`))
	require.NoError(t, err)
	require.Len(t, snapshot.Prompts, 1)
	assert.Nil(t, snapshot.Prompts[0].Category)
}

/*
TestYAML_RoundTrip encodes and decodes through YAML.
*/
func TestYAML_RoundTrip(t *testing.T) {
	original := sampleSnapshot()

	raw, err := transfer.EncodeYAML(original)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `version: "1.0"`)

	decoded, err := transfer.DecodeYAML(raw)
	require.NoError(t, err)
	assert.Equal(t, original.Categories, decoded.Categories)
	assert.Equal(t, original.Prompts[0].Tags, decoded.Prompts[0].Tags)
}

/*
TestSeedSnapshot parses the embedded sample catalog.
*/
func TestSeedSnapshot(t *testing.T) {
	snapshot, err := transfer.SeedSnapshot()
	require.NoError(t, err)

	assert.Len(t, snapshot.Categories, 2)
	assert.Len(t, snapshot.Tags, 2)
	require.Len(t, snapshot.Prompts, 2)
	assert.Equal(t, "Code Review Assistant", snapshot.Prompts[0].Title)
	assert.True(t, snapshot.Prompts[0].IsFavorite)
}

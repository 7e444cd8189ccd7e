// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/respond"
)

/*
TestList writes the {items, total} envelope.
*/
func TestList(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.List(recorder, []string{"a", "b"}, 2)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"items":["a","b"],"total":2}`, recorder.Body.String())
}

/*
TestSuccess writes the bare acknowledgement.
*/
func TestSuccess(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Success(recorder)

	assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
}

/*
TestError maps AppErrors and hides unknown errors.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "not_found",
			err:    apperr.NotFound("Prompt"),
			status: http.StatusNotFound,
			body:   `{"error":"Prompt not found","code":"NOT_FOUND"}`,
		},
		{
			name:   "validation_details",
			err:    apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "This field is required"}),
			status: http.StatusBadRequest,
			body:   `{"error":"Validation failed","code":"VALIDATION_ERROR","details":[{"field":"title","message":"This field is required"}]}`,
		},
		{
			name:   "plain_error",
			err:    errors.New("dial tcp: refused"),
			status: http.StatusInternalServerError,
			body:   `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.JSONEq(t, tt.body, recorder.Body.String())

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		})
	}
}

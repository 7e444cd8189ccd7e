// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
)

/*
TestConstructors_StatusMapping checks every constructor against its HTTP status.
*/
func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Prompt"), http.StatusNotFound, apperr.CodeNotFound},
		{"conflict", apperr.Conflict("dup"), http.StatusConflict, apperr.CodeConflict},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{"rate_limited", apperr.RateLimited(3), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{"too_large", apperr.PayloadTooLarge(10), http.StatusRequestEntityTooLarge, apperr.CodePayloadTooLarge},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
		{"unavailable", apperr.ServiceUnavailable("down"), http.StatusServiceUnavailable, apperr.CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestAs_TraversesWrappedChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_TraversesWrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("Tag"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "Tag not found", ae.Message)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.IsCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.IsCode(errors.New("plain"), apperr.CodeNotFound))
}

/*
TestInternal_HidesCause makes sure the client message never carries the cause.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}

/*
TestWithCause leaves the shared sentinel untouched.
*/
func TestWithCause(t *testing.T) {
	base := apperr.Conflict("Slug already exists")
	withCause := base.WithCause(errors.New("23505"))

	assert.Nil(t, base.Cause)
	assert.NotNil(t, withCause.Cause)
	assert.Equal(t, base.Message, withCause.Message)
}

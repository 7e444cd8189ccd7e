// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
	"github.com/taibuivan/promptdb/internal/platform/validate"
)

// DefaultBodyLimit caps ordinary entity payloads.
const DefaultBodyLimit int64 = 1 << 20

/*
DecodeJSON reads at most limit bytes of the request body and decodes them into target.

Parameters:
  - writer: http.ResponseWriter (lets the server close oversized connections)
  - request: *http.Request
  - target: any (Pointer to the destination struct)
  - limit: int64 maximum body size in bytes

Returns:
  - error: apperr.PayloadTooLarge over the limit, validate.ErrInvalidJSON on
    malformed input, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any, limit int64) error {
	body := http.MaxBytesReader(writer, request.Body, limit)

	if err := json.NewDecoder(body).Decode(target); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.PayloadTooLarge(limit)
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ReadBody returns the raw request body, failing once it grows past limit.
*/
func ReadBody(writer http.ResponseWriter, request *http.Request, limit int64) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperr.PayloadTooLarge(limit)
		}
		return nil, apperr.ValidationError("Could not read request body").WithCause(err)
	}
	return body, nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

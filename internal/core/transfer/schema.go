// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transfer

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
)

//go:embed snapshot.schema.json
var snapshotSchema []byte

const schemaURL = "snapshot.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, bytes.NewReader(snapshotSchema)); err != nil {
		return nil, fmt.Errorf("transfer: load snapshot schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// validateDocument checks a decoded JSON document against the snapshot schema.
func validateDocument(document any) error {
	schema, err := compiledSchema()
	if err != nil {
		return apperr.Internal(err)
	}

	err = schema.Validate(document)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return apperr.Internal(err)
	}

	return apperr.ValidationError("Invalid import format", leafErrors(validationErr)...).WithCause(err)
}

// leafErrors flattens the cause tree into one detail per failing location.
func leafErrors(err *jsonschema.ValidationError) []apperr.FieldError {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []apperr.FieldError{{Field: location, Message: err.Message}}
	}

	var details []apperr.FieldError
	for _, cause := range err.Causes {
		details = append(details, leafErrors(cause)...)
	}
	return details
}

func invalidFormat(cause error) error {
	return apperr.ValidationError("Invalid import format").WithCause(cause)
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level failures and turns them into one
VALIDATION_ERROR [apperr.AppError].

Services return [Validator.Err]. The import reconciler checks a smaller rule
set per row and turns [Validator.Summary] into a row warning instead.

	validator := &validate.Validator{}
	validator.
		Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength).
		Slug(FieldSlug, tagSlug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

A Validator is single-use and not safe for concurrent use.
*/
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/taibuivan/promptdb/internal/platform/apperr"
)

// canonicalUUIDLength is the 8-4-4-4-12 form; braces and urn prefixes are rejected.
const canonicalUUIDLength = 36

// slugPattern is lowercase alphanumeric runs joined by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates [apperr.FieldError] values.
type Validator struct {
	errs []apperr.FieldError
}

// # Rules

// Required fails on an empty or whitespace-only value.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen counts characters, not bytes.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	if utf8.RuneCountInString(value) > limit {
		v.add(field, fmt.Sprintf("Maximum %d characters", limit))
	}
	return v
}

// Slug fails unless value is lowercase letters and digits separated by single hyphens.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugPattern.MatchString(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// UUID fails unless value is a canonical hyphenated UUID of any version.
func (v *Validator) UUID(field, value string) *Validator {
	if len(value) != canonicalUUIDLength || uuid.Validate(value) != nil {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// OptionalUUID checks value only when it is set.
func (v *Validator) OptionalUUID(field string, value *string) *Validator {
	if value != nil {
		v.UUID(field, *value)
	}
	return v
}

// OneOf fails unless value equals one of allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		v.add(field, "Must be one of: "+strings.Join(allowed, ", "))
	}
	return v
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// # Output

// Err returns nil when every rule passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Summary renders the failures as "field: message; field: message".
func (v *Validator) Summary() string {
	parts := make([]string, len(v.errs))
	for i, e := range v.errs {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// Fail builds a validation error for a single field, for checks that need a
// store lookup first (e.g. parent cycles).
func Fail(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optional distinguishes "absent" from "explicitly null" in JSON input.

A *T field cannot tell {} apart from {"parentId": null}. Field[T] can:

	{}                   -> Set=false
	{"parentId": null}   -> Set=true, Value=nil
	{"parentId": "abc"}  -> Set=true, Value="abc"
*/
package optional

import (
	"bytes"
	"encoding/json"
)

// Field is a JSON value that records whether it was present.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Of returns a present, non-null field.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a present, null field.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON implements [json.Unmarshaler]. It only runs when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

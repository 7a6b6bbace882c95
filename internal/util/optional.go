// Copyright (c) 2026 Quill Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a JSON field that is absent from one that is
// explicitly null and one that carries a value. A plain pointer cannot tell
// the first two apart after unmarshalling.
type Optional[T any] struct {
	Set   bool // field was present in the payload
	Null  bool // field was present and explicitly null
	Value T
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present, so Set is always true here; absent fields keep the zero
// Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// HasValue reports whether the field was present with a non-null value.
func (o Optional[T]) HasValue() bool {
	return o.Set && !o.Null
}

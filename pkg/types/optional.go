package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Optional tracks whether a JSON field was present, explicitly null, or
// carried a value that could not be decoded into T. Decoding never fails so
// callers can report every bad field at once.
type Optional[T any] struct {
	Present bool
	Null    bool
	Invalid bool
	Value   T
}

// Some returns a present, valid Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

// Null returns a present Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler. Quoted values are retried
// unquoted so numeric form fields like "5" decode into numeric T.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		o.Null = true
		return nil
	}

	var v T
	if err := json.Unmarshal(trimmed, &v); err == nil {
		o.Value = v
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			s = strings.TrimSpace(s)
			if s != "" && json.Unmarshal([]byte(s), &v) == nil {
				o.Value = v
				return nil
			}
		}
	}

	o.Invalid = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Null || o.Invalid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Set reports whether the field carried a usable value.
func (o Optional[T]) Set() bool {
	return o.Present && !o.Null && !o.Invalid
}

// Ptr returns a pointer to the value when Set, nil otherwise.
func (o Optional[T]) Ptr() *T {
	if !o.Set() {
		return nil
	}
	v := o.Value
	return &v
}

// Or returns the value when Set, fallback otherwise.
func (o Optional[T]) Or(fallback T) T {
	if o.Set() {
		return o.Value
	}
	return fallback
}

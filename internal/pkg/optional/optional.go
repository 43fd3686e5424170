package optional

import "encoding/json"

// Opt wraps a value in an update payload so that "field omitted" can be told
// apart from "field explicitly set". A JSON key that is absent leaves Set
// false; a key that is present (including with a null value) marks the field
// as set.
type Opt[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a set, non-null Opt holding value.
func Of[T any](value T) Opt[T] {
	return Opt[T]{Set: true, Value: value}
}

// Null returns a set Opt that explicitly clears the field.
func Null[T any]() Opt[T] {
	return Opt[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the key
// is present in the payload, which is what records presence.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON implements json.Marshaler.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get returns the value and whether it is set to a non-null value.
func (o Opt[T]) Get() (T, bool) {
	var zero T
	if !o.Set || o.Null {
		return zero, false
	}
	return o.Value, true
}

// Ptr returns a pointer to the value when set and non-null, nil otherwise.
func (o Opt[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

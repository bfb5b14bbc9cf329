package finmgr

import "encoding/json"

// Optional holds a value that may be absent.
//
// Statements distinguish "not applicable" from "exactly zero" for several
// amounts (a commission reported as "-", a distribution without a return of
// capital component). The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsPresent reports whether the value is present.
func (o Optional[T]) IsPresent() bool { return o.ok }

// Or returns the value if present, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// equalOptional compares two optionals of a type with an Equal method.
func equalOptional[T interface{ Equal(T) bool }](a, b Optional[T]) bool {
	if a.ok != b.ok {
		return false
	}
	return !a.ok || a.value.Equal(b.value)
}

// MarshalJSON writes null for an absent value.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON reads null as an absent value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

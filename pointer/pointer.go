// Package pointer helps with the optional fields of lint configuration, where
// nil means "not set" and falls back to the rule's default.
package pointer

// From returns a pointer to a copy of t.
func From[T any](t T) *T {
	return &t
}

// ValueOrZero dereferences v, treating nil as the zero value.
func ValueOrZero[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

package common

// Coalesce returns the first value that is not the zero value of T, or the zero value when every value is zero.
// Config normalization uses it to fall back to defaults.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Filter returns the values for which keep reports true, in their original order.
// The input slice is not modified.
//
// Parameters:
//   - values: the values to filter
//   - keep: predicate selecting values to retain
//
// Returns:
//   - []T: a new slice holding the retained values
func Filter[T any](values []T, keep func(T) bool) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

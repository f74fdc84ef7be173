package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Clamp limits v to [lo, hi].
//
// Parameters:
//   - v: the value
//   - lo: the lower bound
//   - hi: the upper bound, not less than lo
//
// Returns:
//   - T: v, lo or hi
func Clamp[T ~int | ~float32 | ~float64](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

package common

import "cmp"

// Clamp restricts v to the closed range [lo, hi].
// If lo > hi the result is lo.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Lerp linearly interpolates from a toward b by factor t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

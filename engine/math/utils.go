package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Wrap folds `f` into [low, high] by whole multiples of the range width.
// A value landing exactly on a bound keeps the side it came from. NaN and
// infinities are returned unchanged.
func Wrap[T constraints.Float](f, low, high T) T {
	width := float64(high) - float64(low)
	v := float64(f)
	if width <= 0 || m.IsNaN(v) || m.IsInf(v, 0) {
		return f
	}
	if f >= low && f <= high {
		return f
	}
	r := m.Mod(v-float64(low), width)
	if r < 0 {
		r += width
	}
	if r == 0 && f > high {
		return high
	}
	return low + T(r)
}

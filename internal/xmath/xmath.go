// Package xmath provides the small integer helpers used by the layout
// arithmetic.
package xmath

import (
	"golang.org/x/exp/constraints"
)

// Align rounds v up to the next multiple of a (a must be a power of two
// or any positive alignment; v is assumed non-negative).
func Align[T constraints.Integer](v, a T) T {
	return (v + a - 1) / a * a
}

// DivUp divides a by b rounding up.
func DivUp[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// Abs returns the absolute value of v.
func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

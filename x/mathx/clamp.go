package mathx

import "golang.org/x/exp/constraints"

// Clamp bounds v to the span between a and b in either order, so falling
// ramps can pass their start and target as given.
func Clamp[T constraints.Ordered](v, a, b T) T {
	lo, hi := min(a, b), max(a, b)
	return min(max(v, lo), hi)
}

// Abs of a signed integer. The most negative value wraps.
func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

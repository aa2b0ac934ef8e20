package mathx

import "golang.org/x/exp/constraints"

// Unlerp returns where v sits between a and b as a fraction in [0,1].
// v is clamped to the span first; a degenerate span reports 1.
// a > b is allowed (falling ramps).
func Unlerp[T constraints.Float](v, a, b T) T {
	if a == b {
		return 1
	}
	v = Clamp(v, a, b)
	return (v - a) / (b - a)
}

// ScaleU8 maps a fraction in [0,1] to [0,255], rounding half up.
func ScaleU8[T constraints.Float](f T) uint8 {
	f = Clamp(f, 0, 1)
	return uint8(f*255 + 0.5)
}

// Package ramp steps an integer value towards a target over time.
package ramp

import (
	"context"
	"time"

	"ledcore-go/x/mathx"
)

// Step receives each intermediate value.
type Step func(v int32)

// Linear moves from cur to to in steps increments spread over d, calling set
// after each one. The last call is always exactly to. It returns false if ctx
// ended first. steps <= 0 or d <= 0 snaps straight to to.
func Linear(ctx context.Context, cur, to int32, steps int, d time.Duration, set Step) bool {
	if steps <= 0 || d <= 0 {
		set(to)
		return true
	}
	every := max(d/time.Duration(steps), time.Millisecond)
	t := time.NewTicker(every)
	defer t.Stop()

	delta := to - cur
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
		v := cur + int32(int64(delta)*int64(i)/int64(steps))
		set(mathx.Clamp(v, cur, to))
	}
	return true
}

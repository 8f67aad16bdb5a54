// Package core holds the types shared by the game and its front ends: the
// cell screen games draw into, per-tick input, and runtime settings. It has
// no terminal or Bubble Tea dependency.
package core

import "cmp"

// Rect is a box on the screen grid; Right and Bottom are exclusive.
type Rect struct {
	X, Y, W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// ClampF is Clamp for the float tuning values read from config.
func ClampF(v, lo, hi float64) float64 {
	return Clamp(v, lo, hi)
}

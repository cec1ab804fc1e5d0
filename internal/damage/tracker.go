// Package damage implements the per-output damage region spec.md §3/§4.9
// describes: a set of output-coordinate rectangles accumulated between
// frames and consumed (never overwritten) by the render pipeline.
package damage

import (
	"github.com/swaywm/go-wlroots/wlroots"
)

// Tracker accumulates damage rectangles for one output. Damage is additive
// across calls to Add until Clear is invoked by the render pipeline after a
// successful frame (spec.md §4.9 invariant (ii)).
type Tracker struct {
	rects     []wlroots.GeoBox
	needSwap  bool
	debugFull bool
	bounds    wlroots.GeoBox
}

func NewTracker(bounds wlroots.GeoBox) *Tracker {
	return &Tracker{bounds: bounds}
}

// SetBounds updates the output's full-area rectangle, used when debug mode
// (spec.md §6) forces whole-output damage every frame.
func (t *Tracker) SetBounds(bounds wlroots.GeoBox) {
	t.bounds = bounds
}

// SetDebug toggles debug rendering: damage union becomes the full output
// every frame (spec.md §6's `-d` flag).
func (t *Tracker) SetDebug(debug bool) {
	t.debugFull = debug
}

// Add accumulates one damaged rectangle in output coordinates. An empty
// (zero-area) rectangle is ignored.
func (t *Tracker) Add(box wlroots.GeoBox) {
	if box.Width <= 0 || box.Height <= 0 {
		return
	}
	t.rects = append(t.rects, box)
	t.needSwap = true
}

// AddFull damages the entire output.
func (t *Tracker) AddFull() {
	t.Add(t.bounds)
}

// NeedsSwap reports whether there is damage to paint this frame — the
// render pipeline's step 2 early-out (spec.md §4.9) and the signal that
// keeps the software-cursor render running even with no other damage
// (spec.md §4.9 invariant (iii)).
func (t *Tracker) NeedsSwap() bool {
	return t.needSwap
}

// Rects returns this frame's damage rectangles to paint. In debug mode it
// always returns the full output bounds regardless of what was recorded.
func (t *Tracker) Rects() []wlroots.GeoBox {
	if t.debugFull {
		return []wlroots.GeoBox{t.bounds}
	}
	if len(t.rects) == 0 {
		return nil
	}
	out := make([]wlroots.GeoBox, len(t.rects))
	copy(out, t.rects)
	return out
}

// Clear resets accumulated damage after a frame has been committed
// (spec.md §4.9 step 8).
func (t *Tracker) Clear() {
	t.rects = t.rects[:0]
	t.needSwap = false
}

// Intersects reports whether box overlaps any currently accumulated damage
// rectangle or the debug full-output rectangle — used to implement
// spec.md §8 invariant 1 ("V is drawn iff the intersection ... is
// non-empty").
func (t *Tracker) Intersects(box wlroots.GeoBox) bool {
	if t.debugFull {
		return boxesIntersect(box, t.bounds)
	}
	for _, r := range t.rects {
		if boxesIntersect(box, r) {
			return true
		}
	}
	return false
}

func boxesIntersect(a, b wlroots.GeoBox) bool {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}

// Intersect returns the overlapping rectangle of a and b, and whether one
// exists.
func Intersect(a, b wlroots.GeoBox) (wlroots.GeoBox, bool) {
	if !boxesIntersect(a, b) {
		return wlroots.GeoBox{}, false
	}
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	return wlroots.GeoBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

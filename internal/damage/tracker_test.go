package damage

import (
	"testing"

	"github.com/swaywm/go-wlroots/wlroots"
)

func TestAddAccumulatesRatherThanOverwrites(t *testing.T) {
	tr := NewTracker(wlroots.GeoBox{X: 0, Y: 0, Width: 800, Height: 600})
	tr.Add(wlroots.GeoBox{X: 0, Y: 0, Width: 10, Height: 10})
	tr.Add(wlroots.GeoBox{X: 100, Y: 100, Width: 10, Height: 10})

	rects := tr.Rects()
	if len(rects) != 2 {
		t.Fatalf("rects = %v, want 2 accumulated rectangles", rects)
	}
}

func TestClearResetsNeedsSwap(t *testing.T) {
	tr := NewTracker(wlroots.GeoBox{X: 0, Y: 0, Width: 100, Height: 100})
	tr.Add(wlroots.GeoBox{X: 0, Y: 0, Width: 5, Height: 5})
	if !tr.NeedsSwap() {
		t.Fatalf("expected NeedsSwap after Add")
	}
	tr.Clear()
	if tr.NeedsSwap() {
		t.Fatalf("expected NeedsSwap false after Clear")
	}
	if len(tr.Rects()) != 0 {
		t.Fatalf("expected no rects after Clear")
	}
}

func TestDebugModeForcesFullOutputDamage(t *testing.T) {
	bounds := wlroots.GeoBox{X: 0, Y: 0, Width: 1920, Height: 1080}
	tr := NewTracker(bounds)
	tr.SetDebug(true)

	rects := tr.Rects()
	if len(rects) != 1 || rects[0] != bounds {
		t.Fatalf("debug rects = %v, want [%v]", rects, bounds)
	}
}

func TestViewDrawnIffIntersectsDamage(t *testing.T) {
	tr := NewTracker(wlroots.GeoBox{X: 0, Y: 0, Width: 800, Height: 600})
	tr.Add(wlroots.GeoBox{X: 0, Y: 0, Width: 100, Height: 100})

	inside := wlroots.GeoBox{X: 50, Y: 50, Width: 20, Height: 20}
	outside := wlroots.GeoBox{X: 500, Y: 500, Width: 20, Height: 20}

	if !tr.Intersects(inside) {
		t.Errorf("expected view inside damage to be drawn")
	}
	if tr.Intersects(outside) {
		t.Errorf("expected view outside damage to not be drawn")
	}
}

func TestIgnoresZeroAreaDamage(t *testing.T) {
	tr := NewTracker(wlroots.GeoBox{X: 0, Y: 0, Width: 100, Height: 100})
	tr.Add(wlroots.GeoBox{X: 0, Y: 0, Width: 0, Height: 0})
	if tr.NeedsSwap() {
		t.Fatalf("zero-area damage should not schedule a swap")
	}
}

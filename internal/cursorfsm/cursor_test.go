package cursorfsm

import (
	"testing"

	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/view"
)

type fakeShell struct{ width, height int }

func (f *fakeShell) SurfaceAt(lx, ly float64) (wlroots.Surface, float64, float64, bool) {
	return wlroots.Surface{}, 0, 0, false
}
func (f *fakeShell) MainSurface() wlroots.Surface                                    { return wlroots.Surface{} }
func (f *fakeShell) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {}
func (f *fakeShell) SetActivated(activated bool)                                     {}
func (f *fakeShell) SetSize(width, height uint32) (uint32, bool)                     { return 0, true }
func (f *fakeShell) Size() (int, int)                                                { return f.width, f.height }
func (f *fakeShell) AckedSerial() (uint32, bool)                                     { return 0, true }

// TestMoveComputesPositionFromGrabOffset exercises spec scenario S1.
func TestMoveComputesPositionFromGrabOffset(t *testing.T) {
	v := view.New(view.RoleXDGShell, &fakeShell{width: 400, height: 300})
	v.Map(100, 100)

	c := New("left_ptr")
	c.BeginMove(v, 120, 110)
	if c.Mode != ModeMove {
		t.Fatalf("mode = %v, want Move", c.Mode)
	}

	x, y := c.ComputeMove(520, 410)
	if x != 500 || y != 400 {
		t.Fatalf("ComputeMove = (%d,%d), want (500,400)", x, y)
	}

	c.Reset()
	if c.Mode != ModePassthrough {
		t.Fatalf("mode after release = %v, want Passthrough", c.Mode)
	}
	if _, ok := c.GrabView(); ok {
		t.Fatalf("expected no grab after reset")
	}
}

// TestResizeFromTopLeftMatchesConfigure exercises spec scenario S2.
func TestResizeFromTopLeftMatchesConfigure(t *testing.T) {
	v := view.New(view.RoleXDGShell, &fakeShell{width: 400, height: 300})
	v.Map(200, 200)

	c := New("left_ptr")
	c.BeginResize(v, wlroots.EdgeTop|wlroots.EdgeLeft)

	box := c.ComputeResize(250, 230)
	if box.Width != 350 || box.Height != 270 {
		t.Fatalf("resize box = %+v, want width=350 height=270", box)
	}
	if box.X != 250 || box.Y != 230 {
		t.Fatalf("resize box origin = (%d,%d), want (250,230)", box.X, box.Y)
	}
}

func TestResizeNeverInvertsDimensions(t *testing.T) {
	v := view.New(view.RoleXDGShell, &fakeShell{width: 100, height: 100})
	v.Map(0, 0)

	c := New("left_ptr")
	c.BeginResize(v, wlroots.EdgeRight|wlroots.EdgeBottom)

	box := c.ComputeResize(-50, -50)
	if box.Width < 1 || box.Height < 1 {
		t.Fatalf("resize box inverted: %+v", box)
	}
}

func TestCancelIfGrabbingOnlyResetsMatchingView(t *testing.T) {
	a := view.New(view.RoleXDGShell, &fakeShell{width: 10, height: 10})
	a.Map(0, 0)
	b := view.New(view.RoleXDGShell, &fakeShell{width: 10, height: 10})
	b.Map(0, 0)

	c := New("left_ptr")
	c.BeginMove(a, 0, 0)

	c.CancelIfGrabbing(b)
	if c.Mode != ModeMove {
		t.Fatalf("cancel for unrelated view should not reset the grab")
	}

	c.CancelIfGrabbing(a)
	if c.Mode != ModePassthrough {
		t.Fatalf("cancel for the grabbed view should reset to passthrough")
	}
}

package view

import (
	"testing"

	"github.com/swaywm/go-wlroots/wlroots"
)

type fakeShell struct {
	width, height int
	activated     bool
	lastSerial    uint32
	hasSerial     bool
}

func (f *fakeShell) SurfaceAt(lx, ly float64) (wlroots.Surface, float64, float64, bool) {
	return wlroots.Surface{}, 0, 0, false
}
func (f *fakeShell) MainSurface() wlroots.Surface                                    { return wlroots.Surface{} }
func (f *fakeShell) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {}
func (f *fakeShell) SetActivated(activated bool)                                     { f.activated = activated }
func (f *fakeShell) SetSize(width, height uint32) (uint32, bool) {
	f.width, f.height = int(width), int(height)
	f.lastSerial++
	return f.lastSerial, f.hasSerial
}
func (f *fakeShell) Size() (int, int) { return f.width, f.height }
func (f *fakeShell) AckedSerial() (uint32, bool) {
	return f.lastSerial, f.hasSerial
}

// TestResizeFromTopLeftKeepsOppositeCornerFixed exercises spec scenario S2.
func TestResizeFromTopLeftKeepsOppositeCornerFixed(t *testing.T) {
	shell := &fakeShell{width: 400, height: 300, hasSerial: true}
	v := New(RoleXDGShell, shell)
	v.Map(200, 200)

	pending := wlroots.GeoBox{X: 250, Y: 230, Width: 350, Height: 270}
	v.RequestGeometry(pending, wlroots.EdgeTop|wlroots.EdgeLeft)
	if !v.IsPending {
		t.Fatalf("expected is_pending after RequestGeometry with a serial-tracking shell")
	}

	before, after := v.Commit(350, 270, shell.lastSerial, true)
	if v.IsPending {
		t.Fatalf("expected is_pending cleared after a satisfying commit")
	}
	if after.X != 250 || after.Y != 230 || after.Width != 350 || after.Height != 270 {
		t.Fatalf("after = %+v, want {250 230 350 270}", after)
	}
	if before.X != 200 || before.Y != 200 {
		t.Fatalf("before = %+v, want origin at grab-start geometry {200 200 ...}", before)
	}

	bottomRightX := after.X + after.Width
	bottomRightY := after.Y + after.Height
	if bottomRightX != 600 || bottomRightY != 500 {
		t.Fatalf("anchored bottom-right corner moved to (%d,%d), want (600,500)", bottomRightX, bottomRightY)
	}
}

func TestCommitBeforeAckDoesNotRealign(t *testing.T) {
	shell := &fakeShell{width: 400, height: 300, hasSerial: true}
	v := New(RoleXDGShell, shell)
	v.Map(100, 100)

	v.RequestGeometry(wlroots.GeoBox{X: 50, Y: 50, Width: 500, Height: 500}, 0)
	staleSerial := shell.lastSerial - 1

	before, after := v.Commit(400, 300, staleSerial, true)
	if after.X != before.X || after.Y != before.Y {
		t.Fatalf("position changed on an unsatisfying ack: before=%+v after=%+v", before, after)
	}
}

func TestX11BridgeAlignsUnconditionallyWithoutSerial(t *testing.T) {
	shell := &fakeShell{width: 100, height: 100, hasSerial: false}
	v := New(RoleXWayland, shell)
	v.Map(0, 0)

	v.RequestGeometry(wlroots.GeoBox{X: 20, Y: 30, Width: 80, Height: 90}, 0)
	if v.IsPending {
		t.Fatalf("X11 bridge view should never set is_pending")
	}

	_, after := v.Commit(80, 90, 0, false)
	if after.X != 20 || after.Y != 30 {
		t.Fatalf("after = %+v, want aligned to pending origin (20,30)", after)
	}
}

func TestCommitOnUnmappedViewIsCallerResponsibility(t *testing.T) {
	shell := &fakeShell{width: 10, height: 10, hasSerial: true}
	v := New(RoleXDGShell, shell)
	if v.Mapped {
		t.Fatalf("new view should start unmapped")
	}

	// View.Commit itself does not check Mapped; dropping the commit is the
	// compositor's job.
	_, after := v.Commit(20, 20, 0, true)
	if v.Mapped {
		t.Fatalf("Commit must not map the view")
	}
	if after.Width != 20 || after.Height != 20 {
		t.Fatalf("after = %+v, want size 20x20 applied by Commit on an unmapped view", after)
	}
}

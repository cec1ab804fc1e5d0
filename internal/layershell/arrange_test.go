package layershell

import (
	"testing"

	"github.com/swaywm/go-wlroots/wlroots"
)

type fakeShell struct {
	closed bool
}

func (f *fakeShell) SurfaceAt(sx, sy float64) (wlroots.Surface, float64, float64, bool) {
	return wlroots.Surface{}, 0, 0, false
}
func (f *fakeShell) MainSurface() wlroots.Surface                                    { return wlroots.Surface{} }
func (f *fakeShell) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {}
func (f *fakeShell) Configure(width, height uint32) uint32                          { return 0 }
func (f *fakeShell) Close()                                                         { f.closed = true }

func TestArrangeTopBarReservesExclusiveZone(t *testing.T) {
	full := wlroots.GeoBox{X: 0, Y: 0, Width: 800, Height: 600}

	bar := &Surface{
		Shell:         &fakeShell{},
		Layer:         LayerTop,
		Anchor:        AnchorTop | AnchorLeft | AnchorRight,
		DesiredHeight: 30,
		ExclusiveZone: 30,
	}
	filler := &Surface{
		Shell:  &fakeShell{},
		Layer:  LayerBottom,
		Anchor: AnchorTop | AnchorBottom | AnchorLeft | AnchorRight,
	}

	usable, closed := Arrange([]*Surface{bar, filler}, full)

	if len(closed) != 0 {
		t.Fatalf("expected no closed surfaces, got %d", len(closed))
	}
	if bar.Geo != (wlroots.GeoBox{X: 0, Y: 0, Width: 800, Height: 30}) {
		t.Errorf("bar geo = %+v, want {0 0 800 30}", bar.Geo)
	}
	wantUsable := wlroots.GeoBox{X: 0, Y: 30, Width: 800, Height: 570}
	if usable != wantUsable {
		t.Errorf("usable = %+v, want %+v", usable, wantUsable)
	}
	if filler.Geo != wantUsable {
		t.Errorf("filler geo = %+v, want %+v (fills remaining usable area)", filler.Geo, wantUsable)
	}
}

func TestArrangeNonPositiveSizeCloses(t *testing.T) {
	full := wlroots.GeoBox{X: 0, Y: 0, Width: 100, Height: 100}
	overflowing := &Surface{
		Shell:         &fakeShell{},
		Layer:         LayerOverlay,
		Anchor:        AnchorTop | AnchorBottom | AnchorLeft | AnchorRight,
		ExclusiveZone: 0,
		Margin:        Margin{Top: 60, Bottom: 60},
	}

	_, closed := Arrange([]*Surface{overflowing}, full)
	if len(closed) != 1 || closed[0] != overflowing {
		t.Fatalf("expected overflowing surface to be closed, got %v", closed)
	}
}

func TestArrangeLeftAnchoredCentersVertically(t *testing.T) {
	full := wlroots.GeoBox{X: 0, Y: 0, Width: 800, Height: 600}
	launcher := &Surface{
		Shell:         &fakeShell{},
		Layer:         LayerOverlay,
		Anchor:        AnchorLeft,
		DesiredWidth:  40,
		DesiredHeight: 200,
	}
	_, _ = Arrange([]*Surface{launcher}, full)

	want := wlroots.GeoBox{X: 0, Y: 200, Width: 40, Height: 200}
	if launcher.Geo != want {
		t.Errorf("launcher geo = %+v, want %+v", launcher.Geo, want)
	}
}

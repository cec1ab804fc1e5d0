package view

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/swaywm/go-wlroots/wlroots"
)

// X11Properties reads the EWMH/ICCCM properties of a bridged X11 window.
// It is grounded on the same xgbutil/ewmh calls a standalone X11 window
// manager would use (see DESIGN.md); the X11 bridge's "shell protocol" is
// this property contract rather than a Wayland wire protocol, per
// spec.md §1's "X11-window bridging ... treated as just another surface
// role".
type X11Properties struct {
	xu *xgbutil.XUtil
}

func NewX11Properties(xu *xgbutil.XUtil) *X11Properties {
	return &X11Properties{xu: xu}
}

func (p *X11Properties) Title(win xproto.Window) string {
	if p.xu == nil {
		return ""
	}
	name, err := ewmh.WmNameGet(p.xu, win)
	if err != nil || name == "" {
		name, _ = icccm.WmNameGet(p.xu, win)
	}
	return name
}

func (p *X11Properties) IsNormal(win xproto.Window) bool {
	if p.xu == nil {
		return true
	}
	types, err := ewmh.WmWindowTypeGet(p.xu, win)
	if err != nil || len(types) == 0 {
		return true
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" || t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" || t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}
	return true
}

// XWaylandSurfaceAdapter adapts a bridged X11 window (via wlroots'
// XWayland integration) to the Shell interface. It never returns a
// configure serial: per spec.md §4.1, "if the shell does not return a
// serial (X11 bridge), the alignment happens on the very next commit".
type XWaylandSurfaceAdapter struct {
	Surface wlroots.XWaylandSurface
	Props   *X11Properties
}

func NewXWaylandSurfaceAdapter(surface wlroots.XWaylandSurface, props *X11Properties) *XWaylandSurfaceAdapter {
	return &XWaylandSurfaceAdapter{Surface: surface, Props: props}
}

func (s *XWaylandSurfaceAdapter) SurfaceAt(lx, ly float64) (wlroots.Surface, float64, float64, bool) {
	surface, sx, sy := s.Surface.SurfaceAt(lx, ly)
	if surface.Nil() {
		return wlroots.Surface{}, 0, 0, false
	}
	return surface, sx, sy, true
}

func (s *XWaylandSurfaceAdapter) MainSurface() wlroots.Surface {
	return s.Surface.Surface()
}

func (s *XWaylandSurfaceAdapter) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {
	s.Surface.Walk(fn)
}

func (s *XWaylandSurfaceAdapter) SetActivated(activated bool) {
	s.Surface.SetActivated(activated)
}

// SetSize issues an X11 ConfigureRequest-style geometry change. The X11
// bridge has no configure-serial handshake, so it reports hasSerial=false.
func (s *XWaylandSurfaceAdapter) SetSize(width, height uint32) (uint32, bool) {
	box := s.Surface.Geometry()
	s.Surface.ConfigureGeometry(box.X, box.Y, width, height)
	return 0, false
}

func (s *XWaylandSurfaceAdapter) Size() (int, int) {
	box := s.Surface.Geometry()
	return box.Width, box.Height
}

func (s *XWaylandSurfaceAdapter) Geometry() wlroots.GeoBox {
	return s.Surface.Geometry()
}

// AckedSerial always reports hasSerial=false: the X11 bridge has no
// configure-serial handshake, so View.Commit aligns on the very next
// commit unconditionally (spec.md §4.1).
func (s *XWaylandSurfaceAdapter) AckedSerial() (uint32, bool) {
	return 0, false
}

// Title reads the bridged window's name via EWMH (falling back to ICCCM
// WM_NAME), used by the REPL/state
// dump rather than by any protocol the controller speaks.
func (s *XWaylandSurfaceAdapter) Title() string {
	return s.Props.Title(xproto.Window(s.Surface.WindowID()))
}

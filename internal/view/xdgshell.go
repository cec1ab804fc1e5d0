package view

import (
	"github.com/swaywm/go-wlroots/wlroots"
)

// XDGShellSurface adapts a stable xdg-shell toplevel (spec.md's
// "toplevel-shell-A") to the Shell interface. It is a thin wrapper around
// the teacher's existing wlroots.XDGTopLevel usage, generalized behind the
// role-tagged union described in spec.md §9.
type XDGShellSurface struct {
	TopLevel wlroots.XDGTopLevel
}

func NewXDGShellSurface(top wlroots.XDGTopLevel) *XDGShellSurface {
	return &XDGShellSurface{TopLevel: top}
}

func (s *XDGShellSurface) SurfaceAt(lx, ly float64) (wlroots.Surface, float64, float64, bool) {
	surface, sx, sy := s.TopLevel.Base().SurfaceAt(lx, ly)
	if surface.Nil() {
		return wlroots.Surface{}, 0, 0, false
	}
	return surface, sx, sy, true
}

func (s *XDGShellSurface) MainSurface() wlroots.Surface {
	return s.TopLevel.Base().Surface()
}

func (s *XDGShellSurface) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {
	s.TopLevel.Base().Walk(fn)
}

func (s *XDGShellSurface) SetActivated(activated bool) {
	s.TopLevel.SetActivated(activated)
}

func (s *XDGShellSurface) SetSize(width, height uint32) (uint32, bool) {
	serial := s.TopLevel.Base().TopLevelSetSize(width, height)
	return serial, true
}

func (s *XDGShellSurface) Size() (int, int) {
	box := s.TopLevel.Base().Geometry()
	return box.Width, box.Height
}

// AckedSerial reads the configure serial the client's most recent commit
// acknowledged, xdg-shell's own tracking of the handshake spec.md §4.1
// relies on.
func (s *XDGShellSurface) AckedSerial() (uint32, bool) {
	return s.TopLevel.Base().AckedConfigureSerial(), true
}

// Geometry exposes the raw xdg_surface geometry box. Grabs seed their
// anchor box from View.Current, not from this.
func (s *XDGShellSurface) Geometry() wlroots.GeoBox {
	return s.TopLevel.Base().Geometry()
}

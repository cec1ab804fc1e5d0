package view

import (
	"github.com/swaywm/go-wlroots/wlroots"
)

// XDGShellV6Surface adapts the legacy zxdg_shell_v6 toplevel (spec.md's
// "toplevel-shell-B") to the Shell interface. halcyon keeps both xdg-shell
// generations side by side, mirroring the original compositor this spec was
// distilled from (see DESIGN.md); the v6 API shape is identical to stable
// xdg-shell's, just versioned separately by go-wlroots.
type XDGShellV6Surface struct {
	TopLevel wlroots.XDGTopLevelV6
}

func NewXDGShellV6Surface(top wlroots.XDGTopLevelV6) *XDGShellV6Surface {
	return &XDGShellV6Surface{TopLevel: top}
}

func (s *XDGShellV6Surface) SurfaceAt(lx, ly float64) (wlroots.Surface, float64, float64, bool) {
	surface, sx, sy := s.TopLevel.Base().SurfaceAt(lx, ly)
	if surface.Nil() {
		return wlroots.Surface{}, 0, 0, false
	}
	return surface, sx, sy, true
}

func (s *XDGShellV6Surface) MainSurface() wlroots.Surface {
	return s.TopLevel.Base().Surface()
}

func (s *XDGShellV6Surface) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {
	s.TopLevel.Base().Walk(fn)
}

func (s *XDGShellV6Surface) SetActivated(activated bool) {
	s.TopLevel.SetActivated(activated)
}

func (s *XDGShellV6Surface) SetSize(width, height uint32) (uint32, bool) {
	serial := s.TopLevel.Base().TopLevelSetSize(width, height)
	return serial, true
}

func (s *XDGShellV6Surface) Size() (int, int) {
	box := s.TopLevel.Base().Geometry()
	return box.Width, box.Height
}

func (s *XDGShellV6Surface) Geometry() wlroots.GeoBox {
	return s.TopLevel.Base().Geometry()
}

// AckedSerial mirrors XDGShellSurface.AckedSerial — the v6 surface type
// carries the same configure-serial handshake as stable xdg-shell.
func (s *XDGShellV6Surface) AckedSerial() (uint32, bool) {
	return s.TopLevel.Base().AckedConfigureSerial(), true
}

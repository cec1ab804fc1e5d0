package layershell

import "github.com/swaywm/go-wlroots/wlroots"

// TopmostKeyboardInteractive returns the keyboard-interactive surface that
// should receive keyboard focus after an arrangement pass, per spec.md
// §4.3: "the topmost keyboard-interactive overlay or top layer surface
// takes keyboard focus ahead of any view." ok is false if no layer
// surface currently wants keyboard input.
func TopmostKeyboardInteractive(surfaces []*Surface) (*Surface, bool) {
	for _, layer := range [2]Layer{LayerOverlay, LayerTop} {
		// The render pipeline draws each layer's list in reverse, so the
		// list's head is the topmost surface.
		for _, s := range surfaces {
			if s.Layer == layer && s.KeyboardInteractive {
				return s, true
			}
		}
	}
	return nil, false
}

// ApplyAndConfigure runs Arrange and then issues each surviving surface's
// configure (or close, for surfaces whose geometry collapsed), mirroring
// the teacher's pattern of separating pure layout math from the backend
// calls that act on it.
func ApplyAndConfigure(surfaces []*Surface, full wlroots.GeoBox) (usable wlroots.GeoBox, closedNamespaces []string) {
	usable, closed := Arrange(surfaces, full)
	for _, s := range closed {
		s.Shell.Close()
		closedNamespaces = append(closedNamespaces, s.Namespace)
	}
	for _, s := range surfaces {
		if contains(closed, s) {
			continue
		}
		s.Shell.Configure(uint32(s.Geo.Width), uint32(s.Geo.Height))
	}
	return usable, closedNamespaces
}

func contains(list []*Surface, s *Surface) bool {
	for _, c := range list {
		if c == s {
			return true
		}
	}
	return false
}

package compositor

import (
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/layershell"
)

// handleNewLayerSurface wires a newly created layer-shell surface into
// its requested output's layer list and re-runs the arranger whenever the
// surface maps, commits or is destroyed, per spec.md §4.3.
func (s *Server) handleNewLayerSurface(wlrSurface wlroots.LayerSurfaceV1) {
	out := s.outputFor(wlrSurface.Output())
	if out == nil && len(s.Outputs) > 0 {
		out = s.Outputs[0]
	}
	if out == nil {
		logrus.Warnln("layer surface created before any output exists, dropping")
		wlrSurface.Destroy()
		return
	}

	ls := &layershell.Surface{
		Shell:               layershell.NewWlrLayerSurface(wlrSurface),
		Namespace:           wlrSurface.Namespace(),
		Layer:               layershell.FromWlrLayer(wlrSurface.Layer()),
		Anchor:              layershell.FromWlrAnchor(wlrSurface.Anchor()),
		DesiredWidth:        int(wlrSurface.DesiredWidth()),
		DesiredHeight:       int(wlrSurface.DesiredHeight()),
		ExclusiveZone:       int(wlrSurface.ExclusiveZone()),
		KeyboardInteractive: wlrSurface.KeyboardInteractive(),
	}
	margin := wlrSurface.Margin()
	ls.Margin = layershell.Margin{Top: margin.Top, Right: margin.Right, Bottom: margin.Bottom, Left: margin.Left}

	out.AddLayerSurface(ls)

	wlrSurface.OnMap(func(wlroots.LayerSurfaceV1) {
		out.Arrange()
		s.syncLayerKeyboardFocus(out)
		out.Damage.AddFull()
	})
	wlrSurface.OnUnmap(func(wlroots.LayerSurfaceV1) {
		out.Damage.AddFull()
	})
	wlrSurface.OnDestroy(func(wlroots.LayerSurfaceV1) {
		out.RemoveLayerSurface(ls)
		out.Arrange()
		s.syncLayerKeyboardFocus(out)
	})
	wlrSurface.OnCommit(func(wlroots.LayerSurfaceV1) {
		out.Arrange()
	})
}

// syncLayerKeyboardFocus implements spec.md §4.3's closing rule: the
// topmost keyboard-interactive overlay/top surface takes focus; if none
// claims it, focus returns to the focused toplevel view.
func (s *Server) syncLayerKeyboardFocus(out interface {
	AllLayerSurfaces() []*layershell.Surface
}) {
	if ls, ok := layershell.TopmostKeyboardInteractive(out.AllLayerSurfaces()); ok {
		wlrLayer, ok := ls.Shell.(*layershell.WlrLayerSurface)
		if !ok {
			return
		}
		s.Seat.Handle.NotifyKeyboardEnter(wlrLayer.MainSurface(), s.Seat.Handle.Keyboard())
		return
	}
	if v := s.Views.Front(); v != nil {
		s.FocusView(v)
	}
}

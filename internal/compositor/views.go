package compositor

import (
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/output"
	"github.com/halcyonwm/halcyon/internal/seat"
	"github.com/halcyonwm/halcyon/internal/view"
)

func (s *Server) handleNewXDGSurface(xdgSurface wlroots.XDGSurface) {
	if xdgSurface.Role() == wlroots.XDGSurfaceRolePopup {
		return
	}
	if xdgSurface.Role() != wlroots.XDGSurfaceRoleTopLevel {
		logrus.WithField("role", xdgSurface.Role()).Warnln("ignoring xdg_surface with unexpected role")
		return
	}

	top := xdgSurface.TopLevel()
	shell := view.NewXDGShellSurface(top)
	v := view.New(view.RoleXDGShell, shell)
	s.Views.PushFront(v)

	xdgSurface.OnMap(func(wlroots.XDGSurface) { s.mapView(v) })
	xdgSurface.OnUnmap(func(wlroots.XDGSurface) { s.unmapView(v) })
	xdgSurface.OnDestroy(func(wlroots.XDGSurface) { s.destroyView(v) })
	xdgSurface.OnCommit(func(wlroots.XDGSurface) { s.handleViewCommit(v) })

	top.OnRequestMove(func(client wlroots.SeatClient, serial uint32) { s.beginMove(v) })
	top.OnRequestResize(func(client wlroots.SeatClient, serial uint32, edges wlroots.Edges) { s.beginResize(v, edges) })
}

func (s *Server) handleNewXDGSurfaceV6(xdgSurface wlroots.XDGSurfaceV6) {
	if xdgSurface.Role() != wlroots.XDGSurfaceRoleTopLevel {
		return
	}
	top := xdgSurface.TopLevel()
	shell := view.NewXDGShellV6Surface(top)
	v := view.New(view.RoleXDGShellV6, shell)
	s.Views.PushFront(v)

	xdgSurface.OnMap(func(wlroots.XDGSurfaceV6) { s.mapView(v) })
	xdgSurface.OnUnmap(func(wlroots.XDGSurfaceV6) { s.unmapView(v) })
	xdgSurface.OnDestroy(func(wlroots.XDGSurfaceV6) { s.destroyView(v) })
	xdgSurface.OnCommit(func(wlroots.XDGSurfaceV6) { s.handleViewCommit(v) })

	top.OnRequestMove(func(client wlroots.SeatClient, serial uint32) { s.beginMove(v) })
	top.OnRequestResize(func(client wlroots.SeatClient, serial uint32, edges wlroots.Edges) { s.beginResize(v, edges) })
}

func (s *Server) handleNewXWaylandSurface(surface wlroots.XWaylandSurface) {
	shell := view.NewXWaylandSurfaceAdapter(surface, s.x11Props)
	v := view.New(view.RoleXWayland, shell)
	s.Views.PushFront(v)

	surface.OnMap(func(wlroots.XWaylandSurface) { s.mapView(v) })
	surface.OnUnmap(func(wlroots.XWaylandSurface) { s.unmapView(v) })
	surface.OnDestroy(func(wlroots.XWaylandSurface) { s.destroyView(v) })
	surface.OnCommit(func(wlroots.XWaylandSurface) { s.handleViewCommit(v) })
	surface.OnRequestMove(func(wlroots.XWaylandSurface) { s.beginMove(v) })
	surface.OnRequestResize(func(surf wlroots.XWaylandSurface, edges wlroots.Edges) { s.beginResize(v, edges) })
}

// mapView implements spec.md §4.1's map event: capture initial size,
// focus, and damage the affected outputs.
func (s *Server) mapView(v *view.View) {
	x, y := 0, 0
	if out := s.activeOutputOrFirst(); out != nil {
		x, y = out.Full().X, out.Full().Y
	}
	v.Map(x, y)
	s.FocusView(v)
	s.damageBox(v.Bounds())
	s.Events.Publish(newEvent(eventViewMapped, v))
}

// handleViewCommit implements spec.md §4.1's damage discipline on
// commit: realign the view's geometry against the shell's freshly
// committed size and acked configure serial, then damage the pre- and
// post-commit rectangles whenever the size changed, plus the
// post-alignment rectangle once more for a plain redraw. A commit
// arriving for an unmapped view is dropped silently, per spec.md §4.1's
// failure semantics.
func (s *Server) handleViewCommit(v *view.View) {
	if !v.Mapped {
		return
	}

	width, height := v.Shell.Size()
	ackedSerial, hasSerial := v.Shell.AckedSerial()
	before, after := v.Commit(width, height, ackedSerial, hasSerial)

	if before.Width != after.Width || before.Height != after.Height {
		s.damageBox(before)
		s.damageBox(after)
	}
	s.damageBox(after)
}

func (s *Server) unmapView(v *view.View) {
	s.damageBox(v.Bounds())
	v.Unmap()
	s.Cursor.CancelIfGrabbing(v)
	s.Events.Publish(newEvent(eventViewUnmapped, v))
}

func (s *Server) destroyView(v *view.View) {
	s.Cursor.CancelIfGrabbing(v)
	s.Views.Remove(v)
	s.Events.Publish(newEvent(eventViewDestroyed, v))
}

// FocusView implements spec.md §4.2: deactivate the previous toplevel,
// move v to the head, activate it, deliver keyboard-enter, and damage
// the whole view. A no-op if v is already focused (spec.md §8 invariant 7).
func (s *Server) FocusView(v *view.View) {
	if v == nil {
		return
	}
	current, hasFocus := s.Seat.KeyboardFocusSurface()
	if hasFocus && current == v.Shell.MainSurface() {
		return
	}

	var outgoing *view.View
	s.Views.TopToBottom(func(candidate *view.View) bool {
		if candidate.Activated() {
			outgoing = candidate
			return false
		}
		return true
	})

	s.Views.MoveToFront(v)
	var outgoingDeactivator seat.Deactivator
	if outgoing != nil {
		outgoingDeactivator = outgoing
	}
	s.Seat.NotifyKeyboardFocus(v.Shell.MainSurface(), outgoingDeactivator, v)
	s.damageBox(v.Bounds())
	s.Events.Publish(newEvent(eventViewFocused, v))
}

// viewAt implements spec.md §4.2's point-in-layout query: the first hit
// wins walking top to bottom.
func (s *Server) viewAt(lx, ly float64) (*view.View, wlroots.Surface, float64, float64, bool) {
	var (
		hitView      *view.View
		hitSurface   wlroots.Surface
		hitSX, hitSY float64
		found        bool
	)
	s.Views.TopToBottom(func(v *view.View) bool {
		if !v.Mapped {
			return true
		}
		surface, sx, sy, ok := v.Shell.SurfaceAt(lx-float64(v.Current.X), ly-float64(v.Current.Y))
		if !ok {
			return true
		}
		hitView, hitSurface, hitSX, hitSY, found = v, surface, sx, sy, true
		return false
	})
	return hitView, hitSurface, hitSX, hitSY, found
}

func (s *Server) activeOutputOrFirst() *output.Output {
	if out, ok := s.activeOutput.Get(); ok {
		return out
	}
	if len(s.Outputs) > 0 {
		return s.Outputs[0]
	}
	return nil
}

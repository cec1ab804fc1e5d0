package compositor

import (
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/cursorfsm"
	"github.com/halcyonwm/halcyon/internal/view"
)

// CurrentImage, SetImage, SetSoftwareCursorsLocked implement
// mousegrab.Cursor, letting the cursor-override singleton drive the
// compositor's own cursor state (spec.md §4.8).
func (s *Server) CurrentImage() string { return s.cursorImage }

func (s *Server) SetImage(name string) {
	s.cursorImage = name
	s.cursorHandle.SetXCursor(s.cursorMgr, name)
}

func (s *Server) SetSoftwareCursorsLocked(locked bool) {
	s.Cursor.LockSoftwareCursors = locked
	for _, out := range s.Outputs {
		out.Handle.LockSoftwareCursors(locked)
	}
}

func (s *Server) handleCursorMotion(dev wlroots.InputDevice, timeMsec uint32, dx, dy float64) {
	s.cursorHandle.Move(dev, dx, dy)
	s.processCursorMotion(timeMsec)
}

func (s *Server) handleCursorMotionAbsolute(dev wlroots.InputDevice, timeMsec uint32, x, y float64) {
	s.cursorHandle.WarpAbsolute(dev, x, y)
	s.processCursorMotion(timeMsec)
}

// processCursorMotion dispatches to the cursor FSM's current mode, per
// spec.md §4.4.
func (s *Server) processCursorMotion(timeMsec uint32) {
	switch s.Cursor.Mode {
	case cursorfsm.ModeMove:
		s.processCursorMove()
	case cursorfsm.ModeResize:
		s.processCursorResize()
	default:
		s.processCursorPassthrough(timeMsec)
	}
	s.updateActiveOutput()
	if s.Mousegrab.Grabbed() {
		s.Mousegrab.NotifyMotion(int32(s.cursorHandle.X()), int32(s.cursorHandle.Y()))
	}
}

func (s *Server) processCursorMove() {
	v, ok := s.Cursor.GrabView()
	if !ok {
		s.Cursor.Reset()
		return
	}
	before := v.Bounds()
	x, y := s.Cursor.ComputeMove(s.cursorHandle.X(), s.cursorHandle.Y())
	v.Current.X, v.Current.Y = x, y
	s.damageBox(before)
	s.damageBox(v.Bounds())
}

func (s *Server) processCursorResize() {
	v, ok := s.Cursor.GrabView()
	if !ok {
		s.Cursor.Reset()
		return
	}
	box := s.Cursor.ComputeResize(s.cursorHandle.X(), s.cursorHandle.Y())
	v.RequestGeometry(box, s.Cursor.Edges())
}

func (s *Server) processCursorPassthrough(timeMsec uint32) {
	_, surface, sx, sy, found := s.viewAt(s.cursorHandle.X(), s.cursorHandle.Y())
	s.Seat.NotifyPointerAt(surface, sx, sy, timeMsec, found)

	if !found && s.Cursor.ClientImage != nil {
		s.Cursor.ClientImage = nil
		s.SetImage(s.Cursor.DefaultImage)
	}
}

func (s *Server) updateActiveOutput() {
	if out := s.outputAt(s.cursorHandle.X(), s.cursorHandle.Y()); out != nil {
		s.activeOutput.Set(out)
	}
}

// handleCursorButton implements spec.md §4.5: an active mousegrab claims
// the button exclusively; otherwise the seat is notified, a release
// returns the cursor to passthrough, and a press focuses the hit view.
func (s *Server) handleCursorButton(dev wlroots.InputDevice, timeMsec uint32, button uint32, state wlroots.ButtonState) {
	pressed := state == wlroots.ButtonStatePressed

	if s.Mousegrab.Grabbed() {
		s.Mousegrab.NotifyButton(int32(s.cursorHandle.X()), int32(s.cursorHandle.Y()), pressed, button)
		if !pressed {
			s.Cursor.Reset()
		}
		return
	}

	s.Seat.Handle.NotifyPointerButton(timeMsec, button, state)
	if !pressed {
		s.Cursor.Reset()
		return
	}
	if v, _, _, _, found := s.viewAt(s.cursorHandle.X(), s.cursorHandle.Y()); found {
		s.FocusView(v)
	}
}

func (s *Server) handleCursorAxis(dev wlroots.InputDevice, timeMsec uint32, source wlroots.AxisSource, orientation wlroots.AxisOrientation, delta float64, deltaDiscrete int32) {
	s.Seat.Handle.NotifyPointerAxis(timeMsec, orientation, delta, deltaDiscrete, source)
}

func (s *Server) handleCursorFrame() {
	s.Seat.Handle.NotifyPointerFrame()
}

// handleSetCursorRequest implements spec.md §4.6's "client cursor
// request: honored only if the requesting client owns the
// pointer-focused surface."
func (s *Server) handleSetCursorRequest(client wlroots.SeatClient, surface wlroots.Surface, _ uint32, hotspotX, hotspotY int32) {
	if s.Seat.Handle.PointerState().FocusedClient() != client {
		return
	}
	s.cursorHandle.SetSurface(surface, hotspotX, hotspotY)
	s.Cursor.ClientImage = &cursorfsm.ClientImage{Surface: surface, HotspotX: hotspotX, HotspotY: hotspotY}
}

// beginMove and beginResize implement spec.md §4.4's
// Passthrough→Move/Resize transitions, denying the request if v is not
// currently pointer-focused.
func (s *Server) beginMove(v *view.View) {
	if !s.viewIsPointerFocused(v) {
		return
	}
	s.Cursor.BeginMove(v, s.cursorHandle.X(), s.cursorHandle.Y())
}

func (s *Server) beginResize(v *view.View, edges wlroots.Edges) {
	if !s.viewIsPointerFocused(v) {
		return
	}
	s.Cursor.BeginResize(v, edges)
}

func (s *Server) viewIsPointerFocused(v *view.View) bool {
	focused, ok := s.Seat.PointerFocusSurface()
	return ok && focused == v.Shell.MainSurface()
}

// CursorPosition exposes the backend cursor's logical position for the
// REPL's `inspect cursor` command.
func (s *Server) CursorPosition() (x, y float64) {
	return s.cursorHandle.X(), s.cursorHandle.Y()
}

// Package seat implements spec.md §3/§4.6: the logical input seat that
// aggregates pointer-focus and keyboard-focus state for one user, wrapping
// the backend's wlr_seat the way the teacher's Server wraps its own.
package seat

import (
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/weakref"
)

// Seat owns the keyboard-focus and pointer-focus surface references of
// spec.md §3, both weak, plus the backend wlr_seat handle that actually
// delivers enter/motion/key/button events to clients.
type Seat struct {
	Handle wlroots.Seat

	pointerFocus  weakref.Ref[wlroots.Surface]
	keyboardFocus weakref.Ref[wlroots.Surface]
}

func New(handle wlroots.Seat) *Seat {
	return &Seat{Handle: handle}
}

// PointerFocusSurface reports the surface currently holding pointer
// focus, if any.
func (s *Seat) PointerFocusSurface() (wlroots.Surface, bool) {
	return s.pointerFocus.Get()
}

// NotifyPointerAt implements spec.md §4.6's pointer-focus rule: enter is
// sent only when the hit surface differs from the currently focused one,
// otherwise plain motion is sent; a miss clears pointer focus.
func (s *Seat) NotifyPointerAt(surface wlroots.Surface, localX, localY float64, timeMsec uint32, found bool) {
	if !found {
		s.ClearPointerFocus()
		return
	}
	if current, ok := s.pointerFocus.Get(); !ok || current != surface {
		s.Handle.NotifyPointerEnter(surface, localX, localY)
		s.pointerFocus.Set(surface)
		return
	}
	s.Handle.NotifyPointerMotion(timeMsec, localX, localY)
}

// ClearPointerFocus drops pointer focus when the point-in-layout query
// finds nothing under the cursor.
func (s *Seat) ClearPointerFocus() {
	if _, ok := s.pointerFocus.Get(); !ok {
		return
	}
	s.Handle.ClearPointerFocus()
	s.pointerFocus.Clear()
}

// KeyboardFocusSurface reports the surface currently holding keyboard
// focus, if any.
func (s *Seat) KeyboardFocusSurface() (wlroots.Surface, bool) {
	return s.keyboardFocus.Get()
}

// Deactivator is implemented by whichever role owns the outgoing
// keyboard-focused surface, so NotifyKeyboardFocus can deactivate it
// without the seat needing to know about views or layer surfaces.
type Deactivator interface {
	SetActivated(activated bool)
}

// NotifyKeyboardFocus implements spec.md §4.6: the outgoing toplevel is
// deactivated before the incoming one is activated and given
// keyboard-enter with the seat's current pressed keycodes and modifier
// state. Passing the same surface already focused is a no-op
// (spec.md §8 invariant 7).
func (s *Seat) NotifyKeyboardFocus(surface wlroots.Surface, outgoing Deactivator, incoming Deactivator) {
	if current, ok := s.keyboardFocus.Get(); ok && current == surface {
		return
	}
	if outgoing != nil {
		outgoing.SetActivated(false)
	}
	if incoming != nil {
		incoming.SetActivated(true)
	}
	keyboard := s.Handle.Keyboard()
	s.Handle.NotifyKeyboardEnter(surface, keyboard)
	s.keyboardFocus.Set(surface)
	logrus.WithField("surface", surface).Debugln("seat keyboard focus changed")
}

// ClearKeyboardFocus drops the keyboard-focus reference without sending
// any event to a client. Nothing in the compositor calls it at present.
func (s *Seat) ClearKeyboardFocus() {
	s.keyboardFocus.Clear()
}

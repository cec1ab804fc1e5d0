package compositor

import (
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"github.com/swaywm/go-wlroots/xkb"

	"github.com/halcyonwm/halcyon/internal/protocol/keybind"
)

func (s *Server) handleNewInput(dev wlroots.InputDevice) {
	switch dev.Type() {
	case wlroots.InputDeviceTypePointer:
		s.cursorHandle.AttachInputDevice(dev)
	case wlroots.InputDeviceTypeKeyboard:
		s.handleNewKeyboard(dev)
	}

	caps := wlroots.SeatCapabilityPointer
	if len(s.keyboards) > 0 {
		caps |= wlroots.SeatCapabilityKeyboard
	}
	s.Seat.Handle.SetCapabilities(caps)
}

func (s *Server) handleNewKeyboard(dev wlroots.InputDevice) {
	keyboard := dev.Keyboard()

	context := xkb.NewContext(xkb.KeySymFlagNoFlags)
	keymap := context.KeyMap()
	keyboard.SetKeymap(keymap)
	keymap.Destroy()
	context.Destroy()
	keyboard.SetRepeatInfo(25, 600)

	keyboard.OnModifiers(func(keyboard wlroots.Keyboard) {
		s.Seat.Handle.SetKeyboard(dev)
		s.Seat.Handle.NotifyKeyboardModifiers(keyboard)
	})
	keyboard.OnKey(s.handleKey)

	s.Seat.Handle.SetKeyboard(dev)
	s.keyboards = append(s.keyboards, dev)
}

// handleKey implements spec.md §4.7/§8 invariant 5: the hard escape
// chord always terminates; a controller-focused keyboard or a matching
// registration diverts the event to the keybindings protocol instead of
// the regularly focused client.
func (s *Server) handleKey(keyboard wlroots.Keyboard, timeMsec uint32, keyCode uint32, updateState bool, state wlroots.KeyState) {
	xkbCode := keyCode + 8
	modifiers := uint32(keyboard.Modifiers())
	pressed := state == wlroots.KeyStatePressed

	escapeChord := keybind.Chord{Keycode: s.Config.Escape.Keycode, Modifiers: s.Config.Escape.Modifiers}
	if pressed && keybind.IsEscapeChord(xkbCode, modifiers, escapeChord) {
		logrus.Infoln("escape chord pressed, terminating")
		s.Keybind.NotifyController(timeMsec, xkbCode, pressed, modifiers)
		s.Stop()
		return
	}

	controllerFocused := s.controllerHasKeyboardFocus()
	toController, toRegular := s.Keybind.Route(xkbCode, modifiers, pressed, controllerFocused)
	if toController {
		s.Keybind.NotifyController(timeMsec, xkbCode, pressed, modifiers)
	}
	if !toRegular {
		return
	}

	handled := false
	if modifiers&wlroots.KeyboardModifierAlt != 0 && pressed {
		for _, sym := range keyboard.XKBState().Syms(xkb.KeyCode(xkbCode)) {
			if s.handleKeyBinding(sym) {
				handled = true
			}
		}
	}
	if !handled {
		s.Seat.Handle.SetKeyboard(keyboard.Base())
		s.Seat.Handle.NotifyKeyboardKey(timeMsec, keyCode, state)
	}
}

// controllerHasKeyboardFocus implements spec.md §4.7's focus-override
// rule: the bound keybindings controller owns keyboard focus exactly
// when the seat's currently focused surface belongs to that controller's
// own wl_client, e.g. because the controller also maps a regular
// xdg-shell surface that the user has clicked into.
func (s *Server) controllerHasKeyboardFocus() bool {
	controller, ok := s.Keybind.Controller().(*keybindingsClient)
	if !ok {
		return false
	}
	focused, hasFocus := s.Seat.KeyboardFocusSurface()
	if !hasFocus {
		return false
	}
	return focused.Client() == controller.resource.Client()
}

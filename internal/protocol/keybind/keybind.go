// Package keybind implements the keybinding-filter protocol singleton
// of spec.md §3/§4.7 — the `keybindings` global — grounded in
// way-cooler's keygrabber.rs (forwarding mods/key/state to a single
// bound callback) generalized to a full modifier-mask chord set
// (see DESIGN.md).
package keybind

import "errors"

// ModLock and ModMod2 are the modifier bits stripped from both stored
// and queried masks, per spec.md §4.7, so caps-lock/num-lock never
// perturb chord matching. They mirror wlroots' WLR_MODIFIER_CAPS and
// WLR_MODIFIER_MOD2 bit positions.
const (
	ModShift = 1 << 0
	ModLock  = 1 << 1
	ModCtrl  = 1 << 2
	ModAlt   = 1 << 3
	ModMod2  = 1 << 4
	ModMod3  = 1 << 5
	ModLogo  = 1 << 6
	ModMod5  = 1 << 7

	stripMask = ModLock | ModMod2
)

// Chord is a keycode+modifier pair, used by the escape hatch and by
// tests; the filter itself stores chords in its internal set.
type Chord struct {
	Keycode   uint32
	Modifiers uint32
}

var ErrNotSoleClient = errors.New("keybindings: caller is not the bound controller")

// Client is the bound controller resource.
type Client interface {
	SendKey(timeMsec uint32, keycode uint32, pressed bool, modifiers uint32)
}

// Filter is spec.md §3's keybinding-filter record.
type Filter struct {
	chords     map[uint32]map[uint32]struct{}
	controller Client
	// routedPresses tracks, per physical keycode, whether the most
	// recent press of that key was routed to the controller — so its
	// matching release is routed the same way even if a modifier
	// changed or the registration set was cleared in between. Without
	// this a press that matched a chord could route to the controller
	// while its release, observed with a different modifier mask,
	// routes to the regularly focused client instead, leaving either
	// side with a stuck-down key.
	routedPresses map[uint32]bool
}

func New() *Filter {
	return &Filter{
		chords:        map[uint32]map[uint32]struct{}{},
		routedPresses: map[uint32]bool{},
	}
}

// Strip removes the lock/mod2 bits spec.md §4.7 says must not perturb
// matching.
func Strip(modifiers uint32) uint32 {
	return modifiers &^ stripMask
}

// Bind sets the single controller client. It does not error on a second
// caller attempting to bind — that rejection is the protocol layer's
// job (spec.md §5: "a second client attempting to bind is rejected with
// a protocol error") — Filter only tracks at most one at a time.
func (f *Filter) Bind(client Client) {
	f.controller = client
}

// Unbind clears the controller, e.g. on client disconnect.
func (f *Filter) Unbind(client Client) {
	if f.controller == client {
		f.controller = nil
	}
}

// Controller returns the currently bound controller client, or nil if
// none is bound. Used by the compositor to compare the controller's
// identity against the seat's focused surface (spec.md §4.7).
func (f *Filter) Controller() Client {
	return f.controller
}

// Bound reports whether any controller currently holds the filter.
func (f *Filter) Bound() bool {
	return f.controller != nil
}

// Register implements the `register_key(keycode, modifiers)` request.
func (f *Filter) Register(caller Client, keycode, modifiers uint32) error {
	if f.controller != caller {
		return ErrNotSoleClient
	}
	masks, ok := f.chords[keycode]
	if !ok {
		masks = map[uint32]struct{}{}
		f.chords[keycode] = masks
	}
	masks[Strip(modifiers)] = struct{}{}
	return nil
}

// ClearAll implements the `clear_keys()` request.
func (f *Filter) ClearAll(caller Client) error {
	if f.controller != caller {
		return ErrNotSoleClient
	}
	f.chords = map[uint32]map[uint32]struct{}{}
	return nil
}

// RegisteredCount returns the total number of registered chords, for
// state snapshots.
func (f *Filter) RegisteredCount() int {
	n := 0
	for _, masks := range f.chords {
		n += len(masks)
	}
	return n
}

// Matches reports whether keycode+modifiers (after stripping) is in the
// registered set.
func (f *Filter) Matches(keycode, modifiers uint32) bool {
	masks, ok := f.chords[keycode]
	if !ok {
		return false
	}
	_, hit := masks[Strip(modifiers)]
	return hit
}

// IsEscapeChord reports whether keycode+modifiers matches chord,
// independent of any registration. chord is supplied by the caller
// (the configured escape chord, spec.md §4.7) rather than fixed in this
// package, so a config hot-reload can change it without a restart.
func IsEscapeChord(keycode, modifiers uint32, chord Chord) bool {
	return keycode == chord.Keycode && Strip(modifiers) == Strip(chord.Modifiers)
}

// Route is spec.md §4.7's per-key-event decision, and the direct
// implementation of §8 invariant 5. controllerFocused is true while the
// controller client currently owns keyboard focus (spec.md: "while a
// controller client owns the keyboard focus it receives all key events
// regardless of the set"). pressed distinguishes a key-down from a
// key-up so a release is routed to whichever side its matching press
// went to, even if the modifier mask or registration set changed while
// the key was held.
//
// It returns whether the event goes to the controller (via the custom
// protocol) and whether it is additionally delivered to the regular
// focused client.
func (f *Filter) Route(keycode, modifiers uint32, pressed, controllerFocused bool) (toController, toRegularClient bool) {
	if !pressed {
		if f.routedPresses[keycode] {
			delete(f.routedPresses, keycode)
			return true, false
		}
		delete(f.routedPresses, keycode)
		return false, true
	}

	toController = f.controller != nil && (controllerFocused || f.Matches(keycode, modifiers))
	f.routedPresses[keycode] = toController
	if toController {
		return true, false
	}
	return false, true
}

// NotifyController forwards a matched or focus-owned key event to the
// bound controller, per spec.md §4.7/§6's `key` event.
func (f *Filter) NotifyController(timeMsec, keycode uint32, pressed bool, modifiers uint32) {
	if f.controller != nil {
		f.controller.SendKey(timeMsec, keycode, pressed, Strip(modifiers))
	}
}

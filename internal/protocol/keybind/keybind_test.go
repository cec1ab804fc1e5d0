package keybind

import "testing"

type fakeClient struct {
	keys []uint32
	mods []uint32
}

func (c *fakeClient) SendKey(timeMsec, keycode uint32, pressed bool, modifiers uint32) {
	c.keys = append(c.keys, keycode)
	c.mods = append(c.mods, modifiers)
}

func TestRegisterStripsLockAndMatchesDespiteCapsLock(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)

	if err := f.Register(controller, 24, ModCtrl|ModAlt); err != nil {
		t.Fatalf("Register: %v", err)
	}

	toController, toRegular := f.Route(24, ModCtrl|ModAlt|ModLock, true, false)
	if !toController || toRegular {
		t.Fatalf("toController=%v toRegular=%v, want true/false", toController, toRegular)
	}
	f.NotifyController(1000, 24, true, ModCtrl|ModAlt|ModLock)
	if len(controller.mods) != 1 || controller.mods[0] != ModCtrl|ModAlt {
		t.Fatalf("controller mods = %v, want [%d] (lock bit stripped)", controller.mods, ModCtrl|ModAlt)
	}
}

func TestUnregisteredModifiersDeliverToRegularClient(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)
	_ = f.Register(controller, 24, ModCtrl|ModAlt)

	toController, toRegular := f.Route(24, ModCtrl, true, false)
	if toController || !toRegular {
		t.Fatalf("toController=%v toRegular=%v, want false/true", toController, toRegular)
	}
}

func TestControllerFocusedReceivesAllKeys(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)

	toController, toRegular := f.Route(50, 0, true, true)
	if !toController || toRegular {
		t.Fatalf("toController=%v toRegular=%v, want true/false when controller focused", toController, toRegular)
	}
}

func TestReleaseRoutesWhereItsPressRoutedDespiteModifierChange(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)
	_ = f.Register(controller, 24, ModCtrl)

	toController, toRegular := f.Route(24, ModCtrl, true, false)
	if !toController || toRegular {
		t.Fatalf("press: toController=%v toRegular=%v, want true/false", toController, toRegular)
	}

	// Ctrl released before the key itself: the release carries a
	// different modifier mask than the press did.
	toController, toRegular = f.Route(24, 0, false, false)
	if !toController || toRegular {
		t.Fatalf("release: toController=%v toRegular=%v, want true/false (must match the press)", toController, toRegular)
	}
}

func TestUnmatchedPressReleaseBothGoToRegularClient(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)
	_ = f.Register(controller, 24, ModCtrl)

	toController, toRegular := f.Route(30, 0, true, false)
	if toController || !toRegular {
		t.Fatalf("press: toController=%v toRegular=%v, want false/true", toController, toRegular)
	}
	toController, toRegular = f.Route(30, 0, false, false)
	if toController || !toRegular {
		t.Fatalf("release: toController=%v toRegular=%v, want false/true", toController, toRegular)
	}
}

func TestRegisterClearRegisterRoundTrips(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)

	_ = f.Register(controller, 24, ModCtrl)
	_ = f.ClearAll(controller)
	_ = f.Register(controller, 24, ModCtrl)

	if !f.Matches(24, ModCtrl) {
		t.Fatalf("expected (24, Ctrl) to match after clear+re-register")
	}
	if len(f.chords) != 1 || len(f.chords[24]) != 1 {
		t.Fatalf("filter state diverged from a fresh single registration: %+v", f.chords)
	}
}

func TestEscapeChordAlwaysTerminatesRegardlessOfRegistration(t *testing.T) {
	f := New()
	controller := &fakeClient{}
	f.Bind(controller)
	chord := Chord{Keycode: 9, Modifiers: ModCtrl | ModShift}
	_ = f.Register(controller, chord.Keycode, chord.Modifiers)

	if !IsEscapeChord(chord.Keycode, chord.Modifiers, chord) {
		t.Fatalf("expected registered escape chord to still read as the escape chord")
	}
}

func TestIsEscapeChordFollowsWhicheverChordIsPassedIn(t *testing.T) {
	custom := Chord{Keycode: 1, Modifiers: ModAlt}
	if IsEscapeChord(9, ModCtrl|ModShift, custom) {
		t.Fatalf("the default Ctrl+Shift+Escape keys should not match a reconfigured chord")
	}
	if !IsEscapeChord(1, ModAlt, custom) {
		t.Fatalf("expected the reconfigured chord to match")
	}
}

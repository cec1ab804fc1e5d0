package compositor

import (
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/protocol/keybind"
	"github.com/halcyonwm/halcyon/internal/protocol/mousegrab"
)

// registerCustomProtocols creates the two globals of spec.md §6,
// `mousegrabber` and `keybindings`, the same GlobalCreate idiom the
// teacher uses for its built-in protocols (SeatCreate,
// DataDeviceManagerCreate).
func (s *Server) registerCustomProtocols() {
	mousegrabberGlobal := s.display.MousegrabberV1Create()
	mousegrabberGlobal.OnBind(s.bindMousegrabber)

	keybindingsGlobal := s.display.KeybindingsV1Create()
	keybindingsGlobal.OnBind(s.bindKeybindings)
}

// bindMousegrabber wires one client's bound resource into the
// mousegrabber singleton's Grab/Release requests and the
// SendMouseMoved/SendMouseButton events streamed back to it
// (spec.md §4.8).
func (s *Server) bindMousegrabber(resource wlroots.MousegrabberV1Resource) {
	client := &mousegrabberClient{resource: resource}

	resource.OnGrab(func(cursorName string) {
		if err := s.Mousegrab.Grab(client, cursorName); err != nil {
			resource.PostError(mousegrabberErrorCode(err), err.Error())
		}
	})
	resource.OnRelease(func() {
		if err := s.Mousegrab.Release(client); err != nil {
			resource.PostError(mousegrabberErrorCode(err), err.Error())
		}
	})
	resource.OnDestroy(func() {
		s.Mousegrab.ReleaseClient(client)
	})
}

func mousegrabberErrorCode(err error) uint32 {
	if err == mousegrab.ErrAlreadyGrabbed {
		return 1 // ALREADY_GRABBED
	}
	return 2 // NOT_GRABBED
}

type mousegrabberClient struct {
	resource wlroots.MousegrabberV1Resource
}

func (c *mousegrabberClient) SendMouseMoved(x, y int32) {
	c.resource.SendMouseMoved(x, y)
}

func (c *mousegrabberClient) SendMouseButton(x, y int32, pressed bool, button uint32) {
	c.resource.SendMouseButton(x, y, pressed, button)
}

// bindKeybindings wires one client's bound resource into the
// keybinding filter's register_key/clear_keys requests, enforcing the
// single-controller rule by binding it the moment it attaches
// (spec.md §4.7, §5: "a second client attempting to bind is rejected
// with a protocol error").
func (s *Server) bindKeybindings(resource wlroots.KeybindingsV1Resource) {
	if s.Keybind.Bound() {
		resource.PostError(1, "keybindings already bound to another client")
		resource.Destroy()
		return
	}

	client := &keybindingsClient{resource: resource}
	s.Keybind.Bind(client)

	resource.OnRegisterKey(func(keycode, modifiers uint32) {
		if err := s.Keybind.Register(client, keycode, modifiers); err != nil {
			resource.PostError(2, err.Error())
		}
	})
	resource.OnClearKeys(func() {
		if err := s.Keybind.ClearAll(client); err != nil {
			resource.PostError(2, err.Error())
		}
	})
	resource.OnDestroy(func() {
		s.Keybind.Unbind(client)
	})
}

type keybindingsClient struct {
	resource wlroots.KeybindingsV1Resource
}

func (c *keybindingsClient) SendKey(timeMsec, keycode uint32, pressed bool, modifiers uint32) {
	c.resource.SendKey(timeMsec, keycode, pressed, modifiers)
}

var _ keybind.Client = (*keybindingsClient)(nil)
var _ mousegrab.Client = (*mousegrabberClient)(nil)

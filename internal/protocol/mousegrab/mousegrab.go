// Package mousegrab implements the cursor-override protocol singleton
// of spec.md §3/§4.8 — the `mousegrabber` global — grounded in
// way-cooler's mousegrabber.rs run/stop/isrunning single-callback
// singleton (see DESIGN.md), generalized here from a one-shot Lua
// callback to a bound Wayland client resource.
package mousegrab

import "errors"

// ErrAlreadyGrabbed and ErrNotGrabbed map directly onto the protocol's
// ALREADY_GRABBED and NOT_GRABBED errors (spec.md §6).
var (
	ErrAlreadyGrabbed = errors.New("mousegrabber: already grabbed")
	ErrNotGrabbed     = errors.New("mousegrabber: not grabbed")
)

// Cursor is the slice of cursor state the override protocol needs to
// read and mutate: the compositor's current image name and the
// software-cursor lock flag (spec.md §3's Cursor singleton fields).
type Cursor interface {
	CurrentImage() string
	SetImage(name string)
	SetSoftwareCursorsLocked(locked bool)
}

// Client is the bound controller resource. Implementations wrap the
// generated protocol resource for the `mousegrabber` interface.
type Client interface {
	SendMouseMoved(x, y int32)
	SendMouseButton(x, y int32, pressed bool, button uint32)
}

// Singleton is spec.md §3's cursor-override record: at most one bound
// grabber client, plus the cursor image to restore on release. Open
// question (i) in spec.md §9 ("allocate the full struct, not a bare
// pointer") is resolved by this being a plain value-initialized struct
// with no partial allocation.
type Singleton struct {
	cursor Cursor

	grabber       Client
	previousImage string
}

func New(cursor Cursor) *Singleton {
	return &Singleton{cursor: cursor}
}

// Grabbed reports whether a client currently holds the override.
func (s *Singleton) Grabbed() bool {
	return s.grabber != nil
}

// Grabber returns the current grabber client, if any. Open question
// (ii) in spec.md §9 is resolved by this nil-check being the only way
// callers may access the bound resource.
func (s *Singleton) Grabber() (Client, bool) {
	if s.grabber == nil {
		return nil, false
	}
	return s.grabber, true
}

// Grab implements the `grab(cursor_name)` request of spec.md §4.8.
func (s *Singleton) Grab(client Client, cursorName string) error {
	if s.grabber != nil {
		return ErrAlreadyGrabbed
	}
	s.previousImage = s.cursor.CurrentImage()
	s.grabber = client
	s.cursor.SetImage(cursorName)
	s.cursor.SetSoftwareCursorsLocked(true)
	return nil
}

// Release implements the `release()` request of spec.md §4.8. Only the
// current grabber may release; any other caller gets NOT_GRABBED.
func (s *Singleton) Release(caller Client) error {
	if s.grabber == nil || s.grabber != caller {
		return ErrNotGrabbed
	}
	s.cursor.SetImage(s.previousImage)
	s.cursor.SetSoftwareCursorsLocked(false)
	s.grabber = nil
	return nil
}

// ReleaseClient drops the grab unconditionally, for use when the
// grabber's resource is destroyed out-of-band (client disconnect).
func (s *Singleton) ReleaseClient(client Client) {
	if s.grabber != client {
		return
	}
	s.cursor.SetImage(s.previousImage)
	s.cursor.SetSoftwareCursorsLocked(false)
	s.grabber = nil
}

// NotifyMotion streams pointer coordinates to the grabber, per spec.md
// §4.8: "motion events stream coordinates to the grabber client."
func (s *Singleton) NotifyMotion(x, y int32) {
	if s.grabber != nil {
		s.grabber.SendMouseMoved(x, y)
	}
}

// NotifyButton streams a button event to the grabber in place of normal
// seat delivery, per spec.md §4.5/§4.8.
func (s *Singleton) NotifyButton(x, y int32, pressed bool, button uint32) {
	if s.grabber != nil {
		s.grabber.SendMouseButton(x, y, pressed, button)
	}
}

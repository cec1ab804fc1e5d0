// Package event defines the small set of notifications the compositor
// broadcasts to debug consumers (the REPL's `watch` command). The
// compositor publishes the view.* kinds; the other kinds are defined but
// have no publisher. It does not carry protocol traffic; that still goes
// directly from the owning subsystem to the client resource.
package event

import "time"

type Kind string

const (
	KindViewMapped    Kind = "view.mapped"
	KindViewUnmapped  Kind = "view.unmapped"
	KindViewDestroyed Kind = "view.destroyed"
	KindViewFocused   Kind = "view.focused"
	KindOutputAdded   Kind = "output.added"
	KindOutputRemoved Kind = "output.removed"
	KindCursorMode    Kind = "cursor.mode"
	KindFrameRendered Kind = "frame.rendered"
	KindMousegrab     Kind = "mousegrab.changed"
	KindKeybindFilter Kind = "keybind.filter_changed"
)

// Event is the payload fanned out over the event bus. Fields is a flat map
// rather than a typed union so that every subsystem can publish without
// importing a shared struct-per-kind zoo; consumers (REPL, YAML dump) only
// ever render it, they never branch on it structurally.
type Event struct {
	Kind   Kind
	At     time.Time
	Fields map[string]any
}

func New(kind Kind, fields map[string]any) Event {
	return Event{Kind: kind, At: time.Now(), Fields: fields}
}

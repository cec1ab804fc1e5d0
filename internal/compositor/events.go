package compositor

import (
	"github.com/halcyonwm/halcyon/internal/event"
	"github.com/halcyonwm/halcyon/internal/view"
)

const (
	eventViewMapped    = event.KindViewMapped
	eventViewUnmapped  = event.KindViewUnmapped
	eventViewDestroyed = event.KindViewDestroyed
	eventViewFocused   = event.KindViewFocused
)

func newEvent(kind event.Kind, v *view.View) event.Event {
	return event.New(kind, map[string]any{
		"role":    v.Role.String(),
		"mapped":  v.Mapped,
		"current": v.Current,
	})
}

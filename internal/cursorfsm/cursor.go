// Package cursorfsm implements the cursor state machine and interactive
// move/resize grab of spec.md §3-§4.4: Passthrough/Move/Resize, the grab
// record, and the pure geometry math a motion event needs — independent of
// any particular backend so it can be exercised with table-driven tests
// (spec.md §8, scenarios S1/S2).
package cursorfsm

import (
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/view"
	"github.com/halcyonwm/halcyon/internal/weakref"
)

type Mode int

const (
	ModePassthrough Mode = iota
	ModeMove
	ModeResize
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResize:
		return "resize"
	default:
		return "passthrough"
	}
}

// Grab is spec.md §3's grab record: `{ view, original_cursor_xy,
// original_view_geo, resize_edges }`. For a move, originOffset is
// original_cursor_xy expressed as (cursor − view origin) at grab start; for
// a resize, it holds the view's geometry at grab start and no cursor
// position is recorded.
type Grab struct {
	view         weakref.Ref[*view.View]
	originOffset wlroots.GeoBox // X/Y used as the offset for Move; full box is originGeo for Resize
	edges        wlroots.Edges
}

// Cursor owns the logical pointer position's mode and the compositor's
// cursor-image state (spec.md §3's Cursor singleton). It does not itself
// track X/Y — that stays with the backend's wlr_cursor, mirrored into
// Server — because the FSM only needs positions to compute deltas.
type Cursor struct {
	Mode Mode
	grab *Grab

	CompositorImage *string
	ClientImage     *ClientImage
	DefaultImage    string

	LockSoftwareCursors bool
}

type ClientImage struct {
	Surface          wlroots.Surface
	HotspotX, HotspotY int32
}

func New(defaultImage string) *Cursor {
	return &Cursor{Mode: ModePassthrough, DefaultImage: defaultImage}
}

// BeginMove snapshots a move grab, per spec.md §4.4's Passthrough→Move
// transition. cursorX/Y is the pointer position at grab start.
func (c *Cursor) BeginMove(v *view.View, cursorX, cursorY float64) {
	g := &Grab{
		originOffset: wlroots.GeoBox{
			X: int(cursorX) - v.Current.X,
			Y: int(cursorY) - v.Current.Y,
		},
	}
	g.view.Set(v)
	c.grab = g
	c.Mode = ModeMove
}

// BeginResize snapshots a resize grab, capturing the view's current
// geometry box as the anchor (spec.md §4.4's Passthrough→Resize transition).
func (c *Cursor) BeginResize(v *view.View, edges wlroots.Edges) {
	g := &Grab{
		originOffset: v.Current,
		edges:        edges,
	}
	g.view.Set(v)
	c.grab = g
	c.Mode = ModeResize
}

// Reset discards any grab and returns to Passthrough (spec.md §4.4's
// Move/Resize→Passthrough transitions: button release or grabbed view
// destroyed).
func (c *Cursor) Reset() {
	c.Mode = ModePassthrough
	c.grab = nil
}

// CancelIfGrabbing resets the cursor if it currently grabs v, implementing
// the weak-reference invariant of spec.md §3's Grab record: "if the view is
// destroyed mid-grab the cursor returns to Passthrough".
func (c *Cursor) CancelIfGrabbing(v *view.View) {
	if c.grab == nil {
		return
	}
	if gv, ok := c.grab.view.Get(); ok && gv == v {
		c.Reset()
	}
}

// GrabView upgrades the current grab's weak view reference. ok is false if
// there is no grab or its view has gone away (in which case the caller
// should also Reset).
func (c *Cursor) GrabView() (*view.View, bool) {
	if c.grab == nil {
		return nil, false
	}
	return c.grab.view.Get()
}

// ComputeMove implements spec.md §4.4's Move motion formula: new view
// position = cursor − grab.original_cursor (expressed here as the offset
// captured at grab start).
func (c *Cursor) ComputeMove(cursorX, cursorY float64) (x, y int) {
	if c.grab == nil {
		return 0, 0
	}
	return int(cursorX) - c.grab.originOffset.X, int(cursorY) - c.grab.originOffset.Y
}

// ComputeResize computes the resized box for the current cursor position:
// each dragged edge is placed at the cursor's absolute coordinate, while
// the opposite edges stay at the grab-start geometry, and dimensions are
// never allowed to invert. The cursor's offset from the dragged edge at
// grab start is not kept, so a grab that starts away from the edge makes
// that edge jump to the cursor on the first motion.
func (c *Cursor) ComputeResize(cursorX, cursorY float64) wlroots.GeoBox {
	if c.grab == nil {
		return wlroots.GeoBox{}
	}
	origin := c.grab.originOffset
	edges := c.grab.edges

	left := origin.X
	right := origin.X + origin.Width
	top := origin.Y
	bottom := origin.Y + origin.Height

	if edges&wlroots.EdgeTop != 0 {
		top = int(cursorY)
		if top >= bottom {
			top = bottom - 1
		}
	} else if edges&wlroots.EdgeBottom != 0 {
		bottom = int(cursorY)
		if bottom <= top {
			bottom = top + 1
		}
	}

	if edges&wlroots.EdgeLeft != 0 {
		left = int(cursorX)
		if left >= right {
			left = right - 1
		}
	} else if edges&wlroots.EdgeRight != 0 {
		right = int(cursorX)
		if right <= left {
			right = left + 1
		}
	}

	return wlroots.GeoBox{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Edges returns the resize edges of the current grab, used by the
// compositor to call view.RequestGeometry with the right anchor.
func (c *Cursor) Edges() wlroots.Edges {
	if c.grab == nil {
		return 0
	}
	return c.grab.edges
}

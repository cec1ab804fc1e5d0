// Package view implements the toplevel application window abstraction of
// spec.md §3/§4.1-§4.2: a tagged union over the shell protocol that created
// it (two xdg-shell generations plus the X11 bridge), a top-to-bottom
// stacking order, and the pending/acknowledge geometry negotiation that
// keeps a dragged edge visually anchored across an asynchronous configure
// round trip.
package view

import (
	"github.com/swaywm/go-wlroots/wlroots"
)

// Role tags which shell protocol produced a View. Every role implements the
// Shell interface below; routing through the tag (rather than through Go
// interface assertions scattered across the codebase) keeps the union
// explicit, per spec.md §9.
type Role int

const (
	RoleXDGShell Role = iota
	RoleXDGShellV6
	RoleXWayland
)

func (r Role) String() string {
	switch r {
	case RoleXDGShell:
		return "xdg-shell"
	case RoleXDGShellV6:
		return "xdg-shell-v6"
	case RoleXWayland:
		return "xwayland"
	default:
		return "unknown"
	}
}

// Shell is what every surface role must provide so that View's geometry
// negotiation, focus, and hit-testing logic never has to know which wire
// protocol produced the surface (spec.md §9, "union of shell roles").
type Shell interface {
	// SurfaceAt returns the surface (and its local coordinates) at the given
	// point in the view's own coordinate space, or ok=false if none.
	SurfaceAt(lx, ly float64) (surface wlroots.Surface, sx, sy float64, ok bool)
	// MainSurface is the role's top-level wl_surface.
	MainSurface() wlroots.Surface
	// ForEachSubsurface walks every mapped sub-surface (popups, subsurfaces)
	// with its offset relative to the main surface, for rendering (spec.md §4.9).
	ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int))
	// SetActivated toggles the shell's notion of keyboard activation.
	SetActivated(activated bool)
	// SetSize proposes a new size to the client. hasSerial reports whether
	// the shell tracks configure serials (xdg-shell does; the X11 bridge
	// does not, per spec.md §4.1).
	SetSize(width, height uint32) (serial uint32, hasSerial bool)
	// Size is the last committed intrinsic surface size.
	Size() (width, height int)
	// AckedSerial reports the configure serial satisfied by the most
	// recently committed surface state, and whether this shell tracks
	// serials at all (xdg-shell does; the X11 bridge does not, mirroring
	// SetSize's hasSerial).
	AckedSerial() (serial uint32, hasSerial bool)
}

// View is one composited application window, regardless of the shell
// protocol that created it (spec.md glossary).
type View struct {
	Role  Role
	Shell Shell

	Mapped bool

	// Current is the last committed geometry in output-layout coordinates.
	// Per spec.md §3 invariant (ii), width/height reflect the last committed
	// client size except during a pending move/resize.
	Current wlroots.GeoBox
	// Pending is the geometry most recently proposed via a configure.
	Pending wlroots.GeoBox
	// PendingSerial/IsPending track the outstanding configure, per spec.md §9.
	PendingSerial uint32
	IsPending     bool
	// ResizeEdges records which edges are anchored for the outstanding
	// configure, needed to realign Current.X/Y on acknowledge (spec.md §4.1).
	ResizeEdges wlroots.Edges

	activated bool
}

// New wraps a freshly created, unmapped shell surface in a View.
func New(role Role, shell Shell) *View {
	return &View{Role: role, Shell: shell}
}

// Activated reports the view's last-set activation state (used to avoid
// redundant deactivate/activate pairs and for state snapshots).
func (v *View) Activated() bool { return v.activated }

// SetActivated forwards to the shell and records the state locally.
func (v *View) SetActivated(activated bool) {
	v.activated = activated
	v.Shell.SetActivated(activated)
}

// Map marks the view mapped and captures its initial committed size into
// Current, per spec.md §4.1. The caller (compositor) is responsible for
// focusing the view and damaging the affected outputs.
func (v *View) Map(x, y int) {
	v.Mapped = true
	w, h := v.Shell.Size()
	v.Current = wlroots.GeoBox{X: x, Y: y, Width: w, Height: h}
}

// Unmap marks the view unmapped. The caller damages the vacated region.
func (v *View) Unmap() {
	v.Mapped = false
}

// RequestGeometry begins a move/resize configure round trip: it proposes
// pending as the new geometry, records which edges are anchored (0 for a
// pure move), and records the configure serial in PendingSerial if the
// shell tracks one (spec.md §4.1, §9 "pending/acknowledge tracking").
func (v *View) RequestGeometry(pending wlroots.GeoBox, edges wlroots.Edges) {
	v.Pending = pending
	v.ResizeEdges = edges

	serial, hasSerial := v.Shell.SetSize(uint32(pending.Width), uint32(pending.Height))
	if hasSerial {
		v.PendingSerial = serial
		v.IsPending = true
		return
	}
	// Shells without serials (the X11 bridge) align on the very next
	// commit unconditionally, per spec.md §4.1.
	v.IsPending = false
}

// AckConfigure reports whether a commit carrying ackedSerial satisfies the
// outstanding configure. Shells without serial tracking always satisfy it.
func (v *View) AckConfigure(ackedSerial uint32, hasSerial bool) bool {
	if !hasSerial {
		return true
	}
	if !v.IsPending {
		return false
	}
	return ackedSerial >= v.PendingSerial
}

// Commit applies a freshly committed surface size to Current, realigning
// X/Y so that the edge opposite the one being dragged stays fixed in layout
// coordinates (spec.md §4.1, Testable property 3). It returns the view
// rectangles that must be damaged: the rectangle before this call and the
// rectangle after, so the caller can damage both (spec.md §4.1 damage
// discipline) even when only position or only size changed.
func (v *View) Commit(width, height int, ackedSerial uint32, hasSerial bool) (before, after wlroots.GeoBox) {
	before = v.Current

	satisfied := v.AckConfigure(ackedSerial, hasSerial)
	if satisfied && v.IsPending {
		v.Current.X, v.Current.Y = alignAnchor(v.Pending, v.ResizeEdges, width, height)
		v.IsPending = false
	} else if !hasSerial {
		v.Current.X, v.Current.Y = alignAnchor(v.Pending, v.ResizeEdges, width, height)
	}

	v.Current.Width = width
	v.Current.Height = height
	after = v.Current
	return before, after
}

// alignAnchor computes the top-left corner that keeps the edge opposite
// ResizeEdges fixed at its pending position, given the actually committed
// size. For a plain move (edges == 0) this reduces to the pending position.
func alignAnchor(pending wlroots.GeoBox, edges wlroots.Edges, width, height int) (x, y int) {
	x, y = pending.X, pending.Y
	if edges&wlroots.EdgeLeft != 0 {
		x = pending.X + pending.Width - width
	}
	if edges&wlroots.EdgeTop != 0 {
		y = pending.Y + pending.Height - height
	}
	return x, y
}

// Bounds returns the view's current rectangle — the unit of damage and hit
// testing.
func (v *View) Bounds() wlroots.GeoBox {
	return v.Current
}

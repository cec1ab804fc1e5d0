// Package output implements spec.md §3's Output record: one entry per
// physical display, its damage tracker, its four ordered layer-surface
// lists, and its usable-area rectangle, created on backend hotplug and
// destroyed on unplug — mirroring the teacher's handleNewOutput idiom.
package output

import (
	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/damage"
	"github.com/halcyonwm/halcyon/internal/layershell"
)

// Output is one physical display, per spec.md §3.
type Output struct {
	Handle wlroots.Output
	Name   string

	Damage *damage.Tracker

	Background []*layershell.Surface
	Bottom     []*layershell.Surface
	Top        []*layershell.Surface
	Overlay    []*layershell.Surface

	Usable wlroots.GeoBox
	full   wlroots.GeoBox
}

// New wraps a newly advertised backend output, sized to its current
// mode, per the teacher's handleNewOutput (preferred-mode commit before
// use).
func New(handle wlroots.Output, name string, full wlroots.GeoBox) *Output {
	o := &Output{
		Handle: handle,
		Name:   name,
		full:   full,
		Usable: full,
	}
	o.Damage = damage.NewTracker(full)
	return o
}

// SetDebug forwards to the damage tracker (spec.md §6's `-d` flag).
func (o *Output) SetDebug(debug bool) {
	o.Damage.SetDebug(debug)
}

// Resize updates the output's full and (pre-arrangement) usable bounds
// after a mode change, e.g. on hotplug reconfiguration.
func (o *Output) Resize(full wlroots.GeoBox) {
	o.full = full
	o.Usable = full
	o.Damage.SetBounds(full)
	o.Damage.AddFull()
}

// Layers returns the four layer lists in spec.md §4.9's draw order
// (background, bottom, top, overlay) — callers reverse within each list
// themselves, per the render pipeline's "reverse-order" rule.
func (o *Output) Layers() [4][]*layershell.Surface {
	return [4][]*layershell.Surface{o.Background, o.Bottom, o.Top, o.Overlay}
}

func (o *Output) layerSlice(layer layershell.Layer) *[]*layershell.Surface {
	switch layer {
	case layershell.LayerBackground:
		return &o.Background
	case layershell.LayerBottom:
		return &o.Bottom
	case layershell.LayerTop:
		return &o.Top
	default:
		return &o.Overlay
	}
}

// AddLayerSurface inserts a layer surface at the tail of its layer's
// list, per spec.md §3's "ordered by insertion".
func (o *Output) AddLayerSurface(s *layershell.Surface) {
	slice := o.layerSlice(s.Layer)
	*slice = append(*slice, s)
}

// RemoveLayerSurface drops a layer surface from its layer's list, on
// client destroy.
func (o *Output) RemoveLayerSurface(s *layershell.Surface) {
	slice := o.layerSlice(s.Layer)
	for i, c := range *slice {
		if c == s {
			*slice = append((*slice)[:i], (*slice)[i+1:]...)
			return
		}
	}
}

// AllLayerSurfaces flattens the four lists for the arranger, which
// operates over all layers on one output at once (spec.md §4.3).
func (o *Output) AllLayerSurfaces() []*layershell.Surface {
	all := make([]*layershell.Surface, 0, len(o.Background)+len(o.Bottom)+len(o.Top)+len(o.Overlay))
	all = append(all, o.Background...)
	all = append(all, o.Bottom...)
	all = append(all, o.Top...)
	all = append(all, o.Overlay...)
	return all
}

// Arrange re-runs the layer-shell arranger against this output's full
// bounds and damages the whole output, since any layer surface's
// geometry may have changed (spec.md §4.3's "geo is recomputed whenever
// any member on the output commits").
func (o *Output) Arrange() (closedNamespaces []string) {
	usable, closed := layershell.ApplyAndConfigure(o.AllLayerSurfaces(), o.full)
	o.Usable = usable
	o.Damage.AddFull()
	logrus.WithFields(logrus.Fields{
		"output": o.Name,
		"usable": o.Usable,
	}).Debugln("output arranged")
	return closed
}

// Contains reports whether a layout-coordinate box intersects this
// output's full rectangle, used to route view/layer damage to the right
// output's tracker (spec.md §4.1's damage-translation step).
func (o *Output) Contains(box wlroots.GeoBox) bool {
	return box.X < o.full.X+o.full.Width && o.full.X < box.X+box.Width &&
		box.Y < o.full.Y+o.full.Height && o.full.Y < box.Y+box.Height
}

// ToLocal translates a layout-coordinate box into this output's local
// coordinate space.
func (o *Output) ToLocal(box wlroots.GeoBox) wlroots.GeoBox {
	return wlroots.GeoBox{X: box.X - o.full.X, Y: box.Y - o.full.Y, Width: box.Width, Height: box.Height}
}

// Full returns the output's full layout rectangle.
func (o *Output) Full() wlroots.GeoBox {
	return o.full
}

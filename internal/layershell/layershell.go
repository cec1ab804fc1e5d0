// Package layershell implements the anchored decorative-surface arranger of
// spec.md §3/§4.3: per-output ordered lists of layer surfaces, the
// two-pass exclusive-zone arrangement algorithm, and the shrinking of the
// output's usable area.
package layershell

import (
	"github.com/swaywm/go-wlroots/wlroots"
)

// Layer identifies which of the four stacked layers a surface belongs to.
// Arrangement order is overlay → top → bottom → background (spec.md §4.3);
// draw order is the reverse, background → bottom → top → overlay (§4.9).
type Layer int

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerBottom:
		return "bottom"
	case LayerTop:
		return "top"
	case LayerOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// ArrangeOrder is overlay → top → bottom → background, per spec.md §4.3.
var ArrangeOrder = [4]Layer{LayerOverlay, LayerTop, LayerBottom, LayerBackground}

// Anchor is the anchor-mask bitset of spec.md §3 ("any of {left, right,
// top, bottom}").
type Anchor uint8

const (
	AnchorLeft Anchor = 1 << iota
	AnchorRight
	AnchorTop
	AnchorBottom
)

// Margin is the four-sided margin of spec.md §3.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Shell is the protocol-facing half of a layer surface: issuing the
// configure and reacting to the client's eventual destroy, mirroring the
// teacher's OnMap/OnUnmap/OnDestroy idiom generalized to layer-shell.
type Shell interface {
	SurfaceAt(sx, sy float64) (wlroots.Surface, float64, float64, bool)
	MainSurface() wlroots.Surface
	ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int))
	Configure(width, height uint32) uint32
	Close()
}

// Surface is spec.md §3's Layer surface record.
type Surface struct {
	Shell Shell

	Namespace           string
	Layer               Layer
	Anchor              Anchor
	DesiredWidth        int
	DesiredHeight       int
	Margin              Margin
	ExclusiveZone       int // -1 = use full area, 0 = none, >0 = pixels reserved
	KeyboardInteractive bool

	// Geo is the arranger's last computed rectangle, recomputed whenever
	// any member on the output commits (spec.md §3 invariant).
	Geo wlroots.GeoBox
}

// Claims reports whether this surface participates in the exclusive-zone
// claiming pass (spec.md §4.3: "first exclusive-zone-claiming surfaces").
func (s *Surface) Claims() bool {
	return s.ExclusiveZone > 0
}

package layershell

import (
	"github.com/swaywm/go-wlroots/wlroots"
)

// Arrange implements spec.md §4.3's two-pass arrangement: first the
// exclusive-zone-claiming surfaces (in overlay→top→bottom→background
// order), shrinking the usable area as each claims its edge; then the
// non-claiming surfaces, positioned against the resulting usable area.
// It returns the output's new usable rectangle and any surfaces whose
// computed geometry collapsed to a non-positive size (the caller is
// expected to close these, per spec.md §4.3's edge case).
func Arrange(surfaces []*Surface, full wlroots.GeoBox) (usable wlroots.GeoBox, closed []*Surface) {
	usable = full

	for _, layer := range ArrangeOrder {
		for _, s := range surfaces {
			if s.Layer != layer || !s.Claims() {
				continue
			}
			box, ok := computeRect(usable, s.Anchor, s.DesiredWidth, s.DesiredHeight, s.Margin)
			s.Geo = box
			if !ok {
				closed = append(closed, s)
				continue
			}
			usable = shrink(usable, s.Anchor, s.ExclusiveZone)
		}
	}

	for _, layer := range ArrangeOrder {
		for _, s := range surfaces {
			if s.Layer != layer || s.Claims() {
				continue
			}
			bounds := usable
			if s.ExclusiveZone < 0 {
				bounds = full
			}
			box, ok := computeRect(bounds, s.Anchor, s.DesiredWidth, s.DesiredHeight, s.Margin)
			s.Geo = box
			if !ok {
				closed = append(closed, s)
			}
		}
	}

	return usable, closed
}

// computeRect positions one surface's rectangle within bounds per
// spec.md §4.3's anchor/margin table. ok is false when the resulting
// width or height is non-positive.
func computeRect(bounds wlroots.GeoBox, anchor Anchor, desiredW, desiredH int, margin Margin) (wlroots.GeoBox, bool) {
	x, width := computeAxis(anchor&AnchorLeft != 0, anchor&AnchorRight != 0, bounds.X, bounds.Width, desiredW)
	y, height := computeAxis(anchor&AnchorTop != 0, anchor&AnchorBottom != 0, bounds.Y, bounds.Height, desiredH)

	switch {
	case anchor&AnchorLeft != 0 && anchor&AnchorRight != 0:
		x += margin.Left
		width -= margin.Left + margin.Right
	case anchor&AnchorLeft != 0:
		x += margin.Left
	case anchor&AnchorRight != 0:
		x -= margin.Right
	}

	switch {
	case anchor&AnchorTop != 0 && anchor&AnchorBottom != 0:
		y += margin.Top
		height -= margin.Top + margin.Bottom
	case anchor&AnchorTop != 0:
		y += margin.Top
	case anchor&AnchorBottom != 0:
		y -= margin.Bottom
	}

	box := wlroots.GeoBox{X: x, Y: y, Width: width, Height: height}
	return box, width > 0 && height > 0
}

// computeAxis implements one axis of spec.md §4.3's table:
//   - both anchors, desired 0: span the full bound
//   - start anchor only (or both with nonzero desired): aligned to start
//   - end anchor only: aligned to end
//   - neither: centered
func computeAxis(hasStart, hasEnd bool, boundOrigin, boundLen, desired int) (origin, length int) {
	if hasStart && hasEnd && desired == 0 {
		return boundOrigin, boundLen
	}
	if hasStart {
		return boundOrigin, desired
	}
	if hasEnd {
		return boundOrigin + boundLen - desired, desired
	}
	return boundOrigin + (boundLen-desired)/2, desired
}

// shrink reserves zone pixels on a claiming surface's anchored edge,
// per spec.md §4.3: top/bottom anchoring (without the opposite side) is
// checked before left/right, matching how a horizontal bar's exclusive
// zone reserves vertical space even when it also anchors both side edges.
func shrink(usable wlroots.GeoBox, anchor Anchor, zone int) wlroots.GeoBox {
	switch {
	case anchor&AnchorTop != 0 && anchor&AnchorBottom == 0:
		usable.Y += zone
		usable.Height -= zone
	case anchor&AnchorBottom != 0 && anchor&AnchorTop == 0:
		usable.Height -= zone
	case anchor&AnchorLeft != 0 && anchor&AnchorRight == 0:
		usable.X += zone
		usable.Width -= zone
	case anchor&AnchorRight != 0 && anchor&AnchorLeft == 0:
		usable.Width -= zone
	}
	return usable
}

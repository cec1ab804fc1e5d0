package layershell

import "github.com/swaywm/go-wlroots/wlroots"

// WlrLayerSurface adapts a wlr_layer_surface_v1 to the Shell interface,
// the layer-shell counterpart of the view package's per-role adapters.
type WlrLayerSurface struct {
	Handle wlroots.LayerSurfaceV1
}

func NewWlrLayerSurface(handle wlroots.LayerSurfaceV1) *WlrLayerSurface {
	return &WlrLayerSurface{Handle: handle}
}

func (w *WlrLayerSurface) SurfaceAt(sx, sy float64) (wlroots.Surface, float64, float64, bool) {
	surface, ox, oy := w.Handle.Surface().SurfaceAt(sx, sy)
	if surface.Nil() {
		return wlroots.Surface{}, 0, 0, false
	}
	return surface, ox, oy, true
}

func (w *WlrLayerSurface) MainSurface() wlroots.Surface {
	return w.Handle.Surface()
}

func (w *WlrLayerSurface) ForEachSubsurface(fn func(surface wlroots.Surface, sx, sy int)) {
	w.Handle.Surface().Walk(fn)
}

func (w *WlrLayerSurface) Configure(width, height uint32) uint32 {
	return w.Handle.Configure(width, height)
}

func (w *WlrLayerSurface) Close() {
	w.Handle.Destroy()
}

// FromWlrLayer translates the backend's own layer enum into this
// package's Layer type.
func FromWlrLayer(l wlroots.LayerShellV1Layer) Layer {
	switch l {
	case wlroots.LayerShellV1LayerBottom:
		return LayerBottom
	case wlroots.LayerShellV1LayerTop:
		return LayerTop
	case wlroots.LayerShellV1LayerOverlay:
		return LayerOverlay
	default:
		return LayerBackground
	}
}

// FromWlrAnchor translates the backend's anchor bitmask into this
// package's Anchor type; the bit positions are the same four edges, just
// named differently by the protocol binding.
func FromWlrAnchor(a wlroots.LayerSurfaceV1Anchor) Anchor {
	var out Anchor
	if a&wlroots.LayerSurfaceV1AnchorLeft != 0 {
		out |= AnchorLeft
	}
	if a&wlroots.LayerSurfaceV1AnchorRight != 0 {
		out |= AnchorRight
	}
	if a&wlroots.LayerSurfaceV1AnchorTop != 0 {
		out |= AnchorTop
	}
	if a&wlroots.LayerSurfaceV1AnchorBottom != 0 {
		out |= AnchorBottom
	}
	return out
}

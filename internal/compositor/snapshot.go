package compositor

import (
	"time"

	"github.com/halcyonwm/halcyon/internal/ipc"
	"github.com/halcyonwm/halcyon/internal/view"
)

// StateSnapshot captures the state an operator would want from the
// REPL's `dump` command and tool-mode's `-action state`, without
// requiring the caller to hold any lock — the single-threaded event
// loop (spec.md §5) makes every field here consistent as of the moment
// this is called.
func (s *Server) StateSnapshot() ipc.StateSnapshot {
	snap := ipc.StateSnapshot{
		GeneratedAt:    time.Now(),
		CursorMode:     s.Cursor.Mode.String(),
		RegisteredKeys: s.Keybind.RegisteredCount(),
	}
	snap.CursorX, snap.CursorY = s.CursorPosition()

	if grabber, ok := s.Mousegrab.Grabber(); ok && grabber != nil {
		snap.MousegrabOwner = "bound"
	}

	focused, hasFocus := s.Seat.KeyboardFocusSurface()

	for _, out := range s.Outputs {
		snap.Outputs = append(snap.Outputs, out.Name)
		for _, ls := range out.AllLayerSurfaces() {
			snap.Layers = append(snap.Layers, ipc.LayerSnapshot{
				Output:              out.Name,
				Layer:               ls.Layer.String(),
				Namespace:           ls.Namespace,
				X:                   ls.Geo.X,
				Y:                   ls.Geo.Y,
				Width:               ls.Geo.Width,
				Height:              ls.Geo.Height,
				ExclusiveZone:       ls.ExclusiveZone,
				KeyboardInteractive: ls.KeyboardInteractive,
			})
		}
	}

	s.Views.TopToBottom(func(v *view.View) bool {
		snap.Views = append(snap.Views, ipc.ViewSnapshot{
			Role:      v.Role.String(),
			Mapped:    v.Mapped,
			X:         v.Current.X,
			Y:         v.Current.Y,
			Width:     v.Current.Width,
			Height:    v.Current.Height,
			Focused:   hasFocus && v.Shell.MainSurface() == focused,
			IsPending: v.IsPending,
		})
		return true
	})

	return snap
}

// ListOutputs answers an ipc.OutputRequest against the live output list,
// used in-process by tool-mode's `-action outputs`.
func (s *Server) ListOutputs(req ipc.OutputRequest) ipc.OutputResponse {
	var resp ipc.OutputResponse

	for _, out := range s.Outputs {
		if req.SpecifiesOutput && out.Name != req.TargetOutput {
			continue
		}
		resp.Outputs = append(resp.Outputs, out.Name)
		resp.OutputsFound++

		if !req.IncludeModes {
			continue
		}
		if resp.OutputModes == nil {
			resp.OutputModes = map[string][]ipc.OutputMode{}
		}
		for _, mode := range out.Handle.Modes() {
			resp.OutputModes[out.Name] = append(resp.OutputModes[out.Name], ipc.OutputMode{
				Width:       mode.Width(),
				Height:      mode.Height(),
				RefreshRate: mode.Refresh(),
				Preferred:   mode.Preferred(),
			})
		}
	}

	return resp
}

package compositor

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/output"
)

// handleNewOutput mirrors the teacher's handleNewOutput: attach the
// renderer/allocator, enable the output at its preferred mode, add it to
// the layout, then wrap it as an output.Output with full damage. The
// layer-shell arranger first runs when a layer surface on it maps.
func (s *Server) handleNewOutput(backendOutput wlroots.Output) {
	logrus.WithField("name", backendOutput.Name()).Debugln("new output added")

	backendOutput.InitRender(s.allocator, s.renderer)

	state := wlroots.NewOutputState()
	state.StateInit()
	state.StateSetEnabled(true)
	if mode, err := backendOutput.PrefferedMode(); err == nil {
		state.SetMode(mode)
	}
	backendOutput.CommitState(state)
	state.Finish()

	backendOutput.OnFrame(s.handleOutputFrame)
	backendOutput.OnRequestState(s.handleOutputRequestState)
	backendOutput.OnDestroy(s.handleOutputDestroy)

	s.outputLayout.AddOutputAuto(backendOutput)

	full := wlroots.GeoBox{X: 0, Y: 0, Width: backendOutput.Width(), Height: backendOutput.Height()}
	out := output.New(backendOutput, backendOutput.Name(), full)
	out.SetDebug(s.Config.Debug)
	out.Damage.AddFull()
	s.Outputs = append(s.Outputs, out)

	if err := backendOutput.SetTitle(fmt.Sprintf("halcyon - %s", backendOutput.Name())); err != nil {
		logrus.WithError(err).Debugln("failed to set output title")
	}
}

func (s *Server) handleOutputFrame(backendOutput wlroots.Output) {
	out := s.outputFor(backendOutput)
	if out == nil {
		return
	}
	s.Pipeline.Frame(out)
}

func (s *Server) handleOutputRequestState(backendOutput wlroots.Output, state wlroots.OutputState) {
	backendOutput.CommitState(state)
	if out := s.outputFor(backendOutput); out != nil {
		full := wlroots.GeoBox{X: 0, Y: 0, Width: backendOutput.Width(), Height: backendOutput.Height()}
		out.Resize(full)
		out.Arrange()
	}
}

func (s *Server) handleOutputDestroy(backendOutput wlroots.Output) {
	for i, out := range s.Outputs {
		if out.Handle == backendOutput {
			s.Outputs = append(s.Outputs[:i], s.Outputs[i+1:]...)
			if active, ok := s.activeOutput.Get(); ok && active == out {
				s.activeOutput.Clear()
			}
			return
		}
	}
}

func (s *Server) outputFor(backendOutput wlroots.Output) *output.Output {
	for _, out := range s.Outputs {
		if out.Handle == backendOutput {
			return out
		}
	}
	return nil
}

// outputAt returns the output whose full rectangle contains (x, y), used
// to refresh the Server's weak active-output reference (spec.md §4.4).
func (s *Server) outputAt(x, y float64) *output.Output {
	for _, out := range s.Outputs {
		full := out.Full()
		if x >= float64(full.X) && x < float64(full.X+full.Width) &&
			y >= float64(full.Y) && y < float64(full.Y+full.Height) {
			return out
		}
	}
	return nil
}

// damageBox accumulates box, translated to output-local coordinates,
// into every output it intersects (spec.md §4.1's damage-translation
// step).
func (s *Server) damageBox(box wlroots.GeoBox) {
	for _, out := range s.Outputs {
		if out.Contains(box) {
			out.Damage.Add(out.ToLocal(box))
		}
	}
}

// Package compositor wires the leaf packages (view, layershell, cursorfsm,
// seat, output, damage, render, protocol/*) into the single-threaded Server
// hub of spec.md §2-§5, generalizing the teacher's monolithic server.go into
// the component design this spec describes.
package compositor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"github.com/swaywm/go-wlroots/xkb"

	"github.com/halcyonwm/halcyon/internal/config"
	"github.com/halcyonwm/halcyon/internal/cursorfsm"
	"github.com/halcyonwm/halcyon/internal/event"
	"github.com/halcyonwm/halcyon/internal/output"
	"github.com/halcyonwm/halcyon/internal/protocol/keybind"
	"github.com/halcyonwm/halcyon/internal/protocol/mousegrab"
	"github.com/halcyonwm/halcyon/internal/render"
	"github.com/halcyonwm/halcyon/internal/seat"
	"github.com/halcyonwm/halcyon/internal/view"
	"github.com/halcyonwm/halcyon/internal/weakref"
)

// Server is spec.md §3's process-wide state bundle: the display
// dispatcher, backend/renderer handles, cursor, seat, output list, view
// list, and the two privileged-protocol singletons.
type Server struct {
	Config *config.Config
	Events *event.Bus

	display      wlroots.Display
	backend      wlroots.Backend
	renderer     wlroots.Renderer
	allocator    wlroots.Allocator
	outputLayout wlroots.OutputLayout

	cursorHandle wlroots.Cursor
	cursorMgr    wlroots.XCursorManager
	Cursor       *cursorfsm.Cursor

	Seat      *seat.Seat
	keyboards []wlroots.InputDevice

	Views   *view.List
	Outputs []*output.Output
	// activeOutput is the weak "most recently contained the cursor"
	// reference of spec.md §3.
	activeOutput weakref.Ref[*output.Output]

	xdgShell   wlroots.XDGShell
	xdgShellV6 wlroots.XDGShellV6
	layerShell wlroots.LayerShellV1
	xwayland   wlroots.XWayland
	x11Props   *view.X11Properties

	Keybind   *keybind.Filter
	Mousegrab *mousegrab.Singleton

	Pipeline *render.Pipeline

	cursorImage string
}

// New constructs a Server in the teacher's NewServer idiom, generalized
// to also stand up the layer-shell, legacy xdg-shell-v6, XWayland bridge
// (if enabled), and the two custom protocol globals.
func New(cfg *config.Config, events *event.Bus) (*Server, error) {
	s := &Server{Config: cfg, Events: events, cursorImage: "default"}

	s.display = wlroots.NewDisplay()

	var err error
	s.backend, err = s.display.BackendAutocreate()
	if err != nil {
		return nil, fmt.Errorf("backend autocreate: %w", err)
	}

	s.renderer, err = s.backend.RendererAutoCreate()
	if err != nil {
		return nil, fmt.Errorf("renderer autocreate: %w", err)
	}
	s.renderer.InitDisplay(s.display)

	s.allocator, err = s.backend.AllocatorAutocreate(s.renderer)
	if err != nil {
		return nil, fmt.Errorf("allocator autocreate: %w", err)
	}

	s.display.CompositorCreate(5, s.renderer)
	s.display.SubCompositorCreate()
	s.display.DataDeviceManagerCreate()
	s.display.ScreencopyManagerV1Create()
	s.display.XDGOutputManagerV1Create(s.outputLayout)

	s.outputLayout = wlroots.NewOutputLayout()
	s.backend.OnNewOutput(s.handleNewOutput)

	s.Views = &view.List{}

	s.xdgShell = s.display.XDGShellCreate(3)
	s.xdgShell.OnNewSurface(s.handleNewXDGSurface)

	s.xdgShellV6 = s.display.XDGShellV6Create()
	s.xdgShellV6.OnNewSurface(s.handleNewXDGSurfaceV6)

	s.layerShell = s.display.LayerShellV1Create()
	s.layerShell.OnNewSurface(s.handleNewLayerSurface)

	if cfg.EnableXWayland {
		s.xwayland, err = s.display.XWaylandCreate(s.backend, s.outputLayout, true)
		if err != nil {
			logrus.WithError(err).Warnln("XWayland bridge unavailable, continuing without it")
		} else {
			s.xwayland.OnNewSurface(s.handleNewXWaylandSurface)
		}
	}

	s.cursorHandle = wlroots.NewCursor()
	s.cursorHandle.AttachOutputLayout(s.outputLayout)
	s.cursorMgr = wlroots.NewXCursorManager("", 24)
	s.cursorMgr.Load(1)
	s.Cursor = cursorfsm.New("default")

	s.cursorHandle.OnMotion(s.handleCursorMotion)
	s.cursorHandle.OnMotionAbsolute(s.handleCursorMotionAbsolute)
	s.cursorHandle.OnButton(s.handleCursorButton)
	s.cursorHandle.OnAxis(s.handleCursorAxis)
	s.cursorHandle.OnFrame(s.handleCursorFrame)

	s.backend.OnNewInput(s.handleNewInput)
	seatHandle := s.display.SeatCreate("seat0")
	seatHandle.OnSetCursorRequest(s.handleSetCursorRequest)
	s.Seat = seat.New(seatHandle)

	s.Keybind = keybind.New()
	s.Mousegrab = mousegrab.New(s)
	s.registerCustomProtocols()

	s.Pipeline = render.New(s.renderer, s.Views)
	s.Pipeline.Debug = cfg.Debug

	return s, nil
}

// ApplyDebug propagates a hot-reloaded debug flag into the render
// pipeline and every output's damage tracker, per SPEC_FULL.md §2's
// "re-reads the keybinding-filter escape chord and debug flag without
// restart" — cfg.Debug on its own is only read once at startup
// otherwise, since Pipeline and each output's tracker copy it by value.
func (s *Server) ApplyDebug(debug bool) {
	s.Pipeline.Debug = debug
	for _, out := range s.Outputs {
		out.SetDebug(debug)
	}
}

// Start brings up the Wayland socket and the backend, per the teacher's
// Start, plus spec.md §6's DISPLAY export when X11 bridging is enabled
// and the configured start_command (run via /bin/sh -c when StartType is
// START_SINGLE_COMMAND).
func (s *Server) Start() error {
	socket, err := s.display.AddSocketAuto()
	if err != nil {
		s.backend.Destroy()
		return err
	}
	if err := s.backend.Start(); err != nil {
		s.backend.Destroy()
		s.display.Destroy()
		return err
	}
	if err := os.Setenv("WAYLAND_DISPLAY", socket); err != nil {
		return err
	}
	logrus.WithField("WAYLAND_DISPLAY", socket).Infoln("halcyon compositor listening")

	if s.xwayland.Valid() {
		if err := os.Setenv("DISPLAY", s.xwayland.DisplayName()); err != nil {
			return err
		}
	}

	if s.Config.StartType == config.START_SINGLE_COMMAND && s.Config.StartCommand != nil {
		cmd := exec.Command("/bin/sh", "-c", *s.Config.StartCommand)
		cmd.Env = os.Environ()
		if err := cmd.Start(); err != nil {
			logrus.WithError(err).Warnln("failed to spawn startup command")
		}
	}
	return nil
}

// Run blocks on the display's event loop, per spec.md §5's
// single-threaded cooperative model, then tears down finalizers.
func (s *Server) Run() error {
	s.display.Run()

	s.display.DestroyClients()
	s.cursorMgr.Destroy()
	s.outputLayout.Destroy()
	s.display.Destroy()
	return nil
}

// Stop asks the event loop to terminate (the only operation the hard
// escape chord and the REPL's `quit` command need).
func (s *Server) Stop() {
	s.display.Terminate()
}

func (s *Server) handleKeyBinding(sym xkb.KeySym) bool {
	switch sym {
	case xkb.KeySymF1:
		if s.Views.Len() < 2 {
			return true
		}
		if next := s.Views.Next(s.Views.Front()); next != nil {
			s.FocusView(next)
		}
		return true
	default:
		return false
	}
}

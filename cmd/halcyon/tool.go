package main

import (
	"flag"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/halcyonwm/halcyon/internal/compositor"
	"github.com/halcyonwm/halcyon/internal/config"
	"github.com/halcyonwm/halcyon/internal/event"
	"github.com/halcyonwm/halcyon/internal/ipc"
)

var (
	toolAction = flag.String(
		"action",
		"state",
		"The action to perform in tool mode. Can be one of:"+
			"\n\t- state: Show a snapshot of outputs, views and protocol singleton state"+
			"\n\t- outputs: List connected outputs and their modes",
	)
	plain = flag.Bool("plain", false, "Print tool output as plain YAML instead of the interactive view")
)

// toolMain generalizes the teacher's utilMain: stand up a Server far
// enough to enumerate real outputs, then render a StateSnapshot
// instead of the teacher's bare output/mode listing.
func toolMain(cfg *config.Config) {
	if *help {
		toolHelpMessage()
		return
	}

	events := event.NewBus()
	server, err := compositor.New(cfg, events)
	if err != nil {
		logrus.WithError(err).Fatal("initializing server")
	}
	if err = server.Start(); err != nil {
		logrus.WithError(err).Fatal("starting server")
	}

	switch *toolAction {
	case "state":
		snap := server.StateSnapshot()
		if *plain {
			printPlain(snap)
		} else {
			runSnapshotTUI(snap)
		}
	case "outputs":
		resp := server.ListOutputs(ipc.OutputRequest{IncludeModes: true})
		printPlain(resp)
	default:
		fmt.Printf("unknown action %q\n", *toolAction)
	}
}

func toolHelpMessage() {
	fmt.Println("---- Help message for halcyon in tool mode ----")
	fmt.Println("\nIn tool mode, halcyon offers a read-only view of what it would see as a compositor")
	fmt.Println("\nGeneral flags:")
	fmt.Println("\t-config: Path to the config file")
	fmt.Println("\t-tool: Start as a tool instead of a compositor")
	fmt.Println("\t-help: Show this help message")
	fmt.Println("\nTool flags:")
	fmt.Println("\t-action: The action to perform: \"state\" or \"outputs\"")
	fmt.Println("\t-plain: Print plain YAML instead of the interactive view")
}

func printPlain(v any) {
	out, err := yaml.Marshal(v)
	if err != nil {
		logrus.WithError(err).Errorln("marshaling output")
		return
	}
	fmt.Print(string(out))
}

var (
	stateHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	stateRowStyle    = lipgloss.NewStyle().PaddingLeft(2)
)

// stateModel is a static (non-refreshing) view of one StateSnapshot;
// tool mode never runs the event loop, so there is nothing to refresh.
type stateModel struct {
	snap ipc.StateSnapshot
}

func (m stateModel) Init() tea.Cmd { return nil }

func (m stateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m stateModel) View() string {
	var b strings.Builder

	fmt.Fprintln(&b, stateHeaderStyle.Render("halcyon compositor state"))
	fmt.Fprintln(&b, stateRowStyle.Render(fmt.Sprintf("generated: %s", m.snap.GeneratedAt.Format("15:04:05"))))

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, stateHeaderStyle.Render("Outputs"))
	for _, name := range m.snap.Outputs {
		fmt.Fprintln(&b, stateRowStyle.Render(name))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, stateHeaderStyle.Render("Layers"))
	for _, l := range m.snap.Layers {
		fmt.Fprintln(&b, stateRowStyle.Render(fmt.Sprintf(
			"%s/%s %q zone=%d geo=(%d,%d %dx%d)",
			l.Output, l.Layer, l.Namespace, l.ExclusiveZone, l.X, l.Y, l.Width, l.Height,
		)))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, stateHeaderStyle.Render("Views"))
	for _, v := range m.snap.Views {
		fmt.Fprintln(&b, stateRowStyle.Render(fmt.Sprintf(
			"%-12s mapped=%-5v focused=%-5v pending=%-5v geo=(%d,%d %dx%d)",
			v.Role, v.Mapped, v.Focused, v.IsPending, v.X, v.Y, v.Width, v.Height,
		)))
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, stateHeaderStyle.Render("Protocol singletons"))
	fmt.Fprintln(&b, stateRowStyle.Render(fmt.Sprintf("cursor: mode=%s pos=(%.1f,%.1f)", m.snap.CursorMode, m.snap.CursorX, m.snap.CursorY)))
	fmt.Fprintln(&b, stateRowStyle.Render(fmt.Sprintf("mousegrab owner: %q", m.snap.MousegrabOwner)))
	fmt.Fprintln(&b, stateRowStyle.Render(fmt.Sprintf("keybind registered chords: %d", m.snap.RegisteredKeys)))

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "(press q to quit)")
	return b.String()
}

func runSnapshotTUI(snap ipc.StateSnapshot) {
	p := tea.NewProgram(stateModel{snap: snap})
	if err := p.Start(); err != nil {
		logrus.WithError(err).Fatal("running tool view")
	}
}

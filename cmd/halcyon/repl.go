package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/halcyonwm/halcyon/internal/compositor"
	"github.com/halcyonwm/halcyon/internal/repl"
	"github.com/halcyonwm/halcyon/internal/util"
)

// replRunner fills in the teacher's repl.go with halcyon's own
// `inspect`, `watch`, and `dump` commands, kept in its `run`/`quit`
// idiom.
func replRunner(server *compositor.Server) {
	commandRepl := repl.NewRepl(repl.NewGuardedReader(os.Stdin), repl.NewGuardedWriter(os.Stdout))
	logrus.Debugln("Starting repl")
	_ = commandRepl.Run(func(input string, r *repl.Repl) (string, error) {
		if cmdString, ok := strings.CutPrefix(input, "run "); ok {
			return replRun(cmdString, r)
		} else if input == "quit" {
			server.Stop()
			time.Sleep(time.Second * 5)
			return "Quitting", errors.New("normal stop")
		} else if rawCmdString, ok := strings.CutPrefix(input, "inspect "); ok {
			return replInspect(server, rawCmdString)
		} else if rawCmdString, ok := strings.CutPrefix(input, "watch "); ok {
			return replWatch(server, rawCmdString)
		} else if input == "dump" {
			return replDump(server)
		}
		return "Unknown command", nil
	})
}

func replRun(cmdString string, r *repl.Repl) (string, error) {
	parts := strings.Split(cmdString, " ")
	args := parts[1:]
	cmd := exec.Command(parts[0], args...)
	cmd.Stdout = r.Output
	cmd.Stderr = r.Output
	go func(cmd *exec.Cmd, cmdString string) {
		err := cmd.Start()
		if err != nil {
			logrus.WithError(err).WithField("command", cmdString).Errorln("Command failed to start")
			return
		}
		err = cmd.Wait()
		if exiterr, ok := err.(*exec.ExitError); ok {
			logrus.WithError(err).WithFields(logrus.Fields{
				"exit-code": exiterr.ExitCode(),
				"comand":    cmdString,
			}).Warningln("Bad command completion")
		}
	}(cmd, cmdString)
	return "Running " + parts[0], nil
}

// replInspect implements the teacher's `inspect <target> [modifier]
// [args]` command, filled in against halcyon's own component state
// instead of the teacher's scene-graph fields.
func replInspect(server *compositor.Server, rawCmdString string) (string, error) {
	var target, mod, args string
	util.Unpack(strings.SplitN(rawCmdString, " ", 3), &target, &mod, &args)
	logrus.WithFields(logrus.Fields{
		"cmd":  target,
		"mod":  mod,
		"args": args,
		"raw":  rawCmdString,
	}).Debugln("Parsed inspect command")

	switch target {
	case "outputs":
		snap := server.StateSnapshot()
		var b strings.Builder
		for _, name := range snap.Outputs {
			fmt.Fprintln(&b, name)
		}
		return b.String(), nil
	case "views":
		snap := server.StateSnapshot()
		var b strings.Builder
		for _, v := range snap.Views {
			fmt.Fprintf(&b, "%s mapped=%v focused=%v pending=%v geo=(%d,%d,%d,%d)\n",
				v.Role, v.Mapped, v.Focused, v.IsPending, v.X, v.Y, v.Width, v.Height)
		}
		return b.String(), nil
	case "layers":
		snap := server.StateSnapshot()
		var b strings.Builder
		for _, l := range snap.Layers {
			fmt.Fprintf(&b, "%s/%s %q zone=%d geo=(%d,%d,%d,%d)\n",
				l.Output, l.Layer, l.Namespace, l.ExclusiveZone, l.X, l.Y, l.Width, l.Height)
		}
		return b.String(), nil
	case "cursor":
		switch mod {
		case "mode":
			return fmt.Sprintf("Cursor mode: %s", server.Cursor.Mode), nil
		default:
			x, y := server.CursorPosition()
			return fmt.Sprintf("Cursor: Location (%f:%f)", x, y), nil
		}
	case "mousegrab":
		return fmt.Sprintf("Mousegrab grabbed: %v", server.Mousegrab.Grabbed()), nil
	case "keybind":
		return fmt.Sprintf("Keybind: bound=%v registered=%d", server.Keybind.Bound(), server.Keybind.RegisteredCount()), nil
	default:
		return "Placeholder", nil
	}
}

// replWatch subscribes to the event bus for a fixed window and reports
// how many events of each kind arrived, a synchronous stand-in for a
// live tail that fits the REPL's request/response model.
func replWatch(server *compositor.Server, rawArgs string) (string, error) {
	seconds := 3
	name := fmt.Sprintf("repl-watch-%d", time.Now().UnixNano())
	if rawArgs != "" {
		fmt.Sscanf(rawArgs, "%d", &seconds)
	}

	ch, err := server.Events.Subscribe(name)
	if err != nil {
		return "", nil
	}
	defer server.Events.Unsubscribe(name)

	counts := map[string]int{}
	timeout := time.After(time.Duration(seconds) * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return summarizeWatch(counts), nil
			}
			counts[string(ev.Kind)]++
		case <-timeout:
			return summarizeWatch(counts), nil
		}
	}
}

func summarizeWatch(counts map[string]int) string {
	var b strings.Builder
	fmt.Fprintln(&b, "watch complete:")
	for kind, n := range counts {
		fmt.Fprintf(&b, "\t%s: %d\n", kind, n)
	}
	return b.String()
}

// replDump YAML-serializes the same StateSnapshot the tool-mode
// `-action state` flag prints, for interactive use against a running
// compositor.
func replDump(server *compositor.Server) (string, error) {
	out, err := yaml.Marshal(server.StateSnapshot())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/halcyonwm/halcyon/internal/compositor"
	"github.com/halcyonwm/halcyon/internal/config"
	"github.com/halcyonwm/halcyon/internal/event"
)

func fatal(msg string, err error) {
	fmt.Printf("error %s: %s\n", msg, err)
	os.Exit(1)
}

// compositorMain is the teacher's wlMain, generalized to the
// component-based Server of spec.md §2-§5: wire wlroots' own log
// stream into logrus, bring up the Server and its event bus, start the
// config watcher, and start a REPL if the loaded config asks for one.
func compositorMain(cfg *config.Config) {
	wlroots.OnLog(wlroots.LogImportanceError, func(importance wlroots.LogImportance, msg string) {
		switch importance {
		case wlroots.LogImportanceDebug:
			logrus.Debugln(msg)
		case wlroots.LogImportanceInfo:
			logrus.Infoln(msg)
		case wlroots.LogImportanceError:
			logrus.Errorln(msg)
		case wlroots.LogImportanceSilent:
			return
		}
	})

	events := event.NewBus()
	events.Run()
	defer events.Close()

	server, err := compositor.New(cfg, events)
	if err != nil {
		fatal("initializing server", err)
	}
	if err = server.Start(); err != nil {
		fatal("starting server", err)
	}

	watcher := config.NewWatcher(*configPath, cfg)
	watcher.OnReload(func(cfg *config.Config) { server.ApplyDebug(cfg.Debug) })
	if err := watcher.Watch(); err != nil {
		logrus.WithError(err).Warnln("config hot-reload unavailable")
	} else {
		defer watcher.Stop()
	}

	if cfg.StartType == config.START_REPL {
		go replRunner(server)
	}

	if err = server.Run(); err != nil {
		fatal("running server", err)
	}
}

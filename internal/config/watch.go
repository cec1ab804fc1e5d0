package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// WatchError represents an error encountered by the config file watcher.
type WatchError struct {
	Err   error
	Fatal bool
}

// Watcher reloads the fields of a Config that are safe to change without a
// restart (Debug, Escape) whenever the backing file changes. Structural
// fields (SocketName, EnableXWayland, StartType) are left alone; a change
// to those is logged and otherwise ignored until the next full restart.
type Watcher struct {
	Errors chan WatchError

	path     string
	current  *Config
	stopch   chan bool
	watcher  *fsnotify.Watcher
	onReload func(*Config)
}

// OnReload registers a callback invoked after each successful reload,
// once the hot-reloadable fields have been applied to the live Config.
// The compositor uses this to push Debug into components that copied it
// by value at startup (render.Pipeline, each output's damage tracker).
func (w *Watcher) OnReload(fn func(*Config)) {
	w.onReload = fn
}

// NewWatcher creates a new Watcher for the config file at path. cfg is the
// live config the watcher applies hot-reloadable changes onto in place.
func NewWatcher(path string, cfg *Config) *Watcher {
	return &Watcher{
		Errors:  make(chan WatchError, 8),
		path:    path,
		current: cfg,
		stopch:  make(chan bool, 1),
	}
}

// Watch spawns a goroutine that reloads hot-reloadable fields whenever the
// config file is written.
func (w *Watcher) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher

	if err := w.watcher.Add(w.path); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer w.watcher.Close()
		for {
			select {
			case ev, ok := <-w.watcher.Events:
				if !ok {
					w.Errors <- WatchError{Err: fmt.Errorf("watcher closed"), Fatal: true}
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				w.reload()
			case err, ok := <-w.watcher.Errors:
				w.Errors <- WatchError{Err: err, Fatal: !ok}
				if !ok {
					return
				}
			case <-w.stopch:
				return
			}
		}
	}()

	return nil
}

func (w *Watcher) reload() {
	fresh, err := Load(w.path)
	if err != nil {
		w.Errors <- WatchError{Err: err}
		return
	}

	if fresh.SocketName != w.current.SocketName ||
		fresh.EnableXWayland != w.current.EnableXWayland ||
		fresh.StartType != w.current.StartType {
		logrus.Warnln("config: socket_name, enable_xwayland and start_type changes require a restart, ignoring")
	}

	w.current.Debug = fresh.Debug
	w.current.Escape = fresh.Escape
	logrus.WithFields(logrus.Fields{
		"debug":  w.current.Debug,
		"escape": w.current.Escape,
	}).Infoln("config: reloaded")

	if w.onReload != nil {
		w.onReload(w.current)
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopch <- true
}

// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
)

type StartType int

const (
	// START_REPL tells halcyon to start a repl in parallel for interacting with it.
	START_REPL = StartType(iota)
	// START_SINGLE_COMMAND tells halcyon to execute a specific command on startup.
	START_SINGLE_COMMAND
	// START_NONE tells halcyon to start without any specific targets.
	// Note: Good luck interacting with it :3
	START_NONE
)

// EscapeChord identifies the hard-coded terminator chord (spec.md §4.7).
// Keycode is the XKB keycode (not the raw libinput scancode), Modifiers the
// mask that must be held for the chord to fire.
type EscapeChord struct {
	Keycode   uint32 `toml:"keycode"`
	Modifiers uint32 `toml:"modifiers"`
}

type Config struct {
	StartType StartType `toml:"start_type,omitempty"`
	// StartCommand is what command to execute on start. Only matters if StartType is START_SINGLE_COMMAND.
	StartCommand *string `toml:"start_command,omitempty"`

	// Debug enables debug rendering: yellow clear, damage union = full output each frame.
	Debug bool `toml:"debug,omitempty"`
	// EnableXWayland enables the X11 bridge (spec.md §1 out-of-scope boundary note
	// notwithstanding the bridge itself, which is in scope as a view role).
	EnableXWayland bool `toml:"enable_xwayland,omitempty"`
	// Escape is the hard-coded terminator chord. Defaults to Ctrl+Shift+Escape
	// (spec.md §4.7) if left unset.
	Escape EscapeChord `toml:"escape,omitempty"`
	// SocketName is read from the config and watched for changes, but
	// Server.Start does not use it: the display dispatcher always picks the
	// Wayland socket name automatically.
	SocketName string `toml:"socket_name,omitempty"`
}

// DefaultEscapeChord is Ctrl+Shift+Escape, the hard-coded terminator
// chord from spec.md §4.7. Keycode 9 is XKB's Escape on a us layout plus
// the +8 libinput-to-xkb offset the teacher's handleKey already applies.
func DefaultEscapeChord() EscapeChord {
	const (
		modCtrl  = 1 << 2
		modShift = 1 << 0
	)
	return EscapeChord{Keycode: 9, Modifiers: modCtrl | modShift}
}

func Default() *Config {
	esc := DefaultEscapeChord()
	return &Config{
		StartType: START_REPL,
		Debug:     false,
		Escape:    esc,
	}
}

// DefaultPath resolves the default config path under XDG_CONFIG_HOME,
// grounded in the teacher's existing (indirect) adrg/xdg dependency.
func DefaultPath() string {
	path, err := xdg.ConfigFile(filepath.Join("halcyon", "config.toml"))
	if err != nil {
		return "config.toml"
	}
	return path
}

// Load reads a TOML config file from path. A missing file is not an error;
// it yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

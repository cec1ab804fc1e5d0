// Package ipc defines the wire structs used by halcyon's tool mode and by
// the REPL's dump command to describe live server state to an external
// process. It does not open a socket of its own (spec.md explicitly leaves
// the controller's own IPC wire format out of scope); these structs are
// marshaled by the caller. The REPL dump and tool mode print YAML; the
// JSON tags are there for callers that marshal to JSON, which no command
// in this repository does.
package ipc

import "time"

type (
	// OutputRequest asks for the set of outputs known to the server.
	OutputRequest struct {
		// Whether to include the modes an output supports
		IncludeModes bool `json:"include_modes" yaml:"include_modes"`
		// Target one specific output
		SpecifiesOutput bool `json:"specifies_output" yaml:"specifies_output"`
		// Name of the output you want info on. Only matters if SpecifiesOutput is set
		TargetOutput string `json:"target_output" yaml:"target_output"`
	}

	// OutputMode is a mode an output supports.
	OutputMode struct {
		Height      int `json:"height" yaml:"height"`
		Width       int `json:"width" yaml:"width"`
		RefreshRate int `json:"refresh_rate" yaml:"refresh_rate"` // millihertz
		Preferred   bool `json:"preferred" yaml:"preferred"`
	}

	// OutputResponse answers an OutputRequest.
	OutputResponse struct {
		Outputs      []string              `json:"outputs" yaml:"outputs"`
		OutputModes  map[string][]OutputMode `json:"output_modes,omitempty" yaml:"output_modes,omitempty"`
		OutputsFound int                   `json:"outputs_found" yaml:"outputs_found"`
	}

	// ViewSnapshot describes one view for the state dump.
	ViewSnapshot struct {
		Role     string `json:"role" yaml:"role"`
		Mapped   bool   `json:"mapped" yaml:"mapped"`
		X        int    `json:"x" yaml:"x"`
		Y        int    `json:"y" yaml:"y"`
		Width    int    `json:"width" yaml:"width"`
		Height   int    `json:"height" yaml:"height"`
		Focused  bool   `json:"focused" yaml:"focused"`
		IsPending bool  `json:"is_pending" yaml:"is_pending"`
	}

	// LayerSnapshot describes one layer surface for the state dump.
	LayerSnapshot struct {
		Output              string `json:"output" yaml:"output"`
		Layer               string `json:"layer" yaml:"layer"`
		Namespace           string `json:"namespace" yaml:"namespace"`
		X                   int    `json:"x" yaml:"x"`
		Y                   int    `json:"y" yaml:"y"`
		Width               int    `json:"width" yaml:"width"`
		Height              int    `json:"height" yaml:"height"`
		ExclusiveZone       int    `json:"exclusive_zone" yaml:"exclusive_zone"`
		KeyboardInteractive bool   `json:"keyboard_interactive" yaml:"keyboard_interactive"`
	}

	// StateSnapshot is the full dump produced by the REPL `dump` command and
	// the `-action state` tool-mode action.
	StateSnapshot struct {
		GeneratedAt    time.Time       `json:"generated_at" yaml:"generated_at"`
		CursorMode     string          `json:"cursor_mode" yaml:"cursor_mode"`
		CursorX        float64         `json:"cursor_x" yaml:"cursor_x"`
		CursorY        float64         `json:"cursor_y" yaml:"cursor_y"`
		MousegrabOwner string          `json:"mousegrab_owner,omitempty" yaml:"mousegrab_owner,omitempty"`
		Outputs        []string        `json:"outputs" yaml:"outputs"`
		Views          []ViewSnapshot  `json:"views" yaml:"views"`
		Layers         []LayerSnapshot `json:"layers" yaml:"layers"`
		RegisteredKeys int             `json:"registered_keys" yaml:"registered_keys"`
	}
)

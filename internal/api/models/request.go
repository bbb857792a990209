package models

import "energy-sizing/internal/config"

// SimulateRequest represents the request body for a microgrid simulation.
// Fields omitted from Microgrid keep the value of the preset (if any) or the
// built-in default.
type SimulateRequest struct {
	Preset    string                 `json:"preset,omitempty"` // preset id from GET /presets
	Microgrid config.MicrogridConfig `json:"microgrid"`
	Options   SimulateOptions        `json:"options,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	IncludeHourly bool `json:"include_hourly,omitempty"` // default: false
}

// CompareRequest represents a request to compare microgrid designs
type CompareRequest struct {
	Preset     string                 `json:"preset,omitempty"`
	Base       config.MicrogridConfig `json:"base"`
	Variations []Variation            `json:"variations" binding:"required,min=1,dive"`
}

// Variation overlays its non-zero fields on the base design
type Variation struct {
	Name      string                 `json:"name" binding:"required"`
	Microgrid config.MicrogridConfig `json:"microgrid"`
}

// PresetProbe reads just the preset id before the full body is decoded.
type PresetProbe struct {
	Preset string `json:"preset,omitempty"`
}

package config

import "github.com/1broseidon/floatwin/internal/placement"

// Size preset names accepted by Registry.Open.
const (
	PresetSmall      = "small"
	PresetMedium     = "medium"
	PresetLarge      = "large"
	PresetExtraLarge = "extra-large"
	PresetFull       = "full"
)

// BuiltinPresets returns the built-in window size presets.
//
// "full" is not listed: it is computed from the viewport at open time.
func BuiltinPresets() map[string]placement.Size {
	return map[string]placement.Size{
		PresetSmall:      {Width: 400, Height: 300},
		PresetMedium:     {Width: 600, Height: 400},
		PresetLarge:      {Width: 800, Height: 600},
		PresetExtraLarge: {Width: 1200, Height: 800},
	}
}

// DefaultHotkeys maps command ids to their default key chords.
func DefaultHotkeys() map[string]string {
	return map[string]string{
		"palette":      "ctrl+k",
		"open-new":     "ctrl+n",
		"organize":     "ctrl+o",
		"minimize-all": "ctrl+shift+m",
		"restore-all":  "ctrl+shift+r",
		"close-all":    "ctrl+shift+w",
		"close":        "ctrl+w",
		"maximize":     "ctrl+up",
		"minimize":     "ctrl+down",
		"focus-next":   "alt+]",
		"focus-prev":   "alt+[",
		"focus-left":   "alt+left",
		"focus-right":  "alt+right",
		"focus-up":     "alt+up",
		"focus-down":   "alt+down",
		"reload":       "ctrl+r",
	}
}

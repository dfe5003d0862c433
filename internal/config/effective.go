package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig overlays raw onto the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	raw.Viewport.applyTo(&cfg.Viewport)
	if raw.Margin != nil {
		cfg.Margin = *raw.Margin
	}
	if raw.GridStep != nil {
		cfg.GridStep = *raw.GridStep
	}
	if raw.MaxPlacementAttempts != nil {
		cfg.MaxPlacementAttempts = *raw.MaxPlacementAttempts
	}
	if raw.CascadeOffset != nil {
		cfg.CascadeOffset = *raw.CascadeOffset
	}
	raw.DefaultSize.applyTo(&cfg.DefaultSize)
	for name, size := range raw.Presets {
		key := strings.ToLower(strings.TrimSpace(name))
		base := cfg.Presets[key]
		size.applyTo(&base)
		cfg.Presets[key] = base
	}
	if raw.FullPresetPercent != nil {
		cfg.FullPresetPercent = *raw.FullPresetPercent
	}
	if raw.MaximizeMargin != nil {
		cfg.MaximizeMargin = *raw.MaximizeMargin
	}
	raw.MinWindowSize.applyTo(&cfg.MinWindowSize)
	if raw.TaskDefaultDue != nil {
		cfg.TaskDefaultDue = *raw.TaskDefaultDue
	}
	if raw.TaskDefaultPriority != nil {
		cfg.TaskDefaultPriority = strings.ToLower(strings.TrimSpace(*raw.TaskDefaultPriority))
	}
	if g := raw.Gestures; g != nil {
		if g.SwipeDistance != nil {
			cfg.Gestures.SwipeDistance = *g.SwipeDistance
		}
		if g.SwipeMaxDuration != nil {
			cfg.Gestures.SwipeMaxDuration = *g.SwipeMaxDuration
		}
		if g.DoubleTapDelay != nil {
			cfg.Gestures.DoubleTapDelay = *g.DoubleTapDelay
		}
		if g.LongPressDelay != nil {
			cfg.Gestures.LongPressDelay = *g.LongPressDelay
		}
		if g.TapSlop != nil {
			cfg.Gestures.TapSlop = *g.TapSlop
		}
		if g.LongPressSlop != nil {
			cfg.Gestures.LongPressSlop = *g.LongPressSlop
		}
		if g.PinchThreshold != nil {
			cfg.Gestures.PinchThreshold = *g.PinchThreshold
		}
	}
	// Hotkeys merge per action so a file can rebind one key without
	// restating the rest.
	for action, chord := range raw.Hotkeys {
		cfg.Hotkeys[strings.TrimSpace(action)] = strings.TrimSpace(chord)
	}
	if raw.PaletteFuzzyMatching != nil {
		cfg.PaletteFuzzyMatching = *raw.PaletteFuzzyMatching
	}
	if raw.Device != nil {
		cfg.Device = DeviceMode(strings.ToLower(strings.TrimSpace(string(*raw.Device))))
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}

	if cfg.Device == "" {
		cfg.Device = DeviceAuto
	}
	return cfg, nil
}

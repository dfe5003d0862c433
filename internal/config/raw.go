package config

import (
	"time"

	"github.com/1broseidon/floatwin/internal/placement"
)

// RawSize is a size where each dimension may be left unset.
type RawSize struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawGestureConfig struct {
	SwipeDistance    *int           `yaml:"swipe_distance"`
	SwipeMaxDuration *time.Duration `yaml:"swipe_max_duration"`
	DoubleTapDelay   *time.Duration `yaml:"double_tap_delay"`
	LongPressDelay   *time.Duration `yaml:"long_press_delay"`
	TapSlop          *int           `yaml:"tap_slop"`
	LongPressSlop    *int           `yaml:"long_press_slop"`
	PinchThreshold   *float64       `yaml:"pinch_threshold"`
}

// RawConfig mirrors Config with every field optional, so a file only needs
// to name the keys it overrides.
type RawConfig struct {
	Viewport             *RawSize           `yaml:"viewport"`
	Margin               *int               `yaml:"margin"`
	GridStep             *int               `yaml:"grid_step"`
	MaxPlacementAttempts *int               `yaml:"max_placement_attempts"`
	CascadeOffset        *int               `yaml:"cascade_offset"`
	DefaultSize          *RawSize           `yaml:"default_size"`
	Presets              map[string]RawSize `yaml:"presets"`
	FullPresetPercent    *int               `yaml:"full_preset_percent"`
	MaximizeMargin       *int               `yaml:"maximize_margin"`
	MinWindowSize        *RawSize           `yaml:"min_window_size"`
	TaskDefaultDue       *time.Duration     `yaml:"task_default_due"`
	TaskDefaultPriority  *string            `yaml:"task_default_priority"`
	Gestures             *RawGestureConfig  `yaml:"gestures"`
	Hotkeys              map[string]string  `yaml:"hotkeys"`
	PaletteFuzzyMatching *bool              `yaml:"palette_fuzzy_matching"`
	Device               *DeviceMode        `yaml:"device"`
	LogLevel             *string            `yaml:"log_level"`
	LogFile              *string            `yaml:"log_file"`
}

func (s *RawSize) applyTo(dst *placement.Size) {
	if s == nil {
		return
	}
	if s.Width != nil {
		dst.Width = *s.Width
	}
	if s.Height != nil {
		dst.Height = *s.Height
	}
}

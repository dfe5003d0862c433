package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/floatwin/internal/hotkeys"
	"github.com/1broseidon/floatwin/internal/placement"
)

// DeviceMode selects how the engine presents windows.
type DeviceMode string

const (
	DeviceAuto    DeviceMode = "auto"
	DeviceDesktop DeviceMode = "desktop"
	DeviceTablet  DeviceMode = "tablet"
	DeviceMobile  DeviceMode = "mobile"
)

// GestureConfig holds the thresholds used by the gesture classifier.
type GestureConfig struct {
	SwipeDistance    int           `yaml:"swipe_distance"`     // px along the dominant axis
	SwipeMaxDuration time.Duration `yaml:"swipe_max_duration"` // 0 = unbounded
	DoubleTapDelay   time.Duration `yaml:"double_tap_delay"`
	LongPressDelay   time.Duration `yaml:"long_press_delay"`
	TapSlop          int           `yaml:"tap_slop"`        // max movement for a tap
	LongPressSlop    int           `yaml:"long_press_slop"` // max movement while holding
	PinchThreshold   float64       `yaml:"pinch_threshold"` // |scale-1| needed to report a pinch
}

// Config holds the application configuration.
type Config struct {
	Viewport             placement.Size            `yaml:"viewport"`
	Margin               int                       `yaml:"margin"`
	GridStep             int                       `yaml:"grid_step"`
	MaxPlacementAttempts int                       `yaml:"max_placement_attempts"`
	CascadeOffset        int                       `yaml:"cascade_offset"`
	DefaultSize          placement.Size            `yaml:"default_size"`
	Presets              map[string]placement.Size `yaml:"presets"`
	FullPresetPercent    int                       `yaml:"full_preset_percent"`
	MaximizeMargin       int                       `yaml:"maximize_margin"`
	MinWindowSize        placement.Size            `yaml:"min_window_size"`
	TaskDefaultDue       time.Duration             `yaml:"task_default_due"`
	TaskDefaultPriority  string                    `yaml:"task_default_priority"`
	Gestures             GestureConfig             `yaml:"gestures"`
	Hotkeys              map[string]string         `yaml:"hotkeys"` // action id -> chord
	PaletteFuzzyMatching bool                      `yaml:"palette_fuzzy_matching"`
	Device               DeviceMode                `yaml:"device"`
	LogLevel             string                    `yaml:"log_level"`
	LogFile              string                    `yaml:"log_file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport:             placement.DefaultViewport,
		Margin:               20,
		GridStep:             50,
		MaxPlacementAttempts: 100,
		CascadeOffset:        30,
		DefaultSize:          placement.Size{Width: 500, Height: 500},
		Presets:              BuiltinPresets(),
		FullPresetPercent:    95,
		MaximizeMargin:       20,
		MinWindowSize:        placement.Size{Width: 300, Height: 200},
		TaskDefaultDue:       24 * time.Hour,
		TaskDefaultPriority:  "medium",
		Gestures: GestureConfig{
			SwipeDistance:  50,
			DoubleTapDelay: 300 * time.Millisecond,
			LongPressDelay: 500 * time.Millisecond,
			TapSlop:        10,
			LongPressSlop:  5,
			PinchThreshold: 0.1,
		},
		Hotkeys:              DefaultHotkeys(),
		PaletteFuzzyMatching: false,
		Device:               DeviceAuto,
		LogLevel:             "info",
	}
}

// PlacementOptions returns the solver options derived from the config.
func (c *Config) PlacementOptions() placement.Options {
	if c == nil {
		return placement.DefaultOptions()
	}
	return placement.Options{
		Margin:        c.Margin,
		GridStep:      c.GridStep,
		MaxAttempts:   c.MaxPlacementAttempts,
		CascadeOffset: c.CascadeOffset,
	}
}

// PresetSize resolves a named size preset against the viewport. The "full"
// preset is derived from the viewport; unknown names report false.
func (c *Config) PresetSize(name string, viewport placement.Size) (placement.Size, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return placement.Size{}, false
	}
	if name == PresetFull {
		viewport = placement.ViewportOrDefault(viewport)
		pct := c.FullPresetPercent
		if pct <= 0 || pct > 100 {
			pct = 95
		}
		return placement.Size{
			Width:  viewport.Width * pct / 100,
			Height: viewport.Height * pct / 100,
		}, true
	}
	size, ok := c.Presets[name]
	return size, ok
}

// PresetNames returns preset names in ascending area order, followed by "full".
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets)+1)
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ai := c.Presets[names[i]].Width * c.Presets[names[i]].Height
		aj := c.Presets[names[j]].Width * c.Presets[names[j]].Height
		if ai != aj {
			return ai < aj
		}
		return names[i] < names[j]
	})
	return append(names, PresetFull)
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments from
// the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return &ValidationError{Path: "viewport", Err: fmt.Errorf("viewport dimensions must be >= 0")}
	}
	if c.Margin < 0 {
		return &ValidationError{Path: "margin", Err: fmt.Errorf("margin must be >= 0")}
	}
	if c.GridStep <= 0 {
		return &ValidationError{Path: "grid_step", Err: fmt.Errorf("grid_step must be > 0")}
	}
	if c.MaxPlacementAttempts <= 0 {
		return &ValidationError{Path: "max_placement_attempts", Err: fmt.Errorf("max_placement_attempts must be > 0")}
	}
	if c.CascadeOffset <= 0 {
		return &ValidationError{Path: "cascade_offset", Err: fmt.Errorf("cascade_offset must be > 0")}
	}
	if c.DefaultSize.IsZero() {
		return &ValidationError{Path: "default_size", Err: fmt.Errorf("default_size width and height must be > 0")}
	}
	for name, size := range c.Presets {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "presets", Err: fmt.Errorf("presets contains an empty name")}
		}
		if name == PresetFull {
			return &ValidationError{Path: "presets." + name, Err: fmt.Errorf("%q is derived from the viewport and cannot be overridden", PresetFull)}
		}
		if size.IsZero() {
			return &ValidationError{Path: "presets." + name, Err: fmt.Errorf("preset width and height must be > 0")}
		}
	}
	if c.FullPresetPercent < 10 || c.FullPresetPercent > 100 {
		return &ValidationError{Path: "full_preset_percent", Err: fmt.Errorf("full_preset_percent must be between 10 and 100")}
	}
	if c.MaximizeMargin < 0 {
		return &ValidationError{Path: "maximize_margin", Err: fmt.Errorf("maximize_margin must be >= 0")}
	}
	if c.MinWindowSize.IsZero() {
		return &ValidationError{Path: "min_window_size", Err: fmt.Errorf("min_window_size width and height must be > 0")}
	}
	if c.TaskDefaultDue <= 0 {
		return &ValidationError{Path: "task_default_due", Err: fmt.Errorf("task_default_due must be positive")}
	}
	switch c.TaskDefaultPriority {
	case "low", "medium", "high", "urgent":
	default:
		return &ValidationError{Path: "task_default_priority", Err: fmt.Errorf("task_default_priority must be one of: low, medium, high, urgent")}
	}
	if err := validateGestures(c.Gestures); err != nil {
		return err
	}
	for action, chord := range c.Hotkeys {
		if strings.TrimSpace(action) == "" {
			return &ValidationError{Path: "hotkeys", Err: fmt.Errorf("hotkeys contains an empty action name")}
		}
		if strings.TrimSpace(chord) == "" {
			// An empty chord disables the binding.
			continue
		}
		if _, err := hotkeys.ParseChord(chord); err != nil {
			return &ValidationError{Path: "hotkeys." + action, Err: err}
		}
	}
	switch c.Device {
	case DeviceAuto, DeviceDesktop, DeviceTablet, DeviceMobile:
	default:
		return &ValidationError{Path: "device", Err: fmt.Errorf("device must be one of: auto, desktop, tablet, mobile")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

func validateGestures(g GestureConfig) error {
	if g.SwipeDistance <= 0 {
		return &ValidationError{Path: "gestures.swipe_distance", Err: fmt.Errorf("swipe_distance must be > 0")}
	}
	if g.SwipeMaxDuration < 0 {
		return &ValidationError{Path: "gestures.swipe_max_duration", Err: fmt.Errorf("swipe_max_duration must be >= 0")}
	}
	if g.DoubleTapDelay <= 0 {
		return &ValidationError{Path: "gestures.double_tap_delay", Err: fmt.Errorf("double_tap_delay must be positive")}
	}
	if g.LongPressDelay <= 0 {
		return &ValidationError{Path: "gestures.long_press_delay", Err: fmt.Errorf("long_press_delay must be positive")}
	}
	if g.TapSlop < 0 || g.LongPressSlop < 0 {
		return &ValidationError{Path: "gestures", Err: fmt.Errorf("tap_slop and long_press_slop must be >= 0")}
	}
	if g.PinchThreshold <= 0 || g.PinchThreshold >= 1 {
		return &ValidationError{Path: "gestures.pinch_threshold", Err: fmt.Errorf("pinch_threshold must be between 0 and 1 (exclusive)")}
	}
	return nil
}

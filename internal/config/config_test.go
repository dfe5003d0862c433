package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/floatwin/internal/placement"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.DefaultSize != (placement.Size{Width: 500, Height: 500}) {
		t.Fatalf("expected default size 500x500, got %+v", cfg.DefaultSize)
	}
	if cfg.MinWindowSize != (placement.Size{Width: 300, Height: 200}) {
		t.Fatalf("expected min size 300x200, got %+v", cfg.MinWindowSize)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.Margin != 20 {
		t.Fatalf("expected margin 20, got %d", res.Config.Margin)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.GridStep != 50 {
		t.Fatalf("expected grid_step 50, got %d", res.Config.GridStep)
	}
}

func TestLoadFromPath_OverridesMerge(t *testing.T) {
	data := strings.Join([]string{
		"margin: 10",
		"viewport:",
		"  width: 1280",
		"default_size:",
		"  height: 420",
		"presets:",
		"  small:",
		"    width: 320",
		"  tiny:",
		"    width: 200",
		"    height: 150",
		"task_default_due: 2h",
		"gestures:",
		"  double_tap_delay: 250ms",
		"hotkeys:",
		"  palette: ctrl+p",
		"palette_fuzzy_matching: true",
		"device: Mobile",
		"",
	}, "\n")

	res, err := LoadFromPath(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Margin != 10 {
		t.Errorf("margin = %d, want 10", cfg.Margin)
	}
	if cfg.Viewport != (placement.Size{Width: 1280, Height: 1080}) {
		t.Errorf("viewport = %+v, want 1280x1080", cfg.Viewport)
	}
	if cfg.DefaultSize != (placement.Size{Width: 500, Height: 420}) {
		t.Errorf("default_size = %+v, want 500x420", cfg.DefaultSize)
	}
	if cfg.Presets["small"] != (placement.Size{Width: 320, Height: 300}) {
		t.Errorf("small preset = %+v, want 320x300", cfg.Presets["small"])
	}
	if cfg.Presets["tiny"] != (placement.Size{Width: 200, Height: 150}) {
		t.Errorf("tiny preset = %+v", cfg.Presets["tiny"])
	}
	if cfg.TaskDefaultDue != 2*time.Hour {
		t.Errorf("task_default_due = %v, want 2h", cfg.TaskDefaultDue)
	}
	if cfg.Gestures.DoubleTapDelay != 250*time.Millisecond {
		t.Errorf("double_tap_delay = %v", cfg.Gestures.DoubleTapDelay)
	}
	if cfg.Gestures.SwipeDistance != 50 {
		t.Errorf("swipe_distance should keep default, got %d", cfg.Gestures.SwipeDistance)
	}
	if cfg.Hotkeys["palette"] != "ctrl+p" {
		t.Errorf("palette hotkey = %q", cfg.Hotkeys["palette"])
	}
	if cfg.Hotkeys["organize"] == "" {
		t.Errorf("organize hotkey should keep its default")
	}
	if !cfg.PaletteFuzzyMatching {
		t.Errorf("expected palette_fuzzy_matching to be true")
	}
	if cfg.Device != DeviceMobile {
		t.Errorf("device = %q, want mobile", cfg.Device)
	}
	if len(res.SourcePaths()) == 0 {
		t.Errorf("expected recorded sources")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "unknown_key: 123\n"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown key in error, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := writeConfig(t, "margin: 5\ngrid_step: 0\n")
	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "grid_step" {
		t.Fatalf("expected path grid_step, got %q", verr.Path)
	}
	if verr.Source.File != path || verr.Source.Line != 2 {
		t.Fatalf("expected %s:2, got %+v", path, verr.Source)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative margin", func(c *Config) { c.Margin = -1 }, "margin"},
		{"zero default size", func(c *Config) { c.DefaultSize = placement.Size{} }, "default_size"},
		{"full preset override", func(c *Config) { c.Presets["full"] = placement.Size{Width: 1, Height: 1} }, "presets.full"},
		{"bad priority", func(c *Config) { c.TaskDefaultPriority = "someday" }, "task_default_priority"},
		{"bad pinch", func(c *Config) { c.Gestures.PinchThreshold = 1.5 }, "gestures.pinch_threshold"},
		{"bad chord", func(c *Config) { c.Hotkeys["palette"] = "ctrl+" }, "hotkeys.palette"},
		{"bad device", func(c *Config) { c.Device = "watch" }, "device"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestValidate_EmptyChordDisablesBinding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hotkeys["reload"] = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected empty chord to be allowed, got %v", err)
	}
}

func TestPresetSize(t *testing.T) {
	cfg := DefaultConfig()
	viewport := placement.Size{Width: 1920, Height: 1080}

	tests := []struct {
		name string
		want placement.Size
		ok   bool
	}{
		{"small", placement.Size{Width: 400, Height: 300}, true},
		{"Medium", placement.Size{Width: 600, Height: 400}, true},
		{"extra-large", placement.Size{Width: 1200, Height: 800}, true},
		{"full", placement.Size{Width: 1824, Height: 1026}, true},
		{"giant", placement.Size{}, false},
		{"", placement.Size{}, false},
	}
	for _, tt := range tests {
		got, ok := cfg.PresetSize(tt.name, viewport)
		if ok != tt.ok || got != tt.want {
			t.Errorf("PresetSize(%q) = %+v,%v want %+v,%v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPresetNames_OrderedByArea(t *testing.T) {
	got := DefaultConfig().PresetNames()
	want := []string{"small", "medium", "large", "extra-large", "full"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSaveTo_RoundTripsThroughLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.CascadeOffset = 42
	cfg.TaskDefaultDue = 90 * time.Minute

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.CascadeOffset != 42 || res.Config.TaskDefaultDue != 90*time.Minute {
		t.Fatalf("unexpected reloaded config: %+v", res.Config)
	}
}

func TestDefaultConfigPath_HonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != "/tmp/xdg/floatwin/config.yaml" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestSourceMapLookup(t *testing.T) {
	path := writeConfig(t, "gestures:\n  tap_slop: 4\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	src := res.Sources.Lookup("gestures.tap_slop")
	if src.Kind != SourceFile || src.Line != 2 || src.File != path {
		t.Fatalf("unexpected source %+v", src)
	}
	if got := res.Sources.Lookup("margin").Kind; got != SourceDefault {
		t.Fatalf("unset key should come from defaults, got %q", got)
	}
	if res.Config.Gestures.TapSlop != 4 {
		t.Fatalf("tap_slop = %d, want 4", res.Config.Gestures.TapSlop)
	}
}

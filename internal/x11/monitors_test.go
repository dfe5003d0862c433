package x11

import (
	"testing"

	"github.com/1broseidon/floatwin/internal/placement"
)

func TestLargest(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, Name: "eDP-1", Width: 1920, Height: 1080},
		{ID: 1, Name: "DP-1", X: 1920, Width: 2560, Height: 1440},
	}
	m, ok := Largest(monitors)
	if !ok || m.Name != "DP-1" {
		t.Fatalf("expected DP-1, got %+v (ok=%v)", m, ok)
	}
	if _, ok := Largest(nil); ok {
		t.Fatalf("expected no monitor for empty list")
	}
}

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, Width: 1920, Height: 1080},
		{ID: 1, X: 1920, Width: 2560, Height: 1440},
	}
	m, ok := MonitorAt(monitors, placement.Point{X: 2000, Y: 100})
	if !ok || m.ID != 1 {
		t.Fatalf("expected monitor 1, got %+v", m)
	}
	if _, ok := MonitorAt(monitors, placement.Point{X: 100, Y: 1300}); ok {
		t.Fatalf("point below the first monitor should not match")
	}
}

func TestClipToWorkArea(t *testing.T) {
	m := Monitor{Width: 1920, Height: 1080}

	got := clipToWorkArea(m, placement.Rect{X: 0, Y: 32, Width: 1920, Height: 1048})
	if got.Y != 32 || got.Height != 1048 || got.Width != 1920 {
		t.Fatalf("expected top panel to be excluded, got %+v", got)
	}

	other := clipToWorkArea(m, placement.Rect{X: 3000, Y: 0, Width: 100, Height: 100})
	if other != m {
		t.Fatalf("disjoint work area should leave the monitor alone, got %+v", other)
	}
}

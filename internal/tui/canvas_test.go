package tui

import (
	"strings"
	"testing"

	"github.com/1broseidon/floatwin/internal/interaction"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/registry"
)

func TestToCells(t *testing.T) {
	got := toCells(placement.Rect{X: 20, Y: 20, Width: 500, Height: 500})
	want := cellRect{x: 2, y: 1, w: 63, h: 32}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	tiny := toCells(placement.Rect{Width: 1, Height: 1})
	if tiny.w != 3 || tiny.h != 3 {
		t.Fatalf("expected 3x3 minimum, got %+v", tiny)
	}
}

func TestDrawWindow(t *testing.T) {
	c := newCanvas(12, 5)
	w := registry.Window{ID: "w", Title: "A", Content: "hi"}
	c.drawWindow(w, placement.Rect{X: 8, Y: 0, Width: 80, Height: 64}, false)

	want := []string{
		" ┌─ A ────┐ ",
		" │ hi     │ ",
		" │        │ ",
		" └────────┘ ",
		"            ",
	}
	got := c.lines()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d:\nwant %q\ngot  %q\nfull:\n%s", i, want[i], got[i], c)
		}
	}
}

func TestDrawWindowActiveUsesDoubleBorder(t *testing.T) {
	c := newCanvas(10, 3)
	c.drawWindow(registry.Window{Title: "B"}, placement.Rect{Width: 80, Height: 48}, true)
	if got := c.lines()[0]; got != "╔═ B ════╗" {
		t.Fatalf("unexpected title row %q", got)
	}
}

func TestDrawWindowButtonsAndOcclusion(t *testing.T) {
	c := newCanvas(30, 6)
	below := registry.Window{ID: "below", Title: "Below"}
	above := registry.Window{ID: "above", Title: "Above"}
	c.drawWindow(below, placement.Rect{Width: 160, Height: 96}, false)
	c.drawWindow(above, placement.Rect{X: 40, Y: 32, Width: 160, Height: 64}, true)

	lines := c.lines()
	if !strings.Contains(lines[0], buttonBar) {
		t.Fatalf("expected title buttons on a wide window, got %q", lines[0])
	}
	if !strings.Contains(lines[2], "Above") {
		t.Fatalf("expected the top window title on row 2, got %q", lines[2])
	}
	// Only the lower window's left border survives; its right border is
	// covered by the upper window.
	if n := strings.Count(lines[3], "│"); n != 1 {
		t.Fatalf("expected one visible border of the lower window, got %d in %q", n, lines[3])
	}
}

func TestWindowBodyTask(t *testing.T) {
	w := registry.Window{
		Kind: "note",
		Task: &registry.TaskInfo{Status: registry.TaskPending, Priority: "high", Assignee: "sam"},
	}
	lines := windowBody(w)
	if len(lines) != 2 || lines[0] != "kind: note" || lines[1] != "task: pending · high · @sam" {
		t.Fatalf("unexpected body %q", lines)
	}
}

func TestHitTest(t *testing.T) {
	frames := []frame{
		{window: registry.Window{ID: "a"}, rect: placement.Rect{Width: 160, Height: 160}},
		{window: registry.Window{ID: "b"}, rect: placement.Rect{X: 80, Y: 80, Width: 160, Height: 160}},
	}
	// a: cells (0,0) 20x10; b: cells (10,5) 20x10

	tests := []struct {
		name   string
		x, y   int
		id     string
		region interaction.Region
		edge   interaction.Edge
		button string
	}{
		{"title of a", 3, 0, "a", interaction.RegionTitleBar, interaction.EdgeNone, ""},
		{"overlap picks top", 12, 7, "b", interaction.RegionBody, interaction.EdgeNone, ""},
		{"b title", 12, 5, "b", interaction.RegionTitleBar, interaction.EdgeNone, ""},
		{"b bottom right", 29, 14, "b", interaction.RegionResizeHandle, interaction.EdgeSouthEast, ""},
		{"b left edge", 10, 9, "b", interaction.RegionResizeHandle, interaction.EdgeWest, ""},
		{"b bottom", 20, 14, "b", interaction.RegionResizeHandle, interaction.EdgeSouth, ""},
		{"a close", 17, 0, "a", interaction.RegionBody, interaction.EdgeNone, buttonClose},
		{"a minimize", 10, 0, "a", interaction.RegionBody, interaction.EdgeNone, buttonMinimize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := hitTest(frames, tt.x, tt.y)
			if !ok {
				t.Fatalf("expected a hit")
			}
			if h.target.WindowID != tt.id || h.button != tt.button {
				t.Fatalf("expected %s/%q, got %s/%q", tt.id, tt.button, h.target.WindowID, h.button)
			}
			if tt.button != "" {
				if !h.target.Interactive {
					t.Fatalf("buttons must be interactive targets")
				}
				return
			}
			if h.target.Region != tt.region || h.target.Edge != tt.edge {
				t.Fatalf("expected region %v edge %s, got %v %s", tt.region, tt.edge, h.target.Region, h.target.Edge)
			}
		})
	}

	if _, ok := hitTest(frames, 35, 2); ok {
		t.Fatalf("expected a miss on the background")
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/devicemode"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/registry"
)

func newTestModel(t *testing.T, device string) (*Model, *registry.Registry) {
	t.Helper()
	n := 0
	reg := registry.New(config.DefaultConfig(), registry.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))
	m := New(reg, Options{Device: device})
	t.Cleanup(m.adapter.Unmount)
	return m, reg
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestResizeSetsViewportAndClass(t *testing.T) {
	m, reg := newTestModel(t, "")

	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	assert.Equal(t, reg.Viewport(), placement.Size{Width: 1920, Height: 960})
	assert.Equal(t, m.adapter.Class(), devicemode.Desktop)

	send(m, tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.Equal(t, m.adapter.Class(), devicemode.Mobile)
}

func TestMouseDragMovesWindow(t *testing.T) {
	m, reg := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	id := reg.Open(registry.OpenSpec{Title: "A"})

	cmd := send(m, mouse(tea.MouseActionPress, 10, 1))
	assert.Assert(t, cmd != nil, "drag start should switch mouse tracking")
	send(m,
		mouse(tea.MouseActionMotion, 30, 10),
		mouse(tea.MouseActionRelease, 30, 10),
	)

	w, ok := reg.Window(id)
	assert.Assert(t, ok)
	assert.Equal(t, w.Position, placement.Point{X: 180, Y: 164})
	assert.Assert(t, !m.listeners.attached)
}

func TestTitleButtons(t *testing.T) {
	m, reg := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	id := reg.Open(registry.OpenSpec{Title: "A"})

	// 500px wide at x=20: cells 2..64, buttons start at column 55.
	send(m, mouse(tea.MouseActionPress, 59, 1), mouse(tea.MouseActionRelease, 59, 1))
	w, _ := reg.Window(id)
	assert.Assert(t, w.IsMaximized)
	// Maximized to 1880px: cells 2..236, maximize button at 230..232.
	send(m, mouse(tea.MouseActionPress, 231, 1), mouse(tea.MouseActionRelease, 231, 1))

	w, _ = reg.Window(id)
	assert.Assert(t, !w.IsMaximized)
	send(m, mouse(tea.MouseActionPress, 62, 1), mouse(tea.MouseActionRelease, 62, 1))
	assert.Equal(t, reg.Len(), 0)
}

func TestHotkeyOrganize(t *testing.T) {
	m, reg := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	a := reg.Open(registry.OpenSpec{Title: "A", Position: &placement.Point{X: 700, Y: 300}})
	b := reg.Open(registry.OpenSpec{Title: "B", Position: &placement.Point{X: 90, Y: 400}})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlO})

	wa, _ := reg.Window(a)
	wb, _ := reg.Window(b)
	assert.Equal(t, wa.Position, placement.Point{X: 20, Y: 20})
	assert.Equal(t, wb.Position, placement.Point{X: 540, Y: 20})
}

func TestPaletteCloseAllAsksFirst(t *testing.T) {
	m, reg := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	reg.Open(registry.OpenSpec{Title: "A"})
	reg.Open(registry.OpenSpec{Title: "B"})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Assert(t, m.palette.IsOpen())
	for _, r := range "close" {
		send(m, runes(string(r)))
	}
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Assert(t, m.confirm != nil)
	assert.Assert(t, strings.Contains(m.View(), "Close all windows?"))

	send(m, runes("n"))
	assert.Equal(t, reg.Len(), 2)
	assert.Equal(t, m.message, "cancelled")

	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	send(m, runes("y"))
	assert.Equal(t, reg.Len(), 0)
	assert.Assert(t, !m.palette.IsOpen())
}

func TestPaletteToggleChord(t *testing.T) {
	m, _ := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Assert(t, m.palette.IsOpen())
	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Assert(t, !m.palette.IsOpen())
}

func TestCarouselKeys(t *testing.T) {
	m, reg := newTestModel(t, "mobile")
	send(m, tea.WindowSizeMsg{Width: 60, Height: 30})
	reg.Open(registry.OpenSpec{Title: "First"})
	reg.Open(registry.OpenSpec{Title: "Second"})

	assert.Assert(t, strings.Contains(m.View(), "First"))
	send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, m.adapter.Index(), 1)
	assert.Assert(t, strings.Contains(m.View(), "Second"))

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, reg.Len(), 1)
}

func TestOpenFormStarts(t *testing.T) {
	m, _ := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Assert(t, m.form != nil)
	assert.Assert(t, strings.Contains(m.View(), "Title"))
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})

	cmd := send(m, runes("q"))
	assert.Assert(t, cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	assert.Assert(t, ok)
}

func TestReloadRebindsHotkeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("hotkeys:\n  organize: ctrl+g\n"), 0644))

	n := 0
	reg := registry.New(config.DefaultConfig(), registry.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))
	m := New(reg, Options{Device: "desktop", ConfigPath: path})
	defer m.adapter.Unmount()
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	id := reg.Open(registry.OpenSpec{Title: "A", Position: &placement.Point{X: 700, Y: 300}})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, m.message, "configuration reloaded")

	send(m, tea.KeyMsg{Type: tea.KeyCtrlG})
	w, _ := reg.Window(id)
	assert.Equal(t, w.Position, placement.Point{X: 20, Y: 20})
}

func TestShortcutsWorkWithPaletteOpen(t *testing.T) {
	m, reg := newTestModel(t, "desktop")
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	id := reg.Open(registry.OpenSpec{Title: "A", Position: &placement.Point{X: 700, Y: 300}})

	send(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Assert(t, m.palette.IsOpen())
	send(m, tea.KeyMsg{Type: tea.KeyCtrlO})

	w, _ := reg.Window(id)
	assert.Equal(t, w.Position, placement.Point{X: 20, Y: 20})
	assert.Assert(t, m.palette.IsOpen())

	send(m, runes("o"))
	assert.Equal(t, m.palette.Query(), "o")
}

func TestReloadAppliesMinWindowSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("min_window_size:\n  width: 100\n  height: 100\n"), 0644))

	reg := registry.New(config.DefaultConfig())
	m := New(reg, Options{Device: "desktop", ConfigPath: path})
	defer m.adapter.Unmount()
	send(m, tea.WindowSizeMsg{Width: 240, Height: 61})
	id := reg.Open(registry.OpenSpec{Title: "A"})

	// 500px wide at x=20: the east border is column 64.
	drag := func() {
		send(m,
			mouse(tea.MouseActionPress, 64, 10),
			mouse(tea.MouseActionMotion, 20, 10),
			mouse(tea.MouseActionRelease, 20, 10),
		)
	}
	drag()
	w, _ := reg.Window(id)
	assert.Equal(t, w.Dimensions.Width, 300)

	reg.Update(id, registry.Patch{Dimensions: &placement.Size{Width: 500, Height: 500}})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, m.message, "configuration reloaded")
	drag()
	w, _ = reg.Window(id)
	assert.Equal(t, w.Dimensions.Width, 148)
}

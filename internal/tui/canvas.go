package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/floatwin/internal/interaction"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/platform"
	"github.com/1broseidon/floatwin/internal/registry"
)

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// toCells maps a pixel rect onto the terminal grid. Windows are at least
// 3x3 cells so the frame always fits.
func toCells(r placement.Rect) cellRect {
	cw, ch := platform.CellSize.Width, platform.CellSize.Height
	c := cellRect{
		x: r.X / cw,
		y: r.Y / ch,
		w: (r.Width + cw - 1) / cw,
		h: (r.Height + ch - 1) / ch,
	}
	if c.w < 3 {
		c.w = 3
	}
	if c.h < 3 {
		c.h = 3
	}
	return c
}

// toPixels maps a cell to the pixel at its top-left corner.
func toPixels(x, y int) placement.Point {
	return placement.Point{X: x * platform.CellSize.Width, Y: y * platform.CellSize.Height}
}

// Title bar buttons, right-aligned inside the top border.
const (
	buttonMinimize = "minimize"
	buttonMaximize = "maximize"
	buttonClose    = "close"

	buttonBar      = "[_][+][x]"
	minButtonWidth = 14
)

type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([][]rune, h)}
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", w))
	}
	return c
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// text writes s starting at (x,y), stopping before limit.
func (c *canvas) text(x, y int, s string, limit int) {
	for _, r := range s {
		if x >= limit {
			return
		}
		c.set(x, y, r)
		x++
	}
}

func (c *canvas) fill(r cellRect, ch rune) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c.set(x, y, ch)
		}
	}
}

func (c *canvas) box(r cellRect, active bool) {
	h, v := '─', '│'
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if active {
		h, v = '═', '║'
		tl, tr, bl, br = '╔', '╗', '╚', '╝'
	}
	x2, y2 := r.x+r.w-1, r.y+r.h-1
	for x := r.x; x <= x2; x++ {
		c.set(x, r.y, h)
		c.set(x, y2, h)
	}
	for y := r.y; y <= y2; y++ {
		c.set(r.x, y, v)
		c.set(x2, y, v)
	}
	c.set(r.x, r.y, tl)
	c.set(x2, r.y, tr)
	c.set(r.x, y2, bl)
	c.set(x2, y2, br)
}

func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for i, row := range c.cells {
		out[i] = string(row)
	}
	return out
}

func (c *canvas) String() string {
	return strings.Join(c.lines(), "\n")
}

// drawWindow paints one window frame, occluding whatever is beneath it.
func (c *canvas) drawWindow(w registry.Window, rect placement.Rect, active bool) {
	cr := toCells(rect)
	c.fill(cr, ' ')
	c.box(cr, active)

	titleLimit := cr.x + cr.w - 1
	if cr.w >= minButtonWidth {
		bx := cr.x + cr.w - 1 - len(buttonBar)
		c.text(bx, cr.y, buttonBar, cr.x+cr.w-1)
		titleLimit = bx - 1
	}
	c.text(cr.x+2, cr.y, " "+windowLabel(w)+" ", titleLimit)

	for i, line := range windowBody(w) {
		y := cr.y + 1 + i
		if y >= cr.y+cr.h-1 {
			break
		}
		c.text(cr.x+2, y, line, cr.x+cr.w-2)
	}
}

func windowLabel(w registry.Window) string {
	label := w.Title
	if label == "" {
		label = w.ID
	}
	if w.Icon != "" {
		label = w.Icon + " " + label
	}
	return label
}

// windowBody renders content and task metadata as plain lines.
func windowBody(w registry.Window) []string {
	var lines []string
	if w.Kind != "" {
		lines = append(lines, "kind: "+w.Kind)
	}
	if t := w.Task; t != nil {
		line := fmt.Sprintf("task: %s", t.Status)
		if t.Priority != "" {
			line += " · " + t.Priority
		}
		if !t.DueDate.IsZero() {
			line += " · due " + t.DueDate.Format("2006-01-02")
		}
		if t.Assignee != "" {
			line += " · @" + t.Assignee
		}
		lines = append(lines, line)
	}
	if w.Content != nil {
		lines = append(lines, strings.Split(fmt.Sprint(w.Content), "\n")...)
	}
	return lines
}

// hit is the result of a pointer hit test.
type hit struct {
	target interaction.Target
	button string
}

// hitTest finds the top-most window under cell (x,y). frames are in paint
// order, bottom first.
func hitTest(frames []frame, x, y int) (hit, bool) {
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		cr := toCells(f.rect)
		if !cr.contains(x, y) {
			continue
		}
		t := interaction.Target{WindowID: f.window.ID, Region: interaction.RegionBody}

		if y == cr.y {
			if cr.w >= minButtonWidth {
				bx := cr.x + cr.w - 1 - len(buttonBar)
				switch {
				case x >= bx && x < bx+3:
					t.Interactive = true
					return hit{target: t, button: buttonMinimize}, true
				case x >= bx+3 && x < bx+6:
					t.Interactive = true
					return hit{target: t, button: buttonMaximize}, true
				case x >= bx+6 && x < bx+9:
					t.Interactive = true
					return hit{target: t, button: buttonClose}, true
				}
			}
			t.Region = interaction.RegionTitleBar
			return hit{target: t}, true
		}

		var edge interaction.Edge
		if y == cr.y+cr.h-1 {
			edge |= interaction.EdgeSouth
		}
		if x == cr.x {
			edge |= interaction.EdgeWest
		}
		if x == cr.x+cr.w-1 {
			edge |= interaction.EdgeEast
		}
		if edge != interaction.EdgeNone {
			t.Region = interaction.RegionResizeHandle
			t.Edge = edge
		}
		return hit{target: t}, true
	}
	return hit{}, false
}

// frame is a window together with the rect it is drawn at, which differs
// from its stored geometry while it is being dragged.
type frame struct {
	window registry.Window
	rect   placement.Rect
	active bool
}

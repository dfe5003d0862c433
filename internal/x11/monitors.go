package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/floatwin/internal/placement"
)

// Monitor is one active RandR output.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) Rect() placement.Rect {
	return placement.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Monitors lists the enabled CRTCs.
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.xu.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	resources, err := randr.GetScreenResources(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.xu.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("crtc-%d", i)
		if out, err := randr.GetOutputInfo(c.xu.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// Pointer returns the mouse position in root window coordinates.
func (c *Connection) Pointer() (placement.Point, bool) {
	p, err := xproto.QueryPointer(c.xu.Conn(), c.root).Reply()
	if err != nil || !p.SameScreen {
		return placement.Point{}, false
	}
	return placement.Point{X: int(p.RootX), Y: int(p.RootY)}, true
}

// MonitorAt finds the monitor containing at.
func MonitorAt(monitors []Monitor, at placement.Point) (Monitor, bool) {
	for _, m := range monitors {
		if m.Rect().Contains(at) {
			return m, true
		}
	}
	return Monitor{}, false
}

// Largest returns the monitor with the biggest area.
func Largest(monitors []Monitor) (Monitor, bool) {
	if len(monitors) == 0 {
		return Monitor{}, false
	}
	best := monitors[0]
	for _, m := range monitors[1:] {
		if m.Width*m.Height > best.Width*best.Height {
			best = m
		}
	}
	return best, true
}

// WorkArea shrinks m to the EWMH work area of the current desktop, which
// excludes panels and docks. m is returned unchanged when the window manager
// does not publish one.
func (c *Connection) WorkArea(m Monitor) Monitor {
	areas, err := ewmh.WorkareaGet(c.xu)
	if err != nil || len(areas) == 0 {
		return m
	}
	desktop := 0
	if cur, err := ewmh.CurrentDesktopGet(c.xu); err == nil && int(cur) < len(areas) {
		desktop = int(cur)
	}
	wa := areas[desktop]
	return clipToWorkArea(m, placement.Rect{X: int(wa.X), Y: int(wa.Y), Width: int(wa.Width), Height: int(wa.Height)})
}

func clipToWorkArea(m Monitor, wa placement.Rect) Monitor {
	x1 := max(m.X, wa.X)
	y1 := max(m.Y, wa.Y)
	x2 := min(m.X+m.Width, wa.Right())
	y2 := min(m.Y+m.Height, wa.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return m
	}
	m.X, m.Y, m.Width, m.Height = x1, y1, x2-x1, y2-y1
	return m
}

package platform

import (
	"fmt"

	"github.com/1broseidon/floatwin/internal/devicemode"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/x11"
)

// X11Provider reports the work area of the monitor under the pointer, or of
// the largest monitor when the pointer is elsewhere. X sessions are always
// desktops.
type X11Provider struct {
	Monitor x11.Monitor
}

// DialX11 snapshots monitor geometry from $DISPLAY and disconnects.
func DialX11() (*X11Provider, error) {
	conn, err := x11.Dial("")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer conn.Close()
	return NewX11Provider(conn)
}

// NewX11Provider reads geometry from an existing connection.
func NewX11Provider(conn *x11.Connection) (*X11Provider, error) {
	monitors, err := conn.Monitors()
	if err != nil {
		return nil, err
	}
	pointer, hasPointer := conn.Pointer()
	m, ok := pickMonitor(monitors, pointer, hasPointer)
	if !ok {
		return nil, fmt.Errorf("no active monitors")
	}
	return &X11Provider{Monitor: conn.WorkArea(m)}, nil
}

func pickMonitor(monitors []x11.Monitor, pointer placement.Point, hasPointer bool) (x11.Monitor, bool) {
	if hasPointer {
		if m, ok := x11.MonitorAt(monitors, pointer); ok {
			return m, true
		}
	}
	return x11.Largest(monitors)
}

func (p *X11Provider) Class() devicemode.Class { return devicemode.Desktop }

func (p *X11Provider) Viewport() placement.Size {
	return placement.ViewportOrDefault(placement.Size{Width: p.Monitor.Width, Height: p.Monitor.Height})
}

func (p *X11Provider) Name() string { return "x11" }

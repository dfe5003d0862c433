// Package platform detects what kind of device the engine is presenting on.
package platform

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/floatwin/internal/devicemode"
	"github.com/1broseidon/floatwin/internal/placement"
)

// CellSize is the pixel size assumed for one terminal cell.
var CellSize = placement.Size{Width: 8, Height: 16}

// Column breakpoints for terminal classification.
const (
	MobileColumns = 80
	TabletColumns = 120
)

// Provider reports a device class and the viewport it was measured from.
type Provider interface {
	devicemode.Provider
	Viewport() placement.Size
	Name() string
}

// Static always reports the same values.
type Static struct {
	DeviceClass devicemode.Class
	Size        placement.Size
}

func (s Static) Class() devicemode.Class { return s.DeviceClass }

func (s Static) Viewport() placement.Size { return placement.ViewportOrDefault(s.Size) }

func (s Static) Name() string { return "static" }

// TerminalProvider classifies by the width of the controlling terminal.
type TerminalProvider struct {
	Fd int
	// GetSize defaults to term.GetSize.
	GetSize func(fd int) (width, height int, err error)
}

// NewTerminalProvider measures stdout.
func NewTerminalProvider() *TerminalProvider {
	return &TerminalProvider{Fd: int(os.Stdout.Fd())}
}

func (p *TerminalProvider) size() (cols, rows int, ok bool) {
	get := p.GetSize
	if get == nil {
		get = term.GetSize
	}
	cols, rows, err := get(p.Fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// Class is Desktop when the size cannot be read.
func (p *TerminalProvider) Class() devicemode.Class {
	cols, _, ok := p.size()
	if !ok {
		return devicemode.Desktop
	}
	return ClassForColumns(cols)
}

func (p *TerminalProvider) Viewport() placement.Size {
	cols, rows, ok := p.size()
	if !ok {
		return placement.DefaultViewport
	}
	return CellsToPixels(cols, rows)
}

func (p *TerminalProvider) Name() string { return "terminal" }

// ClassForColumns maps a terminal width to a device class.
func ClassForColumns(cols int) devicemode.Class {
	switch {
	case cols < MobileColumns:
		return devicemode.Mobile
	case cols < TabletColumns:
		return devicemode.Tablet
	default:
		return devicemode.Desktop
	}
}

// CellsToPixels converts a terminal size to a pixel viewport.
func CellsToPixels(cols, rows int) placement.Size {
	return placement.Size{Width: cols * CellSize.Width, Height: rows * CellSize.Height}
}

// Detect picks a provider: an explicit desktop/tablet/mobile override wins,
// then X11 when $DISPLAY is reachable, then the terminal.
func Detect(override string, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	tp := NewTerminalProvider()

	if class, ok := devicemode.ParseClass(override); ok {
		logger.Debug("device class overridden", "class", class.String())
		return Static{DeviceClass: class, Size: tp.Viewport()}
	}

	if os.Getenv("DISPLAY") != "" {
		xp, err := DialX11()
		if err == nil {
			logger.Debug("using X11 display geometry", "monitor", xp.Monitor.Name, "viewport", xp.Viewport())
			return xp
		}
		logger.Debug("X11 unavailable, falling back to terminal", "error", err)
	}
	return tp
}

// Package x11 reads display geometry from an X server and hosts the event
// loop global hotkeys are delivered on.
package x11

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection is an open X display.
type Connection struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	display string

	keysOnce sync.Once
}

// Dial opens display, or $DISPLAY when display is empty.
func Dial(display string) (*Connection, error) {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}
	return &Connection{xu: xu, root: xu.RootWin(), display: display}, nil
}

// Display names the display this connection was opened on.
func (c *Connection) Display() string { return c.display }

// KeyUtil returns the connection prepared for key grabs. The keyboard
// mapping is loaded on first use only.
func (c *Connection) KeyUtil() *xgbutil.XUtil {
	c.keysOnce.Do(func() { keybind.Initialize(c.xu) })
	return c.xu
}

// Run dispatches X events until Shutdown.
func (c *Connection) Run() {
	xevent.Main(c.xu)
}

// Shutdown stops Run and closes the display.
func (c *Connection) Shutdown() {
	xevent.Quit(c.xu)
	c.Close()
}

func (c *Connection) Close() {
	c.xu.Conn().Close()
}

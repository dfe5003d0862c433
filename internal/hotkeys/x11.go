package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Grabber registers chords as global X11 key grabs on the root window, so
// bindings fire even when the terminal does not have focus.
type Grabber struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewGrabber prepares global grabs on xu's root window. xu must have its
// keyboard mapping loaded (x11.Connection.KeyUtil does that).
func NewGrabber(xu *xgbutil.XUtil, logger *slog.Logger) *Grabber {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})
	return &Grabber{xu: xu, root: xu.RootWin(), logger: logger}
}

// GrabTable grabs every binding in t. A chord that cannot be grabbed (usually
// because another client owns it) is logged and skipped.
func (g *Grabber) GrabTable(t *Table, dispatch func(action string)) int {
	grabbed := 0
	for _, b := range t.Bindings() {
		action := b.Action
		if err := g.Grab(b.Chord, func() { dispatch(action) }); err != nil {
			g.logger.Warn("global hotkey unavailable", "chord", b.Chord.String(), "action", action, "error", err)
			continue
		}
		grabbed++
	}
	return grabbed
}

// Grab registers a single chord.
func (g *Grabber) Grab(c Chord, callback func()) error {
	seq := c.XSequence()
	err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(g.xu, g.root, seq, true)
	if err != nil {
		return fmt.Errorf("grab %s: %w", seq, err)
	}
	return nil
}

// configureIgnoreMods makes grabs fire regardless of CapsLock, NumLock and
// ScrollLock state by ignoring every combination of those masks.
func configureIgnoreMods(xu *xgbutil.XUtil) {
	masks := []uint16{0}
	seen := map[uint16]bool{}
	for _, lock := range lockMasks(xu) {
		if lock == 0 || seen[lock] {
			continue
		}
		seen[lock] = true
		for _, m := range masks {
			masks = append(masks, m|lock)
		}
	}
	xevent.IgnoreMods = masks
}

func lockMasks(xu *xgbutil.XUtil) []uint16 {
	out := []uint16{uint16(xproto.ModMaskLock)}
	for _, sym := range []string{"Num_Lock", "Scroll_Lock"} {
		for _, code := range keybind.StrToKeycodes(xu, sym) {
			if mask := keybind.ModGet(xu, code); mask != 0 {
				out = append(out, mask)
				break
			}
		}
	}
	return out
}

// Package devicemode presents registry state either as free-form desktop
// frames or as a single-panel carousel for tablets and phones.
package devicemode

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/1broseidon/floatwin/internal/gesture"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/registry"
)

// Source is the registry surface the adapter reads and dispatches to.
type Source interface {
	Windows() []registry.Window
	Visible() []registry.Window
	ActiveID() string
	Subscribe(fn func(registry.Event)) (unsubscribe func())
	Dispatch(cmd registry.Command) registry.Result
}

// Frame is one desktop window in paint order.
type Frame struct {
	Window registry.Window
	Active bool
}

// Adapter selects the presentation for a Source.
type Adapter struct {
	src      Source
	provider Provider
	logger   *slog.Logger

	mu          sync.Mutex
	class       Class
	index       int
	fullscreen  bool
	unsubscribe func()
}

type Option func(*Adapter)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Mount classifies the device once and starts following src.
func Mount(src Source, provider Provider, opts ...Option) *Adapter {
	a := &Adapter{
		src:      src,
		provider: provider,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.class = Desktop
	if provider != nil {
		a.class = provider.Class()
	}
	a.unsubscribe = src.Subscribe(func(registry.Event) { a.Sync() })
	a.logger.Debug("device mode mounted", "class", a.class.String())
	return a
}

// Unmount stops following the source.
func (a *Adapter) Unmount() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (a *Adapter) Class() Class {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.class
}

// Redetect asks the provider again, e.g. after the host was resized.
func (a *Adapter) Redetect() Class {
	if a.provider == nil {
		return a.Class()
	}
	c := a.provider.Class()
	a.mu.Lock()
	if c != a.class {
		a.logger.Debug("device class changed", "from", a.class.String(), "to", c.String())
		a.class = c
		a.fullscreen = false
	}
	a.mu.Unlock()
	a.Sync()
	return c
}

func (a *Adapter) IsDesktop() bool { return a.Class() == Desktop }
func (a *Adapter) IsTablet() bool  { return a.Class() == Tablet }
func (a *Adapter) IsMobile() bool  { return a.Class() == Mobile }

// Carousel reports whether the single-panel view is in use.
func (a *Adapter) Carousel() bool {
	return a.Class() != Desktop
}

// Frames returns the visible windows in paint order, bottom first.
func (a *Adapter) Frames() []Frame {
	visible := a.src.Visible()
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].ZIndex < visible[j].ZIndex })
	active := a.src.ActiveID()
	frames := make([]Frame, len(visible))
	for i, w := range visible {
		frames[i] = Frame{Window: w, Active: w.ID == active}
	}
	return frames
}

// Dock returns the minimized windows in open order.
func (a *Adapter) Dock() []registry.Window {
	var out []registry.Window
	for _, w := range a.src.Windows() {
		if w.IsMinimized {
			out = append(out, w)
		}
	}
	return out
}

// Index is the carousel position within the visible windows.
func (a *Adapter) Index() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index
}

// Count is the number of windows the carousel pages through.
func (a *Adapter) Count() int {
	return len(a.src.Visible())
}

// Empty reports that there is nothing to render.
func (a *Adapter) Empty() bool {
	return a.Count() == 0
}

// Current returns the window the carousel shows.
func (a *Adapter) Current() (registry.Window, bool) {
	visible := a.src.Visible()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.index = clampIndex(a.index, len(visible))
	if len(visible) == 0 {
		return registry.Window{}, false
	}
	return visible[a.index], true
}

// Next moves one panel forward. It reports whether the index moved.
func (a *Adapter) Next() bool {
	return a.step(1)
}

// Prev moves one panel back. It reports whether the index moved.
func (a *Adapter) Prev() bool {
	return a.step(-1)
}

// GoTo jumps to index i, clamped into range.
func (a *Adapter) GoTo(i int) {
	n := a.Count()
	a.mu.Lock()
	a.index = clampIndex(i, n)
	a.mu.Unlock()
}

func (a *Adapter) step(delta int) bool {
	n := a.Count()
	a.mu.Lock()
	defer a.mu.Unlock()
	next := clampIndex(a.index+delta, n)
	if next == a.index {
		return false
	}
	a.index = next
	return true
}

// ToggleFullscreen hides or shows the pagination and footer chrome.
func (a *Adapter) ToggleFullscreen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fullscreen = !a.fullscreen
	return a.fullscreen
}

func (a *Adapter) Fullscreen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fullscreen
}

// ShowChrome reports whether pagination dots and footer controls render.
func (a *Adapter) ShowChrome() bool {
	return !a.Fullscreen()
}

// Sync clamps the index after the visible window count changed.
func (a *Adapter) Sync() {
	n := a.Count()
	a.mu.Lock()
	a.index = clampIndex(a.index, n)
	if n == 0 {
		a.fullscreen = false
	}
	a.mu.Unlock()
}

// HandleKey applies carousel keys: left/right page, escape leaves fullscreen
// or closes the current window. It reports whether the key was used.
func (a *Adapter) HandleKey(key string) bool {
	if !a.Carousel() {
		return false
	}
	switch key {
	case "left":
		return a.Prev()
	case "right":
		return a.Next()
	case "esc", "escape":
		if a.Fullscreen() {
			a.ToggleFullscreen()
			return true
		}
		return a.CloseCurrent()
	case "f":
		a.ToggleFullscreen()
		return true
	}
	return false
}

// HandleGesture maps swipes to paging and a double tap to fullscreen.
func (a *Adapter) HandleGesture(g gesture.Gesture) bool {
	if !a.Carousel() {
		return false
	}
	switch g.Kind {
	case gesture.KindSwipe:
		switch g.Direction {
		case placement.DirLeft:
			return a.Next()
		case placement.DirRight:
			return a.Prev()
		}
	case gesture.KindDoubleTap:
		a.ToggleFullscreen()
		return true
	}
	return false
}

// CloseCurrent closes the window on screen.
func (a *Adapter) CloseCurrent() bool {
	w, ok := a.Current()
	if !ok {
		return false
	}
	return a.src.Dispatch(registry.CloseCmd{ID: w.ID}).Applied
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

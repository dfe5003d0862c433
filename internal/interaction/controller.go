// Package interaction turns pointer movement into window drag and resize
// geometry, committing to the registry only when the pointer is released.
package interaction

import (
	"log/slog"

	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/registry"
)

// DefaultMinSize keeps resized content usable.
var DefaultMinSize = placement.Size{Width: 300, Height: 200}

// Store is the part of the registry the controller reads and commits to.
type Store interface {
	Window(id string) (registry.Window, bool)
	BringToFront(id string)
	Update(id string, p registry.Patch)
	Viewport() placement.Size
}

// ListenerSet attaches the global move/up listeners for the duration of one
// interaction.
type ListenerSet interface {
	Attach()
	Detach()
}

// Controller tracks one pointer interaction at a time.
type Controller struct {
	store     Store
	listeners ListenerSet
	minSize   placement.Size
	logger    *slog.Logger

	phase     Phase
	windowID  string
	edge      Edge
	start     placement.Point
	offset    placement.Point
	viewport  placement.Size
	initial   placement.Rect
	candidate placement.Rect
}

type Option func(*Controller)

// WithMinSize overrides DefaultMinSize.
func WithMinSize(size placement.Size) Option {
	return func(c *Controller) {
		if !size.IsZero() {
			c.minSize = size
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an idle controller. listeners may be nil.
func New(store Store, listeners ListenerSet, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		listeners: listeners,
		minSize:   DefaultMinSize,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Phase() Phase {
	return c.phase
}

// WindowID returns the window being dragged or resized, if any.
func (c *Controller) WindowID() string {
	return c.windowID
}

// SuppressNative reports whether text selection and native drag-and-drop
// must be suppressed on the window body.
func (c *Controller) SuppressNative() bool {
	return c.phase != PhaseIdle
}

// Preview returns the provisional geometry of the window in flight.
func (c *Controller) Preview() (placement.Rect, bool) {
	if c.phase == PhaseIdle {
		return placement.Rect{}, false
	}
	return c.candidate, true
}

// PointerDown starts a drag or resize. It returns false when the event is
// left to the window content or ignored.
func (c *Controller) PointerDown(target Target, at placement.Point) bool {
	if c.phase != PhaseIdle {
		return false
	}
	if target.Interactive || target.NoDrag {
		return false
	}

	w, ok := c.store.Window(target.WindowID)
	if !ok || w.IsMinimized || w.IsMaximized {
		return false
	}

	switch target.Region {
	case RegionTitleBar, RegionBody:
		c.phase = PhaseDragging
	case RegionResizeHandle:
		c.phase = PhaseResizing
		c.edge = target.Edge
		if c.edge == EdgeNone {
			c.edge = EdgeSouthEast
		}
	default:
		return false
	}

	c.windowID = w.ID
	c.start = at
	c.offset = at.Sub(w.Position)
	c.viewport = placement.ViewportOrDefault(c.store.Viewport())
	c.initial = w.Rect()
	c.candidate = c.initial

	c.store.BringToFront(w.ID)
	if c.listeners != nil {
		c.listeners.Attach()
	}
	c.logger.Debug("interaction started", "window", w.ID, "phase", c.phase.String(), "edge", c.edge.String())
	return true
}

// PointerMove updates the provisional geometry. It reports whether the
// candidate changed.
func (c *Controller) PointerMove(at placement.Point) bool {
	prev := c.candidate
	switch c.phase {
	case PhaseDragging:
		pos := placement.Clamp(at.Sub(c.offset), c.initial.Size(), c.viewport)
		c.candidate = placement.RectOf(pos, c.initial.Size())
	case PhaseResizing:
		c.candidate = c.resized(at.Sub(c.start))
	default:
		return false
	}
	return c.candidate != prev
}

// PointerUp finishes the interaction and commits the final geometry. A
// gesture that ends where it started commits nothing. It reports whether an
// update was committed.
func (c *Controller) PointerUp(at placement.Point) bool {
	if c.phase == PhaseIdle {
		return false
	}
	c.PointerMove(at)

	committed := false
	if c.candidate != c.initial {
		pos := c.candidate.Origin()
		patch := registry.Patch{Position: &pos}
		if c.phase == PhaseResizing {
			size := c.candidate.Size()
			patch.Dimensions = &size
		}
		c.store.Update(c.windowID, patch)
		committed = true
	}
	c.logger.Debug("interaction finished", "window", c.windowID, "phase", c.phase.String(), "committed", committed)
	c.reset()
	return committed
}

// Cancel abandons the interaction without committing.
func (c *Controller) Cancel() {
	if c.phase == PhaseIdle {
		return
	}
	c.reset()
}

func (c *Controller) reset() {
	if c.listeners != nil {
		c.listeners.Detach()
	}
	c.phase = PhaseIdle
	c.windowID = ""
	c.edge = EdgeNone
	c.initial = placement.Rect{}
	c.candidate = placement.Rect{}
}

func (c *Controller) resized(delta placement.Point) placement.Rect {
	r := c.initial
	switch {
	case c.edge&EdgeEast != 0:
		r.X, r.Width = growEnd(r.X, r.Width, delta.X, c.minSize.Width, c.viewport.Width)
	case c.edge&EdgeWest != 0:
		r.X, r.Width = growStart(r.X, r.Width, delta.X, c.minSize.Width)
	}
	switch {
	case c.edge&EdgeSouth != 0:
		r.Y, r.Height = growEnd(r.Y, r.Height, delta.Y, c.minSize.Height, c.viewport.Height)
	case c.edge&EdgeNorth != 0:
		r.Y, r.Height = growStart(r.Y, r.Height, delta.Y, c.minSize.Height)
	}
	return r
}

// growEnd moves the far edge of an axis, keeping the origin.
func growEnd(origin, length, delta, minLen, limit int) (int, int) {
	length += delta
	if maxLen := limit - origin; length > maxLen {
		length = maxLen
	}
	if length < minLen {
		length = minLen
	}
	return origin, length
}

// growStart moves the near edge of an axis, keeping the far edge fixed.
func growStart(origin, length, delta, minLen int) (int, int) {
	end := origin + length
	origin += delta
	if origin < 0 {
		origin = 0
	}
	if end-origin < minLen {
		origin = max(end-minLen, 0)
	}
	return origin, end - origin
}

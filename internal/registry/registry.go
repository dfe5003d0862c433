// Package registry owns every window and stack record and is the only place
// their geometry and lifecycle flags are mutated.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/placement"
)

// baseZIndex is the first z-index handed out.
const baseZIndex = 1000

// Registry is the authoritative in-memory window store.
type Registry struct {
	mu       sync.RWMutex
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
	newID    func(prefix string) string
	viewport placement.Size

	windows    map[string]*Window
	order      []string // open order
	stacks     map[string]*Stack
	stackOrder []string
	nextZ      int
	activeID   string

	subsMu  sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// Option configures a Registry.
type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithViewport(size placement.Size) Option {
	return func(r *Registry) {
		r.viewport = size
	}
}

// WithIDGenerator replaces the default "<prefix>-<unixms>-<random>" ids.
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// New creates an empty registry. A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config, opts ...Option) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Registry{
		cfg:      cfg,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		viewport: cfg.Viewport,
		windows:  make(map[string]*Window),
		stacks:   make(map[string]*Stack),
		nextZ:    baseZIndex,
		subs:     make(map[int]func(Event)),
	}
	r.newID = r.defaultID
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) defaultID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, r.now().UnixMilli(), suffix)
}

// Config returns the configuration currently in effect.
func (r *Registry) Config() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// SetConfig swaps the configuration after a reload. Existing geometry is
// kept; new settings apply to later operations.
func (r *Registry) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
	r.logger.Debug("registry config replaced")
}

// z hands out the next z-index (post-increment).
func (r *Registry) z() int {
	z := r.nextZ
	r.nextZ++
	return z
}

func (r *Registry) touch(w *Window) {
	w.LastAccessedAt = r.now()
	w.AccessCount++
}

func (r *Registry) viewportLocked() placement.Size {
	return placement.ViewportOrDefault(r.viewport)
}

// Open creates a window and makes it active. It never fails.
func (r *Registry) Open(spec OpenSpec) string {
	r.mu.Lock()
	viewport := r.viewportLocked()

	var dims placement.Size
	switch {
	case spec.Dimensions != nil && !spec.Dimensions.IsZero():
		dims = *spec.Dimensions
	case spec.Size != "":
		if size, ok := r.cfg.PresetSize(spec.Size, viewport); ok {
			dims = size
		} else {
			r.logger.Debug("unknown size preset, using default", "preset", spec.Size)
			dims = r.cfg.DefaultSize
		}
	default:
		dims = r.cfg.DefaultSize
	}

	var pos placement.Point
	if spec.Position != nil {
		pos = *spec.Position
	} else {
		pos = placement.FindFreePosition(r.visibleRectsLocked(), dims, viewport, r.cfg.PlacementOptions())
	}

	now := r.now()
	w := &Window{
		ID:             r.newID("win"),
		Title:          spec.Title,
		Icon:           spec.Icon,
		Kind:           spec.Kind,
		Content:        spec.Content,
		Position:       pos,
		Dimensions:     dims,
		ZIndex:         r.z(),
		OpenedAt:       now,
		LastAccessedAt: now,
		AccessCount:    1,
	}
	r.windows[w.ID] = w
	r.order = append(r.order, w.ID)
	r.activeID = w.ID
	r.mu.Unlock()

	r.logger.Debug("window opened", "id", w.ID, "title", w.Title, "x", pos.X, "y", pos.Y, "w", dims.Width, "h", dims.Height)
	r.emit(Event{Kind: EventOpened, WindowID: w.ID})
	return w.ID
}

func (r *Registry) visibleRectsLocked() []placement.Rect {
	rects := make([]placement.Rect, 0, len(r.order))
	for _, id := range r.order {
		w := r.windows[id]
		if !w.IsMinimized {
			rects = append(rects, w.Rect())
		}
	}
	return rects
}

// Close removes a window. Another window is not promoted to active.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	if !r.closeLocked(id) {
		r.mu.Unlock()
		r.logger.Debug("close ignored: unknown window", "id", id)
		return
	}
	r.mu.Unlock()
	r.emit(Event{Kind: EventClosed, WindowID: id})
}

func (r *Registry) closeLocked(id string) bool {
	w, ok := r.windows[id]
	if !ok {
		return false
	}
	r.removeFromStackLocked(w)
	delete(r.windows, id)
	r.order = slices.DeleteFunc(r.order, func(o string) bool { return o == id })
	if r.activeID == id {
		r.activeID = ""
	}
	return true
}

// Update merges the non-nil fields of p into the window.
func (r *Registry) Update(id string, p Patch) {
	if p.empty() {
		return
	}
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		r.logger.Debug("update ignored: unknown window", "id", id)
		return
	}
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.Icon != nil {
		w.Icon = *p.Icon
	}
	if p.Kind != nil {
		w.Kind = *p.Kind
	}
	if p.Content != nil {
		w.Content = p.Content
	}
	if p.Position != nil {
		w.Position = *p.Position
	}
	if p.Dimensions != nil {
		w.Dimensions = *p.Dimensions
	}
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventUpdated, WindowID: id})
}

// Minimize hides a window's body. A maximized window is first restored to its
// saved geometry so the two flags are never set together.
func (r *Registry) Minimize(id string) {
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	if w.IsMaximized {
		unmaximize(w)
	}
	w.IsMinimized = true
	if r.activeID == id {
		r.activeID = ""
	}
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventMinimized, WindowID: id})
}

// Maximize toggles between the saved geometry and the viewport-filling one.
func (r *Registry) Maximize(id string) {
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	if w.IsMaximized {
		unmaximize(w)
	} else {
		dims, pos := w.Dimensions, w.Position
		w.OriginalDimensions = &dims
		w.OriginalPosition = &pos
		w.Dimensions = r.maximizedSizeLocked()
		w.Position = placement.Centered(w.Dimensions, r.viewportLocked())
		w.IsMinimized = false
		w.IsMaximized = true
	}
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventMaximized, WindowID: id})
}

func (r *Registry) maximizedSizeLocked() placement.Size {
	viewport := r.viewportLocked()
	m := r.cfg.MaximizeMargin
	size := placement.Size{Width: viewport.Width - 2*m, Height: viewport.Height - 2*m}
	if size.Width < 1 {
		size.Width = viewport.Width
	}
	if size.Height < 1 {
		size.Height = viewport.Height
	}
	return size
}

func unmaximize(w *Window) {
	if w.OriginalDimensions != nil {
		w.Dimensions = *w.OriginalDimensions
	}
	if w.OriginalPosition != nil {
		w.Position = *w.OriginalPosition
	}
	w.OriginalDimensions = nil
	w.OriginalPosition = nil
	w.IsMaximized = false
}

// Restore un-minimizes a window and brings it to front.
func (r *Registry) Restore(id string) {
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	w.IsMinimized = false
	w.ZIndex = r.z()
	r.activeID = id
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventRestored, WindowID: id})
}

// BringToFront raises a window above every other one and makes it active.
func (r *Registry) BringToFront(id string) {
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	w.ZIndex = r.z()
	r.activeID = id
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventFocused, WindowID: id})
}

// OrganizeModals lays every window out on a uniform grid in open order. Custom
// sizes are replaced by the configured default size; maximized windows lose
// their saved geometry.
func (r *Registry) OrganizeModals() {
	r.mu.Lock()
	if len(r.order) == 0 {
		r.mu.Unlock()
		return
	}
	rects := placement.GridOrganize(len(r.order), r.viewportLocked(), r.cfg.DefaultSize, r.cfg.Margin)
	for i, id := range r.order {
		w := r.windows[id]
		w.Position = rects[i].Origin()
		w.Dimensions = rects[i].Size()
		w.OriginalDimensions = nil
		w.OriginalPosition = nil
		w.IsMaximized = false
		r.touch(w)
	}
	r.mu.Unlock()

	r.logger.Debug("windows organized", "count", len(rects))
	r.emit(Event{Kind: EventOrganized})
}

// MinimizeAll minimizes every open window.
func (r *Registry) MinimizeAll() {
	r.mu.Lock()
	changed := 0
	for _, id := range r.order {
		w := r.windows[id]
		if w.IsMinimized {
			continue
		}
		if w.IsMaximized {
			unmaximize(w)
		}
		w.IsMinimized = true
		r.touch(w)
		changed++
	}
	if changed > 0 {
		r.activeID = ""
	}
	r.mu.Unlock()

	if changed > 0 {
		r.emit(Event{Kind: EventMinimized})
	}
}

// RestoreAll un-minimizes every window, keeping their relative z-order.
func (r *Registry) RestoreAll() {
	r.mu.Lock()
	var restored []*Window
	for _, id := range r.order {
		if w := r.windows[id]; w.IsMinimized {
			restored = append(restored, w)
		}
	}
	sort.Slice(restored, func(i, j int) bool { return restored[i].ZIndex < restored[j].ZIndex })
	for _, w := range restored {
		w.IsMinimized = false
		w.ZIndex = r.z()
		r.touch(w)
	}
	if n := len(restored); n > 0 {
		r.activeID = restored[n-1].ID
	}
	r.mu.Unlock()

	if len(restored) > 0 {
		r.emit(Event{Kind: EventRestored})
	}
}

// Confirmer gates destructive operations.
type Confirmer interface {
	Confirm(title, description string) bool
}

// CloseAll removes every window after confirm agrees. A nil confirmer or a
// refusal leaves the registry untouched. It reports whether windows were
// closed.
func (r *Registry) CloseAll(confirm Confirmer) bool {
	r.mu.RLock()
	n := len(r.order)
	r.mu.RUnlock()
	if n == 0 {
		return false
	}
	if confirm == nil {
		r.logger.Warn("close all refused: no confirmer")
		return false
	}
	desc := fmt.Sprintf("This closes %d window(s). Unsaved panel state is lost.", n)
	if !confirm.Confirm("Close all windows?", desc) {
		r.logger.Debug("close all declined")
		return false
	}

	r.mu.Lock()
	ids := slices.Clone(r.order)
	for _, id := range ids {
		r.closeLocked(id)
	}
	r.mu.Unlock()

	events := make([]Event, len(ids))
	for i, id := range ids {
		events[i] = Event{Kind: EventClosed, WindowID: id}
	}
	r.emit(events...)
	return len(ids) > 0
}

// ConvertToTask attaches task metadata, filling in the configured defaults for
// a zero due date, priority or status.
func (r *Registry) ConvertToTask(id string, fields TaskFields) {
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	now := r.now()
	task := &TaskInfo{
		Status:   fields.Status,
		Priority: fields.Priority,
		DueDate:  fields.DueDate,
		Assignee: fields.Assignee,
	}
	if task.Status == "" {
		task.Status = TaskPending
	}
	if task.Priority == "" {
		task.Priority = r.cfg.TaskDefaultPriority
	}
	if task.DueDate.IsZero() {
		task.DueDate = now.Add(r.cfg.TaskDefaultDue)
	}
	if task.Status == TaskCompleted {
		task.CompletedAt = &now
	}
	w.Task = task
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventTaskChanged, WindowID: id})
}

// MarkTaskComplete completes a window's task. Windows without a task are
// left alone.
func (r *Registry) MarkTaskComplete(id string) {
	r.mu.Lock()
	w, ok := r.windows[id]
	if !ok || w.Task == nil {
		r.mu.Unlock()
		return
	}
	now := r.now()
	w.Task.Status = TaskCompleted
	w.Task.CompletedAt = &now
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventTaskChanged, WindowID: id})
}

// FocusNext activates the visible window after the active one in open
// order, wrapping around, and brings it to front.
func (r *Registry) FocusNext() string {
	return r.focusStep(1)
}

// FocusPrev is FocusNext in the other direction.
func (r *Registry) FocusPrev() string {
	return r.focusStep(-1)
}

func (r *Registry) focusStep(dir int) string {
	r.mu.Lock()
	visible := make([]*Window, 0, len(r.order))
	current := -1
	for _, id := range r.order {
		if w := r.windows[id]; !w.IsMinimized {
			if id == r.activeID {
				current = len(visible)
			}
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		r.mu.Unlock()
		return ""
	}

	var next int
	switch {
	case current < 0 && dir > 0:
		next = 0
	case current < 0:
		next = len(visible) - 1
	default:
		next = (current + dir + len(visible)) % len(visible)
	}
	target := visible[next]
	target.ZIndex = r.z()
	r.activeID = target.ID
	r.touch(target)
	id := target.ID
	r.mu.Unlock()

	r.emit(Event{Kind: EventFocused, WindowID: id})
	return id
}

// FocusDirection activates the visible window nearest to the active one in
// dir, wrapping at the edges. Without an active window the first visible one
// is chosen.
func (r *Registry) FocusDirection(dir placement.Direction) string {
	r.mu.Lock()
	visible := make([]*Window, 0, len(r.order))
	rects := make([]placement.Rect, 0, len(r.order))
	current := -1
	for _, id := range r.order {
		if w := r.windows[id]; !w.IsMinimized {
			if id == r.activeID {
				current = len(visible)
			}
			visible = append(visible, w)
			rects = append(rects, w.Rect())
		}
	}
	if len(visible) == 0 {
		r.mu.Unlock()
		return ""
	}

	next := 0
	if current >= 0 {
		next = placement.NavigateSpatial(current, dir, rects)
	}
	target := visible[next]
	target.ZIndex = r.z()
	r.activeID = target.ID
	r.touch(target)
	id := target.ID
	r.mu.Unlock()

	r.emit(Event{Kind: EventFocused, WindowID: id})
	return id
}

// Windows returns every window in open order.
func (r *Registry) Windows() []Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.windows[id].clone())
	}
	return out
}

// Visible returns the non-minimized windows in open order.
func (r *Registry) Visible() []Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Window, 0, len(r.order))
	for _, id := range r.order {
		if w := r.windows[id]; !w.IsMinimized {
			out = append(out, w.clone())
		}
	}
	return out
}

func (r *Registry) Window(id string) (Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.windows[id]
	if !ok {
		return Window{}, false
	}
	return w.clone(), true
}

// Stacks returns every stack in creation order.
func (r *Registry) Stacks() []Stack {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Stack, 0, len(r.stackOrder))
	for _, id := range r.stackOrder {
		out = append(out, r.stacks[id].clone())
	}
	return out
}

func (r *Registry) Stack(id string) (Stack, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stacks[id]
	if !ok {
		return Stack{}, false
	}
	return s.clone(), true
}

// ActiveID returns the active window id, or "" when none is active.
func (r *Registry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// Len reports the number of open windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Viewport returns the measured viewport, or DefaultViewport before any
// measurement exists.
func (r *Registry) Viewport() placement.Size {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewportLocked()
}

// SetViewport records a new viewport measurement. Maximized windows are
// resized to the new bounds; everything else keeps its geometry.
func (r *Registry) SetViewport(size placement.Size) {
	r.mu.Lock()
	if r.viewport == size {
		r.mu.Unlock()
		return
	}
	r.viewport = size
	for _, id := range r.order {
		w := r.windows[id]
		if w.IsMaximized {
			w.Dimensions = r.maximizedSizeLocked()
			w.Position = placement.Centered(w.Dimensions, r.viewportLocked())
		}
	}
	r.mu.Unlock()

	r.emit(Event{Kind: EventViewportChanged})
}

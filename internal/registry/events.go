package registry

// EventKind names what changed.
type EventKind string

const (
	EventOpened          EventKind = "opened"
	EventClosed          EventKind = "closed"
	EventUpdated         EventKind = "updated"
	EventMinimized       EventKind = "minimized"
	EventMaximized       EventKind = "maximized"
	EventRestored        EventKind = "restored"
	EventFocused         EventKind = "focused"
	EventOrganized       EventKind = "organized"
	EventStackChanged    EventKind = "stack-changed"
	EventTaskChanged     EventKind = "task-changed"
	EventViewportChanged EventKind = "viewport-changed"
)

// Event is delivered to subscribers after a mutation has been applied.
type Event struct {
	Kind     EventKind
	WindowID string // empty for bulk changes
	StackID  string
}

// Subscribe registers fn for every change. Callbacks run synchronously on the
// mutating goroutine, after the registry lock is released, so they may call
// back into the registry.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	return func() {
		r.subsMu.Lock()
		defer r.subsMu.Unlock()
		delete(r.subs, id)
	}
}

func (r *Registry) emit(events ...Event) {
	r.subsMu.Lock()
	fns := make([]func(Event), 0, len(r.subs))
	for i := 0; i < r.nextSub; i++ {
		if fn, ok := r.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	r.subsMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

package gesture

import "sync"

// Handler reacts to a gesture and reports whether it consumed it.
type Handler func(Gesture) bool

type entry struct {
	id int
	fn Handler
}

// Router delivers gestures to window-scoped handlers first, then to
// system-scoped ones, stopping at the first handler that consumes.
type Router struct {
	mu     sync.Mutex
	nextID int
	window map[string]map[Kind][]entry
	system map[Kind][]entry
}

func NewRouter() *Router {
	return &Router{
		window: make(map[string]map[Kind][]entry),
		system: make(map[Kind][]entry),
	}
}

// OnWindow registers h for gestures of kind on windowID.
func (r *Router) OnWindow(windowID string, kind Kind, h Handler) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byKind, ok := r.window[windowID]
	if !ok {
		byKind = make(map[Kind][]entry)
		r.window[windowID] = byKind
	}
	id := r.nextID
	r.nextID++
	byKind[kind] = append(byKind[kind], entry{id: id, fn: h})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if byKind, ok := r.window[windowID]; ok {
			byKind[kind] = without(byKind[kind], id)
		}
	}
}

// OnSystem registers h for gestures of kind that no window consumed.
func (r *Router) OnSystem(kind Kind, h Handler) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.system[kind] = append(r.system[kind], entry{id: id, fn: h})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.system[kind] = without(r.system[kind], id)
	}
}

// Forget drops every handler registered for windowID.
func (r *Router) Forget(windowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.window, windowID)
}

// Route delivers g. windowID may be empty for gestures outside any window.
func (r *Router) Route(windowID string, g Gesture) bool {
	r.mu.Lock()
	var chain []entry
	if windowID != "" {
		chain = append(chain, r.window[windowID][g.Kind]...)
	}
	chain = append(chain, r.system[g.Kind]...)
	r.mu.Unlock()

	for _, e := range chain {
		if e.fn(g) {
			return true
		}
	}
	return false
}

func without(entries []entry, id int) []entry {
	out := entries[:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

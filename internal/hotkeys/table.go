package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Binding ties a chord to a named action.
type Binding struct {
	Chord  Chord
	Action string
}

// Table maps chords to actions and dispatches key events to callbacks.
type Table struct {
	mu       sync.RWMutex
	bindings map[Chord]string
	handlers map[string]func()
	logger   *slog.Logger
}

func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Table{
		bindings: make(map[Chord]string),
		handlers: make(map[string]func()),
		logger:   logger,
	}
}

// FromConfig builds a table from an action -> chord map. Empty chords are
// skipped. Every invalid or conflicting entry is reported; the valid ones are
// still bound.
func FromConfig(chords map[string]string, logger *slog.Logger) (*Table, error) {
	t := NewTable(logger)

	actions := make([]string, 0, len(chords))
	for action := range chords {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	var errs []error
	for _, action := range actions {
		if chords[action] == "" {
			continue
		}
		if err := t.Bind(chords[action], action); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", action, err))
		}
	}
	return t, errors.Join(errs...)
}

// Bind assigns a chord to an action.
func (t *Table) Bind(chord string, action string) error {
	c, err := ParseChord(chord)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.bindings[c]; ok && existing != action {
		return fmt.Errorf("chord %s already bound to %q", c, existing)
	}
	t.bindings[c] = action
	return nil
}

// On registers the callback run when action's chord is pressed.
func (t *Table) On(action string, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers[action] = fn
}

// Lookup resolves a key event string to its bound action.
func (t *Table) Lookup(key string) (string, bool) {
	c, err := ParseChord(key)
	if err != nil {
		return "", false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	action, ok := t.bindings[c]
	return action, ok
}

// Handle runs the callback bound to key. It reports whether the key was
// consumed.
func (t *Table) Handle(key string) bool {
	action, ok := t.Lookup(key)
	if !ok {
		return false
	}
	t.mu.RLock()
	fn := t.handlers[action]
	t.mu.RUnlock()
	if fn == nil {
		t.logger.Debug("hotkey has no handler", "key", key, "action", action)
		return false
	}
	t.logger.Debug("hotkey triggered", "key", key, "action", action)
	fn()
	return true
}

// ChordFor returns the chord bound to action, if any.
func (t *Table) ChordFor(action string) (Chord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for c, a := range t.bindings {
		if a == action {
			return c, true
		}
	}
	return Chord{}, false
}

// Bindings lists all bindings sorted by action.
func (t *Table) Bindings() []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Binding, 0, len(t.bindings))
	for c, a := range t.bindings {
		out = append(out, Binding{Chord: c, Action: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}

// Package palette implements the searchable command palette.
package palette

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/1broseidon/floatwin/internal/prompt"
)

// ErrCancelled is returned when the user declines or dismisses an action.
var ErrCancelled = errors.New("palette cancelled")

// ErrNoSelection is returned by Execute when nothing matches the query.
var ErrNoSelection = errors.New("palette: nothing selected")

// Action is one palette entry.
type Action struct {
	ID          string
	Name        string
	Description string
	Shortcut    string
	Destructive bool
	Run         func() error
}

func (a Action) searchText() string {
	return a.Name + " " + a.Description
}

// Palette holds the open state, query and selection. It is safe for
// concurrent use.
type Palette struct {
	mu       sync.Mutex
	actions  []Action
	open     bool
	query    string
	selected int

	fuzzy   bool
	confirm prompt.Confirmer
	logger  *slog.Logger
}

type Option func(*Palette)

// WithFuzzy ranks matches with sahilm/fuzzy instead of substring filtering.
func WithFuzzy(enabled bool) Option {
	return func(p *Palette) { p.fuzzy = enabled }
}

// WithConfirmer sets who approves destructive actions. Without one they are
// always declined.
func WithConfirmer(c prompt.Confirmer) Option {
	return func(p *Palette) { p.confirm = c }
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Palette) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func New(actions []Action, opts ...Option) *Palette {
	p := &Palette{
		actions: append([]Action(nil), actions...),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Actions returns every registered action in order.
func (p *Palette) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Action(nil), p.actions...)
}

// Open shows the palette with an empty query.
func (p *Palette) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
	p.query = ""
	p.selected = 0
}

func (p *Palette) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
	p.query = ""
	p.selected = 0
}

// Toggle opens a closed palette and closes an open one.
func (p *Palette) Toggle() bool {
	if p.IsOpen() {
		p.Close()
		return false
	}
	p.Open()
	return true
}

func (p *Palette) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Palette) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// SetQuery replaces the query and moves the selection to the top.
func (p *Palette) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.query = q
	p.selected = 0
}

// Selected is the highlighted index within Filtered.
func (p *Palette) Selected() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Filtered returns the actions matching the query. An empty query matches
// everything in registration order.
func (p *Palette) Filtered() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filteredLocked()
}

func (p *Palette) filteredLocked() []Action {
	q := strings.TrimSpace(p.query)
	if q == "" {
		return append([]Action(nil), p.actions...)
	}
	if p.fuzzy {
		matches := fuzzy.FindFrom(q, actionSource(p.actions))
		out := make([]Action, len(matches))
		for i, m := range matches {
			out[i] = p.actions[m.Index]
		}
		return out
	}
	q = strings.ToLower(q)
	var out []Action
	for _, a := range p.actions {
		if strings.Contains(strings.ToLower(a.searchText()), q) {
			out = append(out, a)
		}
	}
	return out
}

// actionSource implements fuzzy.Source over name and description.
type actionSource []Action

func (s actionSource) String(i int) string { return s[i].searchText() }

func (s actionSource) Len() int { return len(s) }

// MoveUp moves the highlight up, stopping at the first entry.
func (p *Palette) MoveUp() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves the highlight down, stopping at the last entry.
func (p *Palette) MoveDown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.selected < len(p.filteredLocked())-1 {
		p.selected++
	}
}

// Current returns the highlighted action.
func (p *Palette) Current() (Action, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentLocked()
}

func (p *Palette) currentLocked() (Action, bool) {
	filtered := p.filteredLocked()
	if len(filtered) == 0 {
		return Action{}, false
	}
	i := p.selected
	if i >= len(filtered) {
		i = len(filtered) - 1
	}
	return filtered[i], true
}

// Execute runs the highlighted action using the configured confirmer.
func (p *Palette) Execute() error {
	p.mu.Lock()
	c := p.confirm
	p.mu.Unlock()
	return p.ExecuteWith(c)
}

// ExecuteWith runs the highlighted action, asking c first when it is
// destructive. The palette closes unless the action was declined.
func (p *Palette) ExecuteWith(c prompt.Confirmer) error {
	p.mu.Lock()
	a, ok := p.currentLocked()
	p.mu.Unlock()
	if !ok {
		return ErrNoSelection
	}

	if a.Destructive {
		if c == nil || !c.Confirm(a.Name, a.Description) {
			p.logger.Debug("palette action declined", "action", a.ID)
			return ErrCancelled
		}
	}

	p.Close()
	p.logger.Debug("palette action", "action", a.ID)
	if a.Run == nil {
		return nil
	}
	if err := a.Run(); err != nil {
		return fmt.Errorf("%s: %w", a.ID, err)
	}
	return nil
}

// HandleKey feeds one key (bubbletea key names) to an open palette. It
// reports whether the key was consumed; the error is Execute's result on
// enter and ErrCancelled on escape.
func (p *Palette) HandleKey(key string) (bool, error) {
	if !p.IsOpen() {
		return false, nil
	}
	switch key {
	case "up", "ctrl+p":
		p.MoveUp()
	case "down", "ctrl+n":
		p.MoveDown()
	case "enter":
		return true, p.Execute()
	case "esc", "escape":
		p.Close()
		return true, ErrCancelled
	case "backspace":
		p.mu.Lock()
		if p.query != "" {
			_, size := utf8.DecodeLastRuneInString(p.query)
			p.query = p.query[:len(p.query)-size]
			p.selected = 0
		}
		p.mu.Unlock()
	case "space", " ":
		p.SetQuery(p.Query() + " ")
	default:
		if utf8.RuneCountInString(key) != 1 {
			return false, nil
		}
		p.SetQuery(p.Query() + key)
	}
	return true, nil
}

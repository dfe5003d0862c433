package palette

import (
	"github.com/1broseidon/floatwin/internal/hotkeys"
	"github.com/1broseidon/floatwin/internal/prompt"
	"github.com/1broseidon/floatwin/internal/registry"
)

// Engine is the registry surface the default actions drive.
type Engine interface {
	OrganizeModals()
	MinimizeAll()
	RestoreAll()
	CloseAll(confirm registry.Confirmer) bool
	FocusNext() string
}

// DefaultActions builds the built-in command set. opener and reloader may be
// nil, in which case those entries are omitted.
func DefaultActions(eng Engine, opener func() error, reloader func() error) []Action {
	actions := []Action{
		{
			ID:          "organize",
			Name:        "Organize windows",
			Description: "Arrange windows in a grid",
			Run: func() error {
				eng.OrganizeModals()
				return nil
			},
		},
		{
			ID:          "minimize-all",
			Name:        "Minimize all",
			Description: "Send every window to the dock",
			Run: func() error {
				eng.MinimizeAll()
				return nil
			},
		},
		{
			ID:          "restore-all",
			Name:        "Restore all",
			Description: "Bring every minimized window back",
			Run: func() error {
				eng.RestoreAll()
				return nil
			},
		},
		{
			ID:          "focus-next",
			Name:        "Focus next window",
			Description: "Cycle focus through visible windows",
			Run: func() error {
				eng.FocusNext()
				return nil
			},
		},
		{
			ID:          "close-all",
			Name:        "Close all windows",
			Description: "Close every open window",
			Destructive: true,
			Run: func() error {
				// The palette already asked.
				eng.CloseAll(prompt.Static(true))
				return nil
			},
		},
	}
	if opener != nil {
		actions = append(actions, Action{
			ID:          "open-new",
			Name:        "Open new window",
			Description: "Open a window at the next free position",
			Run:         opener,
		})
	}
	if reloader != nil {
		actions = append(actions, Action{
			ID:          "reload",
			Name:        "Reload configuration",
			Description: "Re-read the config file",
			Run:         reloader,
		})
	}
	return actions
}

// WithShortcuts fills Action.Shortcut from the bound chords.
func WithShortcuts(actions []Action, table *hotkeys.Table) []Action {
	if table == nil {
		return actions
	}
	out := append([]Action(nil), actions...)
	for i := range out {
		if c, ok := table.ChordFor(out[i].ID); ok {
			out[i].Shortcut = c.String()
		}
	}
	return out
}

// Package prompt asks the user to confirm destructive commands.
package prompt

import (
	"log/slog"

	"github.com/charmbracelet/huh"
)

// Confirmer answers yes/no questions. It satisfies registry.Confirmer.
type Confirmer interface {
	Confirm(title, description string) bool
}

// Static always gives the same answer.
type Static bool

func (s Static) Confirm(string, string) bool { return bool(s) }

// Func adapts a plain function.
type Func func(title, description string) bool

func (f Func) Confirm(title, description string) bool { return f(title, description) }

// HuhConfirmer shows a huh confirm form on the controlling terminal. Errors
// such as an aborted form count as "no".
type HuhConfirmer struct {
	Affirmative string
	Negative    string
	Logger      *slog.Logger
}

func (h HuhConfirmer) Confirm(title, description string) bool {
	yes, no := h.Affirmative, h.Negative
	if yes == "" {
		yes = "Yes"
	}
	if no == "" {
		no = "No"
	}

	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative(yes).
		Negative(no).
		Value(&ok).
		Run()
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("confirm prompt aborted", "title", title, "error", err)
		}
		return false
	}
	return ok
}

// Recorder wraps a Confirmer and remembers what it was asked.
type Recorder struct {
	Next   Confirmer
	Titles []string
}

func (r *Recorder) Confirm(title, description string) bool {
	r.Titles = append(r.Titles, title)
	if r.Next == nil {
		return false
	}
	return r.Next.Confirm(title, description)
}

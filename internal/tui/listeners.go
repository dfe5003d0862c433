package tui

import tea "github.com/charmbracelet/bubbletea"

// motionListeners switches the terminal to all-motion mouse reporting while
// a drag or resize is in progress, and back to cell motion afterwards.
type motionListeners struct {
	attached bool
	pending  []tea.Cmd
}

func (l *motionListeners) Attach() {
	if l.attached {
		return
	}
	l.attached = true
	l.pending = append(l.pending, tea.EnableMouseAllMotion)
}

func (l *motionListeners) Detach() {
	if !l.attached {
		return
	}
	l.attached = false
	l.pending = append(l.pending, tea.EnableMouseCellMotion)
}

func (l *motionListeners) drain() []tea.Cmd {
	cmds := l.pending
	l.pending = nil
	return cmds
}

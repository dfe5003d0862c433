package palette

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/1broseidon/floatwin/internal/prompt"
)

// Launcher shows actions in an external dmenu-style picker. It is used when
// the engine runs headless and a global hotkey asks for the palette.
type Launcher struct {
	Command string
	kind    launcherKind
	fuzzy   bool

	// run is swapped in tests.
	run func(name string, args []string, stdin string) (string, error)
}

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

var launcherOrder = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectLauncher returns the first picker found in PATH, in priority order:
// rofi, fuzzel, wofi, dmenu.
func DetectLauncher() (string, error) {
	for _, name := range launcherOrder {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no launcher found in PATH (looked for: %s)", strings.Join(launcherOrder, ", "))
}

// NewLauncher creates a launcher by name. "" and "auto" detect one.
func NewLauncher(name string, fuzzyMatching bool) (*Launcher, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectLauncher()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	l := &Launcher{Command: name, fuzzy: fuzzyMatching, run: runCommand}
	switch name {
	case "rofi":
		l.kind = kindRofi
	case "fuzzel":
		l.kind = kindFuzzel
	case "wofi":
		l.kind = kindWofi
	case "dmenu":
		l.kind = kindDmenu
	default:
		return nil, fmt.Errorf("unknown launcher: %q (expected: auto, %s)", name, strings.Join(launcherOrder, ", "))
	}
	return l, nil
}

// indexOutput reports whether the picker prints the row index instead of
// the chosen text.
func (l *Launcher) indexOutput() bool {
	return l.kind == kindRofi || l.kind == kindFuzzel
}

// Pick shows actions and returns the chosen one.
func (l *Launcher) Pick(title string, actions []Action) (Action, error) {
	if len(actions) == 0 {
		return Action{}, fmt.Errorf("palette: no actions to show")
	}
	labels := formatLabels(actions)

	out, err := l.run(l.Command, l.args(title), strings.Join(labels, "\n")+"\n")
	selection := strings.TrimSpace(out)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Action{}, ErrCancelled
		}
		return Action{}, err
	}
	if selection == "" {
		return Action{}, ErrCancelled
	}
	return l.parseSelection(selection, labels, actions)
}

// Show picks an action and runs it. Destructive actions are confirmed with c
// first; a nil c asks through the launcher itself.
func (l *Launcher) Show(title string, actions []Action, c prompt.Confirmer) error {
	a, err := l.Pick(title, actions)
	if err != nil {
		return err
	}
	if a.Destructive {
		if c == nil {
			c = l.Confirmer()
		}
		if !c.Confirm(a.Name, a.Description) {
			return ErrCancelled
		}
	}
	if a.Run == nil {
		return nil
	}
	if err := a.Run(); err != nil {
		return fmt.Errorf("%s: %w", a.ID, err)
	}
	return nil
}

// Confirmer asks yes/no questions through the launcher. "No" is listed first
// so a stray Enter declines.
func (l *Launcher) Confirmer() prompt.Confirmer {
	return prompt.Func(func(title, description string) bool {
		yes := "Yes"
		if description != "" {
			yes += ": " + description
		}
		a, err := l.Pick(title, []Action{
			{ID: "no", Name: "No"},
			{ID: "yes", Name: yes},
		})
		return err == nil && a.ID == "yes"
	})
}

func (l *Launcher) args(title string) []string {
	var args []string
	switch l.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom"}
		if title != "" {
			args = append(args, "-p", title)
		}
		if l.fuzzy {
			args = append(args, "-matching", "fuzzy")
		}
	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if title != "" {
			args = append(args, "--prompt", title)
		}
	case kindWofi:
		args = []string{"--dmenu"}
		if title != "" {
			args = append(args, "--prompt", title)
		}
	case kindDmenu:
		args = []string{"-i"}
		if title != "" {
			args = append(args, "-p", title)
		}
	}
	return args
}

func (l *Launcher) parseSelection(selection string, labels []string, actions []Action) (Action, error) {
	if l.indexOutput() {
		i, err := strconv.Atoi(selection)
		if err != nil || i < 0 || i >= len(actions) {
			return Action{}, fmt.Errorf("%s returned invalid index %q", l.Command, selection)
		}
		return actions[i], nil
	}
	for i, label := range labels {
		if label == selection {
			return actions[i], nil
		}
	}
	return Action{}, fmt.Errorf("%s returned unknown entry %q", l.Command, selection)
}

// formatLabels renders one line per action. Text-matching pickers need
// unique lines, so repeated names get a counter.
func formatLabels(actions []Action) []string {
	labels := make([]string, len(actions))
	seen := make(map[string]int)
	for i, a := range actions {
		label := strings.ReplaceAll(a.Name, "\n", " ")
		if a.Shortcut != "" {
			label += "  [" + a.Shortcut + "]"
		}
		if n := seen[label]; n > 0 {
			seen[label]++
			label = fmt.Sprintf("%s (%d)", label, n+1)
		} else {
			seen[label] = 1
		}
		labels[i] = label
	}
	return labels
}

func runCommand(name string, args []string, stdin string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && !isCancelExit(err) {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return string(out), fmt.Errorf("%s failed: %s", name, msg)
			}
		}
		return string(out), err
	}
	return string(out), nil
}

// isCancelExit matches the exit codes pickers use for Escape and Ctrl+C.
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 1 || code == 130
}

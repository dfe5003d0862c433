package palette

import (
	"errors"
	"testing"

	"github.com/1broseidon/floatwin/internal/hotkeys"
	"github.com/1broseidon/floatwin/internal/prompt"
	"github.com/1broseidon/floatwin/internal/registry"
)

type fakeEngine struct {
	calls   []string
	confirm registry.Confirmer
}

func (f *fakeEngine) OrganizeModals() { f.calls = append(f.calls, "organize") }
func (f *fakeEngine) MinimizeAll()    { f.calls = append(f.calls, "minimize-all") }
func (f *fakeEngine) RestoreAll()     { f.calls = append(f.calls, "restore-all") }
func (f *fakeEngine) FocusNext() string {
	f.calls = append(f.calls, "focus-next")
	return ""
}
func (f *fakeEngine) CloseAll(c registry.Confirmer) bool {
	f.calls = append(f.calls, "close-all")
	f.confirm = c
	return c != nil && c.Confirm("", "")
}

func ids(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.ID
	}
	return out
}

func TestDefaultActions(t *testing.T) {
	eng := &fakeEngine{}
	got := ids(DefaultActions(eng, func() error { return nil }, func() error { return nil }))
	want := []string{"organize", "minimize-all", "restore-all", "focus-next", "close-all", "open-new", "reload"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if n := len(DefaultActions(eng, nil, nil)); n != 5 {
		t.Fatalf("expected opener/reloader entries to be omitted, got %d actions", n)
	}
}

func TestFilteredSubstring(t *testing.T) {
	p := New(DefaultActions(&fakeEngine{}, nil, nil))

	p.SetQuery("ALL")
	got := ids(p.Filtered())
	want := []string{"minimize-all", "restore-all", "close-all"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	// Descriptions are searched too.
	p.SetQuery("grid")
	if got := ids(p.Filtered()); len(got) != 1 || got[0] != "organize" {
		t.Fatalf("expected organize from its description, got %v", got)
	}

	p.SetQuery("zzz")
	if got := p.Filtered(); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
	if err := p.Execute(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestFilteredFuzzy(t *testing.T) {
	p := New(DefaultActions(&fakeEngine{}, nil, nil), WithFuzzy(true))
	p.SetQuery("orgwin")
	got := p.Filtered()
	if len(got) == 0 || got[0].ID != "organize" {
		t.Fatalf("expected organize ranked first, got %v", ids(got))
	}
}

func TestMoveClamps(t *testing.T) {
	p := New(DefaultActions(&fakeEngine{}, nil, nil))
	p.Open()

	p.MoveUp()
	if p.Selected() != 0 {
		t.Fatalf("MoveUp at top should stay at 0, got %d", p.Selected())
	}
	for i := 0; i < 10; i++ {
		p.MoveDown()
	}
	if p.Selected() != 4 {
		t.Fatalf("MoveDown should stop at the last entry, got %d", p.Selected())
	}

	p.SetQuery("min")
	if p.Selected() != 0 {
		t.Fatalf("changing the query should reset the selection")
	}
}

func TestExecuteRunsAndCloses(t *testing.T) {
	eng := &fakeEngine{}
	p := New(DefaultActions(eng, nil, nil))
	p.Open()
	p.SetQuery("organize")

	if err := p.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(eng.calls) != 1 || eng.calls[0] != "organize" {
		t.Fatalf("expected organize to run, got %v", eng.calls)
	}
	if p.IsOpen() {
		t.Fatalf("palette should close after running an action")
	}
}

func TestExecuteDestructiveNeedsConfirmation(t *testing.T) {
	eng := &fakeEngine{}
	rec := &prompt.Recorder{Next: prompt.Static(false)}
	p := New(DefaultActions(eng, nil, nil), WithConfirmer(rec))
	p.Open()
	p.SetQuery("close all")

	if err := p.Execute(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if len(eng.calls) != 0 {
		t.Fatalf("declined action must not run, got %v", eng.calls)
	}
	if !p.IsOpen() {
		t.Fatalf("palette should stay open after a declined action")
	}
	if len(rec.Titles) != 1 || rec.Titles[0] != "Close all windows" {
		t.Fatalf("expected one confirmation prompt, got %v", rec.Titles)
	}

	if err := p.ExecuteWith(prompt.Static(true)); err != nil {
		t.Fatalf("ExecuteWith: %v", err)
	}
	if len(eng.calls) != 1 || eng.calls[0] != "close-all" {
		t.Fatalf("expected close-all to run, got %v", eng.calls)
	}
}

func TestExecuteDestructiveWithoutConfirmer(t *testing.T) {
	p := New(DefaultActions(&fakeEngine{}, nil, nil))
	p.SetQuery("close")
	if err := p.Execute(); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled without a confirmer, got %v", err)
	}
}

func TestExecuteWrapsActionError(t *testing.T) {
	boom := errors.New("boom")
	p := New([]Action{{ID: "x", Name: "X", Run: func() error { return boom }}})
	err := p.Execute()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestHandleKey(t *testing.T) {
	eng := &fakeEngine{}
	p := New(DefaultActions(eng, nil, nil))

	if used, _ := p.HandleKey("o"); used {
		t.Fatalf("closed palette must not consume keys")
	}

	p.Open()
	for _, k := range []string{"r", "e", "s", "x"} {
		if used, err := p.HandleKey(k); !used || err != nil {
			t.Fatalf("key %q: used=%v err=%v", k, used, err)
		}
	}
	if p.Query() != "resx" {
		t.Fatalf("expected query resx, got %q", p.Query())
	}
	p.HandleKey("backspace")
	if p.Query() != "res" {
		t.Fatalf("expected query res after backspace, got %q", p.Query())
	}
	if used, _ := p.HandleKey("ctrl+shift+f5"); used {
		t.Fatalf("multi-rune key names should not be typed")
	}

	if _, err := p.HandleKey("enter"); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if len(eng.calls) != 1 || eng.calls[0] != "restore-all" {
		t.Fatalf("expected restore-all, got %v", eng.calls)
	}

	p.Open()
	if used, err := p.HandleKey("esc"); !used || !errors.Is(err, ErrCancelled) || p.IsOpen() {
		t.Fatalf("escape should close with ErrCancelled, got used=%v err=%v", used, err)
	}
}

func TestToggle(t *testing.T) {
	p := New(nil)
	if !p.Toggle() || !p.IsOpen() {
		t.Fatalf("toggle should open")
	}
	p.SetQuery("x")
	if p.Toggle() || p.IsOpen() || p.Query() != "" {
		t.Fatalf("toggle should close and clear the query")
	}
}

func TestWithShortcuts(t *testing.T) {
	table, err := hotkeys.FromConfig(map[string]string{"organize": "ctrl+o"}, nil)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	actions := WithShortcuts(DefaultActions(&fakeEngine{}, nil, nil), table)
	if actions[0].Shortcut != "ctrl+o" {
		t.Fatalf("expected ctrl+o on organize, got %q", actions[0].Shortcut)
	}
	if actions[1].Shortcut != "" {
		t.Fatalf("unbound action should have no shortcut, got %q", actions[1].Shortcut)
	}
}

package registry

import (
	"testing"

	"github.com/1broseidon/floatwin/internal/placement"
)

func TestDispatch_RoutesCommands(t *testing.T) {
	r, _ := newTestRegistry(t)

	res := r.Dispatch(OpenCmd{Spec: OpenSpec{Title: "A"}})
	if !res.Applied || res.WindowID == "" {
		t.Fatalf("expected open to apply, got %+v", res)
	}
	id := res.WindowID

	pos := placement.Point{X: 100, Y: 100}
	steps := []Command{
		UpdateCmd{ID: id, Patch: Patch{Position: &pos}},
		MaximizeCmd{ID: id},
		MaximizeCmd{ID: id},
		MinimizeCmd{ID: id},
		RestoreCmd{ID: id},
		FocusCmd{ID: id},
		ConvertToTaskCmd{ID: id},
		CompleteTaskCmd{ID: id},
	}
	for _, cmd := range steps {
		if res := r.Dispatch(cmd); !res.Applied {
			t.Fatalf("%s: expected applied", cmd.Name())
		}
	}

	w := mustWindow(t, r, id)
	if w.Position != pos || w.IsMinimized || w.IsMaximized {
		t.Fatalf("unexpected state after dispatch sequence: %+v", w)
	}
	if w.Task == nil || w.Task.Status != TaskCompleted {
		t.Fatalf("expected completed task, got %+v", w.Task)
	}
}

func TestDispatch_UnknownIDNotApplied(t *testing.T) {
	r, _ := newTestRegistry(t)
	for _, cmd := range []Command{
		CloseCmd{ID: "ghost"},
		MinimizeCmd{ID: "ghost"},
		FocusCmd{ID: "ghost"},
		RemoveFromStackCmd{WindowID: "ghost"},
	} {
		if res := r.Dispatch(cmd); res.Applied {
			t.Fatalf("%s: expected not applied", cmd.Name())
		}
	}
}

func TestDispatch_Stacks(t *testing.T) {
	r, _ := newTestRegistry(t)
	id := r.Open(OpenSpec{})

	created := r.Dispatch(CreateStackCmd{Label: "Inbox", GroupBy: "bogus"})
	st, ok := r.Stack(created.StackID)
	if !ok || st.GroupBy != GroupCreated {
		t.Fatalf("expected stack with fallback grouping, got %+v", st)
	}
	if st.Name != "Inbox" {
		t.Fatalf("expected stack named from the command label, got %q", st.Name)
	}

	if res := r.Dispatch(AddToStackCmd{WindowID: id, StackID: "missing"}); res.Applied {
		t.Fatalf("adding to a missing stack should not apply")
	}
	if res := r.Dispatch(AddToStackCmd{WindowID: id, StackID: created.StackID}); !res.Applied {
		t.Fatalf("expected add to apply")
	}
	if mustWindow(t, r, id).StackID != created.StackID {
		t.Fatalf("expected membership recorded")
	}
}

func TestDispatch_CloseAllHonoursConfirmer(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.Dispatch(OpenCmd{})

	if res := r.Dispatch(CloseAllCmd{Confirm: staticConfirm(false)}); res.Applied {
		t.Fatalf("declined close all should not apply")
	}
	if res := r.Dispatch(CloseAllCmd{Confirm: staticConfirm(true)}); !res.Applied {
		t.Fatalf("confirmed close all should apply")
	}
	if r.Len() != 0 {
		t.Fatalf("expected no windows")
	}
}

func TestDispatch_FocusNextOnEmptyRegistry(t *testing.T) {
	r, _ := newTestRegistry(t)
	if res := r.Dispatch(FocusNextCmd{}); res.Applied {
		t.Fatalf("expected nothing to focus")
	}
}

package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/registry"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	n := 0
	reg := registry.New(config.DefaultConfig(),
		registry.WithClock(func() time.Time { return testNow }),
		registry.WithViewport(placement.Size{Width: 1920, Height: 1080}),
		registry.WithIDGenerator(func(prefix string) string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
	)
	return NewServer(reg, nil)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func openWindow(t *testing.T, s *Server, args OpenWindowInput) WindowInfo {
	t.Helper()
	_, out, err := s.handleOpenWindow(context.Background(), nil, args)
	if err != nil {
		t.Fatalf("open_window: %v", err)
	}
	return out.Window
}

func TestOpenWindow_PlacesAndSizes(t *testing.T) {
	s := newTestServer(t)

	first := openWindow(t, s, OpenWindowInput{Title: "Notes"})
	if first.X != 20 || first.Y != 20 || first.Width != 500 || first.Height != 500 {
		t.Fatalf("unexpected first window geometry: %+v", first)
	}
	if !first.IsActive {
		t.Fatalf("newly opened window should be active")
	}

	second := openWindow(t, s, OpenWindowInput{Title: "Mail", Size: "small"})
	if second.Width != 400 || second.Height != 300 {
		t.Fatalf("expected small preset, got %dx%d", second.Width, second.Height)
	}
	if second.X == first.X && second.Y == first.Y {
		t.Fatalf("second window stacked on the first: %+v", second)
	}

	explicit := openWindow(t, s, OpenWindowInput{Title: "X", X: intPtr(5), Y: intPtr(6), Width: intPtr(100), Height: intPtr(80)})
	if explicit.X != 5 || explicit.Y != 6 || explicit.Width != 100 || explicit.Height != 80 {
		t.Fatalf("explicit geometry ignored: %+v", explicit)
	}
}

func TestOpenWindow_RejectsHalfGeometry(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		args OpenWindowInput
	}{
		{"width only", OpenWindowInput{Title: "a", Width: intPtr(10)}},
		{"y only", OpenWindowInput{Title: "a", Y: intPtr(10)}},
		{"zero size", OpenWindowInput{Title: "a", Width: intPtr(0), Height: intPtr(10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.handleOpenWindow(context.Background(), nil, tt.args); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if s.Registry().Len() != 0 {
		t.Fatalf("rejected opens must not create windows")
	}
}

func TestWindowTools_UnknownIDIsError(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	args := WindowIDInput{ID: "win-404"}

	handlers := map[string]func() error{
		"close":    func() error { _, _, err := s.handleCloseWindow(ctx, nil, args); return err },
		"minimize": func() error { _, _, err := s.handleMinimizeWindow(ctx, nil, args); return err },
		"maximize": func() error { _, _, err := s.handleMaximizeWindow(ctx, nil, args); return err },
		"restore":  func() error { _, _, err := s.handleRestoreWindow(ctx, nil, args); return err },
		"focus":    func() error { _, _, err := s.handleFocusWindow(ctx, nil, args); return err },
		"complete": func() error { _, _, err := s.handleCompleteTask(ctx, nil, args); return err },
	}
	for name, fn := range handlers {
		err := fn()
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("%s: expected not found error, got %v", name, err)
		}
	}
}

func TestMaximizeAndMinimize(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	w := openWindow(t, s, OpenWindowInput{Title: "A"})

	_, out, err := s.handleMaximizeWindow(ctx, nil, WindowIDInput{ID: w.ID})
	if err != nil {
		t.Fatalf("maximize: %v", err)
	}
	if !out.Window.IsMaximized || out.Window.X != 20 || out.Window.Width != 1880 {
		t.Fatalf("unexpected maximized window: %+v", out.Window)
	}

	_, out, err = s.handleMinimizeWindow(ctx, nil, WindowIDInput{ID: w.ID})
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if !out.Window.IsMinimized || out.Window.IsMaximized {
		t.Fatalf("minimize should clear maximize: %+v", out.Window)
	}
	if out.Window.Width != 500 || out.Window.Height != 500 {
		t.Fatalf("minimize should restore original geometry, got %dx%d", out.Window.Width, out.Window.Height)
	}

	_, out, err = s.handleRestoreWindow(ctx, nil, WindowIDInput{ID: w.ID})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if out.Window.IsMinimized || !out.Window.IsActive {
		t.Fatalf("restore should show and focus the window: %+v", out.Window)
	}
}

func TestUpdateWindow(t *testing.T) {
	s := newTestServer(t)
	w := openWindow(t, s, OpenWindowInput{Title: "A"})

	_, out, err := s.handleUpdateWindow(context.Background(), nil, UpdateWindowInput{
		ID:      w.ID,
		Title:   strPtr("Renamed"),
		Content: strPtr("hello"),
		X:       intPtr(300),
		Y:       intPtr(200),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Window.Title != "Renamed" || out.Window.Content != "hello" {
		t.Fatalf("patch not applied: %+v", out.Window)
	}
	if out.Window.X != 300 || out.Window.Y != 200 || out.Window.Width != 500 {
		t.Fatalf("unexpected geometry after update: %+v", out.Window)
	}

	if _, _, err := s.handleUpdateWindow(context.Background(), nil, UpdateWindowInput{ID: w.ID, Width: intPtr(10)}); err == nil {
		t.Fatalf("expected error for width without height")
	}
}

func TestCloseWindow(t *testing.T) {
	s := newTestServer(t)
	w := openWindow(t, s, OpenWindowInput{Title: "A"})

	_, out, err := s.handleCloseWindow(context.Background(), nil, WindowIDInput{ID: w.ID})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if out.Window.ID != w.ID {
		t.Fatalf("expected closed id echoed, got %+v", out.Window)
	}
	if s.Registry().Len() != 0 {
		t.Fatalf("window still registered")
	}
}

func TestCloseAll_RequiresConfirm(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	openWindow(t, s, OpenWindowInput{Title: "A"})
	openWindow(t, s, OpenWindowInput{Title: "B"})

	if _, _, err := s.handleCloseAll(ctx, nil, CloseAllInput{}); err == nil {
		t.Fatalf("expected close_all without confirm to fail")
	}
	if s.Registry().Len() != 2 {
		t.Fatalf("unconfirmed close_all removed windows")
	}

	_, out, err := s.handleCloseAll(ctx, nil, CloseAllInput{Confirm: true})
	if err != nil {
		t.Fatalf("close_all: %v", err)
	}
	if out.Count != 2 || s.Registry().Len() != 0 {
		t.Fatalf("expected 2 closed, got count=%d remaining=%d", out.Count, s.Registry().Len())
	}
}

func TestBulkTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	for _, title := range []string{"A", "B", "C"} {
		openWindow(t, s, OpenWindowInput{Title: title, Size: "small"})
	}

	_, count, _ := s.handleMinimizeAll(ctx, nil, EmptyInput{})
	if count.Count != 3 || len(s.Registry().Visible()) != 0 {
		t.Fatalf("minimize_all: count=%d visible=%d", count.Count, len(s.Registry().Visible()))
	}
	_, count, _ = s.handleRestoreAll(ctx, nil, EmptyInput{})
	if count.Count != 3 || len(s.Registry().Visible()) != 3 {
		t.Fatalf("restore_all: count=%d visible=%d", count.Count, len(s.Registry().Visible()))
	}

	_, count, _ = s.handleOrganize(ctx, nil, EmptyInput{})
	if count.Count != 3 {
		t.Fatalf("organize count = %d", count.Count)
	}
	_, list, err := s.handleListWindows(ctx, nil, ListWindowsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int{20, 540, 1060}
	for i, w := range list.Windows {
		if w.X != want[i] || w.Y != 20 || w.Width != 500 {
			t.Errorf("window %d not on the grid: %+v", i, w)
		}
	}
	if list.Viewport.Width != 1920 || list.Viewport.Height != 1080 {
		t.Errorf("unexpected viewport %+v", list.Viewport)
	}
}

func TestStackTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	a := openWindow(t, s, OpenWindowInput{Title: "A", Kind: "note"})
	b := openWindow(t, s, OpenWindowInput{Title: "B", Kind: "mail"})

	if _, _, err := s.handleCreateStack(ctx, nil, CreateStackInput{Name: "x", GroupBy: "colour"}); err == nil {
		t.Fatalf("expected unknown group_by to fail")
	}
	_, created, err := s.handleCreateStack(ctx, nil, CreateStackInput{Name: "Inbox"})
	if err != nil {
		t.Fatalf("create_stack: %v", err)
	}
	if created.Stack.GroupBy != "created" {
		t.Fatalf("expected default grouping, got %q", created.Stack.GroupBy)
	}

	_, added, err := s.handleAddToStack(ctx, nil, AddToStackInput{WindowID: a.ID, StackID: created.Stack.ID})
	if err != nil {
		t.Fatalf("add_to_stack: %v", err)
	}
	if len(added.Stack.WindowIDs) != 1 || added.Stack.WindowIDs[0] != a.ID {
		t.Fatalf("unexpected members %v", added.Stack.WindowIDs)
	}
	if _, _, err := s.handleAddToStack(ctx, nil, AddToStackInput{WindowID: a.ID, StackID: "stack-404"}); err == nil {
		t.Fatalf("expected unknown stack to fail")
	}

	_, list, err := s.handleListWindows(ctx, nil, ListWindowsInput{StackID: created.Stack.ID})
	if err != nil {
		t.Fatalf("list by stack: %v", err)
	}
	if len(list.Windows) != 1 || list.Windows[0].StackID != created.Stack.ID {
		t.Fatalf("stack filter returned %+v", list.Windows)
	}

	_, removed, err := s.handleRemoveFromStack(ctx, nil, RemoveFromStackInput{WindowID: a.ID})
	if err != nil {
		t.Fatalf("remove_from_stack: %v", err)
	}
	if removed.Window.StackID != "" {
		t.Fatalf("window still stacked: %+v", removed.Window)
	}

	_, grouped, err := s.handleGroupIntoStacks(ctx, nil, GroupIntoStacksInput{GroupBy: "type"})
	if err != nil {
		t.Fatalf("group_into_stacks: %v", err)
	}
	if len(grouped.Stacks) != 2 || grouped.Stacks[0].Name != "mail" || grouped.Stacks[1].Name != "note" {
		t.Fatalf("unexpected groups %+v", grouped.Stacks)
	}
	if grouped.Stacks[0].WindowIDs[0] != b.ID {
		t.Fatalf("mail stack should hold B, got %v", grouped.Stacks[0].WindowIDs)
	}
}

func TestTaskTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	w := openWindow(t, s, OpenWindowInput{Title: "Report"})

	if _, _, err := s.handleCompleteTask(ctx, nil, WindowIDInput{ID: w.ID}); err == nil {
		t.Fatalf("expected complete_task on a plain window to fail")
	}

	_, out, err := s.handleConvertToTask(ctx, nil, ConvertToTaskInput{ID: w.ID, Assignee: "sam"})
	if err != nil {
		t.Fatalf("convert_to_task: %v", err)
	}
	task := out.Window.Task
	if task == nil || task.Status != "pending" || task.Priority != "medium" || task.Assignee != "sam" {
		t.Fatalf("unexpected task defaults: %+v", task)
	}
	if !task.DueDate.Equal(testNow.Add(24 * time.Hour)) {
		t.Fatalf("expected due date one day out, got %v", task.DueDate)
	}

	_, out, err = s.handleCompleteTask(ctx, nil, WindowIDInput{ID: w.ID})
	if err != nil {
		t.Fatalf("complete_task: %v", err)
	}
	if out.Window.Task.Status != "completed" || out.Window.Task.CompletedAt == nil {
		t.Fatalf("task not completed: %+v", out.Window.Task)
	}
}

func TestTaskFields(t *testing.T) {
	tests := []struct {
		name    string
		in      ConvertToTaskInput
		wantErr bool
		check   func(registry.TaskFields) bool
	}{
		{"defaults", ConvertToTaskInput{}, false, func(f registry.TaskFields) bool {
			return f.Status == "" && f.Priority == "" && f.DueDate.IsZero()
		}},
		{"explicit", ConvertToTaskInput{Status: "In-Progress", Priority: "URGENT", DueDate: "2026-04-01T12:00:00Z"}, false, func(f registry.TaskFields) bool {
			return f.Status == registry.TaskInProgress && f.Priority == "urgent" &&
				f.DueDate.Equal(time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC))
		}},
		{"bad status", ConvertToTaskInput{Status: "blocked"}, true, nil},
		{"bad priority", ConvertToTaskInput{Priority: "p0"}, true, nil},
		{"bad date", ConvertToTaskInput{DueDate: "tomorrow"}, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := taskFields(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(got) {
				t.Fatalf("unexpected fields %+v", got)
			}
		})
	}
}

func TestListWindows_UnknownStack(t *testing.T) {
	s := newTestServer(t)
	if _, _, err := s.handleListWindows(context.Background(), nil, ListWindowsInput{StackID: "nope"}); err == nil {
		t.Fatalf("expected error")
	}
}

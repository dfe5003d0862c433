package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/prompt"
	"github.com/1broseidon/floatwin/internal/registry"
)

func (s *Server) dispatch(cmd registry.Command) registry.Result {
	res := s.reg.Dispatch(cmd)
	s.logger.Debug("mcp dispatch", "command", cmd.Name(), "applied", res.Applied, "window", res.WindowID, "stack", res.StackID)
	return res
}

func (s *Server) window(id string) (WindowInfo, error) {
	w, ok := s.reg.Window(id)
	if !ok {
		return WindowInfo{}, fmt.Errorf("window %q not found", id)
	}
	return windowInfo(w, s.reg.ActiveID()), nil
}

// onWindow dispatches a single-window command and returns the updated window.
func (s *Server) onWindow(id string, cmd registry.Command) (*mcpsdk.CallToolResult, WindowOutput, error) {
	if strings.TrimSpace(id) == "" {
		return nil, WindowOutput{}, fmt.Errorf("id is required")
	}
	if res := s.dispatch(cmd); !res.Applied {
		return nil, WindowOutput{}, fmt.Errorf("window %q not found", id)
	}
	// Close leaves nothing to report.
	if _, ok := cmd.(registry.CloseCmd); ok {
		return nil, WindowOutput{Window: WindowInfo{ID: id}}, nil
	}
	info, err := s.window(id)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{Window: info}, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	spec := registry.OpenSpec{
		Title: args.Title,
		Icon:  args.Icon,
		Kind:  args.Kind,
		Size:  args.Size,
	}
	if args.Content != "" {
		spec.Content = args.Content
	}
	switch {
	case args.Width != nil && args.Height != nil:
		if *args.Width <= 0 || *args.Height <= 0 {
			return nil, WindowOutput{}, fmt.Errorf("width and height must be > 0")
		}
		spec.Dimensions = &placement.Size{Width: *args.Width, Height: *args.Height}
	case args.Width != nil || args.Height != nil:
		return nil, WindowOutput{}, fmt.Errorf("width and height must be given together")
	}
	switch {
	case args.X != nil && args.Y != nil:
		spec.Position = &placement.Point{X: *args.X, Y: *args.Y}
	case args.X != nil || args.Y != nil:
		return nil, WindowOutput{}, fmt.Errorf("x and y must be given together")
	}

	res := s.dispatch(registry.OpenCmd{Spec: spec})
	info, err := s.window(res.WindowID)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return nil, WindowOutput{Window: info}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.onWindow(args.ID, registry.CloseCmd{ID: args.ID})
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.onWindow(args.ID, registry.MinimizeCmd{ID: args.ID})
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.onWindow(args.ID, registry.MaximizeCmd{ID: args.ID})
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.onWindow(args.ID, registry.RestoreCmd{ID: args.ID})
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.onWindow(args.ID, registry.FocusCmd{ID: args.ID})
}

func (s *Server) handleUpdateWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args UpdateWindowInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	patch := registry.Patch{
		Title: args.Title,
		Icon:  args.Icon,
		Kind:  args.Kind,
	}
	if args.Content != nil {
		patch.Content = *args.Content
	}
	switch {
	case args.X != nil && args.Y != nil:
		patch.Position = &placement.Point{X: *args.X, Y: *args.Y}
	case args.X != nil || args.Y != nil:
		return nil, WindowOutput{}, fmt.Errorf("x and y must be given together")
	}
	switch {
	case args.Width != nil && args.Height != nil:
		if *args.Width <= 0 || *args.Height <= 0 {
			return nil, WindowOutput{}, fmt.Errorf("width and height must be > 0")
		}
		patch.Dimensions = &placement.Size{Width: *args.Width, Height: *args.Height}
	case args.Width != nil || args.Height != nil:
		return nil, WindowOutput{}, fmt.Errorf("width and height must be given together")
	}
	return s.onWindow(args.ID, registry.UpdateCmd{ID: args.ID, Patch: patch})
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	var out ListWindowsOutput
	active := s.reg.ActiveID()
	out.ActiveID = active

	var members map[string]bool
	if args.StackID != "" {
		st, ok := s.reg.Stack(args.StackID)
		if !ok {
			return nil, ListWindowsOutput{}, fmt.Errorf("stack %q not found", args.StackID)
		}
		members = make(map[string]bool, len(st.WindowIDs))
		for _, id := range st.WindowIDs {
			members[id] = true
		}
	}

	out.Windows = []WindowInfo{}
	for _, w := range s.reg.Windows() {
		if members != nil && !members[w.ID] {
			continue
		}
		out.Windows = append(out.Windows, windowInfo(w, active))
	}
	out.Stacks = []StackInfo{}
	for _, st := range s.reg.Stacks() {
		out.Stacks = append(out.Stacks, stackInfo(st))
	}
	vp := placement.ViewportOrDefault(s.reg.Viewport())
	out.Viewport.Width = vp.Width
	out.Viewport.Height = vp.Height
	return nil, out, nil
}

func (s *Server) handleOrganize(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, CountOutput, error) {
	s.dispatch(registry.OrganizeCmd{})
	return nil, CountOutput{Count: s.reg.Len()}, nil
}

func (s *Server) handleMinimizeAll(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, CountOutput, error) {
	n := len(s.reg.Visible())
	s.dispatch(registry.MinimizeAllCmd{})
	return nil, CountOutput{Count: n}, nil
}

func (s *Server) handleRestoreAll(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, CountOutput, error) {
	n := s.reg.Len() - len(s.reg.Visible())
	s.dispatch(registry.RestoreAllCmd{})
	return nil, CountOutput{Count: n}, nil
}

func (s *Server) handleCloseAll(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseAllInput) (*mcpsdk.CallToolResult, CountOutput, error) {
	if !args.Confirm {
		return nil, CountOutput{}, fmt.Errorf("close_all requires confirm: true")
	}
	n := s.reg.Len()
	if res := s.dispatch(registry.CloseAllCmd{Confirm: prompt.Static(true)}); !res.Applied {
		n = 0
	}
	return nil, CountOutput{Count: n}, nil
}

func (s *Server) handleCreateStack(_ context.Context, _ *mcpsdk.CallToolRequest, args CreateStackInput) (*mcpsdk.CallToolResult, StackOutput, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, StackOutput{}, fmt.Errorf("name is required")
	}
	groupBy := registry.GroupCreated
	if args.GroupBy != "" {
		g, ok := registry.ParseGroupBy(args.GroupBy)
		if !ok {
			return nil, StackOutput{}, fmt.Errorf("unknown group_by %q (want created, type, responsible or priority)", args.GroupBy)
		}
		groupBy = g
	}
	res := s.dispatch(registry.CreateStackCmd{Label: name, GroupBy: groupBy})
	st, ok := s.reg.Stack(res.StackID)
	if !ok {
		return nil, StackOutput{}, fmt.Errorf("stack %q vanished", res.StackID)
	}
	return nil, StackOutput{Stack: stackInfo(st)}, nil
}

func (s *Server) handleGroupIntoStacks(_ context.Context, _ *mcpsdk.CallToolRequest, args GroupIntoStacksInput) (*mcpsdk.CallToolResult, StacksOutput, error) {
	groupBy, ok := registry.ParseGroupBy(args.GroupBy)
	if !ok {
		return nil, StacksOutput{}, fmt.Errorf("unknown group_by %q (want created, type, responsible or priority)", args.GroupBy)
	}
	out := StacksOutput{Stacks: []StackInfo{}}
	for _, id := range s.reg.GroupIntoStacks(groupBy) {
		if st, ok := s.reg.Stack(id); ok {
			out.Stacks = append(out.Stacks, stackInfo(st))
		}
	}
	return nil, out, nil
}

func (s *Server) handleAddToStack(_ context.Context, _ *mcpsdk.CallToolRequest, args AddToStackInput) (*mcpsdk.CallToolResult, StackOutput, error) {
	if _, ok := s.reg.Stack(args.StackID); !ok {
		return nil, StackOutput{}, fmt.Errorf("stack %q not found", args.StackID)
	}
	if res := s.dispatch(registry.AddToStackCmd{WindowID: args.WindowID, StackID: args.StackID}); !res.Applied {
		return nil, StackOutput{}, fmt.Errorf("window %q not found", args.WindowID)
	}
	st, _ := s.reg.Stack(args.StackID)
	return nil, StackOutput{Stack: stackInfo(st)}, nil
}

func (s *Server) handleRemoveFromStack(_ context.Context, _ *mcpsdk.CallToolRequest, args RemoveFromStackInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	return s.onWindow(args.WindowID, registry.RemoveFromStackCmd{WindowID: args.WindowID})
}

func (s *Server) handleConvertToTask(_ context.Context, _ *mcpsdk.CallToolRequest, args ConvertToTaskInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	fields, err := taskFields(args)
	if err != nil {
		return nil, WindowOutput{}, err
	}
	return s.onWindow(args.ID, registry.ConvertToTaskCmd{ID: args.ID, Fields: fields})
}

func (s *Server) handleCompleteTask(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowIDInput) (*mcpsdk.CallToolResult, WindowOutput, error) {
	w, ok := s.reg.Window(args.ID)
	if !ok {
		return nil, WindowOutput{}, fmt.Errorf("window %q not found", args.ID)
	}
	if w.Task == nil {
		return nil, WindowOutput{}, fmt.Errorf("window %q is not a task; call convert_to_task first", args.ID)
	}
	return s.onWindow(args.ID, registry.CompleteTaskCmd{ID: args.ID})
}

func taskFields(args ConvertToTaskInput) (registry.TaskFields, error) {
	fields := registry.TaskFields{Assignee: strings.TrimSpace(args.Assignee)}

	switch status := registry.TaskStatus(strings.ToLower(strings.TrimSpace(args.Status))); status {
	case "", registry.TaskPending, registry.TaskInProgress, registry.TaskCompleted:
		fields.Status = status
	default:
		return fields, fmt.Errorf("unknown status %q (want pending, in-progress or completed)", args.Status)
	}

	switch priority := strings.ToLower(strings.TrimSpace(args.Priority)); priority {
	case "", "low", "medium", "high", "urgent":
		fields.Priority = priority
	default:
		return fields, fmt.Errorf("unknown priority %q (want low, medium, high or urgent)", args.Priority)
	}

	if args.DueDate != "" {
		due, err := time.Parse(time.RFC3339, args.DueDate)
		if err != nil {
			return fields, fmt.Errorf("invalid due_date: %w", err)
		}
		fields.DueDate = due
	}
	return fields, nil
}

package mcp

import (
	"time"

	"github.com/1broseidon/floatwin/internal/registry"
)

// WindowInfo is the wire form of a window.
type WindowInfo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Icon        string    `json:"icon,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	Content     string    `json:"content,omitempty"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	ZIndex      int       `json:"z_index"`
	IsMinimized bool      `json:"is_minimized"`
	IsMaximized bool      `json:"is_maximized"`
	IsActive    bool      `json:"is_active"`
	StackID     string    `json:"stack_id,omitempty"`
	OpenedAt    time.Time `json:"opened_at"`
	AccessCount int       `json:"access_count"`
	Task        *TaskInfo `json:"task,omitempty"`
}

// TaskInfo is the wire form of a window's task metadata.
type TaskInfo struct {
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     time.Time  `json:"due_date"`
	Assignee    string     `json:"assignee,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StackInfo is the wire form of a stack.
type StackInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	GroupBy   string   `json:"group_by"`
	WindowIDs []string `json:"window_ids"`
}

func windowInfo(w registry.Window, activeID string) WindowInfo {
	info := WindowInfo{
		ID:          w.ID,
		Title:       w.Title,
		Icon:        w.Icon,
		Kind:        w.Kind,
		X:           w.Position.X,
		Y:           w.Position.Y,
		Width:       w.Dimensions.Width,
		Height:      w.Dimensions.Height,
		ZIndex:      w.ZIndex,
		IsMinimized: w.IsMinimized,
		IsMaximized: w.IsMaximized,
		IsActive:    w.ID == activeID,
		StackID:     w.StackID,
		OpenedAt:    w.OpenedAt,
		AccessCount: w.AccessCount,
	}
	if s, ok := w.Content.(string); ok {
		info.Content = s
	}
	if t := w.Task; t != nil {
		info.Task = &TaskInfo{
			Status:      string(t.Status),
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			Assignee:    t.Assignee,
			CompletedAt: t.CompletedAt,
		}
	}
	return info
}

func stackInfo(s registry.Stack) StackInfo {
	return StackInfo{
		ID:        s.ID,
		Name:      s.Name,
		GroupBy:   string(s.GroupBy),
		WindowIDs: s.WindowIDs,
	}
}

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	Title   string `json:"title" jsonschema:"required,Window title"`
	Icon    string `json:"icon,omitempty" jsonschema:"Optional icon name shown before the title"`
	Kind    string `json:"kind,omitempty" jsonschema:"Optional window type, used when grouping stacks by type"`
	Content string `json:"content,omitempty" jsonschema:"Text rendered inside the window"`
	Size    string `json:"size,omitempty" jsonschema:"Size preset: small, medium, large, extra-large or full. Ignored when width and height are given."`
	Width   *int   `json:"width,omitempty" jsonschema:"Explicit width in px"`
	Height  *int   `json:"height,omitempty" jsonschema:"Explicit height in px"`
	X       *int   `json:"x,omitempty" jsonschema:"Explicit x position in px. Omit x and y to use the next free position."`
	Y       *int   `json:"y,omitempty" jsonschema:"Explicit y position in px"`
}

// WindowOutput returns one window.
type WindowOutput struct {
	Window WindowInfo `json:"window"`
}

// WindowIDInput targets one window.
type WindowIDInput struct {
	ID string `json:"id" jsonschema:"required,Window id as returned by open_window or list_windows"`
}

// UpdateWindowInput is the input for the update_window tool.
type UpdateWindowInput struct {
	ID      string  `json:"id" jsonschema:"required,Window id"`
	Title   *string `json:"title,omitempty" jsonschema:"New title"`
	Icon    *string `json:"icon,omitempty" jsonschema:"New icon"`
	Kind    *string `json:"kind,omitempty" jsonschema:"New window type"`
	Content *string `json:"content,omitempty" jsonschema:"New content text"`
	X       *int    `json:"x,omitempty" jsonschema:"New x position in px (requires y)"`
	Y       *int    `json:"y,omitempty" jsonschema:"New y position in px (requires x)"`
	Width   *int    `json:"width,omitempty" jsonschema:"New width in px (requires height)"`
	Height  *int    `json:"height,omitempty" jsonschema:"New height in px (requires width)"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	StackID string `json:"stack_id,omitempty" jsonschema:"Only list windows in this stack"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows  []WindowInfo `json:"windows"`
	Stacks   []StackInfo  `json:"stacks"`
	ActiveID string       `json:"active_id,omitempty"`
	Viewport struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"viewport"`
}

// EmptyInput is used by tools without arguments.
type EmptyInput struct{}

// CountOutput reports how many windows a bulk tool touched.
type CountOutput struct {
	Count int `json:"count"`
}

// CloseAllInput is the input for the close_all tool.
type CloseAllInput struct {
	Confirm bool `json:"confirm" jsonschema:"required,Must be true. Closing every window cannot be undone."`
}

// CreateStackInput is the input for the create_stack tool.
type CreateStackInput struct {
	Name    string `json:"name" jsonschema:"required,Stack name"`
	GroupBy string `json:"group_by,omitempty" jsonschema:"Grouping criterion: created, type, responsible or priority (default: created)"`
}

// StackOutput returns one stack.
type StackOutput struct {
	Stack StackInfo `json:"stack"`
}

// GroupIntoStacksInput is the input for the group_into_stacks tool.
type GroupIntoStacksInput struct {
	GroupBy string `json:"group_by" jsonschema:"required,Grouping criterion: created, type, responsible or priority"`
}

// StacksOutput returns several stacks.
type StacksOutput struct {
	Stacks []StackInfo `json:"stacks"`
}

// AddToStackInput is the input for the add_to_stack tool.
type AddToStackInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Window id"`
	StackID  string `json:"stack_id" jsonschema:"required,Stack id"`
}

// RemoveFromStackInput is the input for the remove_from_stack tool.
type RemoveFromStackInput struct {
	WindowID string `json:"window_id" jsonschema:"required,Window id"`
}

// ConvertToTaskInput is the input for the convert_to_task tool.
type ConvertToTaskInput struct {
	ID       string `json:"id" jsonschema:"required,Window id"`
	Status   string `json:"status,omitempty" jsonschema:"pending, in-progress or completed (default: pending)"`
	Priority string `json:"priority,omitempty" jsonschema:"low, medium, high or urgent (default from config)"`
	DueDate  string `json:"due_date,omitempty" jsonschema:"RFC 3339 due date (default: now plus task_default_due)"`
	Assignee string `json:"assignee,omitempty" jsonschema:"Responsible person"`
}

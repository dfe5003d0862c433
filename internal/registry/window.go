package registry

import (
	"time"

	"github.com/1broseidon/floatwin/internal/placement"
)

// Window is one managed panel. Values handed out by the Registry are copies;
// mutate through Registry operations only.
type Window struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Icon    string `json:"icon,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Content any    `json:"content,omitempty"`

	Position   placement.Point `json:"position"`
	Dimensions placement.Size  `json:"dimensions"`

	// Saved geometry from before maximizing; nil unless IsMaximized.
	OriginalDimensions *placement.Size  `json:"original_dimensions,omitempty"`
	OriginalPosition   *placement.Point `json:"original_position,omitempty"`

	ZIndex      int    `json:"z_index"`
	IsMinimized bool   `json:"is_minimized"`
	IsMaximized bool   `json:"is_maximized"`
	StackID     string `json:"stack_id,omitempty"`

	OpenedAt       time.Time `json:"opened_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	AccessCount    int       `json:"access_count"`

	Task *TaskInfo `json:"task,omitempty"`
}

// Rect returns the window's current footprint.
func (w Window) Rect() placement.Rect {
	return placement.RectOf(w.Position, w.Dimensions)
}

func (w *Window) clone() Window {
	out := *w
	if w.OriginalDimensions != nil {
		d := *w.OriginalDimensions
		out.OriginalDimensions = &d
	}
	if w.OriginalPosition != nil {
		p := *w.OriginalPosition
		out.OriginalPosition = &p
	}
	if w.Task != nil {
		t := *w.Task
		out.Task = &t
	}
	return out
}

// TaskStatus is the lifecycle of a window converted to a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// TaskInfo is the optional task metadata attached by ConvertToTask.
type TaskInfo struct {
	Status      TaskStatus `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     time.Time  `json:"due_date"`
	Assignee    string     `json:"assignee,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskFields are the caller-supplied values for ConvertToTask. Zero values
// take the configured defaults.
type TaskFields struct {
	Status   TaskStatus
	Priority string
	DueDate  time.Time
	Assignee string
}

// OpenSpec describes a window to open.
type OpenSpec struct {
	Title   string
	Icon    string
	Kind    string
	Content any

	// Size names a preset (small, medium, large, extra-large, full).
	// Dimensions wins when both are set.
	Size       string
	Dimensions *placement.Size
	Position   *placement.Point
}

// Patch is a shallow update; nil fields are left alone.
type Patch struct {
	Title      *string
	Icon       *string
	Kind       *string
	Content    any
	Position   *placement.Point
	Dimensions *placement.Size
}

func (p Patch) empty() bool {
	return p.Title == nil && p.Icon == nil && p.Kind == nil && p.Content == nil &&
		p.Position == nil && p.Dimensions == nil
}

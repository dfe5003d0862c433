package registry

import (
	"fmt"

	"github.com/1broseidon/floatwin/internal/placement"
)

// Command is a request to mutate the registry. Input layers (pointer, keys,
// palette, MCP) build commands; Dispatch is the single entry point.
type Command interface {
	Name() string
}

type (
	OpenCmd   struct{ Spec OpenSpec }
	CloseCmd  struct{ ID string }
	UpdateCmd struct {
		ID    string
		Patch Patch
	}
	MinimizeCmd    struct{ ID string }
	MaximizeCmd    struct{ ID string }
	RestoreCmd     struct{ ID string }
	FocusCmd       struct{ ID string }
	FocusNextCmd   struct{ Reverse bool }
	FocusDirCmd    struct{ Dir placement.Direction }
	OrganizeCmd    struct{}
	MinimizeAllCmd struct{}
	RestoreAllCmd  struct{}
	CloseAllCmd    struct{ Confirm Confirmer }
	CreateStackCmd struct {
		Label   string
		GroupBy GroupBy
	}
	AddToStackCmd struct {
		WindowID string
		StackID  string
	}
	RemoveFromStackCmd struct{ WindowID string }
	ConvertToTaskCmd   struct {
		ID     string
		Fields TaskFields
	}
	CompleteTaskCmd struct{ ID string }
)

func (OpenCmd) Name() string            { return "open" }
func (CloseCmd) Name() string           { return "close" }
func (UpdateCmd) Name() string          { return "update" }
func (MinimizeCmd) Name() string        { return "minimize" }
func (MaximizeCmd) Name() string        { return "maximize" }
func (RestoreCmd) Name() string         { return "restore" }
func (FocusCmd) Name() string           { return "focus" }
func (FocusNextCmd) Name() string       { return "focus-next" }
func (FocusDirCmd) Name() string        { return "focus-direction" }
func (OrganizeCmd) Name() string        { return "organize" }
func (MinimizeAllCmd) Name() string     { return "minimize-all" }
func (RestoreAllCmd) Name() string      { return "restore-all" }
func (CloseAllCmd) Name() string        { return "close-all" }
func (CreateStackCmd) Name() string     { return "create-stack" }
func (AddToStackCmd) Name() string      { return "add-to-stack" }
func (RemoveFromStackCmd) Name() string { return "remove-from-stack" }
func (ConvertToTaskCmd) Name() string   { return "convert-to-task" }
func (CompleteTaskCmd) Name() string    { return "complete-task" }

// Result reports what a dispatched command did. Applied is false when the
// command targeted an unknown id or was declined; that is not an error.
type Result struct {
	Applied  bool
	WindowID string
	StackID  string
}

// Dispatch applies cmd.
func (r *Registry) Dispatch(cmd Command) Result {
	switch c := cmd.(type) {
	case OpenCmd:
		return Result{Applied: true, WindowID: r.Open(c.Spec)}
	case CloseCmd:
		return r.onWindow(c.ID, r.Close)
	case UpdateCmd:
		return r.onWindow(c.ID, func(id string) { r.Update(id, c.Patch) })
	case MinimizeCmd:
		return r.onWindow(c.ID, r.Minimize)
	case MaximizeCmd:
		return r.onWindow(c.ID, r.Maximize)
	case RestoreCmd:
		return r.onWindow(c.ID, r.Restore)
	case FocusCmd:
		return r.onWindow(c.ID, r.BringToFront)
	case FocusNextCmd:
		var id string
		if c.Reverse {
			id = r.FocusPrev()
		} else {
			id = r.FocusNext()
		}
		return Result{Applied: id != "", WindowID: id}
	case FocusDirCmd:
		id := r.FocusDirection(c.Dir)
		return Result{Applied: id != "", WindowID: id}
	case OrganizeCmd:
		r.OrganizeModals()
		return Result{Applied: r.Len() > 0}
	case MinimizeAllCmd:
		r.MinimizeAll()
		return Result{Applied: true}
	case RestoreAllCmd:
		r.RestoreAll()
		return Result{Applied: true}
	case CloseAllCmd:
		return Result{Applied: r.CloseAll(c.Confirm)}
	case CreateStackCmd:
		return Result{Applied: true, StackID: r.CreateStack(c.Label, c.GroupBy)}
	case AddToStackCmd:
		if _, ok := r.Stack(c.StackID); !ok {
			return Result{WindowID: c.WindowID, StackID: c.StackID}
		}
		res := r.onWindow(c.WindowID, func(id string) { r.AddToStack(id, c.StackID) })
		res.StackID = c.StackID
		return res
	case RemoveFromStackCmd:
		return r.onWindow(c.WindowID, r.RemoveFromStack)
	case ConvertToTaskCmd:
		return r.onWindow(c.ID, func(id string) { r.ConvertToTask(id, c.Fields) })
	case CompleteTaskCmd:
		return r.onWindow(c.ID, r.MarkTaskComplete)
	default:
		r.logger.Warn("unknown command", "command", fmt.Sprintf("%T", cmd))
		return Result{}
	}
}

func (r *Registry) onWindow(id string, fn func(string)) Result {
	r.mu.RLock()
	_, ok := r.windows[id]
	r.mu.RUnlock()
	if !ok {
		r.logger.Debug("command ignored: unknown window", "id", id)
		return Result{WindowID: id}
	}
	fn(id)
	return Result{Applied: true, WindowID: id}
}

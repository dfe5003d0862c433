package registry

import (
	"slices"
	"sort"
	"strings"

	"github.com/1broseidon/floatwin/internal/placement"
)

// GroupBy is the criterion a stack was formed by.
type GroupBy string

const (
	GroupCreated     GroupBy = "created"
	GroupType        GroupBy = "type"
	GroupResponsible GroupBy = "responsible"
	GroupPriority    GroupBy = "priority"
)

// ParseGroupBy accepts the grouping names case-insensitively.
func ParseGroupBy(s string) (GroupBy, bool) {
	switch GroupBy(strings.ToLower(strings.TrimSpace(s))) {
	case GroupCreated:
		return GroupCreated, true
	case GroupType:
		return GroupType, true
	case GroupResponsible:
		return GroupResponsible, true
	case GroupPriority:
		return GroupPriority, true
	}
	return "", false
}

// Stack is a named group of windows sharing a layout anchor.
type Stack struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	GroupBy   GroupBy         `json:"group_by"`
	WindowIDs []string        `json:"window_ids"`
	Position  placement.Point `json:"position"`
}

func (s *Stack) clone() Stack {
	out := *s
	out.WindowIDs = slices.Clone(s.WindowIDs)
	return out
}

// CreateStack adds an empty stack and returns its id. An unknown groupBy
// falls back to GroupCreated.
func (r *Registry) CreateStack(name string, groupBy GroupBy) string {
	if _, ok := ParseGroupBy(string(groupBy)); !ok {
		r.logger.Debug("unknown stack grouping, using created", "group_by", groupBy)
		groupBy = GroupCreated
	}

	r.mu.Lock()
	id := r.createStackLocked(name, groupBy)
	r.mu.Unlock()

	r.emit(Event{Kind: EventStackChanged, StackID: id})
	return id
}

func (r *Registry) createStackLocked(name string, groupBy GroupBy) string {
	id := r.newID("stack")
	offset := len(r.stackOrder) * r.cfg.CascadeOffset
	r.stacks[id] = &Stack{
		ID:       id,
		Name:     name,
		GroupBy:  groupBy,
		Position: placement.Point{X: r.cfg.Margin + offset, Y: r.cfg.Margin + offset},
	}
	r.stackOrder = append(r.stackOrder, id)
	return id
}

// AddToStack moves a window into a stack, leaving any previous stack first.
func (r *Registry) AddToStack(windowID, stackID string) {
	r.mu.Lock()
	w, ok := r.windows[windowID]
	s, sok := r.stacks[stackID]
	if !ok || !sok {
		r.mu.Unlock()
		r.logger.Debug("add to stack ignored", "window", windowID, "stack", stackID)
		return
	}
	if w.StackID == stackID {
		r.mu.Unlock()
		return
	}
	r.removeFromStackLocked(w)
	s.WindowIDs = append(s.WindowIDs, windowID)
	w.StackID = stackID
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventStackChanged, WindowID: windowID, StackID: stackID})
}

// RemoveFromStack clears a window's stack membership on both sides.
func (r *Registry) RemoveFromStack(windowID string) {
	r.mu.Lock()
	w, ok := r.windows[windowID]
	if !ok || w.StackID == "" {
		r.mu.Unlock()
		return
	}
	stackID := w.StackID
	r.removeFromStackLocked(w)
	r.touch(w)
	r.mu.Unlock()

	r.emit(Event{Kind: EventStackChanged, WindowID: windowID, StackID: stackID})
}

func (r *Registry) removeFromStackLocked(w *Window) {
	if w.StackID == "" {
		return
	}
	if s, ok := r.stacks[w.StackID]; ok {
		s.WindowIDs = slices.DeleteFunc(s.WindowIDs, func(id string) bool { return id == w.ID })
	}
	w.StackID = ""
}

// DeleteStack removes a stack and clears its members' membership.
func (r *Registry) DeleteStack(stackID string) {
	r.mu.Lock()
	s, ok := r.stacks[stackID]
	if !ok {
		r.mu.Unlock()
		return
	}
	for _, id := range s.WindowIDs {
		if w, ok := r.windows[id]; ok {
			w.StackID = ""
		}
	}
	delete(r.stacks, stackID)
	r.stackOrder = slices.DeleteFunc(r.stackOrder, func(id string) bool { return id == stackID })
	r.mu.Unlock()

	r.emit(Event{Kind: EventStackChanged, StackID: stackID})
}

// GroupIntoStacks places every window into a stack named after its grouping
// key, creating stacks as needed and reusing existing ones with the same name
// and grouping. It returns the ids of the stacks used, in name order.
func (r *Registry) GroupIntoStacks(groupBy GroupBy) []string {
	if _, ok := ParseGroupBy(string(groupBy)); !ok {
		return nil
	}

	r.mu.Lock()
	byName := make(map[string]string)
	for _, id := range r.stackOrder {
		s := r.stacks[id]
		if s.GroupBy == groupBy {
			byName[s.Name] = id
		}
	}

	groups := make(map[string][]*Window)
	for _, id := range r.order {
		w := r.windows[id]
		key := groupKey(w, groupBy)
		groups[key] = append(groups[key], w)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	used := make([]string, 0, len(names))
	for _, name := range names {
		stackID, ok := byName[name]
		if !ok {
			stackID = r.createStackLocked(name, groupBy)
		}
		s := r.stacks[stackID]
		for _, w := range groups[name] {
			if w.StackID == stackID {
				continue
			}
			r.removeFromStackLocked(w)
			s.WindowIDs = append(s.WindowIDs, w.ID)
			w.StackID = stackID
		}
		used = append(used, stackID)
	}
	r.mu.Unlock()

	if len(used) > 0 {
		r.emit(Event{Kind: EventStackChanged})
	}
	return used
}

func groupKey(w *Window, groupBy GroupBy) string {
	switch groupBy {
	case GroupType:
		if w.Kind != "" {
			return w.Kind
		}
		return "untyped"
	case GroupResponsible:
		if w.Task != nil && w.Task.Assignee != "" {
			return w.Task.Assignee
		}
		return "unassigned"
	case GroupPriority:
		if w.Task != nil && w.Task.Priority != "" {
			return w.Task.Priority
		}
		return "none"
	default:
		return w.OpenedAt.Format("2006-01-02")
	}
}

package interaction

import "strings"

// Phase is where a pointer interaction currently is.
type Phase int

const (
	// PhaseIdle means no pointer interaction is in progress
	PhaseIdle Phase = iota
	// PhaseDragging means a window is following the pointer
	PhaseDragging
	// PhaseResizing means a window edge is following the pointer
	PhaseResizing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Region is the part of a window the pointer went down on.
type Region int

const (
	RegionBody Region = iota
	RegionTitleBar
	RegionResizeHandle
)

// Edge is a bit set of the window sides a resize moves.
type Edge uint8

const (
	EdgeNone  Edge = 0
	EdgeNorth Edge = 1 << iota
	EdgeSouth
	EdgeEast
	EdgeWest

	EdgeNorthEast = EdgeNorth | EdgeEast
	EdgeNorthWest = EdgeNorth | EdgeWest
	EdgeSouthEast = EdgeSouth | EdgeEast
	EdgeSouthWest = EdgeSouth | EdgeWest
)

func (e Edge) String() string {
	if e == EdgeNone {
		return "none"
	}
	var b strings.Builder
	if e&EdgeNorth != 0 {
		b.WriteString("n")
	}
	if e&EdgeSouth != 0 {
		b.WriteString("s")
	}
	if e&EdgeEast != 0 {
		b.WriteString("e")
	}
	if e&EdgeWest != 0 {
		b.WriteString("w")
	}
	return b.String()
}

// Target describes what is under the pointer when it goes down.
type Target struct {
	WindowID string
	Region   Region
	Edge     Edge // only for RegionResizeHandle; EdgeNone means south-east

	// Interactive is set when a button, input or similar control is under
	// the pointer. NoDrag is set inside a designated no-drag region. Either
	// one leaves the event to the content.
	Interactive bool
	NoDrag      bool
}

// Package gesture classifies touch sequences into swipe, double tap, long
// press and pinch gestures.
package gesture

import (
	"math"
	"time"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/placement"
)

// Kind is the classified gesture type.
type Kind int

const (
	KindNone Kind = iota
	KindSwipe
	KindDoubleTap
	KindLongPress
	KindPinch
)

func (k Kind) String() string {
	switch k {
	case KindSwipe:
		return "swipe"
	case KindDoubleTap:
		return "doubletap"
	case KindLongPress:
		return "longpress"
	case KindPinch:
		return "pinch"
	default:
		return "none"
	}
}

// Gesture is one classified interaction.
type Gesture struct {
	Kind      Kind
	Direction placement.Direction // swipe only
	Distance  int                 // swipe only, along the dominant axis
	Scale     float64             // pinch only; >1 spread, <1 pinch
	At        placement.Point     // where the gesture ended (pinch: midpoint)
	Duration  time.Duration
}

// Thresholds tune classification.
type Thresholds struct {
	SwipeDistance    int
	SwipeMaxDuration time.Duration // 0 = unbounded
	DoubleTapDelay   time.Duration
	LongPressDelay   time.Duration
	TapSlop          int
	LongPressSlop    int
	PinchThreshold   float64
}

func DefaultThresholds() Thresholds {
	return ThresholdsFromConfig(config.DefaultConfig().Gestures)
}

func ThresholdsFromConfig(g config.GestureConfig) Thresholds {
	return Thresholds{
		SwipeDistance:    g.SwipeDistance,
		SwipeMaxDuration: g.SwipeMaxDuration,
		DoubleTapDelay:   g.DoubleTapDelay,
		LongPressDelay:   g.LongPressDelay,
		TapSlop:          g.TapSlop,
		LongPressSlop:    g.LongPressSlop,
		PinchThreshold:   g.PinchThreshold,
	}
}

// Sample is one observed contact position.
type Sample struct {
	At   placement.Point
	Time time.Time
}

// Track is the samples of one contact, from touch start to touch end.
type Track []Sample

func (t Track) first() Sample { return t[0] }
func (t Track) last() Sample  { return t[len(t)-1] }

// maxDeviation is the largest distance any sample strayed from the start.
func (t Track) maxDeviation() float64 {
	var m float64
	start := t.first().At
	for _, s := range t[1:] {
		m = math.Max(m, distance(start, s.At))
	}
	return m
}

// Sequence is a full interaction. Touches[0] is the primary contact; a second
// track makes the sequence a pinch candidate.
type Sequence struct {
	Touches []Track
}

// Single builds a one-contact sequence.
func Single(samples ...Sample) Sequence {
	return Sequence{Touches: []Track{samples}}
}

func distance(a, b placement.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func midpoint(a, b placement.Point) placement.Point {
	return placement.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package gesture

import (
	"math"

	"github.com/1broseidon/floatwin/internal/placement"
)

// Classifier turns finished sequences into at most one gesture each. It
// remembers the last lone tap so the next one can pair into a double tap.
type Classifier struct {
	th      Thresholds
	lastTap *Sample
}

func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{th: th}
}

func (c *Classifier) Thresholds() Thresholds {
	return c.th
}

// Reset forgets a pending tap.
func (c *Classifier) Reset() {
	c.lastTap = nil
}

// Classify reports the gesture for a finished sequence. Priority is pinch,
// swipe, long press, then double tap. Lone taps and slow drags that never
// reach a threshold report nothing.
func (c *Classifier) Classify(seq Sequence) (Gesture, bool) {
	if len(seq.Touches) == 0 || len(seq.Touches[0]) == 0 {
		return Gesture{}, false
	}
	if len(seq.Touches) >= 2 {
		c.lastTap = nil
		return c.pinch(seq.Touches[0], seq.Touches[1])
	}

	track := seq.Touches[0]
	start, end := track.first(), track.last()
	dur := end.Time.Sub(start.Time)

	if g, ok := c.swipe(start, end); ok {
		c.lastTap = nil
		return g, true
	}

	dev := track.maxDeviation()
	if dur > c.th.LongPressDelay && dev < float64(c.th.LongPressSlop) {
		c.lastTap = nil
		return Gesture{Kind: KindLongPress, At: end.At, Duration: dur}, true
	}

	if dev > float64(c.th.TapSlop) || dur >= c.th.LongPressDelay {
		c.lastTap = nil
		return Gesture{}, false
	}

	if prev := c.lastTap; prev != nil &&
		start.Time.Sub(prev.Time) <= c.th.DoubleTapDelay &&
		distance(prev.At, end.At) <= float64(3*c.th.TapSlop) {
		c.lastTap = nil
		return Gesture{Kind: KindDoubleTap, At: end.At, Duration: end.Time.Sub(prev.Time)}, true
	}
	c.lastTap = &end
	return Gesture{}, false
}

func (c *Classifier) swipe(start, end Sample) (Gesture, bool) {
	dx := end.At.X - start.At.X
	dy := end.At.Y - start.At.Y
	adx, ady := absInt(dx), absInt(dy)

	dominant, other := adx, ady
	if ady > adx {
		dominant, other = ady, adx
	}
	if dominant <= c.th.SwipeDistance || dominant < 2*other {
		return Gesture{}, false
	}
	dur := end.Time.Sub(start.Time)
	if c.th.SwipeMaxDuration > 0 && dur > c.th.SwipeMaxDuration {
		return Gesture{}, false
	}

	g := Gesture{Kind: KindSwipe, Distance: dominant, At: end.At, Duration: dur}
	switch {
	case adx >= ady && dx > 0:
		g.Direction = placement.DirRight
	case adx >= ady:
		g.Direction = placement.DirLeft
	case dy > 0:
		g.Direction = placement.DirDown
	default:
		g.Direction = placement.DirUp
	}
	return g, true
}

func (c *Classifier) pinch(a, b Track) (Gesture, bool) {
	if len(b) == 0 {
		return Gesture{}, false
	}
	startDist := distance(a.first().At, b.first().At)
	if startDist == 0 {
		return Gesture{}, false
	}
	scale := distance(a.last().At, b.last().At) / startDist
	if math.Abs(scale-1) <= c.th.PinchThreshold {
		return Gesture{}, false
	}

	endTime := a.last().Time
	if b.last().Time.After(endTime) {
		endTime = b.last().Time
	}
	startTime := a.first().Time
	if b.first().Time.Before(startTime) {
		startTime = b.first().Time
	}
	return Gesture{
		Kind:     KindPinch,
		Scale:    scale,
		At:       midpoint(a.last().At, b.last().At),
		Duration: endTime.Sub(startTime),
	}, true
}

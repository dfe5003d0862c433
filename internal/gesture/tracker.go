package gesture

import (
	"time"

	"github.com/1broseidon/floatwin/internal/placement"
)

// Tracker assembles raw touch events into sequences and classifies them when
// the last contact lifts. Poll reports a long press while the contact is
// still held, after which the release reports nothing.
type Tracker struct {
	classifier *Classifier
	order      []int
	tracks     map[int]Track
	down       map[int]bool
	consumed   bool
}

func NewTracker(c *Classifier) *Tracker {
	return &Tracker{
		classifier: c,
		tracks:     make(map[int]Track),
		down:       make(map[int]bool),
	}
}

// Active reports whether any contact is down.
func (t *Tracker) Active() bool {
	return len(t.down) > 0
}

// Begin records a contact going down.
func (t *Tracker) Begin(id int, at placement.Point, now time.Time) {
	if len(t.down) == 0 {
		t.order = nil
		t.tracks = make(map[int]Track)
		t.consumed = false
	}
	if _, seen := t.tracks[id]; !seen {
		t.order = append(t.order, id)
	}
	t.tracks[id] = Track{{At: at, Time: now}}
	t.down[id] = true
}

// Move records a contact moving. Contacts that are not down are ignored.
func (t *Tracker) Move(id int, at placement.Point, now time.Time) {
	if t.down[id] {
		t.tracks[id] = append(t.tracks[id], Sample{At: at, Time: now})
	}
}

// End records a contact lifting. When it was the last one down, the
// assembled sequence is classified.
func (t *Tracker) End(id int, at placement.Point, now time.Time) (Gesture, bool) {
	if !t.down[id] {
		return Gesture{}, false
	}
	t.tracks[id] = append(t.tracks[id], Sample{At: at, Time: now})
	delete(t.down, id)
	if len(t.down) > 0 {
		return Gesture{}, false
	}

	seq := Sequence{Touches: make([]Track, 0, len(t.order))}
	for _, tid := range t.order {
		seq.Touches = append(seq.Touches, t.tracks[tid])
	}
	if t.consumed {
		return Gesture{}, false
	}
	return t.classifier.Classify(seq)
}

// Poll reports a long press once a single held contact has stayed put past
// the delay. It fires at most once per sequence.
func (t *Tracker) Poll(now time.Time) (Gesture, bool) {
	if t.consumed || len(t.order) != 1 || !t.down[t.order[0]] {
		return Gesture{}, false
	}
	tr := t.tracks[t.order[0]]
	th := t.classifier.Thresholds()
	held := now.Sub(tr.first().Time)
	if held <= th.LongPressDelay || tr.maxDeviation() >= float64(th.LongPressSlop) {
		return Gesture{}, false
	}
	t.consumed = true
	t.classifier.Reset()
	return Gesture{Kind: KindLongPress, At: tr.last().At, Duration: held}, true
}

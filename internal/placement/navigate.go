package placement

// Direction represents an arrow key direction
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the arrow key name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// NavigateSpatial picks the rect nearest to rects[current] in the given
// direction, measured between centers with Manhattan distance. When nothing
// lies in that direction it wraps to the far edge, preferring the same
// row/column.
func NavigateSpatial(current int, dir Direction, rects []Rect) int {
	if len(rects) == 0 {
		return 0
	}
	if current < 0 || current >= len(rects) {
		return 0
	}

	c := rects[current].Center()

	bestIdx := -1
	bestDist := -1
	for i, r := range rects {
		if i == current {
			continue
		}
		rc := r.Center()

		inDirection := false
		switch dir {
		case DirUp:
			inDirection = rc.Y < c.Y
		case DirDown:
			inDirection = rc.Y > c.Y
		case DirLeft:
			inDirection = rc.X < c.X
		case DirRight:
			inDirection = rc.X > c.X
		}
		if !inDirection {
			continue
		}

		dist := abs(rc.X-c.X) + abs(rc.Y-c.Y)
		if bestIdx == -1 || dist < bestDist {
			bestDist = dist
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return bestIdx
	}

	// Wrap: furthest rect in the opposite direction, closest on the cross axis.
	bestScore := 0
	for i, r := range rects {
		if i == current {
			continue
		}
		rc := r.Center()

		var score int
		switch dir {
		case DirUp:
			score = rc.Y*10000 - abs(rc.X-c.X)
		case DirDown:
			score = -rc.Y*10000 - abs(rc.X-c.X)
		case DirLeft:
			score = rc.X*10000 - abs(rc.Y-c.Y)
		case DirRight:
			score = -rc.X*10000 - abs(rc.Y-c.Y)
		}

		if bestIdx == -1 || score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 {
		return bestIdx
	}

	return current
}

package placement

// DefaultViewport is used whenever no layout measurement exists yet.
var DefaultViewport = Size{Width: 1920, Height: 1080}

// Options tunes the free-position search.
type Options struct {
	Margin        int
	GridStep      int
	MaxAttempts   int
	CascadeOffset int
}

// DefaultOptions mirrors the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Margin:        20,
		GridStep:      50,
		MaxAttempts:   100,
		CascadeOffset: 30,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.GridStep <= 0 {
		o.GridStep = def.GridStep
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.CascadeOffset <= 0 {
		o.CascadeOffset = def.CascadeOffset
	}
	return o
}

// ViewportOrDefault substitutes DefaultViewport for an unmeasured viewport.
func ViewportOrDefault(v Size) Size {
	if v.IsZero() {
		return DefaultViewport
	}
	return v
}

// FindFreePosition returns the first grid position where a window of the
// given size does not overlap any existing rect (inflated by the margin).
//
// The scan goes left-to-right, top-to-bottom in GridStep increments. When the
// attempt cap is hit or the candidate would leave the bottom of the viewport,
// it falls back to a cascade anchored on the first existing window. It never
// fails: overlap is preferred over refusing to place.
func FindFreePosition(existing []Rect, size Size, viewport Size, opts Options) Point {
	opts = opts.normalized()
	viewport = ViewportOrDefault(viewport)

	start := Point{X: opts.Margin, Y: opts.Margin}
	if len(existing) == 0 {
		return start
	}

	padded := make([]Rect, len(existing))
	for i, r := range existing {
		padded[i] = r.Inflate(opts.Margin)
	}

	attempts := 0
	for y := start.Y; y+size.Height <= viewport.Height; y += opts.GridStep {
		x := start.X
		for {
			if attempts >= opts.MaxAttempts {
				return cascade(existing, opts)
			}
			attempts++

			candidate := Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
			hit, ok := firstOverlap(candidate, padded)
			if !ok {
				return candidate.Origin()
			}

			// Every grid column up to the blocker's right edge overlaps it too,
			// so jump straight past it.
			next := x + opts.GridStep
			if hit.Right() >= next {
				steps := (hit.Right()-start.X)/opts.GridStep + 1
				next = start.X + steps*opts.GridStep
			}
			if next+size.Width > viewport.Width {
				break
			}
			x = next
		}
	}

	return cascade(existing, opts)
}

func firstOverlap(candidate Rect, rects []Rect) (Rect, bool) {
	for _, r := range rects {
		if candidate.Overlaps(r) {
			return r, true
		}
	}
	return Rect{}, false
}

func cascade(existing []Rect, opts Options) Point {
	anchor := existing[0]
	n := len(existing)
	return Point{
		X: anchor.X + n*opts.CascadeOffset,
		Y: anchor.Y + n*opts.CascadeOffset,
	}
}

// GridColumns returns how many cells of the given width fit across the
// viewport. At least one column is always returned.
func GridColumns(viewportWidth int, cell Size, margin int) int {
	if cell.Width+margin <= 0 {
		return 1
	}
	cols := (viewportWidth - margin) / (cell.Width + margin)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// GridOrganize lays out count windows in a uniform grid, in index order.
// Every returned rect has the canonical cell size; custom sizes are discarded.
func GridOrganize(count int, viewport Size, cell Size, margin int) []Rect {
	if count <= 0 {
		return nil
	}
	viewport = ViewportOrDefault(viewport)

	cols := GridColumns(viewport.Width, cell, margin)
	positions := make([]Rect, count)

	for i := 0; i < count; i++ {
		row := i / cols
		col := i % cols

		positions[i] = Rect{
			X:      margin + col*(cell.Width+margin),
			Y:      margin + row*(cell.Height+margin),
			Width:  cell.Width,
			Height: cell.Height,
		}
	}

	return positions
}

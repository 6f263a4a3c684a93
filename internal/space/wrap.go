package space

import "github.com/jcorbin/gofunge/internal/funge"

// Wrap implements Lahey-space wrapping: a position that left the bounding
// box is carried backwards along delta to the far edge of the box, where
// it re-enters. Positions inside the box, positions whose line of travel
// has the box still ahead, and positions whose line never meets the box
// are returned unchanged.
func (s *Space) Wrap(pos, delta funge.Vector) funge.Vector {
	if !s.hasBounds || s.Contains(pos) || delta.IsZero() {
		return pos
	}

	// find the range of k for which pos - k*delta lies within the box
	lo, hi, ok := stepRange(pos.X, delta.X, s.least.X, s.greatest.X, 0, 0, false)
	if ok {
		lo, hi, ok = stepRange(pos.Y, delta.Y, s.least.Y, s.greatest.Y, lo, hi, true)
	}
	if !ok || hi < 1 || lo > hi {
		return pos
	}
	return pos.Sub(delta.Mul(hi))
}

// stepRange narrows [lo, hi] to the integer k where min <= c - k*d <= max.
// When bounded is false, the incoming range is unconstrained.
func stepRange(c, d, min, max, lo, hi funge.Cell, bounded bool) (funge.Cell, funge.Cell, bool) {
	if d == 0 {
		if c < min || c > max {
			return 0, 0, false
		}
		if !bounded {
			// any k works on this axis; callers only use ranges from a
			// moving axis, and delta is non-zero on at least one
			return minCell, maxCell, true
		}
		return lo, hi, true
	}
	var a, b funge.Cell
	if d > 0 {
		a, b = ceilDiv(c-max, d), floorDiv(c-min, d)
	} else {
		a, b = ceilDiv(c-min, d), floorDiv(c-max, d)
	}
	if bounded {
		if a < lo {
			a = lo
		}
		if b > hi {
			b = hi
		}
	}
	return a, b, a <= b
}

const (
	maxCell = funge.Cell(^uint64(0) >> (65 - funge.CellBits))
	minCell = -maxCell - 1
)

func ceilDiv(a, b funge.Cell) funge.Cell { return -floorDiv(-a, b) }

// Adrift reports whether an IP at pos travelling along delta will never
// reach a stored cell: the space is empty, delta is zero, or the line of
// travel misses the bounding box entirely.
func (s *Space) Adrift(pos, delta funge.Vector) bool {
	if !s.hasBounds || delta.IsZero() {
		return true
	}
	if s.Contains(pos) {
		return false
	}
	lo, hi, ok := stepRange(pos.X, delta.X, s.least.X, s.greatest.X, 0, 0, false)
	if ok {
		_, _, ok = stepRange(pos.Y, delta.Y, s.least.Y, s.greatest.Y, lo, hi, true)
	}
	return !ok
}

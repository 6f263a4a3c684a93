// Package space implements funge-space: a sparse, paged, two dimensional
// grid of cells that all instruction pointers share.
package space

import (
	"fmt"

	"github.com/jcorbin/gofunge/internal/funge"
)

// DefaultPageSize provides a default for Space.PageSize.
const DefaultPageSize = 64

// Blank is the value of every cell never written.
const Blank funge.Cell = ' '

// LimitError indicates that a store needed a new page past Space.Limit.
type LimitError struct {
	Pos   funge.Vector
	Limit int
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("funge-space page limit %v exceeded by store @%v", lim.Limit, lim.Pos)
}

// Space implements paged funge-space. Pages are square, allocated on the
// first non-blank store within them, and never freed.
//
// The zero value is an empty space ready to use.
type Space struct {
	// PageSize specifies the side length of newly allocated pages.
	PageSize funge.Cell

	// Limit, if non-zero, caps the number of allocated pages.
	Limit int

	pages map[funge.Vector][]funge.Cell

	hasBounds bool
	least     funge.Vector
	greatest  funge.Vector
}

// Bounds returns the least and greatest corners of the box containing
// every non-blank cell stored so far; ok is false if nothing was stored.
// The box only ever grows.
func (s *Space) Bounds() (least, greatest funge.Vector, ok bool) {
	return s.least, s.greatest, s.hasBounds
}

// Pages returns the number of allocated pages.
func (s *Space) Pages() int { return len(s.pages) }

func floorDiv(a, b funge.Cell) funge.Cell {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (s *Space) pageSize() funge.Cell {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	return s.PageSize
}

// locate returns the origin of the page holding pos, and pos's index in it.
func (s *Space) locate(pos funge.Vector) (funge.Vector, int) {
	size := s.pageSize()
	base := funge.Vector{X: floorDiv(pos.X, size) * size, Y: floorDiv(pos.Y, size) * size}
	return base, int((pos.Y-base.Y)*size + (pos.X - base.X))
}

// Load returns the cell at pos.
func (s *Space) Load(pos funge.Vector) funge.Cell {
	if len(s.pages) == 0 {
		return Blank
	}
	base, i := s.locate(pos)
	if page := s.pages[base]; page != nil {
		return page[i]
	}
	return Blank
}

// Stor writes v at pos, allocating a page if necessary.
// Returns an error if Limit would be exceeded; nothing is stored then.
func (s *Space) Stor(pos funge.Vector, v funge.Cell) error {
	base, i := s.locate(pos)
	page := s.pages[base]
	if page == nil {
		if v == Blank {
			return nil
		}
		var err error
		if page, err = s.allocPage(base, pos); err != nil {
			return err
		}
	}
	page[i] = v
	if v != Blank {
		s.grow(pos)
	}
	return nil
}

func (s *Space) allocPage(base, pos funge.Vector) ([]funge.Cell, error) {
	if s.Limit != 0 && len(s.pages) >= s.Limit {
		return nil, LimitError{pos, s.Limit}
	}
	if s.pages == nil {
		s.pages = make(map[funge.Vector][]funge.Cell)
	}
	size := s.pageSize()
	page := make([]funge.Cell, size*size)
	for i := range page {
		page[i] = Blank
	}
	s.pages[base] = page
	return page, nil
}

func (s *Space) grow(pos funge.Vector) {
	if !s.hasBounds {
		s.least, s.greatest, s.hasBounds = pos, pos, true
		return
	}
	if pos.X < s.least.X {
		s.least.X = pos.X
	}
	if pos.Y < s.least.Y {
		s.least.Y = pos.Y
	}
	if pos.X > s.greatest.X {
		s.greatest.X = pos.X
	}
	if pos.Y > s.greatest.Y {
		s.greatest.Y = pos.Y
	}
}

// Contains reports whether pos lies within Bounds.
func (s *Space) Contains(pos funge.Vector) bool {
	return s.hasBounds &&
		s.least.X <= pos.X && pos.X <= s.greatest.X &&
		s.least.Y <= pos.Y && pos.Y <= s.greatest.Y
}

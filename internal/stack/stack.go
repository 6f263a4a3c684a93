// Package stack implements funge data stacks and the stack-stack of nested
// frames that every instruction pointer owns.
package stack

import (
	"fmt"

	"github.com/jcorbin/gofunge/internal/funge"
)

// chunkSize is the minimum number of cells added whenever a stack grows.
const chunkSize = 32

// Stack is a growable LIFO of cells. Popping an empty stack yields zero.
//
// The zero value is an empty stack ready to use.
type Stack struct {
	// Limit, if non-zero, is the maximum depth; a push past it panics with a
	// LimitError since there is no way to fail a push within the language.
	Limit int

	cells []funge.Cell
}

// LimitError indicates that a push would exceed a stack's Limit.
type LimitError struct {
	Depth int
	Limit int
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("stack limit %v exceeded by push @%v", lim.Limit, lim.Depth)
}

// Len returns the number of cells on the stack.
func (s *Stack) Len() int { return len(s.cells) }

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []funge.Cell {
	values := make([]funge.Cell, len(s.cells))
	copy(values, s.cells)
	return values
}

// Clone returns an independent copy of s.
func (s *Stack) Clone() *Stack {
	return &Stack{Limit: s.Limit, cells: s.Values()}
}

func (s *Stack) grow(n int) {
	need := len(s.cells) + n
	if s.Limit != 0 && need > s.Limit {
		panic(LimitError{need, s.Limit})
	}
	if need <= cap(s.cells) {
		return
	}
	size := cap(s.cells) + cap(s.cells)/2 + chunkSize
	for size < need {
		size += chunkSize
	}
	cells := make([]funge.Cell, len(s.cells), size)
	copy(cells, s.cells)
	s.cells = cells
}

// Push pushes v onto the stack.
func (s *Stack) Push(v funge.Cell) {
	s.grow(1)
	s.cells = append(s.cells, v)
}

// PushN pushes n zero cells.
func (s *Stack) PushN(n int) {
	if n <= 0 {
		return
	}
	s.grow(n)
	for ; n > 0; n-- {
		s.cells = append(s.cells, 0)
	}
}

func (s *Stack) pushAll(vs []funge.Cell) {
	s.grow(len(vs))
	s.cells = append(s.cells, vs...)
}

// Pop removes and returns the top cell, or zero if the stack is empty.
func (s *Stack) Pop() funge.Cell {
	i := len(s.cells) - 1
	if i < 0 {
		return 0
	}
	v := s.cells[i]
	s.cells = s.cells[:i]
	return v
}

// Discard removes the top cell, if any.
func (s *Stack) Discard() {
	if i := len(s.cells) - 1; i >= 0 {
		s.cells = s.cells[:i]
	}
}

// DiscardN removes up to n cells.
func (s *Stack) DiscardN(n int) {
	if n > len(s.cells) {
		n = len(s.cells)
	}
	if n > 0 {
		s.cells = s.cells[:len(s.cells)-n]
	}
}

// Peek returns the top cell without removing it, or zero if empty.
func (s *Stack) Peek() funge.Cell {
	if i := len(s.cells) - 1; i >= 0 {
		return s.cells[i]
	}
	return 0
}

// Pick returns the nth cell from the top, 1 being the top itself; cells
// beyond the bottom read as zero.
func (s *Stack) Pick(n int) funge.Cell {
	if i := len(s.cells) - n; n > 0 && i >= 0 {
		return s.cells[i]
	}
	return 0
}

// Dup pushes a copy of the top cell; an empty stack gains a zero.
func (s *Stack) Dup() { s.Push(s.Peek()) }

// Swap exchanges the top two cells, reading missing cells as zero.
func (s *Stack) Swap() {
	a, b := s.Pop(), s.Pop()
	s.Push(a)
	s.Push(b)
}

// Clear empties the stack, retaining its buffer.
func (s *Stack) Clear() { s.cells = s.cells[:0] }

// PushVector pushes x then y.
func (s *Stack) PushVector(v funge.Vector) {
	s.grow(2)
	s.cells = append(s.cells, v.X, v.Y)
}

// PopVector pops y then x.
func (s *Stack) PopVector() (v funge.Vector) {
	v.Y = s.Pop()
	v.X = s.Pop()
	return v
}

// PushString pushes a 0gnirts: the string reversed above a zero
// terminator, so that its first character ends up on top.
func (s *Stack) PushString(str string) {
	runes := []rune(str)
	s.grow(len(runes) + 1)
	s.cells = append(s.cells, 0)
	for i := len(runes) - 1; i >= 0; i-- {
		s.cells = append(s.cells, funge.Cell(runes[i]))
	}
}

// moveTop moves the top n cells of src onto dst, preserving their order.
// When src holds fewer than n cells, the missing bottom cells are zeros.
func moveTop(dst, src *Stack, n int) {
	if n <= 0 {
		return
	}
	have := len(src.cells)
	if n > have {
		dst.PushN(n - have)
		n = have
	}
	dst.pushAll(src.cells[have-n:])
	src.cells = src.cells[:have-n]
}

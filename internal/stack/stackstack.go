package stack

import (
	"errors"

	"github.com/jcorbin/gofunge/internal/funge"
)

var (
	// ErrNoFrame is returned by frame operations that need a second stack
	// when only the bottom frame exists.
	ErrNoFrame = errors.New("no enclosing stack frame")

	// ErrFrameLimit is returned by Begin when FrameLimit frames are open.
	ErrFrameLimit = errors.New("stack frame limit exceeded")

	// ErrFill is returned by frame operations whose count would push more
	// than MaxFill zero cells.
	ErrFill = errors.New("stack frame count exceeds fill limit")
)

// MaxFill caps the zero cells that one frame operation may push.
const MaxFill = 1 << 20

// fillSize returns how many zeros a count pushes onto a stack given that
// have cells are available to move; negative counts push -count zeros.
func fillSize(count funge.Cell, have int) (int, error) {
	var zeros funge.Cell
	switch {
	case count < 0:
		zeros = -count
		if zeros < 0 {
			return 0, ErrFill
		}
	case count > funge.Cell(have):
		zeros = count - funge.Cell(have)
	}
	if zeros > MaxFill {
		return 0, ErrFill
	}
	return int(zeros), nil
}

// StackStack is a non-empty stack of Stacks; the top one is current, and
// all data instructions operate on it. The bottom frame is never removed.
type StackStack struct {
	// FrameLimit, if non-zero, caps the number of frames Begin may open.
	FrameLimit int

	stacks []*Stack
}

// New creates a stack-stack holding one empty stack, whose depth is
// limited by stackLimit if non-zero.
func New(stackLimit int) *StackStack {
	return &StackStack{stacks: []*Stack{{Limit: stackLimit}}}
}

// Len returns the number of frames.
func (ss *StackStack) Len() int { return len(ss.stacks) }

// Current returns the top of stack stack (TOSS).
func (ss *StackStack) Current() *Stack { return ss.stacks[len(ss.stacks)-1] }

// Second returns the second on stack stack (SOSS), or nil if there is only
// one frame.
func (ss *StackStack) Second() *Stack {
	if i := len(ss.stacks) - 2; i >= 0 {
		return ss.stacks[i]
	}
	return nil
}

// Sizes returns the depth of every stack, current first.
func (ss *StackStack) Sizes() []int {
	sizes := make([]int, len(ss.stacks))
	for i := range ss.stacks {
		sizes[i] = ss.stacks[len(ss.stacks)-1-i].Len()
	}
	return sizes
}

// Stacks returns the contents of every stack, bottom frame first.
func (ss *StackStack) Stacks() [][]funge.Cell {
	all := make([][]funge.Cell, len(ss.stacks))
	for i, s := range ss.stacks {
		all[i] = s.Values()
	}
	return all
}

// Clone returns a deep copy that shares no cells with ss.
func (ss *StackStack) Clone() *StackStack {
	dup := &StackStack{
		FrameLimit: ss.FrameLimit,
		stacks:     make([]*Stack, len(ss.stacks)),
	}
	for i, s := range ss.stacks {
		dup.stacks[i] = s.Clone()
	}
	return dup
}

// Begin opens a new frame. A non-negative count moves that many cells from
// the current stack into the new one, preserving order; a negative count
// instead pushes -count zeros into the new stack. The given storage offset
// is then saved as a vector on the old stack, so that End can return it.
func (ss *StackStack) Begin(count funge.Cell, offset funge.Vector) error {
	if ss.FrameLimit != 0 && len(ss.stacks) >= ss.FrameLimit {
		return ErrFrameLimit
	}
	soss := ss.Current()
	zeros, err := fillSize(count, soss.Len())
	if err != nil {
		return err
	}
	toss := &Stack{Limit: soss.Limit}
	if count < 0 {
		toss.PushN(zeros)
	} else {
		moveTop(toss, soss, int(count))
	}
	soss.PushVector(offset)
	ss.stacks = append(ss.stacks, toss)
	return nil
}

// End closes the current frame. The storage offset saved by Begin is popped
// from the stack below and returned. A non-negative count moves that many
// cells from the closing stack back onto the one below, preserving order; a
// negative count instead discards -count cells from the stack below.
func (ss *StackStack) End(count funge.Cell) (funge.Vector, error) {
	if len(ss.stacks) < 2 {
		return funge.Vector{}, ErrNoFrame
	}
	toss, soss := ss.Current(), ss.Second()
	if count >= 0 {
		if _, err := fillSize(count, toss.Len()); err != nil {
			return funge.Vector{}, err
		}
	}
	offset := soss.PopVector()
	if count < 0 {
		n := -count
		if n < 0 || n > funge.Cell(soss.Len()) {
			n = funge.Cell(soss.Len())
		}
		soss.DiscardN(int(n))
	} else {
		moveTop(soss, toss, int(count))
	}
	ss.stacks[len(ss.stacks)-1] = nil
	ss.stacks = ss.stacks[:len(ss.stacks)-1]
	return offset, nil
}

// Under moves count cells from the stack below onto the current stack,
// preserving order; a negative count pushes -count zeros instead.
func (ss *StackStack) Under(count funge.Cell) error {
	soss := ss.Second()
	if soss == nil {
		return ErrNoFrame
	}
	zeros, err := fillSize(count, soss.Len())
	if err != nil {
		return err
	}
	toss := ss.Current()
	if count < 0 {
		toss.PushN(zeros)
	} else {
		moveTop(toss, soss, int(count))
	}
	return nil
}

// Package ip implements instruction pointers, their per-IP fingerprint
// tables, and the slot-addressed list of live IPs that concurrent funge
// programs run on.
package ip

import (
	"fmt"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/stack"
)

// Mode selects how an IP treats the characters it encounters.
type Mode uint8

const (
	// CodeMode executes characters as instructions.
	CodeMode Mode = iota

	// StringMode pushes characters as cells until the next quote.
	StringMode
)

func (m Mode) String() string {
	if m == StringMode {
		return "string"
	}
	return "code"
}

// Config controls the resources of newly created IPs.
type Config struct {
	Fingerprints bool // whether IPs get a fingerprint Table
	StackLimit   int  // maximum depth of each stack, 0 for none
	FrameLimit   int  // maximum number of stack-stack frames, 0 for none
}

// IP is a single execution context within funge-space.
type IP struct {
	ID            funge.Cell
	Position      funge.Vector
	Delta         funge.Vector
	StorageOffset funge.Vector
	Mode          Mode

	// NeedMove is cleared by instructions that already placed the IP where
	// it should execute next; the scheduler moves the IP only when set.
	NeedMove bool

	// LastWasSpace tracks a collapsed run of spaces in string mode.
	LastWasSpace bool

	Stacks       *stack.StackStack
	Fingerprints *Table
}

// New creates an IP at the origin travelling east.
func New(id funge.Cell, cfg Config) *IP {
	ip := &IP{
		ID:       id,
		Delta:    funge.East,
		NeedMove: true,
		Stacks:   stack.New(cfg.StackLimit),
	}
	ip.Stacks.FrameLimit = cfg.FrameLimit
	if cfg.Fingerprints {
		ip.Fingerprints = &Table{}
	}
	return ip
}

// Clone returns a deep copy of ip that shares no stacks with it.
func (ip *IP) Clone() *IP {
	dup := *ip
	dup.Stacks = ip.Stacks.Clone()
	if ip.Fingerprints != nil {
		dup.Fingerprints = ip.Fingerprints.Clone()
	}
	return &dup
}

// Stack returns the current stack, the one data instructions operate on.
func (ip *IP) Stack() *stack.Stack { return ip.Stacks.Current() }

// Forward moves ip steps times along its delta, then wraps.
func (ip *IP) Forward(w Wrapper, steps funge.Cell) {
	ip.Position = w.Wrap(ip.Position.Add(ip.Delta.Mul(steps)), ip.Delta)
}

// Reverse negates the delta: the uniform "instruction failed" signal.
func (ip *IP) Reverse() { ip.Delta = ip.Delta.Neg() }

// TurnLeft rotates the delta 90 degrees counter-clockwise.
func (ip *IP) TurnLeft() { ip.Delta = ip.Delta.TurnLeft() }

// TurnRight rotates the delta 90 degrees clockwise.
func (ip *IP) TurnRight() { ip.Delta = ip.Delta.TurnRight() }

// SetDelta sets the direction of travel.
func (ip *IP) SetDelta(delta funge.Vector) { ip.Delta = delta }

// SetPosition moves ip to pos, wrapping it into funge-space.
func (ip *IP) SetPosition(w Wrapper, pos funge.Vector) {
	ip.Position = w.Wrap(pos, ip.Delta)
}

// Begin opens a stack-stack frame, saving the current storage offset and
// replacing it with offset.
func (ip *IP) Begin(count funge.Cell, offset funge.Vector) error {
	if err := ip.Stacks.Begin(count, ip.StorageOffset); err != nil {
		return err
	}
	ip.StorageOffset = offset
	return nil
}

// End closes the current stack-stack frame, restoring the storage offset
// saved by the matching Begin.
func (ip *IP) End(count funge.Cell) error {
	offset, err := ip.Stacks.End(count)
	if err != nil {
		return err
	}
	ip.StorageOffset = offset
	return nil
}

// Under transfers count cells from the second stack to the current one.
func (ip *IP) Under(count funge.Cell) error { return ip.Stacks.Under(count) }

func (ip *IP) String() string {
	return fmt.Sprintf("ip#%d @%v d%v so%v %v", ip.ID, ip.Position, ip.Delta, ip.StorageOffset, ip.Mode)
}

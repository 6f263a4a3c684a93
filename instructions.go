package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/jcorbin/gofunge/internal/runeio"
	"github.com/jcorbin/gofunge/internal/stack"
)

type vmInstruction func(vm *VM, ptr *ip.IP) ip.Outcome

const instructionTableSize = 128

var (
	funge93Table [instructionTableSize]vmInstruction
	funge98Table [instructionTableSize]vmInstruction
)

func init() {
	common := map[byte]vmInstruction{
		'+': (*VM).add,
		'-': (*VM).sub,
		'*': (*VM).mul,
		'/': (*VM).div,
		'%': (*VM).rem,
		'!': (*VM).not,
		'`': (*VM).greater,
		'>': (*VM).east,
		'<': (*VM).west,
		'^': (*VM).north,
		'v': (*VM).south,
		'?': (*VM).away,
		'_': (*VM).eastWestIf,
		'|': (*VM).northSouthIf,
		'"': (*VM).stringMode,
		':': (*VM).dup,
		'\\': (*VM).swap,
		'$': (*VM).discard,
		'.': (*VM).outputInt,
		',': (*VM).outputChar,
		'&': (*VM).inputInt,
		'~': (*VM).inputChar,
		'#': (*VM).trampoline,
		'g': (*VM).get,
		'p': (*VM).put,
		'@': (*VM).stop,
	}
	for c := byte('0'); c <= '9'; c++ {
		common[c] = pushDigit(funge.Cell(c - '0'))
	}
	for c, inst := range common {
		funge93Table[c] = inst
		funge98Table[c] = inst
	}

	for c, inst := range map[byte]vmInstruction{
		'[': (*VM).turnLeft,
		']': (*VM).turnRight,
		'r': (*VM).reverse,
		'x': (*VM).absoluteDelta,
		'\'': (*VM).fetchChar,
		's': (*VM).storeChar,
		'n': (*VM).clear,
		'j': (*VM).jump,
		'k': (*VM).iterate,
		'{': (*VM).beginBlock,
		'}': (*VM).endBlock,
		'u': (*VM).stackUnder,
		'(': (*VM).loadFingerprint,
		')': (*VM).unloadFingerprint,
		't': (*VM).split,
		'q': (*VM).quit,
		'z': (*VM).nop,
		'y': (*VM).sysInfo,
	} {
		funge98Table[c] = inst
	}
	for c := byte('a'); c <= 'f'; c++ {
		funge98Table[c] = pushDigit(funge.Cell(c-'a') + 10)
	}
}

//// Integer Operations

// Symbol   Name    Function
//   0-9    digit   push the digit's value
//   a-f    hex     push 10 through 15
func pushDigit(n funge.Cell) vmInstruction {
	return func(vm *VM, ptr *ip.IP) ip.Outcome {
		ptr.Stack().Push(n)
		return ip.Continue
	}
}

func binaryOp(ptr *ip.IP, op func(a, b funge.Cell) funge.Cell) ip.Outcome {
	s := ptr.Stack()
	b := s.Pop()
	s.Push(op(s.Pop(), b))
	return ip.Continue
}

func (vm *VM) add(ptr *ip.IP) ip.Outcome {
	return binaryOp(ptr, func(a, b funge.Cell) funge.Cell { return a + b })
}

func (vm *VM) sub(ptr *ip.IP) ip.Outcome {
	return binaryOp(ptr, func(a, b funge.Cell) funge.Cell { return a - b })
}

func (vm *VM) mul(ptr *ip.IP) ip.Outcome {
	return binaryOp(ptr, func(a, b funge.Cell) funge.Cell { return a * b })
}

// Division and remainder by zero result in zero.
func (vm *VM) div(ptr *ip.IP) ip.Outcome {
	return binaryOp(ptr, func(a, b funge.Cell) funge.Cell {
		if b == 0 {
			return 0
		}
		return a / b
	})
}

func (vm *VM) rem(ptr *ip.IP) ip.Outcome {
	return binaryOp(ptr, func(a, b funge.Cell) funge.Cell {
		if b == 0 {
			return 0
		}
		return a % b
	})
}

// Symbol   Name      Function
//    !     not       pop a value, push 1 if it was zero, 0 otherwise
//    `     greater   pop b then a, push 1 if a > b, 0 otherwise
func (vm *VM) not(ptr *ip.IP) ip.Outcome {
	s := ptr.Stack()
	s.Push(funge.Bool(s.Pop() == 0))
	return ip.Continue
}

func (vm *VM) greater(ptr *ip.IP) ip.Outcome {
	return binaryOp(ptr, func(a, b funge.Cell) funge.Cell { return funge.Bool(a > b) })
}

//// Flow Control

func (vm *VM) east(ptr *ip.IP) ip.Outcome  { ptr.SetDelta(funge.East); return ip.Continue }
func (vm *VM) west(ptr *ip.IP) ip.Outcome  { ptr.SetDelta(funge.West); return ip.Continue }
func (vm *VM) north(ptr *ip.IP) ip.Outcome { ptr.SetDelta(funge.North); return ip.Continue }
func (vm *VM) south(ptr *ip.IP) ip.Outcome { ptr.SetDelta(funge.South); return ip.Continue }

var cardinals = [4]funge.Vector{funge.East, funge.South, funge.West, funge.North}

func (vm *VM) away(ptr *ip.IP) ip.Outcome {
	ptr.SetDelta(cardinals[vm.rand.Intn(len(cardinals))])
	return ip.Continue
}

func (vm *VM) turnLeft(ptr *ip.IP) ip.Outcome  { ptr.TurnLeft(); return ip.Continue }
func (vm *VM) turnRight(ptr *ip.IP) ip.Outcome { ptr.TurnRight(); return ip.Continue }
func (vm *VM) reverse(ptr *ip.IP) ip.Outcome   { ptr.Reverse(); return ip.Continue }

// Symbol   Name             Function
//    x     absolute delta   pop a vector, make it the IP's delta
func (vm *VM) absoluteDelta(ptr *ip.IP) ip.Outcome {
	ptr.SetDelta(ptr.Stack().PopVector())
	return ip.Continue
}

func (vm *VM) eastWestIf(ptr *ip.IP) ip.Outcome {
	if ptr.Stack().Pop() == 0 {
		ptr.SetDelta(funge.East)
	} else {
		ptr.SetDelta(funge.West)
	}
	return ip.Continue
}

func (vm *VM) northSouthIf(ptr *ip.IP) ip.Outcome {
	if ptr.Stack().Pop() == 0 {
		ptr.SetDelta(funge.South)
	} else {
		ptr.SetDelta(funge.North)
	}
	return ip.Continue
}

// Symbol   Name         Function
//    #     trampoline   skip over the next cell
//    j     jump         pop n, move n cells along the delta; negative n jumps backwards
func (vm *VM) trampoline(ptr *ip.IP) ip.Outcome {
	ptr.Forward(&vm.space, 1)
	return ip.Continue
}

func (vm *VM) jump(ptr *ip.IP) ip.Outcome {
	ptr.Forward(&vm.space, ptr.Stack().Pop())
	return ip.Continue
}

// iterateCheckMask sets how often a long iteration checks the run context.
const iterateCheckMask = 1<<16 - 1

// iterate pops n and executes the next instruction n times in place; unless
// that moved the IP, it then passes over the instruction. Zero skips it,
// negative reflects.
func (vm *VM) iterate(ptr *ip.IP) ip.Outcome {
	n := ptr.Stack().Pop()
	at, c, err := vm.seek(vm.space.Wrap(ptr.Position.Add(ptr.Delta), ptr.Delta), ptr.Delta)
	if err != nil {
		return vm.Fail(err)
	}
	switch {
	case n < 0:
		return ip.Reflect
	case n == 0:
		ptr.Position = at
		return ip.Continue
	}
	from := ptr.Position
	for i := funge.Cell(0); i < n; i++ {
		if i&iterateCheckMask == iterateCheckMask {
			vm.checkpoint()
		}
		switch out := vm.execute(ptr, c); out {
		case ip.Continue:
		case ip.Reflect:
			ptr.Reverse()
		default:
			return out
		}
	}
	if ptr.Position == from {
		ptr.Position = at
	}
	return ip.Continue
}

func (vm *VM) nop(ptr *ip.IP) ip.Outcome { return ip.Continue }

//// Stack Manipulation

func (vm *VM) dup(ptr *ip.IP) ip.Outcome     { ptr.Stack().Dup(); return ip.Continue }
func (vm *VM) swap(ptr *ip.IP) ip.Outcome    { ptr.Stack().Swap(); return ip.Continue }
func (vm *VM) discard(ptr *ip.IP) ip.Outcome { ptr.Stack().Discard(); return ip.Continue }
func (vm *VM) clear(ptr *ip.IP) ip.Outcome   { ptr.Stack().Clear(); return ip.Continue }

// Symbol   Name          Function
//    {     begin block   pop n, open a new stack moving n cells onto it, and
//                        save the storage offset; the next cell becomes the
//                        new storage offset
//    }     end block     pop n, close the current stack moving n cells back,
//                        and restore the storage offset
//    u     stack under   pop n, move n cells from the second stack
func (vm *VM) beginBlock(ptr *ip.IP) ip.Outcome {
	n := ptr.Stack().Pop()
	return reflectIf(ptr.Begin(n, ptr.Position.Add(ptr.Delta)))
}

func (vm *VM) endBlock(ptr *ip.IP) ip.Outcome {
	n := ptr.Stack().Pop()
	return reflectIf(ptr.End(n))
}

func (vm *VM) stackUnder(ptr *ip.IP) ip.Outcome {
	n := ptr.Stack().Pop()
	return reflectIf(ptr.Under(n))
}

func reflectIf(err error) ip.Outcome {
	switch {
	case errors.Is(err, stack.ErrNoFrame),
		errors.Is(err, stack.ErrFrameLimit),
		errors.Is(err, stack.ErrFill):
		return ip.Reflect
	case err != nil:
		panic(err)
	}
	return ip.Continue
}

//// Strings

func (vm *VM) stringMode(ptr *ip.IP) ip.Outcome {
	ptr.Mode = ip.StringMode
	ptr.LastWasSpace = false
	return ip.Continue
}

// Symbol   Name         Function
//    '     fetch char   push the next cell's value, skipping over it
//    s     store char   pop a value into the next cell, skipping over it
func (vm *VM) fetchChar(ptr *ip.IP) ip.Outcome {
	ptr.Forward(&vm.space, 1)
	ptr.Stack().Push(vm.space.Load(ptr.Position))
	return ip.Continue
}

func (vm *VM) storeChar(ptr *ip.IP) ip.Outcome {
	ptr.Forward(&vm.space, 1)
	if err := vm.space.Stor(ptr.Position, ptr.Stack().Pop()); err != nil {
		return vm.Fail(err)
	}
	return ip.Continue
}

//// Funge-Space Operations

// Symbol   Name   Function
//    g     get    pop a vector, push the cell at it plus the storage offset
//    p     put    pop a vector then a value, store the value there
func (vm *VM) get(ptr *ip.IP) ip.Outcome {
	s := ptr.Stack()
	s.Push(vm.space.Load(s.PopVector().Add(ptr.StorageOffset)))
	return ip.Continue
}

func (vm *VM) put(ptr *ip.IP) ip.Outcome {
	s := ptr.Stack()
	at := s.PopVector().Add(ptr.StorageOffset)
	if err := vm.space.Stor(at, s.Pop()); err != nil {
		return vm.Fail(err)
	}
	return ip.Continue
}

//// Input/Output Operations

func (vm *VM) outputInt(ptr *ip.IP) ip.Outcome {
	if _, err := fmt.Fprintf(vm.out, "%d ", ptr.Stack().Pop()); err != nil {
		return vm.Fail(err)
	}
	return ip.Continue
}

func (vm *VM) outputChar(ptr *ip.IP) ip.Outcome {
	if _, err := runeio.WriteRune(vm.out, rune(ptr.Stack().Pop())); err != nil {
		return vm.Fail(err)
	}
	return ip.Continue
}

// Input flushes any pending output first, so that prompts are seen.
// Reaching the end of input reflects.
func (vm *VM) inputInt(ptr *ip.IP) ip.Outcome {
	if err := vm.out.Flush(); err != nil {
		return vm.Fail(err)
	}
	n, err := runeio.ReadInt(&vm.in, int64(maxCell))
	if err == io.EOF {
		return ip.Reflect
	} else if err != nil {
		return vm.Fail(err)
	}
	vm.logf("<", "read %v from %v", n, vm.in.Scan.Location)
	ptr.Stack().Push(funge.Cell(n))
	return ip.Continue
}

func (vm *VM) inputChar(ptr *ip.IP) ip.Outcome {
	if err := vm.out.Flush(); err != nil {
		return vm.Fail(err)
	}
	r, _, err := vm.in.ReadRune()
	if err == io.EOF {
		return ip.Reflect
	} else if err != nil {
		return vm.Fail(err)
	}
	vm.logf("<", "read %v from %v", runeio.Name(r), vm.in.Scan.Location)
	ptr.Stack().Push(funge.Cell(r))
	return ip.Continue
}

//// Fingerprints

// popFingerprint pops a count then that many cells, folding them into a
// fingerprint ID, the first popped being the most significant.
func popFingerprint(s *stack.Stack) (funge.Cell, bool) {
	n := s.Pop()
	if n <= 0 {
		return 0, false
	}
	var id funge.Cell
	for i := funge.Cell(0); i < n; i++ {
		if s.Len() == 0 {
			// the rest are zeros, which shift everything out after a full cell
			for j := i; j < n && j-i < funge.CellBits/8; j++ {
				id *= 256
			}
			break
		}
		id = id*256 + s.Pop()
	}
	return id, true
}

// Symbol   Name                 Function
//    (     load fingerprint     pop a fingerprint; on success push it and 1,
//                               otherwise reflect
//    )     unload fingerprint   pop a fingerprint, unbind its opcodes
func (vm *VM) loadFingerprint(ptr *ip.IP) ip.Outcome {
	s := ptr.Stack()
	id, ok := popFingerprint(s)
	if !ok {
		return ip.Reflect
	}
	if out := vm.fingerprints.Load(ptr, id); out != ip.Continue {
		return out
	}
	s.Push(id)
	s.Push(1)
	return ip.Continue
}

func (vm *VM) unloadFingerprint(ptr *ip.IP) ip.Outcome {
	id, ok := popFingerprint(ptr.Stack())
	if !ok {
		return ip.Reflect
	}
	return vm.fingerprints.Unload(ptr, id)
}

//// Concurrency and Termination

func (vm *VM) split(ptr *ip.IP) ip.Outcome { return ip.Split }
func (vm *VM) stop(ptr *ip.IP) ip.Outcome  { return ip.Stop }

func (vm *VM) quit(ptr *ip.IP) ip.Outcome {
	vm.exitCode = int(ptr.Stack().Pop())
	return ip.Quit
}

const maxCell = funge.Cell(^uint64(0) >> (65 - funge.CellBits))

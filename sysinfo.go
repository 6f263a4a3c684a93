package main

import (
	"os"

	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/jcorbin/gofunge/internal/settings"
)

const (
	handprint = "GOFN"
	version   = 100

	// Only t among the optional instructions is implemented, and output
	// is buffered.
	sysFlags = 0x01

	// The = instruction is unavailable.
	sysParadigm = 0
)

// sysInfo implements y: pop n, then push the system information block.
// With n > 0 only the nth cell of the block (counting from the top) is
// kept, reaching into the existing stack when n runs past the block.
//
// From the top the block reads: flags, bytes per cell, handprint, version,
// paradigm, path separator, dimensions, IP id, team, position, delta,
// storage offset, least point, extent, date, time, number of stacks, stack
// sizes (current first), argument strings, environment strings.
func (vm *VM) sysInfo(ptr *ip.IP) ip.Outcome {
	s := ptr.Stack()
	n := s.Pop()
	before := s.Len()

	env := vm.environ
	s.Push(0)
	for i := len(env) - 1; i >= 0; i-- {
		s.PushString(env[i])
	}
	args := vm.args
	s.Push(0)
	for i := len(args) - 1; i >= 0; i-- {
		s.PushString(args[i])
	}

	sizes := ptr.Stacks.Sizes()
	sizes[0] = before
	for i := len(sizes) - 1; i >= 0; i-- {
		s.Push(funge.Cell(sizes[i]))
	}
	s.Push(funge.Cell(len(sizes)))

	now := vm.now()
	s.Push(funge.Cell(now.Hour()*256*256 + now.Minute()*256 + now.Second()))
	s.Push(funge.Cell((now.Year()-1900)*256*256 + int(now.Month())*256 + now.Day()))

	least, greatest, _ := vm.space.Bounds()
	s.PushVector(greatest.Sub(least))
	s.PushVector(least)
	s.PushVector(ptr.StorageOffset)
	s.PushVector(ptr.Delta)
	s.PushVector(ptr.Position)
	s.Push(0)
	s.Push(ptr.ID)
	s.Push(2)
	s.Push(funge.Cell(os.PathSeparator))
	s.Push(sysParadigm)
	if vm.settings.Standard == settings.Befunge108 {
		s.Push(108)
	} else {
		s.Push(version)
	}
	s.Push(fingerprint.IDOf(handprint))
	s.Push(funge.CellBits / 8)
	s.Push(sysFlags)

	if n > 0 {
		v := s.Pick(int(n))
		s.DiscardN(s.Len() - before)
		s.Push(v)
	}
	return ip.Continue
}

package main

import (
	"context"
	"errors"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/jcorbin/gofunge/internal/runeio"
	"github.com/jcorbin/gofunge/internal/settings"
)

var (
	errAdrift    = errors.New("ip adrift: no stored cell along its path")
	errEmptyLane = errors.New("ip spinning: no instruction along its path")
)

func (vm *VM) run(ctx context.Context) {
	vm.ctx = ctx
	defer func() { vm.ctx = nil }()
	if vm.logfn != nil {
		defer vm.withLogPrefix("	")()
	}
	for vm.ips.Len() > 0 {
		vm.checkpoint()
		for slot := 0; slot < vm.ips.Len(); {
			slot = vm.tick(slot)
		}
	}
	vm.halt(nil)
}

// checkpoint halts the VM once its run context is done.
func (vm *VM) checkpoint() {
	if vm.ctx != nil {
		vm.haltif(vm.ctx.Err())
	}
}

// tick executes one instruction for the IP in slot, applies its outcome,
// and returns the next slot to run in this pass.
func (vm *VM) tick(slot int) int {
	ptr := vm.ips.At(slot)
	vm.ticks++

	switch out := vm.step(ptr); out {
	case ip.Continue:

	case ip.Reflect:
		ptr.Reverse()

	case ip.Split:
		if _, err := vm.ips.Fork(slot); err != nil {
			vm.warnf("ip#%v: fork failed: %v", ptr.ID, err)
			ptr.Reverse()
			break
		}
		if vm.settings.Trace >= 3 {
			vm.logf("+", "ip#%v forked ip#%v", ptr.ID, vm.ips.At(slot+1).ID)
		}
		vm.move(ptr)
		// the child runs from the next pass
		return slot + 2

	case ip.Stop:
		if vm.settings.Trace >= 3 {
			vm.logf("-", "ip#%v stopped", ptr.ID)
		}
		vm.ips.Terminate(slot)
		// the following IP now occupies slot
		return slot

	case ip.Quit:
		vm.halt(nil)

	case ip.Fatal:
		vm.halt(vm.failure)
	}

	vm.move(ptr)
	return slot + 1
}

func (vm *VM) move(ptr *ip.IP) {
	if ptr.NeedMove {
		ptr.Forward(&vm.space, 1)
	}
	ptr.NeedMove = true
}

// step finds the next instruction for ptr and executes it.
func (vm *VM) step(ptr *ip.IP) ip.Outcome {
	var (
		c   funge.Cell
		err error
	)
	if ptr.Mode == ip.StringMode {
		c, err = vm.seekString(ptr)
	} else {
		ptr.Position, c, err = vm.seek(ptr.Position, ptr.Delta)
	}
	if err != nil {
		return vm.Fail(err)
	}

	if vm.logfn != nil && vm.settings.Trace > 0 {
		if vm.settings.Trace >= 2 {
			vm.logf(">", "ip#%v @%v %v -- %v", ptr.ID, ptr.Position, runeio.Name(rune(c)), ptr.Stack().Values())
		} else {
			vm.logf(">", "ip#%v @%v %v", ptr.ID, ptr.Position, runeio.Name(rune(c)))
		}
	}

	return vm.execute(ptr, c)
}

// execute runs the instruction c against ptr.
func (vm *VM) execute(ptr *ip.IP, c funge.Cell) ip.Outcome {
	if ptr.Mode == ip.StringMode {
		return vm.stringChar(ptr, c)
	}
	if c >= 'A' && c <= 'Z' && vm.settings.Standard != settings.Befunge93 {
		return vm.fingerprints.Execute(ptr, vm, c)
	}
	if c >= 0 && c < instructionTableSize {
		if inst := vm.table[c]; inst != nil {
			return inst(vm, ptr)
		}
	}
	vm.warnf("ip#%v @%v: unimplemented instruction %v", ptr.ID, ptr.Position, runeio.Name(rune(c)))
	return ip.Reflect
}

// seek returns the first position at or after pos along delta holding an
// instruction, passing over spaces and ;comments in zero ticks. Befunge-93
// has no comments.
func (vm *VM) seek(pos, delta funge.Vector) (funge.Vector, funge.Cell, error) {
	start, laps := pos, 0
	next := func() error {
		pos = vm.space.Wrap(pos.Add(delta), delta)
		if pos == start {
			if laps++; laps > 1 {
				return errEmptyLane
			}
		}
		if !vm.space.Contains(pos) && vm.space.Adrift(pos, delta) {
			return errAdrift
		}
		return nil
	}
	comments := vm.settings.Standard != settings.Befunge93
	for {
		switch c := vm.space.Load(pos); {
		case c == ' ':
			if err := next(); err != nil {
				return pos, c, err
			}
		case c == ';' && comments:
			for {
				if err := next(); err != nil {
					return pos, c, err
				}
				if vm.space.Load(pos) == ';' {
					break
				}
			}
			if err := next(); err != nil {
				return pos, c, err
			}
		default:
			return pos, c, nil
		}
	}
}

// seekString collapses a run of spaces in string mode: after pushing one
// space, the IP passes over the rest in zero ticks.
func (vm *VM) seekString(ptr *ip.IP) (funge.Cell, error) {
	c := vm.space.Load(ptr.Position)
	if !ptr.LastWasSpace || vm.settings.Standard == settings.Befunge93 {
		return c, nil
	}
	start := ptr.Position
	for c == ' ' {
		ptr.Forward(&vm.space, 1)
		if ptr.Position == start {
			return c, errEmptyLane
		}
		if !vm.space.Contains(ptr.Position) && vm.space.Adrift(ptr.Position, ptr.Delta) {
			return c, errAdrift
		}
		c = vm.space.Load(ptr.Position)
	}
	return c, nil
}

func (vm *VM) stringChar(ptr *ip.IP, c funge.Cell) ip.Outcome {
	if c == '"' {
		ptr.Mode = ip.CodeMode
		ptr.LastWasSpace = false
		return ip.Continue
	}
	ptr.Stack().Push(c)
	ptr.LastWasSpace = c == ' '
	return ip.Continue
}

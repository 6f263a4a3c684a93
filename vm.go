package main

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/fingerprint/all"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/jcorbin/gofunge/internal/settings"
	"github.com/jcorbin/gofunge/internal/space"
)

// VM interprets one funge program: a funge-space shared by a list of
// concurrently scheduled instruction pointers.
type VM struct {
	Core

	settings     settings.Settings
	space        space.Space
	ips          *ip.List
	fingerprints fingerprint.Manager
	table        *[instructionTableSize]vmInstruction

	args    []string
	environ []string
	now     func() time.Time
	rand    *rand.Rand

	ctx      context.Context
	ticks    uint64
	exitCode int
	failure  error
}

// configure derives the VM's components from its settings.
func (vm *VM) configure() {
	set := vm.settings

	vm.space.Limit = set.Limits.Pages

	cfg := ip.Config{
		Fingerprints: set.Fingerprints && set.Standard != settings.Befunge93,
		StackLimit:   set.Limits.Stack,
		FrameLimit:   set.Limits.Frames,
	}
	vm.ips = ip.NewList(&vm.space, cfg)
	vm.ips.Limit = set.Limits.IPs

	vm.fingerprints.Sandbox = set.Sandbox
	vm.fingerprints.Disabled = set.Disabled
	if set.Trace >= 3 {
		vm.fingerprints.Logf = func(mess string, args ...interface{}) {
			vm.logf("fp", mess, args...)
		}
	} else {
		vm.fingerprints.Logf = nil
	}
	if len(vm.fingerprints.List()) == 0 {
		if err := all.Register(&vm.fingerprints); err != nil {
			panic(err)
		}
	}

	if set.Standard == settings.Befunge93 {
		vm.table = &funge93Table
	} else {
		vm.table = &funge98Table
	}

	if vm.now == nil {
		vm.now = time.Now
	}
	if vm.rand == nil {
		vm.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// LoadProgram loads program text into funge-space at the origin.
func (vm *VM) LoadProgram(r io.Reader) error { return vm.space.LoadProgram(r) }

// LoadFile loads the named program file into funge-space at the origin.
func (vm *VM) LoadFile(name string) error { return vm.space.LoadFile(name) }

// ExitCode returns the code given to the q instruction, if any.
func (vm *VM) ExitCode() int { return vm.exitCode }

// Snapshot returns a copy of every live IP's state.
func (vm *VM) Snapshot() *ip.Snapshot { return vm.ips.Snapshot() }

// Fingerprints returns the fingerprints available to programs.
func (vm *VM) Fingerprints() []fingerprint.Fingerprint {
	var fps []fingerprint.Fingerprint
	for _, fp := range vm.fingerprints.List() {
		if vm.fingerprints.Available(fp) {
			fps = append(fps, fp)
		}
	}
	return fps
}

// Space implements ip.Env.
func (vm *VM) Space() ip.Space { return &vm.space }

// Output implements ip.Env.
func (vm *VM) Output() io.Writer { return vm.out }

// Fail implements ip.Env, recording err to halt the VM with.
func (vm *VM) Fail(err error) ip.Outcome {
	vm.failure = err
	return ip.Fatal
}

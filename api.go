package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jcorbin/gofunge/internal/panicerr"
	"github.com/jcorbin/gofunge/internal/settings"
)

// New creates a VM with an empty funge-space; load a program into it with
// LoadProgram or LoadFile before calling Run.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts...).apply(&vm)
	vm.configure()
	return &vm
}

// Run executes the loaded program until every IP has stopped, an IP
// quits, a fatal error occurs, or ctx is done. A program that ends
// normally returns nil; see ExitCode for the code passed to q.
func (vm *VM) Run(ctx context.Context) error {
	err := panicerr.Recover("VM", func() error {
		vm.run(ctx)
		return nil
	})
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	var halted haltError
	if errors.As(err, &halted) {
		err = halted.error
	}
	if errors.Is(err, errHalt) {
		err = nil
	}
	return err
}

func WithInput(r io.Reader) VMOption              { return withInput(r) }
func WithOutput(w io.Writer) VMOption             { return withOutput(w) }
func WithTee(w io.Writer) VMOption                { return withTee(w) }
func WithSettings(set settings.Settings) VMOption { return withSettings(set) }
func WithArgs(args ...string) VMOption            { return argsOption(args) }
func WithEnviron(env []string) VMOption           { return environOption(env) }
func WithClock(now func() time.Time) VMOption     { return clockOption(now) }
func WithSeed(seed int64) VMOption                { return seedOption(seed) }

func WithLogf(logfn func(mess string, args ...interface{})) VMOption   { return withLogfn(logfn) }
func WithWarnf(warnfn func(mess string, args ...interface{})) VMOption { return withWarnfn(warnfn) }

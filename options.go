package main

import (
	"io"
	"math/rand"
	"time"

	"github.com/jcorbin/gofunge/internal/flushio"
	"github.com/jcorbin/gofunge/internal/settings"
)

// VMOption customizes a VM created by New.
type VMOption interface{ apply(vm *VM) }

var defaultOptions = VMOptions(
	withOutput(io.Discard),
	withSettings(settings.Default()),
)

// VMOptions combines any number of options into one.
func VMOptions(opts ...VMOption) VMOption {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []VMOption

func (opts options) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})
type withWarnfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM)   { vm.logfn = logfn }
func (warnfn withWarnfn) apply(vm *VM) { vm.warnfn = warnfn }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type settingsOption settings.Settings
type argsOption []string
type environOption []string
type clockOption func() time.Time
type seedOption int64

func withInput(r io.Reader) inputOption                 { return inputOption{r} }
func withOutput(w io.Writer) outputOption               { return outputOption{w} }
func withTee(w io.Writer) teeOption                     { return teeOption{w} }
func withSettings(set settings.Settings) settingsOption { return settingsOption(set) }

func (i inputOption) apply(vm *VM) {
	vm.in.Queue = append(vm.in.Queue, i.Reader)
	if cl, ok := i.Reader.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (set settingsOption) apply(vm *VM) { vm.settings = settings.Settings(set) }
func (args argsOption) apply(vm *VM)    { vm.args = args }
func (env environOption) apply(vm *VM)  { vm.environ = env }
func (clock clockOption) apply(vm *VM)  { vm.now = clock }
func (seed seedOption) apply(vm *VM)    { vm.rand = rand.New(rand.NewSource(int64(seed))) }

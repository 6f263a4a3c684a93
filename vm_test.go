package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/logio"
	"github.com/jcorbin/gofunge/internal/panicerr"
	"github.com/jcorbin/gofunge/internal/settings"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	{
		var exclusive []vmTestCase
		for _, vmt := range vmts {
			if vmt.exclusive {
				exclusive = append(exclusive, vmt)
			}
		}
		if len(exclusive) > 0 {
			vmts = exclusive
		}
	}
	for _, vmt := range vmts {
		if !t.Run(vmt.name, vmt.run) {
			return
		}
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

var testClock = time.Date(2026, time.October, 15, 12, 34, 56, 0, time.UTC)

type vmTestCase struct {
	name     string
	program  string
	settings []func(set *settings.Settings)
	opts     []VMOption
	setup    []func(t *testing.T, vm *VM)
	expect   []func(t *testing.T, vm *VM)
	timeout  time.Duration
	wantErr  error

	exclusive bool
}

func (vmt vmTestCase) exclusiveTest() vmTestCase {
	vmt.exclusive = true
	return vmt
}

func (vmt vmTestCase) withProgram(lines ...string) vmTestCase {
	vmt.program = strings.Join(lines, "\n")
	return vmt
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	vmt.opts = append(vmt.opts, opts...)
	return vmt
}

func (vmt vmTestCase) withSettings(fn func(set *settings.Settings)) vmTestCase {
	vmt.settings = append(vmt.settings, fn)
	return vmt
}

func (vmt vmTestCase) withStandard(std settings.Standard) vmTestCase {
	return vmt.withSettings(func(set *settings.Settings) { set.Standard = std })
}

func (vmt vmTestCase) withInput(source string) vmTestCase {
	return vmt.withOptions(WithInput(strings.NewReader(source)))
}

func (vmt vmTestCase) withArgs(args ...string) vmTestCase {
	return vmt.withOptions(WithArgs(args...))
}

func (vmt vmTestCase) withTimeout(timeout time.Duration) vmTestCase {
	vmt.timeout = timeout
	return vmt
}

func (vmt vmTestCase) withTestLog() vmTestCase {
	vmt.setup = append(vmt.setup, func(t *testing.T, vm *VM) {
		WithLogf(t.Logf).apply(vm)
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.setup = append(vmt.setup, func(t *testing.T, vm *VM) {
		lw := &logio.Writer{Prefix: "out: ", Logf: t.Logf}
		vm.closers = append(vm.closers, lw)
		WithTee(lw).apply(vm)
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectWarning(substr string) vmTestCase {
	var warnings []string
	vmt.opts = append(vmt.opts, WithWarnf(func(mess string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(mess, args...))
	}))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		for _, warning := range warnings {
			if strings.Contains(warning, substr) {
				return
			}
		}
		assert.Fail(t, "expected warning", "no warning contains %q in %q", substr, warnings)
	})
	return vmt
}

func (vmt vmTestCase) expectExitCode(code int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, code, vm.ExitCode(), "expected exit code")
	})
	return vmt
}

// expectStack checks the current stack of the IP in slot 0, for programs
// that end with q.
func (vmt vmTestCase) expectStack(values ...funge.Cell) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if assert.NotZero(t, vm.ips.Len(), "expected a live IP") {
			assert.Equal(t, values, vm.ips.At(0).Stack().Values(), "expected stack values")
		}
	})
	return vmt
}

func (vmt vmTestCase) expectIPs(n int) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, n, vm.ips.Len(), "expected live IP count")
	})
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	set := settings.Default()
	for _, fn := range vmt.settings {
		fn(&set)
	}
	vm := New(VMOptions(
		WithSettings(set),
		WithClock(func() time.Time { return testClock }),
		WithSeed(1),
	), VMOptions(vmt.opts...))
	for _, setup := range vmt.setup {
		setup(t, vm)
	}
	defer vm.Close()

	require.NoError(t, vm.LoadProgram(strings.NewReader(vmt.program)), "expected program to load")

	defer func() {
		if t.Failed() {
			lw := &logio.Writer{Prefix: "fail_dump: ", Logf: t.Logf}
			vm.Dump(lw)
			lw.Flush()
		}
	}()

	timeout := vmt.timeout
	if timeout == 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := vm.Run(ctx)
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected %v vm error, got %v", vmt.wantErr, err)
	} else if !assert.NoError(t, err, "expected no VM error") {
		if stack := panicerr.PanicStack(err); stack != "" {
			t.Logf("Panic stack:\t%s", stack)
		}
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}

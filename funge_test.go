package main

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/settings"
	"github.com/jcorbin/gofunge/internal/space"
	"github.com/jcorbin/gofunge/internal/stack"
)

func Test_Funge_basics(t *testing.T) {
	vmTestCases{
		vmTest("hello").withProgram(
			`64+"!dlroW ,olleH">:#,_@`,
		).expectOutput("Hello, World!\n"),

		vmTest("arithmetic").withProgram(
			`53-.93%.70/.70%.af*.@`,
		).expectOutput("2 0 0 0 150 "),

		vmTest("logic").withProgram(
			"35`.53`.0!.7!.@",
		).expectOutput("0 1 1 0 "),

		vmTest("empty stack reads zero").withProgram(
			`.:.\..@`,
		).expectOutput("0 0 0 0 "),

		vmTest("wrap west").withProgram(
			`<@.1`,
		).expectOutput("1 "),

		vmTest("trampoline").withProgram(
			`1#2.@`,
		).expectOutput("1 "),

		vmTest("reverse").withProgram(
			`2r@.`,
		).expectOutput("2 "),

		vmTest("absolute delta").withProgram(
			`20x@7@.@@`,
		).expectOutput("7 "),

		vmTest("vertical").withProgram(
			`v`,
			`1`,
			`.`,
			`@`,
		).expectOutput("1 "),

		vmTest("if").withProgram(
			`0_1.@`,
		).expectOutput("1 "),

		vmTest("comments").withProgram(
			`1;2.;.@`,
		).expectOutput("1 "),

		vmTest("jump").withProgram(
			`2j123.@`,
		).expectOutput("3 "),

		vmTest("iterate").withProgram(
			`3k1...@`,
		).expectOutput("1 1 1 "),

		vmTest("iterate zero skips").withProgram(
			`0k1.@`,
		).expectOutput("0 "),

		vmTest("fetch and store").withProgram(
			`'Cs 30g,@`,
		).expectOutput("C"),

		vmTest("get put").withProgram(
			`"X"50p 50g,@`,
		).expectOutput("X"),

		vmTest("clear").withProgram(
			`123n.@`,
		).expectOutput("0 "),

		vmTest("quit").withProgram(
			`7q`,
		).expectExitCode(7).expectIPs(1),

		vmTest("stop").withProgram(
			`@`,
		).expectExitCode(0).expectIPs(0),
	}.run(t)
}

func Test_Funge_strings(t *testing.T) {
	vmTestCases{
		vmTest("spaces collapse").withProgram(
			`"b  a">:#,_@`,
		).expectOutput("a b"),

		vmTest("spaces kept in 93").withStandard(settings.Befunge93).withProgram(
			`"b  a">:#,_@`,
		).expectOutput("a  b"),

		vmTest("no comments in 93").withStandard(settings.Befunge93).withProgram(
			`1;.@`,
		).expectOutput("").expectWarning("unimplemented instruction"),

		vmTest("hex digits reflect in 93").withStandard(settings.Befunge93).withProgram(
			`1a.@`,
		).expectOutput(""),

		vmTest("hex digits in 98").withProgram(
			`1a.@`,
		).expectOutput("10 "),
	}.run(t)
}

func Test_Funge_io(t *testing.T) {
	vmTestCases{
		vmTest("input ints").withInput("12 30\n").withProgram(
			`&&+.@`,
		).expectOutput("42 "),

		vmTest("input chars").withInput("hi").withProgram(
			`~~\,,@`,
		).expectOutput("hi"),

		vmTest("input char code").withInput("A").withProgram(
			`~.@`,
		).expectOutput("65 "),

		vmTest("input eof reflects").withProgram(
			`~.@`,
		).expectOutput(""),

		vmTest("latin-1 output").withProgram(
			`88*4*b-,@`,
		).expectOutput("\xf5"),

		vmTest("unicode output").withProgram(
			`88*4*,@`,
		).expectOutput("\u0100"),
	}.run(t)
}

func Test_Funge_stackStack(t *testing.T) {
	vmTestCases{
		vmTest("begin end").withProgram(
			`1232{..0}.@`,
		).expectOutput("3 2 1 "),

		vmTest("end without frame reflects").withProgram(
			`5.0}@`,
		).expectOutput("5 0 "),

		// the storage offset is saved on top of the second stack
		vmTest("under").withProgram(
			`7890{3u...@`,
		).expectOutput("0 0 9 "),

		vmTest("storage offset").withProgram(
			`0{"Z"00p 00g,0}@`,
		).expectOutput("Z"),

		vmTest("frame limit reflects").withSettings(func(set *settings.Settings) {
			set.Limits.Frames = 1
		}).withProgram(
			`5.0{@`,
		).expectOutput("5 0 "),

		vmTest("oversized fill reflects").withProgram(
			`v @.7<`,
			`>1ff*:*:*:*0\-0v`,
			`     |         <`,
			`     {`,
		).expectOutput("7 "),
	}.run(t)
}

func Test_Funge_concurrency(t *testing.T) {
	vmTestCases{
		// the parent prints first, then stops, and the child moves into its
		// slot within the same pass
		vmTest("split").withProgram(
			`56t.@.`,
		).expectOutput("6 5 "),

		vmTest("interleaved").withProgram(
			`t"a",@`,
		).expectOutput("a").expectIPs(0),

		vmTest("fork limit reflects").withSettings(func(set *settings.Settings) {
			set.Limits.IPs = 1
		}).withProgram(
			`t7.@`,
		).expectOutput("").expectWarning("fork failed"),

		vmTest("quit stops everyone").withProgram(
			`3tq`,
		).expectExitCode(3).expectIPs(2),
	}.run(t)
}

func Test_Funge_fingerprints(t *testing.T) {
	vmTestCases{
		vmTest("load CPLI").withProgram(
			`"ILPC"4($$1234AO@`,
		).expectOutput("4+6i "),

		vmTest("load pushes id and success").withProgram(
			`"ILPC"4(.@`,
		).expectOutput("1 "),

		vmTest("disabled fingerprints reflect").withSettings(func(set *settings.Settings) {
			set.Fingerprints = false
		}).withProgram(
			`"ILPC"4(1.@`,
		).expectOutput(""),

		vmTest("disabled by name").withSettings(func(set *settings.Settings) {
			set.Disable = []string{"CPLI"}
		}).withProgram(
			`"ILPC"4(1.@`,
		).expectOutput(""),

		vmTest("unknown fingerprint").withProgram(
			`"SPOO"4(1.@`,
		).expectOutput(""),

		vmTest("shadow and unload").withProgram(
			`"ILPC"4($$"LLUN"4($$"LLUN"4)1234AO@`,
		).expectOutput("4+6i "),

		vmTest("unloaded opcode reflects").withProgram(
			`"ILPC"4($$"ILPC"4)#@A1.@`,
		).expectOutput(""),

		vmTest("roman numerals").withProgram(
			`"AMOR"4($$MCX++.@`,
		).expectOutput("1110 "),

		vmTest("no fingerprints in 93").withStandard(settings.Befunge93).withProgram(
			`7.A@`,
		).expectOutput("7 0 "),
	}.run(t)
}

func Test_Funge_sysInfo(t *testing.T) {
	vmTestCases{
		vmTest("flags").withProgram(`1y.@`).expectOutput("1 "),
		vmTest("cell bytes").withProgram(`2y.@`).expectOutput(fmt.Sprintf("%v ", funge.CellBits/8)),
		vmTest("version").withProgram(`4y.@`).expectOutput("100 "),
		vmTest("108 version").withStandard(settings.Befunge108).withProgram(`4y.@`).expectOutput("108 "),
		vmTest("dimensions").withProgram(`7y.@`).expectOutput("2 "),
		vmTest("ip id").withProgram(`8y.@`).expectOutput("0 "),
		vmTest("position x").withProgram(`by.@`).expectOutput("1 "),
		vmTest("date").withProgram(`45*y.@`).expectOutput("8260111 "),
		vmTest("time").withProgram(`37*y.@`).expectOutput("795192 "),
		vmTest("stack count").withProgram(`0{f7+y.@`).expectOutput("2 "),
		vmTest("args").withArgs("ab").withProgram(
			`46*y,55*y,@`,
		).expectOutput("ab"),
		vmTest("pick below block").withProgram(
			`5fb+y.@`,
		).expectOutput("5 "),
		vmTest("whole block").withProgram(
			`0y0q`,
		).expectExitCode(0),
	}.run(t)
}

func Test_Funge_errors(t *testing.T) {
	vmTestCases{
		vmTest("stack limit").withSettings(func(set *settings.Settings) {
			set.Limits.Stack = 2
		}).withProgram(
			`123@`,
		).expectError(stack.LimitError{Depth: 3, Limit: 2}),

		vmTest("page limit").withSettings(func(set *settings.Settings) {
			set.Limits.Pages = 1
		}).withProgram(
			`"d"88*0p@`,
		).expectError(space.LimitError{Pos: funge.Vector{X: 64}, Limit: 1}),

		vmTest("adrift").withProgram(
			``,
			`1@`,
		).expectError(errAdrift),

		vmTest("timeout").withTimeout(50 * time.Millisecond).withProgram(
			`>`,
		).expectError(context.DeadlineExceeded),

		vmTest("timeout during iterate").withTimeout(50 * time.Millisecond).withProgram(
			`ff*:*:*:*kz@`,
		).expectError(context.DeadlineExceeded),
	}.run(t)
}

func Test_popFingerprint(t *testing.T) {
	for _, tc := range []struct {
		name string
		init []funge.Cell
		id   funge.Cell
		ok   bool
		rest []funge.Cell
	}{
		{"whole name", []funge.Cell{9, 'I', 'L', 'P', 'C', 4}, 0x43504C49, true, []funge.Cell{9}},
		{"short stack", []funge.Cell{'A', 2}, 0x4100, true, []funge.Cell{}},
		{"zero count", []funge.Cell{'A', 0}, 0, false, []funge.Cell{'A'}},
		{"negative count", []funge.Cell{-1}, 0, false, []funge.Cell{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var s stack.Stack
			for _, v := range tc.init {
				s.Push(v)
			}
			id, ok := popFingerprint(&s)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.id, id, "expected id %08x", tc.id)
			assert.Equal(t, tc.rest, s.Values(), "expected remaining stack")
		})
	}
}

func Test_VM_seek(t *testing.T) {
	vm := New()
	require.NoError(t, vm.LoadProgram(strings.NewReader("1 1")))

	pos, c, err := vm.seek(funge.Vector{X: 1}, funge.East)
	require.NoError(t, err)
	assert.Equal(t, funge.Vector{X: 2}, pos)
	assert.Equal(t, funge.Cell('1'), c)

	_, _, err = vm.seek(funge.Vector{X: 1}, funge.Vector{X: 2})
	assert.Equal(t, errEmptyLane, err, "every other cell is a space")

	_, _, err = vm.seek(funge.Vector{X: 1, Y: 1}, funge.East)
	assert.Equal(t, errAdrift, err, "the row below is empty")
}

func Test_VM_dump(t *testing.T) {
	vm := New(WithArgs("dump.b98"))
	require.NoError(t, vm.LoadProgram(strings.NewReader("1\n 2")))
	vm.ips.At(0).Stack().Push(7)

	var out strings.Builder
	vm.Dump(&out)
	assert.Equal(t, strings.Join([]string{
		"# VM Dump",
		"  standard: 98",
		"  ticks: 0",
		"# IPs highest:0",
		"  [0] ip#0 @(0,0) d(1,0) so(0,0) code",
		"    stack[0]: [7]",
		"# Funge-Space (0,0) .. (1,1) pages:1",
		"  0| 1",
		"  1|  2",
		"",
	}, "\n"), out.String())
}

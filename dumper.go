package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

// Dump writes a human readable description of the VM state to w: its
// settings, every live IP with its stacks, and the bounded funge-space.
func (vm *VM) Dump(w io.Writer) { vmDumper{vm: vm, out: w}.dump() }

type vmDumper struct {
	vm  *VM
	out io.Writer

	// maxRows and maxCols limit how much of funge-space is shown.
	maxRows, maxCols funge.Cell
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  standard: %v\n", dump.vm.settings.Standard)
	fmt.Fprintf(dump.out, "  ticks: %v\n", dump.vm.ticks)
	if dump.vm.exitCode != 0 {
		fmt.Fprintf(dump.out, "  exit: %v\n", dump.vm.exitCode)
	}
	dump.dumpIPs()
	dump.dumpSpace()
}

func (dump vmDumper) dumpIPs() {
	snap := dump.vm.ips.Snapshot()
	fmt.Fprintf(dump.out, "# IPs highest:%v\n", snap.HighestID)
	dump.vm.ips.Each(func(slot int, ptr *ip.IP) {
		fmt.Fprintf(dump.out, "  [%v] %v\n", slot, ptr)
		stacks := ptr.Stacks.Stacks()
		for i := len(stacks) - 1; i >= 0; i-- {
			fmt.Fprintf(dump.out, "    stack[%v]: %v\n", len(stacks)-1-i, stacks[i])
		}
		st := snap.IPs[slot]
		if len(st.Fingerprints) > 0 {
			var sb strings.Builder
			for op := 'A'; op <= 'Z'; op++ {
				if n := st.Fingerprints[string(op)]; n > 0 {
					sb.WriteByte(' ')
					sb.WriteRune(op)
					if n > 1 {
						sb.WriteString(strconv.Itoa(n))
					}
				}
			}
			fmt.Fprintf(dump.out, "    fingerprints:%v\n", sb.String())
		}
	})
}

func (dump vmDumper) dumpSpace() {
	least, greatest, ok := dump.vm.space.Bounds()
	if !ok {
		fmt.Fprintf(dump.out, "# Funge-Space empty\n")
		return
	}
	fmt.Fprintf(dump.out, "# Funge-Space %v .. %v pages:%v\n", least, greatest, dump.vm.space.Pages())

	maxRows, maxCols := dump.maxRows, dump.maxCols
	if maxRows == 0 {
		maxRows = 50
	}
	if maxCols == 0 {
		maxCols = 120
	}
	lastY, lastX := greatest.Y, greatest.X
	if lastY-least.Y >= maxRows {
		lastY = least.Y + maxRows - 1
	}
	if lastX-least.X >= maxCols {
		lastX = least.X + maxCols - 1
	}

	width := len(strconv.FormatInt(int64(lastY), 10))
	if w := len(strconv.FormatInt(int64(least.Y), 10)); w > width {
		width = w
	}

	var buf strings.Builder
	for y := least.Y; y <= lastY; y++ {
		buf.Reset()
		for x := least.X; x <= lastX; x++ {
			c := dump.vm.space.Load(funge.Vector{X: x, Y: y})
			if c >= 0x20 && c < 0x7f {
				buf.WriteByte(byte(c))
			} else {
				buf.WriteRune('·')
			}
		}
		if line := strings.TrimRight(buf.String(), " "); line != "" {
			fmt.Fprintf(dump.out, "  %*v| %v\n", width, y, line)
		}
	}
	if lastY < greatest.Y || lastX < greatest.X {
		fmt.Fprintf(dump.out, "  ...\n")
	}
}

package ip

import (
	"fmt"

	"github.com/jcorbin/gofunge/internal/funge"
)

// NumOpcodes is the size of the overridable alphabet, A through Z.
const NumOpcodes = 26

// OpcodeError indicates a binding for a character outside A through Z.
type OpcodeError funge.Cell

func (c OpcodeError) Error() string {
	return fmt.Sprintf("invalid fingerprint opcode %q", rune(c))
}

// OpcodeIndex maps A through Z to a table index.
func OpcodeIndex(c funge.Cell) (int, bool) {
	if c >= 'A' && c <= 'Z' {
		return int(c - 'A'), true
	}
	return 0, false
}

// Table holds, for each opcode, a shadow stack of instructions: the top one
// is active, and an empty stack means the opcode has no override.
type Table struct {
	ops [NumOpcodes][]Instruction
}

// Push binds inst to op, shadowing any prior binding.
func (t *Table) Push(op funge.Cell, inst Instruction) error {
	i, ok := OpcodeIndex(op)
	if !ok {
		return OpcodeError(op)
	}
	t.ops[i] = append(t.ops[i], inst)
	return nil
}

// Pop removes and returns the active binding for op, exposing whatever it
// shadowed; it returns nil if op had no binding.
func (t *Table) Pop(op funge.Cell) Instruction {
	i, ok := OpcodeIndex(op)
	if !ok {
		return nil
	}
	n := len(t.ops[i]) - 1
	if n < 0 {
		return nil
	}
	inst := t.ops[i][n]
	t.ops[i][n] = nil
	t.ops[i] = t.ops[i][:n]
	return inst
}

// Top returns the active binding for op, or nil.
func (t *Table) Top(op funge.Cell) Instruction {
	i, ok := OpcodeIndex(op)
	if !ok {
		return nil
	}
	if n := len(t.ops[i]); n > 0 {
		return t.ops[i][n-1]
	}
	return nil
}

// Depth returns how many bindings are stacked on op.
func (t *Table) Depth(op funge.Cell) int {
	if i, ok := OpcodeIndex(op); ok {
		return len(t.ops[i])
	}
	return 0
}

// Clone copies every shadow stack.
func (t *Table) Clone() *Table {
	var dup Table
	for i, insts := range t.ops {
		if len(insts) > 0 {
			dup.ops[i] = append([]Instruction(nil), insts...)
		}
	}
	return &dup
}

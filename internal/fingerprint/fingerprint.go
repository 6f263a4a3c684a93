// Package fingerprint implements loadable opcode extensions: the registry
// of known fingerprints, the shared store their modules keep process-wide
// state in, and dispatch of A through Z against an IP's binding table.
package fingerprint

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

// Bindings maps each opcode a fingerprint provides to its instruction.
type Bindings map[funge.Cell]ip.Instruction

// Fingerprint describes one loadable extension module.
type Fingerprint struct {
	// Name is four printable characters; see IDOf.
	Name string

	// Opcodes lists every opcode Load binds, each one of A through Z.
	Opcodes string

	Description string

	// Safe marks fingerprints that stay within the interpreter; only safe
	// fingerprints load in sandbox mode.
	Safe bool

	// Load creates the instructions bound for a loading IP. Module state
	// shared by every IP lives in the store, see Store.Shared.
	Load func(store *Store) (Bindings, error)
}

// ID returns the numeric identity programs use to request fp.
func (fp Fingerprint) ID() funge.Cell { return IDOf(fp.Name) }

// IDOf folds a name into a fingerprint ID, treating each character as a
// base-256 digit, most significant first.
func IDOf(name string) (id funge.Cell) {
	for i := 0; i < len(name); i++ {
		id = id*256 + funge.Cell(name[i])
	}
	return id
}

// NameOf reverses IDOf for IDs made of printable characters.
func NameOf(id funge.Cell) string {
	var buf [8]byte
	i := len(buf)
	for id > 0 && i > 0 {
		i--
		buf[i] = byte(id % 256)
		id /= 256
	}
	return string(buf[i:])
}

// Errors returned by registration and binding.
var (
	ErrDuplicate = errors.New("fingerprint already registered")
	ErrNoLoad    = errors.New("fingerprint has no Load function")
	ErrNoTable   = errors.New("ip has fingerprints disabled")
)

// BindingError indicates that a fingerprint's Load did not bind an opcode
// it declared.
type BindingError struct {
	Name   string
	Opcode funge.Cell
}

func (err BindingError) Error() string {
	return fmt.Sprintf("fingerprint %v did not bind declared opcode %q", err.Name, rune(err.Opcode))
}

func (fp Fingerprint) validate() error {
	if len(fp.Name) == 0 || len(fp.Name)*8 > funge.CellBits {
		return fmt.Errorf("invalid fingerprint name %q", fp.Name)
	}
	if fp.Load == nil {
		return fmt.Errorf("%v: %w", fp.Name, ErrNoLoad)
	}
	for i := 0; i < len(fp.Opcodes); i++ {
		if _, ok := ip.OpcodeIndex(funge.Cell(fp.Opcodes[i])); !ok {
			return fmt.Errorf("%v: %w", fp.Name, ip.OpcodeError(fp.Opcodes[i]))
		}
	}
	return nil
}

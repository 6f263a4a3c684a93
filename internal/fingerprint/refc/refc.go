// Package refc provides the REFC fingerprint: a table of vectors, shared
// by every IP, addressed by integer handles.
package refc

import (
	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

const name = "REFC"

// Fingerprint describes REFC for registration.
var Fingerprint = fingerprint.Fingerprint{
	Name:        name,
	Opcodes:     "DR",
	Description: "Referenced Cells Extension",
	Safe:        true,
	Load:        load,
}

// Table holds referenced vectors; a handle is an index.
type Table struct {
	refs []funge.Vector
}

// Reference stores v, returning its new handle.
func (tab *Table) Reference(v funge.Vector) funge.Cell {
	tab.refs = append(tab.refs, v)
	return funge.Cell(len(tab.refs) - 1)
}

// Dereference returns the vector stored under handle.
func (tab *Table) Dereference(handle funge.Cell) (funge.Vector, bool) {
	if handle < 0 || handle >= funge.Cell(len(tab.refs)) {
		return funge.Vector{}, false
	}
	return tab.refs[handle], true
}

// Len returns the number of handles issued.
func (tab *Table) Len() int { return len(tab.refs) }

func load(store *fingerprint.Store) (fingerprint.Bindings, error) {
	val, err := store.Shared(name, func() (interface{}, error) {
		return &Table{}, nil
	})
	if err != nil {
		return nil, err
	}
	tab := val.(*Table)
	return fingerprint.Bindings{
		'D': func(ptr *ip.IP, _ ip.Env) ip.Outcome {
			v, ok := tab.Dereference(ptr.Stack().Pop())
			if !ok {
				return ip.Reflect
			}
			ptr.Stack().PushVector(v)
			return ip.Continue
		},
		'R': func(ptr *ip.IP, _ ip.Env) ip.Outcome {
			s := ptr.Stack()
			s.Push(tab.Reference(s.PopVector()))
			return ip.Continue
		},
	}, nil
}

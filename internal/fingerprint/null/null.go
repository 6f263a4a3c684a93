// Package null provides the NULL fingerprint, which makes every opcode
// reflect.
package null

import (
	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

const opcodes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Fingerprint describes NULL for registration.
var Fingerprint = fingerprint.Fingerprint{
	Name:        "NULL",
	Opcodes:     opcodes,
	Description: "Null",
	Safe:        true,
	Load: func(*fingerprint.Store) (fingerprint.Bindings, error) {
		binds := make(fingerprint.Bindings, len(opcodes))
		for i := 0; i < len(opcodes); i++ {
			binds[funge.Cell(opcodes[i])] = reflect
		}
		return binds, nil
	},
}

func reflect(*ip.IP, ip.Env) ip.Outcome { return ip.Reflect }

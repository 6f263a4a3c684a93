// Package roma provides the ROMA fingerprint of Roman numeral pushes.
package roma

import (
	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

var numerals = map[funge.Cell]funge.Cell{
	'C': 100,
	'D': 500,
	'I': 1,
	'L': 50,
	'M': 1000,
	'V': 5,
	'X': 10,
}

// Fingerprint describes ROMA for registration.
var Fingerprint = fingerprint.Fingerprint{
	Name:        "ROMA",
	Opcodes:     "CDILMVX",
	Description: "Funge-98 Roman Numerals",
	Safe:        true,
	Load: func(*fingerprint.Store) (fingerprint.Bindings, error) {
		binds := make(fingerprint.Bindings, len(numerals))
		for op, val := range numerals {
			binds[op] = pusher(val)
		}
		return binds, nil
	},
}

func pusher(val funge.Cell) ip.Instruction {
	return func(ptr *ip.IP, _ ip.Env) ip.Outcome {
		ptr.Stack().Push(val)
		return ip.Continue
	}
}

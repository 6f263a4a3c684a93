// Package modu provides the MODU fingerprint's three flavors of modulo.
// A zero divisor results in 0.
package modu

import (
	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

// Fingerprint describes MODU for registration.
var Fingerprint = fingerprint.Fingerprint{
	Name:        "MODU",
	Opcodes:     "MRU",
	Description: "Modulo Arithmetic Extension",
	Safe:        true,
	Load: func(*fingerprint.Store) (fingerprint.Bindings, error) {
		return fingerprint.Bindings{
			'M': binary(Signed),
			'R': binary(Remainder),
			'U': binary(Unsigned),
		}, nil
	},
}

func binary(op func(a, b funge.Cell) funge.Cell) ip.Instruction {
	return func(ptr *ip.IP, _ ip.Env) ip.Outcome {
		s := ptr.Stack()
		b := s.Pop()
		a := s.Pop()
		if b == 0 {
			s.Push(0)
		} else {
			s.Push(op(a, b))
		}
		return ip.Continue
	}
}

// Signed is floored modulo: the result takes the sign of b.
func Signed(a, b funge.Cell) funge.Cell {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Unsigned is Sam Holden's modulo, the absolute value of the remainder.
func Unsigned(a, b funge.Cell) funge.Cell {
	r := a % b
	if r < 0 {
		r = -r
	}
	return r
}

// Remainder truncates like C: the result takes the sign of a.
func Remainder(a, b funge.Cell) funge.Cell { return a % b }

// Package boolean provides the BOOL fingerprint of bitwise logic.
package boolean

import (
	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
)

// Fingerprint describes BOOL for registration.
var Fingerprint = fingerprint.Fingerprint{
	Name:        "BOOL",
	Opcodes:     "ANOX",
	Description: "Logic functions",
	Safe:        true,
	Load: func(*fingerprint.Store) (fingerprint.Bindings, error) {
		return fingerprint.Bindings{
			'A': binary(func(a, b funge.Cell) funge.Cell { return a & b }),
			'O': binary(func(a, b funge.Cell) funge.Cell { return a | b }),
			'X': binary(func(a, b funge.Cell) funge.Cell { return a ^ b }),
			'N': not,
		}, nil
	},
}

func binary(op func(a, b funge.Cell) funge.Cell) ip.Instruction {
	return func(ptr *ip.IP, _ ip.Env) ip.Outcome {
		s := ptr.Stack()
		b := s.Pop()
		s.Push(op(s.Pop(), b))
		return ip.Continue
	}
}

func not(ptr *ip.IP, _ ip.Env) ip.Outcome {
	s := ptr.Stack()
	s.Push(^s.Pop())
	return ip.Continue
}

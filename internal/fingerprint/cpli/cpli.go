// Package cpli provides the CPLI fingerprint: complex integer arithmetic
// on pairs of cells, real part pushed first.
package cpli

import (
	"fmt"
	"math"

	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/jcorbin/gofunge/internal/stack"
)

// Fingerprint describes CPLI for registration.
var Fingerprint = fingerprint.Fingerprint{
	Name:        "CPLI",
	Opcodes:     "ADMOSV",
	Description: "Complex Integer extension",
	Safe:        true,
	Load: func(*fingerprint.Store) (fingerprint.Bindings, error) {
		return fingerprint.Bindings{
			'A': binary(add),
			'D': binary(div),
			'M': binary(mul),
			'O': out,
			'S': binary(sub),
			'V': abs,
		}, nil
	},
}

// cnum is a complex integer.
type cnum struct{ r, i funge.Cell }

func pop(s *stack.Stack) cnum {
	i := s.Pop()
	return cnum{s.Pop(), i}
}

func push(s *stack.Stack, c cnum) {
	s.Push(c.r)
	s.Push(c.i)
}

func binary(op func(a, b cnum) cnum) ip.Instruction {
	return func(ptr *ip.IP, _ ip.Env) ip.Outcome {
		s := ptr.Stack()
		b := pop(s)
		a := pop(s)
		push(s, op(a, b))
		return ip.Continue
	}
}

func add(a, b cnum) cnum { return cnum{a.r + b.r, a.i + b.i} }
func sub(a, b cnum) cnum { return cnum{a.r - b.r, a.i - b.i} }

func mul(a, b cnum) cnum {
	return cnum{a.r*b.r - a.i*b.i, a.r*b.i + a.i*b.r}
}

// div pushes 0 0 for a zero denominator.
func div(a, b cnum) cnum {
	denom := b.r*b.r + b.i*b.i
	if denom == 0 {
		return cnum{}
	}
	return cnum{
		(a.i*b.i + a.r*b.r) / denom,
		(a.i*b.r - a.r*b.i) / denom,
	}
}

func abs(ptr *ip.IP, _ ip.Env) ip.Outcome {
	s := ptr.Stack()
	c := pop(s)
	mag := math.Sqrt(float64(c.r)*float64(c.r) + float64(c.i)*float64(c.i))
	s.Push(funge.Cell(mag))
	return ip.Continue
}

// out writes a cnum number like "3+4i ".
func out(ptr *ip.IP, env ip.Env) ip.Outcome {
	c := pop(ptr.Stack())
	sign := ""
	if c.i > 0 {
		sign = "+"
	}
	if _, err := fmt.Fprintf(env.Output(), "%d%s%di ", c.r, sign, c.i); err != nil {
		return env.Fail(err)
	}
	return ip.Continue
}

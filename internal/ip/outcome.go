package ip

import (
	"io"

	"github.com/jcorbin/gofunge/internal/funge"
)

// Outcome is the explicit result of executing one instruction.
type Outcome uint8

const (
	// Continue means the instruction completed normally.
	Continue Outcome = iota

	// Reflect means the instruction failed in a way the program may observe
	// and route around: the scheduler reverses the IP.
	Reflect

	// Split asks the scheduler to fork the IP.
	Split

	// Stop asks the scheduler to terminate the IP.
	Stop

	// Quit asks the scheduler to end the whole program.
	Quit

	// Fatal means a host resource failed and the program must abort; the
	// cause was passed to Env.Fail.
	Fatal
)

var outcomeNames = [...]string{"continue", "reflect", "split", "stop", "quit", "fatal"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "invalid"
}

// Wrapper applies funge-space's boundary rule to a position just moved
// along delta.
type Wrapper interface {
	Wrap(pos, delta funge.Vector) funge.Vector
}

// Space is the funge-space shared by all IPs.
type Space interface {
	Wrapper
	Load(pos funge.Vector) funge.Cell
	Stor(pos funge.Vector, v funge.Cell) error
}

// Env is everything an instruction may touch besides its own IP.
type Env interface {
	Space() Space
	Output() io.Writer

	// Fail records err as the cause of a fatal failure and returns Fatal.
	Fail(err error) Outcome
}

// Instruction implements one opcode against an IP.
type Instruction func(ip *IP, env Env) Outcome

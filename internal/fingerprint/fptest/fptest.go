// Package fptest provides utilities for testing fingerprint modules.
package fptest

import (
	"bytes"
	"io"
	"testing"

	"github.com/jcorbin/gofunge/internal/fingerprint"
	"github.com/jcorbin/gofunge/internal/funge"
	"github.com/jcorbin/gofunge/internal/ip"
	"github.com/stretchr/testify/require"
)

// Env is an ip.Env that records output and failure.
type Env struct {
	Grid ip.Space
	Out  bytes.Buffer
	Err  error
}

// Space returns Grid.
func (env *Env) Space() ip.Space { return env.Grid }

// Output returns Out.
func (env *Env) Output() io.Writer { return &env.Out }

// Fail records err.
func (env *Env) Fail(err error) ip.Outcome {
	env.Err = err
	return ip.Fatal
}

// NewIP returns an IP with a fingerprint table whose stack holds values,
// the last one on top.
func NewIP(id funge.Cell, values ...funge.Cell) *ip.IP {
	ptr := ip.New(id, ip.Config{Fingerprints: true})
	for _, val := range values {
		ptr.Stack().Push(val)
	}
	return ptr
}

// Result of Run.
type Result struct {
	Stack    []funge.Cell
	Outcomes []ip.Outcome
	Output   string
	Err      error
}

// Run loads fp into a fresh IP whose stack holds initial values, executes
// each opcode in ops, and returns what happened.
func Run(t testing.TB, fp fingerprint.Fingerprint, initial []funge.Cell, ops string) Result {
	var m fingerprint.Manager
	require.NoError(t, m.Register(fp), "must register %v", fp.Name)

	ptr := NewIP(0, initial...)
	require.Equal(t, ip.Continue, m.Load(ptr, fp.ID()), "must load %v", fp.Name)

	var env Env
	var res Result
	for i := 0; i < len(ops); i++ {
		res.Outcomes = append(res.Outcomes, m.Execute(ptr, &env, funge.Cell(ops[i])))
	}
	res.Stack = ptr.Stack().Values()
	res.Output = env.Out.String()
	res.Err = env.Err
	return res
}

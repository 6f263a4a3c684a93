// Package funge defines the value types shared by every part of the
// interpreter: cells and two dimensional vectors.
package funge

import "fmt"

// Vector is a coordinate in funge-space or a direction of travel.
type Vector struct{ X, Y Cell }

// Cardinal deltas.
var (
	East  = Vector{1, 0}
	West  = Vector{-1, 0}
	North = Vector{0, -1}
	South = Vector{0, 1}
)

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Mul(n Cell) Vector   { return Vector{v.X * n, v.Y * n} }
func (v Vector) Neg() Vector         { return Vector{-v.X, -v.Y} }
func (v Vector) IsZero() bool        { return v.X == 0 && v.Y == 0 }

// TurnLeft rotates v 90 degrees counter-clockwise, with y growing southward.
func (v Vector) TurnLeft() Vector { return Vector{v.Y, -v.X} }

// TurnRight rotates v 90 degrees clockwise, with y growing southward.
func (v Vector) TurnRight() Vector { return Vector{-v.Y, v.X} }

func (v Vector) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// Bool converts a truth value into the cell 1 or 0.
func Bool(b bool) Cell {
	if b {
		return 1
	}
	return 0
}

//go:build cell32

package funge

// Cell is the only value type of funge programs: a fixed width signed
// integer used for numbers, characters and booleans alike.
type Cell int32

// CellBits is the width of Cell.
const CellBits = 32

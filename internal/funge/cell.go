//go:build !cell32

package funge

// Cell is the only value type of funge programs: a fixed width signed
// integer used for numbers, characters and booleans alike.
type Cell int64

// CellBits is the width of Cell; build with the cell32 tag for 32-bit cells.
const CellBits = 64

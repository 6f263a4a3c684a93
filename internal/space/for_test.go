package space

import (
	"sort"

	"github.com/jcorbin/gofunge/internal/funge"
)

// Dump returns allocated page origins, in row order, for testing.
func (s *Space) Dump() (bases []funge.Vector) {
	for base := range s.pages {
		bases = append(bases, base)
	}
	sort.Slice(bases, func(i, j int) bool {
		if bases[i].Y != bases[j].Y {
			return bases[i].Y < bases[j].Y
		}
		return bases[i].X < bases[j].X
	})
	return bases
}

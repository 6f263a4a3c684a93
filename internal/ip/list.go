package ip

import (
	"errors"

	"github.com/jcorbin/gofunge/internal/funge"
)

// ErrTooManyIPs is returned by Fork when the list is at its Limit.
var ErrTooManyIPs = errors.New("too many instruction pointers")

// List holds the live IPs in a dense slot-indexed sequence. Forks insert and
// terminations compact, so slots [0, Len()) are always live.
type List struct {
	// Limit, if non-zero, caps the number of live IPs.
	Limit int

	space     Wrapper
	ips       []*IP
	highestID funge.Cell
}

// NewList creates a list holding the initial IP, ID 0, in slot 0.
func NewList(w Wrapper, cfg Config) *List {
	return &List{
		space: w,
		ips:   []*IP{New(0, cfg)},
	}
}

// Len returns the number of live IPs.
func (l *List) Len() int { return len(l.ips) }

// At returns the IP in the given slot.
func (l *List) At(slot int) *IP { return l.ips[slot] }

// HighestID returns the highest ID issued so far.
func (l *List) HighestID() funge.Cell { return l.highestID }

// Each calls f for every live IP in slot order.
func (l *List) Each(f func(slot int, ip *IP)) {
	for i, ip := range l.ips {
		f(i, ip)
	}
}

// Fork duplicates the IP at slot at, inserting the copy right after it.
// The copy is reversed and moved one step so that the two diverge, and is
// given a fresh ID. Fork returns at, the original's unchanged slot; on
// error the list is left as it was.
func (l *List) Fork(at int) (int, error) {
	if l.Limit != 0 && len(l.ips) >= l.Limit {
		return at, ErrTooManyIPs
	}

	child := l.ips[at].Clone()
	child.Reverse()
	child.Forward(l.space, 1)
	l.highestID++
	child.ID = l.highestID

	l.ips = append(l.ips, nil)
	copy(l.ips[at+2:], l.ips[at+1:])
	l.ips[at+1] = child
	return at, nil
}

// Terminate removes the IP at slot at, shifting later IPs down. It returns
// the slot to treat as current next: the one before at, or 0.
func (l *List) Terminate(at int) int {
	last := len(l.ips) - 1
	copy(l.ips[at:], l.ips[at+1:])
	l.ips[last] = nil
	l.ips = l.ips[:last]
	if at > 0 {
		return at - 1
	}
	return 0
}

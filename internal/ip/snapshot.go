package ip

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/jcorbin/gofunge/internal/funge"
)

// Snapshot is a plain data copy of a List, for dumping and inspection.
type Snapshot struct {
	HighestID funge.Cell `cbor:"highest_id"`
	IPs       []State    `cbor:"ips"`
}

// State is a plain data copy of one IP.
type State struct {
	ID            funge.Cell     `cbor:"id"`
	Position      [2]funge.Cell  `cbor:"pos"`
	Delta         [2]funge.Cell  `cbor:"delta"`
	StorageOffset [2]funge.Cell  `cbor:"offset"`
	StringMode    bool           `cbor:"string_mode,omitempty"`
	Stacks        [][]funge.Cell `cbor:"stacks"`
	Fingerprints  map[string]int `cbor:"fingerprints,omitempty"`
}

func pair(v funge.Vector) [2]funge.Cell { return [2]funge.Cell{v.X, v.Y} }

// Snapshot copies the state of every live IP.
func (l *List) Snapshot() *Snapshot {
	snap := &Snapshot{
		HighestID: l.highestID,
		IPs:       make([]State, 0, len(l.ips)),
	}
	for _, ip := range l.ips {
		st := State{
			ID:            ip.ID,
			Position:      pair(ip.Position),
			Delta:         pair(ip.Delta),
			StorageOffset: pair(ip.StorageOffset),
			StringMode:    ip.Mode == StringMode,
			Stacks:        ip.Stacks.Stacks(),
		}
		if t := ip.Fingerprints; t != nil {
			for op := funge.Cell('A'); op <= 'Z'; op++ {
				if n := t.Depth(op); n > 0 {
					if st.Fingerprints == nil {
						st.Fingerprints = make(map[string]int)
					}
					st.Fingerprints[string(rune(op))] = n
				}
			}
		}
		snap.IPs = append(snap.IPs, st)
	}
	return snap
}

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("ip: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// MarshalSnapshot serializes a Snapshot to canonical CBOR.
func MarshalSnapshot(snap *Snapshot) ([]byte, error) {
	return snapshotEncMode.Marshal(snap)
}

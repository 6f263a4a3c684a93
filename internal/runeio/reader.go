package runeio

import (
	"bufio"
	"io"
)

// Reader is an io.Reader that also supports reading and unreading runes.
type Reader interface {
	io.Reader
	io.RuneScanner
}

// NewReader returns a Reader from r; if r already implements, it is simply returned.
// Otherwise bufio.Reader is used to provide rune scanning around the given reader.
// If the r implements Name() string, so will the returned Reader.
func NewReader(r io.Reader) Reader {
	if impl, ok := r.(Reader); ok {
		return impl
	}
	br := bufio.NewReader(r)
	if impl, ok := r.(interface{ Name() string }); ok {
		return namedRuneReader{br, impl.Name()}
	}
	return br
}

type namedRuneReader struct {
	Reader
	name string
}

func (nr namedRuneReader) Name() string { return nr.name }

// ReadInt scans a decimal integer: runes before the first digit are
// skipped, and the rune after the last digit is unread. Accumulation stops
// growing once another digit would exceed max. Returns io.EOF if input
// ends before any digit.
func ReadInt(r io.RuneScanner, max int64) (int64, error) {
	var n int64
	for {
		c, _, err := r.ReadRune()
		if err != nil {
			return 0, err
		}
		if '0' <= c && c <= '9' {
			n = int64(c - '0')
			break
		}
	}
	for {
		c, _, err := r.ReadRune()
		if err == io.EOF {
			return n, nil
		} else if err != nil {
			return n, err
		}
		if c < '0' || c > '9' {
			return n, r.UnreadRune()
		}
		if d := int64(c - '0'); n <= (max-d)/10 {
			n = n*10 + d
		}
	}
}

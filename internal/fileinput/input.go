// Package fileinput provides rune scanning across a queue of input
// streams, tracking the current and last lines for diagnostics.
package fileinput

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/gofunge/internal/runeio"
)

// ErrUnread is returned by UnreadRune when no rune may be unread.
var ErrUnread = errors.New("fileinput: invalid use of UnreadRune")

// Location names an a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il *Line) String() string     { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input implements sequential rune scanning through a Queue of one or more
// input streams. Both the current and last scanned lines are tracked to
// facilitate user feedback.
type Input struct {
	Queue []io.Reader
	Last  Line
	Scan  Line

	rr io.RuneReader

	last     rune
	lastSize int
	pending  bool
	unread   bool
}

// ReadRune reads one rune from the current input stream, moving on to the
// next queued stream at EOF. Read runes are appended to the Scan line,
// which rolls over to Last after a line feed.
func (in *Input) ReadRune() (rune, int, error) {
	if in.pending {
		in.pending, in.unread = false, true
		return in.last, in.lastSize, nil
	}
	in.unread = false
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if err == io.EOF {
			in.closeIn()
			continue
		} else if err != nil {
			return 0, 0, err
		}
		if r == '\n' {
			in.nextLine()
		} else {
			in.Scan.WriteRune(r)
		}
		in.last, in.lastSize, in.unread = r, n, true
		return r, n, nil
	}
}

// UnreadRune causes the next ReadRune to return the last rune read again.
// The line tracking is not rewound.
func (in *Input) UnreadRune() error {
	if !in.unread {
		return ErrUnread
	}
	in.pending, in.unread = true, false
	return nil
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Name = in.Scan.Name
	in.Last.Line = in.Scan.Line
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) closeIn() {
	if cl, ok := in.rr.(io.Closer); ok {
		cl.Close()
	}
	in.rr = nil
	if in.Scan.Len() > 0 {
		in.nextLine()
	}
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.rr = runeio.NewReader(r)
	in.Scan.Name = nameOf(r)
	in.Scan.Line = 1
	return true
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

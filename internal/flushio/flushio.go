// Package flushio provides the buffered output streams that interpreter
// output is written through.
package flushio

import (
	"bufio"
	"bytes"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// memBuffer matches in-memory buffers like bytes.Buffer and
// strings.Builder, which never need flushing.
type memBuffer interface {
	io.Writer
	Len() int
	Grow(n int)
	Reset()
}

type unbuffered struct{ io.Writer }

func (unbuffered) Flush() error { return nil }

var discard WriteFlusher = unbuffered{io.Discard}

// NewWriteFlusher returns w itself if it is already a WriteFlusher; writers
// that need no buffering gain a no-op Flush; anything else is wrapped in a
// bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch impl := w.(type) {
	case WriteFlusher:
		return impl
	case memBuffer:
		return unbuffered{w}
	}
	if w == io.Discard {
		return discard
	}
	return bufio.NewWriter(w)
}

// LineFlushing wraps wf so that any write containing a newline is followed
// by a flush, as interactive terminals expect.
func LineFlushing(wf WriteFlusher) WriteFlusher { return lineFlusher{wf} }

type lineFlusher struct{ WriteFlusher }

func (lf lineFlusher) Write(p []byte) (int, error) {
	n, err := lf.WriteFlusher.Write(p)
	if err == nil && bytes.IndexByte(p, '\n') >= 0 {
		err = lf.Flush()
	}
	return n, err
}

// WriteByte writes a single byte, flushing after a newline.
func (lf lineFlusher) WriteByte(c byte) error {
	_, err := lf.Write([]byte{c})
	return err
}

// WriteFlushers combines any number of WriteFlushers into one that writes
// to and flushes all of them; nils are skipped, nested tees are flattened.
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case tee:
			all = append(all, impl...)
		default:
			all = append(all, impl)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return all
}

type tee []WriteFlusher

func (t tee) Write(p []byte) (n int, err error) {
	for _, wf := range t {
		if n, err = wf.Write(p); err != nil {
			return n, err
		} else if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every writer, returning the first error.
func (t tee) Flush() (err error) {
	for _, wf := range t {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

package space

import (
	"bufio"
	"io"
	"os"

	"github.com/jcorbin/gofunge/internal/funge"
)

// LoadProgram stores program text read from r with its first character at
// the origin. Lines end at "\n", "\r\n" or a lone "\r"; form feeds are
// ignored and spaces are skipped, leaving whatever was stored beneath them.
func (s *Space) LoadProgram(r io.Reader) error {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	var (
		pos    funge.Vector
		lastCR bool
	)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if b == '\n' && lastCR {
			lastCR = false
			continue
		}
		if lastCR = b == '\r'; lastCR {
			b = '\n'
		}
		if err := s.loadByte(&pos, b); err != nil {
			return err
		}
	}
}

func (s *Space) loadByte(pos *funge.Vector, b byte) error {
	switch b {
	case '\n':
		*pos = funge.Vector{Y: pos.Y + 1}
		return nil
	case '\f':
		return nil
	case ' ':
	default:
		if err := s.Stor(*pos, funge.Cell(b)); err != nil {
			return err
		}
	}
	pos.X++
	return nil
}

// LoadFile opens the named file and loads it with LoadProgram.
func (s *Space) LoadFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.LoadProgram(bufio.NewReader(f))
}

package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteRune writes a rune to the given writer:
// - runes below 0x100 are written directly as single bytes
// - all other valid runes are written in utf8 form
// - invalid runes are truncated to their low byte
func WriteRune(w io.Writer, r rune) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	if r < 0 || r > utf8.MaxRune || (r >= 0x80 && !utf8.ValidRune(r)) {
		r &= 0xff
	}
	if r < 0x100 {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	return w.Write([]byte(string(r)))
}

// WriteString writes a string using WriteRune for each rune.
func WriteString(w io.Writer, s string) (n int, err error) {
	for _, r := range s {
		m, err := WriteRune(w, r)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

package runeio

import (
	"fmt"
	"strconv"
	"unicode"
)

// c0Names holds the classic ASCII control mnemonics.
var c0Names = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "NL", "VT", "NP", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// Name returns a printable name for r, as shown in instruction traces:
// control mnemonics like <ESC> or <NUL>, <SP> and <DEL>, a single quoted
// character, or a U+ codepoint for runes outside the printable range.
func Name(r rune) string {
	switch {
	case r >= 0 && r < 0x20:
		return "<" + c0Names[r] + ">"
	case r == 0x20:
		return "<SP>"
	case r == 0x7f:
		return "<DEL>"
	case r >= 0 && r <= unicode.MaxRune && unicode.IsPrint(r):
		return strconv.QuoteRune(r)
	}
	return fmt.Sprintf("U+%X", int64(r))
}

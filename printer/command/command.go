// Package command holds the ESC/POS byte sequences this engine emits.
// Everything that reaches a printer is built here, so transports never
// hand-roll protocol bytes.
package command

import (
	"fmt"

	"github.com/hnimtadd/escpos/printer/style"
)

type escpos struct {
	ESC byte // prefix for formatting commands
	GS  byte // prefix for mechanism commands (size, cut)
	LF  byte // prints the buffered line and advances one line
}

// Prefix holds the ESC/POS control bytes. Text bytes are written raw;
// anything else starts with one of these.
var Prefix = escpos{
	ESC: 0x1B,
	GS:  0x1D,
	LF:  0x0A,
}

// PagePC437 is the code page selector for CP437, the page the codepage
// package encodes into.
const PagePC437 byte = 0x00

// Initialize resets the printer to power-on defaults: normal size, no
// decorations, left alignment.
func Initialize() []byte {
	return []byte{Prefix.ESC, '@'}
}

// SelectCodePage picks the character table used for raw text bytes.
func SelectCodePage(page byte) []byte {
	return []byte{Prefix.ESC, 't', page}
}

func Bold(on bool) []byte {
	var n byte
	if on {
		n = 0x01
	}
	return []byte{Prefix.ESC, 'E', n}
}

func Underline(mode style.UnderlineMode) []byte {
	var n byte
	switch mode {
	case style.UnderlineSingle:
		n = 0x01
	case style.UnderlineDouble:
		n = 0x02
	}
	return []byte{Prefix.ESC, '-', n}
}

// Size sets the character cell magnification. Width sits in the high
// nibble, height in the low one.
func Size(s style.TextSize) []byte {
	var n byte
	switch s {
	case style.SizeDoubleHeight:
		n = 0x01
	case style.SizeDoubleWidth:
		n = 0x10
	case style.SizeDoubleBoth:
		n = 0x11
	}
	return []byte{Prefix.GS, '!', n}
}

func Justify(j style.Justify) []byte {
	var n byte
	switch j {
	case style.JustifyCenter:
		n = 0x01
	case style.JustifyRight:
		n = 0x02
	}
	return []byte{Prefix.ESC, 'a', n}
}

// Feed prints the buffered line and advances n lines. n is clamped to
// the protocol's single-byte range.
func Feed(n int) []byte {
	if n < 0 {
		n = 0
	}
	if n > 0xFF {
		n = 0xFF
	}
	return []byte{Prefix.ESC, 'd', byte(n)}
}

// Cut severs the paper. The partial variant leaves a holding tab.
func Cut(partial bool) []byte {
	var m byte
	if partial {
		m = 0x01
	}
	return []byte{Prefix.GS, 'V', m}
}

// names of known command prefixes, for debug logging only.
var names = map[[2]byte]string{
	{0x1B, '@'}: "initialize",
	{0x1B, 't'}: "codepage",
	{0x1B, 'E'}: "bold",
	{0x1B, '-'}: "underline",
	{0x1B, 'a'}: "justify",
	{0x1B, 'd'}: "feed",
	{0x1D, '!'}: "size",
	{0x1D, 'V'}: "cut",
}

func Name(seq []byte) string {
	if len(seq) >= 2 {
		if name, ok := names[[2]byte{seq[0], seq[1]}]; ok {
			return name
		}
	}
	return fmt.Sprintf("raw(% X)", seq)
}

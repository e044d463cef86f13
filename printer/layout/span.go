package layout

import (
	"github.com/hnimtadd/escpos/printer/codepage"
	"github.com/hnimtadd/escpos/printer/style"
)

// Span is a contiguous run of characters printed under one format.
// Lines store format once per span, never per character, so the
// serializer can diff whole runs against the hardware state.
type Span struct {
	Format style.FormatState
	Runes  []rune
}

func (s *Span) Text() string {
	return string(s.Runes)
}

// Width sums the visual column cost of every character in the span.
func (s *Span) Width() int {
	w := 0
	for _, r := range s.Runes {
		w += charWidth(r, s.Format.Size)
	}
	return w
}

// charWidth is the visual column cost of r printed at size: the code
// page expansion length times the size multiplier. An ellipsis at
// double width therefore costs 6 columns.
func charWidth(r rune, size style.TextSize) int {
	return size.Columns() * codepage.Width(r)
}

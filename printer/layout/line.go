package layout

import (
	"unicode"

	"github.com/hnimtadd/escpos/printer/style"
)

// Line is an ordered run of spans plus the alignment it prints under.
// The cumulative visual width is maintained on every append; it is never
// recomputed by rescanning the spans on the hot path.
type Line struct {
	Spans   []Span
	Justify style.Justify

	width int
}

func NewLine(j style.Justify) *Line {
	return &Line{Justify: j}
}

// Width returns the cached visual width in columns.
func (l *Line) Width() int {
	return l.width
}

func (l *Line) IsEmpty() bool {
	return len(l.Spans) == 0
}

func (l *Line) Text() string {
	var out []rune
	for i := range l.Spans {
		out = append(out, l.Spans[i].Runes...)
	}
	return string(out)
}

// Add appends r under format f, wrapping against the cpl column budget.
// It returns nil while the line still has room, or the new open line
// holding whatever content moved past the break.
//
// Break selection, in order:
//   - the incoming character itself, when it is whitespace: it is
//     dropped and the line closes at its current width;
//   - the last whitespace already in the line, provided the tail moved
//     to the next line fits within cpl; the whitespace is carried into
//     neither line;
//   - otherwise the token is wider than the budget and the line closes
//     as-is, the incoming character starting the next line whole. A
//     double-width character therefore never straddles two lines.
//
// A single character wider than cpl occupies its own over-budget line;
// that is the one case a closed line may exceed the budget.
func (l *Line) Add(r rune, f style.FormatState, cpl int) *Line {
	cost := charWidth(r, f.Size)
	if l.width+cost <= cpl {
		l.push(r, f, cost)
		return nil
	}
	if unicode.IsSpace(r) {
		return NewLine(l.Justify)
	}
	if next := l.splitAtWhitespace(r, f, cost, cpl); next != nil {
		return next
	}
	if l.width == 0 {
		l.push(r, f, cost)
		return nil
	}
	next := NewLine(l.Justify)
	next.push(r, f, cost)
	return next
}

// push appends without any wrap checks, merging into the trailing span
// when the format matches.
func (l *Line) push(r rune, f style.FormatState, cost int) {
	if n := len(l.Spans); n > 0 && l.Spans[n-1].Format == f {
		l.Spans[n-1].Runes = append(l.Spans[n-1].Runes, r)
	} else {
		l.Spans = append(l.Spans, Span{Format: f, Runes: []rune{r}})
	}
	l.width += cost
}

// splitAtWhitespace moves everything after the line's last whitespace,
// plus the incoming character, onto a new line. Returns nil when there
// is no whitespace to break at, or when the moved tail would overflow
// cpl too (the tail is itself an oversized token and the caller
// hard-splits instead).
func (l *Line) splitAtWhitespace(r rune, f style.FormatState, cost, cpl int) *Line {
	si, ri, ok := l.lastWhitespace()
	if !ok {
		return nil
	}
	tail, tailWidth := l.contentAfter(si, ri)
	if tailWidth+cost > cpl {
		return nil
	}
	next := NewLine(l.Justify)
	next.Spans = tail
	next.width = tailWidth
	next.push(r, f, cost)

	ws := l.Spans[si]
	l.truncate(si, ri)
	l.width -= tailWidth + charWidth(ws.Runes[ri], ws.Format.Size)
	return next
}

func (l *Line) lastWhitespace() (spanIdx, runeIdx int, ok bool) {
	for si := len(l.Spans) - 1; si >= 0; si-- {
		runes := l.Spans[si].Runes
		for ri := len(runes) - 1; ri >= 0; ri-- {
			if unicode.IsSpace(runes[ri]) {
				return si, ri, true
			}
		}
	}
	return 0, 0, false
}

// contentAfter copies the spans strictly after position (si, ri) into a
// fresh slice. Copying keeps the closed line's backing arrays untouched
// by later appends to the new line.
func (l *Line) contentAfter(si, ri int) ([]Span, int) {
	var spans []Span
	width := 0
	add := func(f style.FormatState, runes []rune) {
		if len(runes) == 0 {
			return
		}
		cp := make([]rune, len(runes))
		copy(cp, runes)
		spans = append(spans, Span{Format: f, Runes: cp})
		for _, r := range cp {
			width += charWidth(r, f.Size)
		}
	}
	add(l.Spans[si].Format, l.Spans[si].Runes[ri+1:])
	for i := si + 1; i < len(l.Spans); i++ {
		add(l.Spans[i].Format, l.Spans[i].Runes)
	}
	return spans, width
}

// truncate cuts the line just before position (si, ri), dropping the
// rune at that position and everything after it. Width bookkeeping is
// the caller's job.
func (l *Line) truncate(si, ri int) {
	keep := l.Spans[:si]
	if ri > 0 {
		span := l.Spans[si]
		span.Runes = span.Runes[:ri]
		keep = append(keep, span)
	}
	l.Spans = keep
}

// Package printer serializes finalized layout documents into ESC/POS
// command streams.
//
// The serializer tracks the hardware state it has already configured and
// emits a formatting command only when a span actually changes a field,
// so a document whose characters mostly share one format costs a handful
// of commands rather than one per character. Exactly one Print may be in
// flight against a given transport at a time.
package printer

import (
	"fmt"

	"github.com/hnimtadd/escpos/logger"
	"github.com/hnimtadd/escpos/printer/codepage"
	"github.com/hnimtadd/escpos/printer/layout"
	"github.com/hnimtadd/escpos/printer/style"
	"github.com/hnimtadd/escpos/printer/transport"
	"github.com/hnimtadd/escpos/printer/utils"
)

// DefaultFeedLines is the blank paper fed before the final cut so the
// last printed line clears the blade.
const DefaultFeedLines = 3

type Options struct {
	// Cut is issued once after the document. Ignored when RowsPerPage
	// is set, since pagination cuts at every page boundary.
	Cut transport.CutMode
	// FeedLines is fed before the final cut. Zero suppresses the feed
	// entirely.
	FeedLines int
	// RowsPerPage splits the document into fixed-height pages, cutting
	// after each one and padding the last page with blank feeds. Zero
	// disables pagination.
	RowsPerPage int
	Logger      logger.Logger
}

// TransportError reports an I/O failure partway through serialization.
// LinesSent counts fully transmitted lines and WroteBytes reports
// whether any of the document itself went out; the initialization
// prologue may have partially reached the device even when it is false.
// The serializer never resends on its own; retry policy belongs to the
// caller.
type TransportError struct {
	LinesSent  int
	WroteBytes bool
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("printer: aborted after %d lines: %v", e.LinesSent, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Printer struct {
	opts Options
	log  logger.Logger
	buf  []byte
}

// activeState mirrors what the hardware is currently configured to do.
// It is rebuilt from the reset defaults on every Print.
type activeState struct {
	size      style.TextSize
	bold      bool
	underline bool
	justify   style.Justify
}

func New(opts Options) *Printer {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Printer{opts: opts, log: opts.Logger}
}

// Print initializes the transport, replays doc against it with
// state-diffed formatting commands, and finishes with feed and cut. On
// the first transport failure it stops immediately and returns a
// *TransportError recording how far it got.
func (p *Printer) Print(doc *layout.Document, t transport.Transport) error {
	utils.Assert(doc.Finalized(), "printer: document must be finalized before printing")

	sent := 0
	wrote := false
	fail := func(err error) error {
		return &TransportError{LinesSent: sent, WroteBytes: wrote, Err: err}
	}

	if err := t.Initialize(); err != nil {
		return fail(err)
	}
	wrote = true

	// Initialize resets the printer, so the hardware is now at its
	// power-on formatting defaults.
	active := activeState{size: style.SizeNormal, justify: style.JustifyLeft}

	lines := doc.Lines()
	p.log.Debug("printing document", "lines", len(lines), "cpl", doc.CPL())

	for _, line := range lines {
		if err := p.sendLine(t, line, &active); err != nil {
			return fail(err)
		}
		sent++
		if p.opts.RowsPerPage > 0 && sent%p.opts.RowsPerPage == 0 {
			if err := t.Cut(transport.CutFull); err != nil {
				return fail(err)
			}
		}
	}

	if err := p.finish(t, len(lines)); err != nil {
		return fail(err)
	}
	p.log.Debug("document sent", "lines", sent)
	return nil
}

// finish emits the trailing feed and cut. Paginated documents pad the
// final partial page up to the page height so every tear-off has the
// same length; an empty document still gets its cut.
func (p *Printer) finish(t transport.Transport, lines int) error {
	if p.opts.RowsPerPage > 0 {
		rem := lines % p.opts.RowsPerPage
		if rem != 0 {
			if err := t.Feed(p.opts.RowsPerPage - rem); err != nil {
				return err
			}
		}
		if rem != 0 || lines == 0 {
			return t.Cut(transport.CutFull)
		}
		return nil
	}
	if p.opts.FeedLines > 0 {
		if err := t.Feed(p.opts.FeedLines); err != nil {
			return err
		}
	}
	return t.Cut(p.opts.Cut)
}

func (p *Printer) sendLine(t transport.Transport, line *layout.Line, active *activeState) error {
	if line.Justify != active.justify {
		if err := t.SetJustify(line.Justify); err != nil {
			return err
		}
		active.justify = line.Justify
	}
	for i := range line.Spans {
		if err := p.sendSpan(t, &line.Spans[i], active); err != nil {
			return err
		}
	}
	return t.Feed(1)
}

// sendSpan diffs the span's format against the active hardware state
// field by field and emits only the commands for fields that changed.
// Italic is deliberately absent: this hardware class has no italic
// command, so the flag serializes to nothing and never piggybacks on
// another field's command.
func (p *Printer) sendSpan(t transport.Transport, span *layout.Span, active *activeState) error {
	f := span.Format
	if f.Size != active.size {
		if err := t.SetTextSize(f.Size); err != nil {
			return err
		}
		active.size = f.Size
	}
	if f.Decoration.Bold != active.bold {
		if err := t.SetBold(f.Decoration.Bold); err != nil {
			return err
		}
		active.bold = f.Decoration.Bold
	}
	if f.Decoration.Underline != active.underline {
		mode := style.UnderlineNone
		if f.Decoration.Underline {
			mode = style.UnderlineSingle
		}
		if err := t.SetUnderline(mode); err != nil {
			return err
		}
		active.underline = f.Decoration.Underline
	}

	p.buf = p.buf[:0]
	fallbacks := 0
	for _, r := range span.Runes {
		p.buf = codepage.Encode(p.buf, r)
		if !codepage.Representable(r) {
			fallbacks++
		}
	}
	if fallbacks > 0 {
		p.log.Warn("substituted unprintable characters",
			"count", fallbacks, "text", span.Text())
	}
	if len(p.buf) == 0 {
		return nil
	}
	return t.Write(p.buf)
}

package escpos

import (
	"errors"
	"fmt"

	"github.com/hnimtadd/escpos/logger"
	"github.com/hnimtadd/escpos/printer"
	"github.com/hnimtadd/escpos/printer/layout"
	"github.com/hnimtadd/escpos/printer/style"
	"github.com/hnimtadd/escpos/printer/transport"
)

// DefaultCPL is the column budget of the common 80mm thermal roll at
// the standard font.
const DefaultCPL = 48

// ErrFinished is returned when content arrives after Finish.
var ErrFinished = errors.New("escpos: receipt already finished")

// ConfigError reports an invalid construction parameter. It fails fast,
// before any transport I/O, and is not retryable without a config
// change.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("escpos: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

type Options struct {
	// CPL is the printable column budget. Defaults to 48.
	CPL int
	// Cut selects the cut issued after the receipt.
	Cut transport.CutMode
	// FeedLines is the blank paper fed before the cut. Nil selects the
	// default of 3; an explicit zero suppresses the feed.
	FeedLines *int
	// RowsPerPage enables fixed-height pagination with a cut per page.
	// Zero disables it.
	RowsPerPage int
	Logger      logger.Logger
}

// Receipt accumulates styled text and layout events, wraps them into
// lines, and serializes the result to a transport. Content arrives as a
// stream: set a format, add text, break paragraphs, then Finish and
// PrintTo.
type Receipt struct {
	doc    *layout.Document
	engine *printer.Printer
	log    logger.Logger

	format   style.FormatState
	lineOpen bool
	finished bool
}

func New(opts Options) (*Receipt, error) {
	if opts.CPL == 0 {
		opts.CPL = DefaultCPL
	}
	if opts.CPL < 0 {
		return nil, &ConfigError{Field: "CPL", Value: opts.CPL, Reason: "column budget must be positive"}
	}
	feed := printer.DefaultFeedLines
	if opts.FeedLines != nil {
		feed = *opts.FeedLines
	}
	if feed < 0 {
		return nil, &ConfigError{Field: "FeedLines", Value: feed, Reason: "feed count cannot be negative"}
	}
	if opts.RowsPerPage < 0 {
		return nil, &ConfigError{Field: "RowsPerPage", Value: opts.RowsPerPage, Reason: "page height cannot be negative"}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Receipt{
		doc: layout.NewDocument(opts.CPL),
		engine: printer.New(printer.Options{
			Cut:         opts.Cut,
			FeedLines:   feed,
			RowsPerPage: opts.RowsPerPage,
			Logger:      opts.Logger,
		}),
		log: opts.Logger,
	}, nil
}

// StartParagraph closes the open line, if any, and switches the
// alignment context for everything that follows.
func (r *Receipt) StartParagraph(j style.Justify) error {
	if r.finished {
		return ErrFinished
	}
	if r.lineOpen {
		r.doc.NewLine()
		r.lineOpen = false
	}
	r.doc.SetJustify(j)
	return nil
}

// SetFormat replaces the whole format applied to subsequent characters.
func (r *Receipt) SetFormat(size style.TextSize, deco style.TextDecoration) error {
	if r.finished {
		return ErrFinished
	}
	r.format = style.FormatState{Size: size, Decoration: deco}
	return nil
}

func (r *Receipt) SetTextSize(size style.TextSize) error {
	if r.finished {
		return ErrFinished
	}
	r.format.Size = size
	return nil
}

func (r *Receipt) SetDecoration(deco style.TextDecoration) error {
	if r.finished {
		return ErrFinished
	}
	r.format.Decoration = deco
	return nil
}

// SetJustify realigns the open line and the lines that follow it.
// Already closed lines keep their alignment.
func (r *Receipt) SetJustify(j style.Justify) error {
	if r.finished {
		return ErrFinished
	}
	r.doc.SetJustify(j)
	return nil
}

// ResetStyles returns the format and alignment to their defaults:
// normal size, no decorations, left aligned.
func (r *Receipt) ResetStyles() error {
	if r.finished {
		return ErrFinished
	}
	r.format = style.FormatState{}
	r.doc.SetJustify(style.JustifyLeft)
	return nil
}

// AddChar feeds one character through the wrap algorithm under the
// current format.
func (r *Receipt) AddChar(c rune) error {
	if r.finished {
		return ErrFinished
	}
	r.doc.AddChar(c, r.format)
	r.lineOpen = true
	return nil
}

// AddText feeds a string character by character. Newlines become line
// breaks.
func (r *Receipt) AddText(text string) error {
	for _, c := range text {
		if c == '\n' {
			if err := r.NewLine(); err != nil {
				return err
			}
			continue
		}
		if err := r.AddChar(c); err != nil {
			return err
		}
	}
	return nil
}

// NewLine closes the current line. On an empty receipt or right after
// another break it produces a blank line.
func (r *Receipt) NewLine() error {
	if r.finished {
		return ErrFinished
	}
	r.doc.NewLine()
	r.lineOpen = false
	return nil
}

// Finish freezes the receipt. Further content events return
// ErrFinished; calling Finish again is a no-op.
func (r *Receipt) Finish() {
	if r.finished {
		return
	}
	r.doc.Finalize()
	r.finished = true
}

// PrintTo finishes the receipt if needed and serializes it over t. A
// receipt may be printed any number of times, to the same transport or
// different ones. Failures are *printer.TransportError.
func (r *Receipt) PrintTo(t transport.Transport) error {
	r.Finish()
	r.log.Debug("printing receipt",
		"lines", len(r.doc.Lines()), "fingerprint", r.doc.Fingerprint())
	return r.engine.Print(r.doc, t)
}

// Lines reports how many lines have been closed so far.
func (r *Receipt) Lines() int {
	return len(r.doc.Lines())
}

func (r *Receipt) CPL() int {
	return r.doc.CPL()
}

// Fingerprint hashes the closed content. Stable across prints of the
// same receipt; call after Finish to cover everything.
func (r *Receipt) Fingerprint() uint64 {
	return r.doc.Fingerprint()
}

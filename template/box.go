package template

import (
	"time"

	"github.com/hnimtadd/escpos"
	"github.com/hnimtadd/escpos/printer/style"
)

// DefaultRows fills most of an A6-ish sheet on 80mm paper.
const DefaultRows = 29

type BoxOptions struct {
	// Banner prints above the box, double size, bold, centered.
	Banner string
	// Date prints a long-form date banner. The zero time omits it.
	Date time.Time
	// Rows is the number of writable rows inside the box. Defaults to
	// DefaultRows.
	Rows int
	// Lined fills every other row with dots as a writing guide.
	Lined bool
	// Pattern defaults to the single-line skin.
	Pattern Pattern
}

// Box prints an empty box to write in: optional banner and date line,
// then the boxed rows.
func Box(r *escpos.Receipt, opts BoxOptions) error {
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Pattern == (Pattern{}) {
		opts.Pattern = patterns[0]
	}

	if opts.Banner != "" {
		if err := r.StartParagraph(style.JustifyCenter); err != nil {
			return err
		}
		if err := r.SetFormat(style.SizeDoubleBoth, style.TextDecoration{Bold: true}); err != nil {
			return err
		}
		if err := r.AddText(opts.Banner + "\n"); err != nil {
			return err
		}
	}
	if !opts.Date.IsZero() {
		if err := r.StartParagraph(style.JustifyCenter); err != nil {
			return err
		}
		if err := r.SetFormat(style.SizeNormal, style.TextDecoration{Bold: true, Underline: true}); err != nil {
			return err
		}
		if err := r.AddText(opts.Date.Format("Monday, January 2, 2006") + "\n"); err != nil {
			return err
		}
	}

	if err := r.StartParagraph(style.JustifyLeft); err != nil {
		return err
	}
	if err := r.SetFormat(style.SizeNormal, style.TextDecoration{Bold: true}); err != nil {
		return err
	}
	cpl := r.CPL()
	if err := r.AddText(opts.Pattern.Top.Line(cpl) + "\n"); err != nil {
		return err
	}
	for i := 0; i < opts.Rows; i++ {
		row := opts.Pattern.Row
		if opts.Lined && i%2 == 0 {
			row.Fill = '.'
		}
		if err := r.AddText(row.Line(cpl) + "\n"); err != nil {
			return err
		}
	}
	if err := r.AddText(opts.Pattern.Bottom.Line(cpl) + "\n"); err != nil {
		return err
	}
	return r.ResetStyles()
}

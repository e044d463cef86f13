package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/hnimtadd/escpos"
	"github.com/hnimtadd/escpos/printer/style"
)

// checksPerRow keeps a row of day checkmarks inside the default 48
// column budget.
const checksPerRow = 4

type HabitTrackerOptions struct {
	// Habit is the tracked habit, printed upper-cased.
	Habit string
	// Start and End bound the tracked period; one checkmark per day,
	// both ends included.
	Start, End time.Time
	// Pattern defaults to the single-line skin.
	Pattern Pattern
}

// HabitTracker prints a period banner, the habit name between two
// separator edges, and one numbered checkmark per day to tick off.
func HabitTracker(r *escpos.Receipt, opts HabitTrackerOptions) error {
	if opts.Pattern == (Pattern{}) {
		opts.Pattern = patterns[0]
	}

	if err := r.StartParagraph(style.JustifyCenter); err != nil {
		return err
	}
	if err := r.SetFormat(style.SizeNormal, style.TextDecoration{Bold: true, Underline: true}); err != nil {
		return err
	}
	period := opts.Start.Format("January 2, 2006") + " - " + opts.End.Format("January 2, 2006")
	if err := r.AddText(period + "\n"); err != nil {
		return err
	}

	cpl := r.CPL()
	separator := func() error {
		if err := r.StartParagraph(style.JustifyLeft); err != nil {
			return err
		}
		if err := r.SetFormat(style.SizeDoubleHeight, style.TextDecoration{Bold: true}); err != nil {
			return err
		}
		return r.AddText(opts.Pattern.Top.Line(cpl) + "\n")
	}

	if err := separator(); err != nil {
		return err
	}
	if err := r.StartParagraph(style.JustifyCenter); err != nil {
		return err
	}
	if err := r.SetFormat(style.SizeDoubleBoth, style.TextDecoration{Bold: true}); err != nil {
		return err
	}
	if err := r.AddText(strings.ToUpper(opts.Habit) + "\n"); err != nil {
		return err
	}
	if err := separator(); err != nil {
		return err
	}

	if err := r.StartParagraph(style.JustifyCenter); err != nil {
		return err
	}
	if err := r.SetFormat(style.SizeDoubleHeight, style.TextDecoration{}); err != nil {
		return err
	}
	for _, row := range checkmarkRows(days(opts.Start, opts.End)) {
		if err := r.AddText(row + "\n"); err != nil {
			return err
		}
	}

	if err := r.StartParagraph(style.JustifyLeft); err != nil {
		return err
	}
	if err := r.SetFormat(style.SizeDoubleHeight, style.TextDecoration{Bold: true}); err != nil {
		return err
	}
	if err := r.AddText(opts.Pattern.Bottom.Line(cpl) + "\n"); err != nil {
		return err
	}
	return r.ResetStyles()
}

// days counts calendar days from start to end inclusive. An inverted
// or same-day range still yields one checkmark.
func days(start, end time.Time) int {
	n := int(end.Sub(start).Hours()/24) + 1
	if n < 1 {
		return 1
	}
	return n
}

// checkmarkRows lays out numbered checkmarks, checksPerRow to a line.
func checkmarkRows(n int) []string {
	var rows []string
	var marks []string
	for day := 1; day <= n; day++ {
		marks = append(marks, fmt.Sprintf("( %02d )", day))
		if len(marks) == checksPerRow {
			rows = append(rows, strings.Join(marks, "      "))
			marks = marks[:0]
		}
	}
	if len(marks) > 0 {
		rows = append(rows, strings.Join(marks, "      "))
	}
	return rows
}

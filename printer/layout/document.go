package layout

import (
	"fmt"

	"github.com/hnimtadd/escpos/printer/style"
	"github.com/hnimtadd/escpos/printer/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// Document accumulates closed lines as content streams in. It is built
// once, finalized once, and read-only afterwards; serialization never
// mutates it.
type Document struct {
	cpl       int
	justify   style.Justify
	lines     []*Line
	current   *Line
	finalized bool
}

// NewDocument creates an empty document wrapping at cpl columns. The
// caller validates cpl; anything non-positive is a bug by this point.
func NewDocument(cpl int) *Document {
	utils.Assert(cpl > 0, fmt.Sprintf("layout: invalid cpl %d", cpl))
	return &Document{cpl: cpl}
}

// open returns the current open line, creating one lazily so an
// untouched document finalizes to zero lines.
func (d *Document) open() *Line {
	if d.current == nil {
		d.current = NewLine(d.justify)
	}
	return d.current
}

// AddChar feeds one character under format f through the wrap
// algorithm, closing the open line whenever the budget overflows.
func (d *Document) AddChar(r rune, f style.FormatState) {
	utils.Assert(!d.finalized, "layout: add on finalized document")
	line := d.open()
	if next := line.Add(r, f, d.cpl); next != nil {
		d.lines = append(d.lines, line)
		d.current = next
	}
}

// NewLine closes the open line. The next character opens a fresh line
// under the current justify context.
func (d *Document) NewLine() {
	utils.Assert(!d.finalized, "layout: new line on finalized document")
	d.lines = append(d.lines, d.open())
	d.current = nil
}

// SetJustify sets the alignment of the open line and of every line
// created after it, until the next call. Closed lines keep theirs.
func (d *Document) SetJustify(j style.Justify) {
	utils.Assert(!d.finalized, "layout: set justify on finalized document")
	d.justify = j
	if d.current != nil {
		d.current.Justify = j
	}
}

// Finalize closes the open line, if any, and freezes the document.
// Calling it again is a no-op.
func (d *Document) Finalize() {
	if d.finalized {
		return
	}
	if d.current != nil {
		d.lines = append(d.lines, d.current)
		d.current = nil
	}
	d.finalized = true
}

func (d *Document) Finalized() bool {
	return d.finalized
}

func (d *Document) CPL() int {
	return d.cpl
}

// Lines returns the closed lines in print order.
func (d *Document) Lines() []*Line {
	return d.lines
}

// Fingerprint hashes the document content, format and alignment
// included. Two documents that print identically hash identically.
func (d *Document) Fingerprint() uint64 {
	hashed, err := hashstructure.Hash(d.lines, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash document: %v", err))
	return hashed
}

package style

import (
	"fmt"

	"github.com/hnimtadd/escpos/printer/utils"
	"github.com/mitchellh/hashstructure/v2"
)

// TextSize selects the character cell magnification. Doubling the width
// doubles the visual column cost of every character printed at that size;
// doubling only the height does not.
type TextSize int

const (
	SizeNormal TextSize = iota
	SizeDoubleHeight
	SizeDoubleWidth
	SizeDoubleBoth
)

// Columns returns the visual column cost of one character at this size.
func (s TextSize) Columns() int {
	switch s {
	case SizeDoubleWidth, SizeDoubleBoth:
		return 2
	default:
		return 1
	}
}

func (s TextSize) String() string {
	switch s {
	case SizeNormal:
		return "TextSize.normal"
	case SizeDoubleHeight:
		return "TextSize.doubleHeight"
	case SizeDoubleWidth:
		return "TextSize.doubleWidth"
	case SizeDoubleBoth:
		return "TextSize.doubleBoth"
	default:
		return "TextSize.unknown"
	}
}

// TextDecoration holds the three decoration flags. The flags are
// independent: no flag may borrow another flag's hardware command.
// Italic in particular is declared but unsupported by the target
// hardware, so it never reaches the wire at all.
type TextDecoration struct {
	Bold      bool
	Underline bool
	Italic    bool
}

// FormatState is the full formatting in effect for a run of text.
// Two FormatStates are equal iff every component field matches.
type FormatState struct {
	Size       TextSize
	Decoration TextDecoration
}

func (f *FormatState) Reset() {
	*f = FormatState{}
}

func (f FormatState) IsDefault() bool {
	return f == FormatState{}
}

func (f FormatState) Hash() uint64 {
	hashed, err := hashstructure.Hash(f, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash format state: %v", err))
	return hashed
}

// Justify is the horizontal alignment of a printed line.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

func (j Justify) String() string {
	switch j {
	case JustifyLeft:
		return "Justify.left"
	case JustifyCenter:
		return "Justify.center"
	case JustifyRight:
		return "Justify.right"
	default:
		return "Justify.unknown"
	}
}

// UnderlineMode is the hardware underline thickness. The data model only
// toggles underline on and off; the two-dot mode exists for callers that
// drive a transport directly.
type UnderlineMode int

const (
	UnderlineNone UnderlineMode = iota
	UnderlineSingle
	UnderlineDouble
)

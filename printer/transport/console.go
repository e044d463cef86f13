package transport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hnimtadd/escpos/logger"
	"github.com/hnimtadd/escpos/printer/style"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/text/encoding/charmap"
)

type ConsoleOptions struct {
	// Output defaults to os.Stdout.
	Output io.Writer
	// CPL is the column budget alignment padding is computed against.
	// Defaults to 48.
	CPL    int
	Logger logger.Logger
}

// Console renders the command stream as a human-readable preview, for
// developing receipts without burning paper. Alignment becomes padding,
// double width becomes letter spacing, and decorations become terminal
// attributes when the output is a terminal.
type Console struct {
	out  io.Writer
	term *termenv.Output
	cpl  int
	log  logger.Logger

	segs    []consoleSegment
	state   consoleState
	justify style.Justify
}

type consoleState struct {
	size      style.TextSize
	bold      bool
	underline style.UnderlineMode
}

type consoleSegment struct {
	text  string
	state consoleState
}

func NewConsole(opts ConsoleOptions) *Console {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.CPL <= 0 {
		opts.CPL = 48
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Console{
		out:  opts.Output,
		term: termenv.NewOutput(opts.Output),
		cpl:  opts.CPL,
		log:  opts.Logger,
	}
}

func (c *Console) Initialize() error {
	c.segs = nil
	c.state = consoleState{}
	c.justify = style.JustifyLeft
	c.log.Debug("console preview ready", "cpl", c.cpl)
	return nil
}

// Write buffers decoded text under the current state until the next
// feed renders the line.
func (c *Console) Write(p []byte) error {
	var b strings.Builder
	for _, raw := range p {
		b.WriteRune(charmap.CodePage437.DecodeByte(raw))
	}
	if n := len(c.segs); n > 0 && c.segs[n-1].state == c.state {
		c.segs[n-1].text += b.String()
	} else {
		c.segs = append(c.segs, consoleSegment{text: b.String(), state: c.state})
	}
	return nil
}

func (c *Console) Feed(lines int) error {
	if err := c.flush(); err != nil {
		return err
	}
	if lines < 0 {
		lines = 0
	}
	_, err := io.WriteString(c.out, strings.Repeat("\n", lines))
	return err
}

func (c *Console) Cut(mode CutMode) error {
	if mode == CutNone {
		return nil
	}
	if err := c.flush(); err != nil {
		return err
	}
	label := " cut "
	if mode == CutPartial {
		label = " partial cut "
	}
	dashes := c.cpl - len(label)
	if dashes < 2 {
		dashes = 2
	}
	_, err := fmt.Fprintf(c.out, "%s%s%s\n",
		strings.Repeat("-", dashes/2), label, strings.Repeat("-", dashes-dashes/2))
	return err
}

func (c *Console) SetJustify(j style.Justify) error {
	c.justify = j
	return nil
}

func (c *Console) SetTextSize(s style.TextSize) error {
	c.state.size = s
	return nil
}

func (c *Console) SetBold(on bool) error {
	c.state.bold = on
	return nil
}

func (c *Console) SetUnderline(m style.UnderlineMode) error {
	c.state.underline = m
	return nil
}

func (c *Console) Close() error {
	return c.flush()
}

// flush renders the buffered line: padding first, then each segment
// with its attributes applied.
func (c *Console) flush() error {
	if len(c.segs) == 0 {
		return nil
	}
	width := 0
	for _, seg := range c.segs {
		width += segmentWidth(seg)
	}
	pad := 0
	switch c.justify {
	case style.JustifyCenter:
		if width < c.cpl {
			pad = (c.cpl - width) / 2
		}
	case style.JustifyRight:
		if width < c.cpl {
			pad = c.cpl - width
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad))
	for _, seg := range c.segs {
		text := seg.text
		if seg.state.size.Columns() == 2 {
			text = stretch(text)
		}
		styled := c.term.String(text)
		if seg.state.bold {
			styled = styled.Bold()
		}
		if seg.state.underline != style.UnderlineNone {
			styled = styled.Underline()
		}
		b.WriteString(styled.String())
	}
	c.segs = c.segs[:0]
	_, err := io.WriteString(c.out, b.String())
	return err
}

func segmentWidth(seg consoleSegment) int {
	w := 0
	for _, r := range seg.text {
		rw := runewidth.RuneWidth(r)
		if rw < 1 {
			rw = 1
		}
		if seg.state.size.Columns() == 2 {
			rw++
		}
		w += rw
	}
	return w
}

// stretch spaces runes out so a double-width run occupies the columns
// it will occupy on paper.
func stretch(text string) string {
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		b.WriteByte(' ')
	}
	return b.String()
}

// Package markdown renders markdown content onto a receipt. The width
// model of a thermal printer has no concept of pixels or fonts, so
// markup maps onto the handful of effects the hardware offers: headings
// change text size, emphasis toggles decorations, and structure becomes
// adorned lines.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/hnimtadd/escpos"
	"github.com/hnimtadd/escpos/printer/style"
)

// Interpreter walks a markdown AST and drives a Receipt. One
// interpreter renders one source at a time.
type Interpreter struct {
	receipt *escpos.Receipt
	md      goldmark.Markdown

	heading int
	quote   int
	code    int
	strong  int
	em      int

	lists []listState
}

type listState struct {
	ordered bool
	index   int
}

func NewInterpreter(r *escpos.Receipt) *Interpreter {
	return &Interpreter{
		receipt: r,
		md: goldmark.New(goldmark.WithExtensions(
			extension.Strikethrough,
			extension.TaskList,
		)),
	}
}

// Render parses source and feeds it through the receipt.
func (in *Interpreter) Render(source []byte) error {
	root := in.md.Parser().Parse(text.NewReader(source))
	return ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return in.visit(n, entering, source)
	})
}

func (in *Interpreter) visit(node ast.Node, entering bool, source []byte) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			in.heading = n.Level
			return ast.WalkContinue, in.applyFormat()
		}
		in.heading = 0
		if err := in.applyFormat(); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, in.receipt.NewLine()

	case *ast.Paragraph:
		return in.textBlock(entering)

	case *ast.TextBlock:
		return in.textBlock(entering)

	case *ast.Text:
		if !entering {
			return ast.WalkContinue, nil
		}
		if err := in.addText(string(n.Segment.Value(source))); err != nil {
			return ast.WalkStop, err
		}
		if n.SoftLineBreak() || n.HardLineBreak() {
			return ast.WalkContinue, in.receipt.NewLine()
		}
		return ast.WalkContinue, nil

	case *ast.String:
		if entering {
			return ast.WalkContinue, in.addText(string(n.Value))
		}
		return ast.WalkContinue, nil

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			in.strong += delta
		} else {
			in.em += delta
		}
		return ast.WalkContinue, in.applyFormat()

	case *east.Strikethrough:
		// No hardware strike mode; render visible dashes around the run.
		return ast.WalkContinue, in.receipt.AddText("--")

	case *ast.Blockquote:
		if entering {
			in.quote++
			return ast.WalkContinue, in.receipt.StartParagraph(style.JustifyCenter)
		}
		in.quote--
		justify := style.JustifyLeft
		if in.quote > 0 {
			justify = style.JustifyCenter
		}
		if err := in.receipt.StartParagraph(justify); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, in.applyFormat()

	case *ast.CodeSpan:
		delta := 1
		if !entering {
			delta = -1
		}
		in.code += delta
		return ast.WalkContinue, in.applyFormat()

	case *ast.FencedCodeBlock:
		return in.codeBlock(n.Lines(), entering, source)

	case *ast.CodeBlock:
		return in.codeBlock(n.Lines(), entering, source)

	case *ast.List:
		if entering {
			in.lists = append(in.lists, listState{ordered: n.IsOrdered(), index: n.Start})
		} else {
			in.lists = in.lists[:len(in.lists)-1]
		}
		return ast.WalkContinue, nil

	case *ast.ListItem:
		if !entering || len(in.lists) == 0 {
			return ast.WalkContinue, nil
		}
		if hasTaskCheckBox(n) {
			return ast.WalkContinue, nil
		}
		ls := &in.lists[len(in.lists)-1]
		return ast.WalkContinue, in.adorn(ls.marker())

	case *east.TaskCheckBox:
		if entering {
			return ast.WalkContinue, in.adorn(taskMarker(n.IsChecked))
		}
		return ast.WalkContinue, nil

	case *ast.ThematicBreak:
		if !entering {
			return ast.WalkContinue, nil
		}
		if err := in.adorn(rule); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, in.receipt.NewLine()

	case *ast.AutoLink:
		if entering {
			return ast.WalkContinue, in.addText(string(n.Label(source)))
		}
		return ast.WalkContinue, nil

	case *ast.Image:
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil

	default:
		return ast.WalkContinue, nil
	}
}

// textBlock opens a paragraph-level block with the context format and
// closes it with a line break.
func (in *Interpreter) textBlock(entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkContinue, in.applyFormat()
	}
	return ast.WalkContinue, in.receipt.NewLine()
}

func (in *Interpreter) codeBlock(lines *text.Segments, entering bool, source []byte) (ast.WalkStatus, error) {
	if !entering {
		in.code--
		return ast.WalkContinue, in.applyFormat()
	}
	in.code++
	if err := in.applyFormat(); err != nil {
		return ast.WalkStop, err
	}
	for i := 0; i < lines.Len(); i++ {
		line := strings.TrimRight(string(lines.At(i).Value(source)), "\n")
		if err := in.addText(line); err != nil {
			return ast.WalkStop, err
		}
		if err := in.receipt.NewLine(); err != nil {
			return ast.WalkStop, err
		}
	}
	return ast.WalkContinue, nil
}

// addText writes run text, expanding tabs inside code so indentation
// survives the one-column-per-byte width model.
func (in *Interpreter) addText(s string) error {
	if in.code > 0 {
		s = strings.ReplaceAll(s, "\t", "    ")
	}
	return in.receipt.AddText(s)
}

// applyFormat recomputes the receipt format from the nesting state.
// Heading level picks the size, everything else layers decorations on
// top.
func (in *Interpreter) applyFormat() error {
	size := style.SizeNormal
	var deco style.TextDecoration
	switch {
	case in.heading == 1:
		size = style.SizeDoubleBoth
	case in.heading == 2:
		size = style.SizeDoubleWidth
		deco.Bold = true
	case in.heading == 3:
		size = style.SizeDoubleWidth
	case in.heading >= 4:
		deco.Bold = true
	}
	if in.quote > 0 || in.code > 0 {
		deco.Bold = true
		deco.Underline = true
	}
	if in.strong > 0 {
		deco.Bold = true
	}
	if in.em > 0 {
		deco.Italic = true
	}
	return in.receipt.SetFormat(size, deco)
}

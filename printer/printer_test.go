package printer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/escpos/logger"
	"github.com/hnimtadd/escpos/printer/layout"
	"github.com/hnimtadd/escpos/printer/style"
	"github.com/hnimtadd/escpos/printer/transport"
)

// fakeTransport records every capability call as a readable string so
// tests can assert on exact command order. Ops matching failOn return
// err and are not recorded.
type fakeTransport struct {
	ops    []string
	failOn string
	err    error
}

func (f *fakeTransport) do(name string) error {
	if f.failOn != "" && strings.HasPrefix(name, f.failOn) {
		return f.err
	}
	f.ops = append(f.ops, name)
	return nil
}

func (f *fakeTransport) Initialize() error { return f.do("init") }

func (f *fakeTransport) Write(p []byte) error {
	return f.do(fmt.Sprintf("write %q", p))
}

func (f *fakeTransport) Feed(lines int) error {
	return f.do(fmt.Sprintf("feed %d", lines))
}

func (f *fakeTransport) Cut(mode transport.CutMode) error {
	return f.do(fmt.Sprintf("cut %d", mode))
}

func (f *fakeTransport) SetJustify(j style.Justify) error {
	return f.do(fmt.Sprintf("justify %v", j))
}

func (f *fakeTransport) SetTextSize(s style.TextSize) error {
	return f.do(fmt.Sprintf("size %v", s))
}

func (f *fakeTransport) SetBold(on bool) error {
	return f.do(fmt.Sprintf("bold %t", on))
}

func (f *fakeTransport) SetUnderline(m style.UnderlineMode) error {
	return f.do(fmt.Sprintf("underline %d", m))
}

func (f *fakeTransport) Close() error { return f.do("close") }

func countPrefix(ops []string, prefix string) int {
	n := 0
	for _, op := range ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func buildDocument(t *testing.T, cpl int, text string, f style.FormatState) *layout.Document {
	t.Helper()
	doc := layout.NewDocument(cpl)
	for _, r := range text {
		doc.AddChar(r, f)
	}
	doc.Finalize()
	return doc
}

func plainFormat() style.FormatState {
	return style.FormatState{Size: style.SizeNormal}
}

func TestPrinter_PlainDocument(t *testing.T) {
	doc := buildDocument(t, 48, "hi", plainFormat())
	ft := &fakeTransport{}
	require.NoError(t, New(Options{FeedLines: DefaultFeedLines}).Print(doc, ft))

	assert.Equal(t, []string{
		"init",
		`write "hi"`,
		"feed 1",
		"feed 3",
		"cut 0",
	}, ft.ops)
}

func TestPrinter_ZeroFeedLinesEmitsNoFeed(t *testing.T) {
	doc := buildDocument(t, 48, "x", plainFormat())
	ft := &fakeTransport{}
	require.NoError(t, New(Options{}).Print(doc, ft))

	assert.Equal(t, []string{
		"init",
		`write "x"`,
		"feed 1",
		"cut 0",
	}, ft.ops)
}

func TestPrinter_BatchesBoldPerSpan(t *testing.T) {
	bold := plainFormat()
	bold.Decoration.Bold = true

	doc := layout.NewDocument(48)
	for i := 0; i < 10; i++ {
		doc.AddChar('a', bold)
	}
	doc.AddChar('b', plainFormat())
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{FeedLines: DefaultFeedLines}).Print(doc, ft))

	assert.Equal(t, []string{
		"init",
		"bold true",
		`write "aaaaaaaaaa"`,
		"bold false",
		`write "b"`,
		"feed 1",
		"feed 3",
		"cut 0",
	}, ft.ops)
	assert.Equal(t, 2, countPrefix(ft.ops, "bold"))
}

func TestPrinter_ItalicEmitsNothing(t *testing.T) {
	italic := plainFormat()
	italic.Decoration.Italic = true

	doc := buildDocument(t, 48, "quote", italic)
	ft := &fakeTransport{}
	require.NoError(t, New(Options{}).Print(doc, ft))

	assert.Zero(t, countPrefix(ft.ops, "underline"))
	assert.Zero(t, countPrefix(ft.ops, "bold"))
	assert.Zero(t, countPrefix(ft.ops, "size"))
}

func TestPrinter_UnderlineIndependentOfItalic(t *testing.T) {
	both := plainFormat()
	both.Decoration.Underline = true
	both.Decoration.Italic = true
	italicOnly := plainFormat()
	italicOnly.Decoration.Italic = true

	doc := layout.NewDocument(48)
	doc.AddChar('a', both)
	doc.AddChar('b', both)
	doc.AddChar('c', italicOnly)
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{}).Print(doc, ft))

	assert.Equal(t, 1, countPrefix(ft.ops, "underline 1"))
	assert.Equal(t, 1, countPrefix(ft.ops, "underline 0"))
}

func TestPrinter_EmptyDocumentStillCuts(t *testing.T) {
	doc := layout.NewDocument(48)
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{FeedLines: DefaultFeedLines}).Print(doc, ft))
	assert.Equal(t, []string{"init", "feed 3", "cut 0"}, ft.ops)
}

func TestPrinter_JustifyEmittedOnlyOnChange(t *testing.T) {
	doc := layout.NewDocument(48)
	doc.SetJustify(style.JustifyCenter)
	doc.AddChar('a', plainFormat())
	doc.NewLine()
	doc.AddChar('b', plainFormat())
	doc.NewLine()
	doc.SetJustify(style.JustifyLeft)
	doc.AddChar('c', plainFormat())
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{}).Print(doc, ft))

	assert.Equal(t, 1, countPrefix(ft.ops, "justify Justify.center"))
	assert.Equal(t, 1, countPrefix(ft.ops, "justify Justify.left"))
	assert.Equal(t, 2, countPrefix(ft.ops, "justify"))
}

func TestPrinter_SizeCommandPerTransition(t *testing.T) {
	wide := style.FormatState{Size: style.SizeDoubleWidth}

	doc := layout.NewDocument(48)
	doc.AddChar('a', wide)
	doc.AddChar('b', wide)
	doc.AddChar('c', plainFormat())
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{}).Print(doc, ft))

	assert.Equal(t, 1, countPrefix(ft.ops, "size TextSize.doubleWidth"))
	assert.Equal(t, 1, countPrefix(ft.ops, "size TextSize.normal"))
}

func TestPrinter_FeedAndCutOptions(t *testing.T) {
	doc := buildDocument(t, 48, "x", plainFormat())
	ft := &fakeTransport{}
	require.NoError(t, New(Options{Cut: transport.CutPartial, FeedLines: 5}).Print(doc, ft))

	n := len(ft.ops)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, "feed 5", ft.ops[n-2])
	assert.Equal(t, "cut 1", ft.ops[n-1])
}

func TestPrinter_Pagination(t *testing.T) {
	doc := layout.NewDocument(48)
	for _, r := range "abcd" {
		doc.AddChar(r, plainFormat())
		doc.NewLine()
	}
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{RowsPerPage: 3}).Print(doc, ft))

	assert.Equal(t, []string{
		"init",
		`write "a"`, "feed 1",
		`write "b"`, "feed 1",
		`write "c"`, "feed 1",
		"cut 0",
		`write "d"`, "feed 1",
		"feed 2",
		"cut 0",
	}, ft.ops)
}

func TestPrinter_PaginationExactPageNeedsNoPadding(t *testing.T) {
	doc := layout.NewDocument(48)
	for _, r := range "abc" {
		doc.AddChar(r, plainFormat())
		doc.NewLine()
	}
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{RowsPerPage: 3}).Print(doc, ft))

	assert.Equal(t, 1, countPrefix(ft.ops, "cut"))
	assert.Equal(t, "cut 0", ft.ops[len(ft.ops)-1])
}

func TestPrinter_PaginationEmptyDocumentCuts(t *testing.T) {
	doc := layout.NewDocument(48)
	doc.Finalize()

	ft := &fakeTransport{}
	require.NoError(t, New(Options{RowsPerPage: 3}).Print(doc, ft))
	assert.Equal(t, []string{"init", "cut 0"}, ft.ops)
}

func TestPrinter_TransportErrorCarriesProgress(t *testing.T) {
	doc := layout.NewDocument(48)
	for _, r := range "abc" {
		doc.AddChar(r, plainFormat())
		doc.NewLine()
	}
	doc.Finalize()

	boom := errors.New("boom")
	ft := &fakeTransport{failOn: `write "b"`, err: boom}
	err := New(Options{}).Print(doc, ft)
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 1, te.LinesSent)
	assert.True(t, te.WroteBytes)
	assert.ErrorIs(t, err, boom)

	// Nothing may follow the failed write.
	assert.Equal(t, []string{"init", `write "a"`, "feed 1"}, ft.ops)
}

func TestPrinter_InitializeFailure(t *testing.T) {
	doc := buildDocument(t, 48, "x", plainFormat())

	boom := errors.New("no device")
	ft := &fakeTransport{failOn: "init", err: boom}
	err := New(Options{}).Print(doc, ft)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.LinesSent)
	assert.False(t, te.WroteBytes)
	assert.Empty(t, ft.ops)
}

func TestPrinter_EncodesThroughCodePage(t *testing.T) {
	doc := buildDocument(t, 48, "café", plainFormat())
	ft := &fakeTransport{}
	require.NoError(t, New(Options{}).Print(doc, ft))
	assert.Contains(t, ft.ops, `write "caf\x82"`)
}

func TestPrinter_WarnsOnFallbackSubstitution(t *testing.T) {
	var logBuf bytes.Buffer
	log := logger.New(logger.Options{Buffer: &logBuf, Level: logger.DefaultLevel, Type: logger.TypeText})

	doc := buildDocument(t, 48, "5€", plainFormat())
	ft := &fakeTransport{}
	require.NoError(t, New(Options{Logger: log}).Print(doc, ft))

	assert.Contains(t, ft.ops, `write "5?"`)
	assert.Contains(t, logBuf.String(), "substituted unprintable characters")
}

func TestPrinter_PrintUnfinalizedPanics(t *testing.T) {
	doc := layout.NewDocument(48)
	assert.Panics(t, func() {
		_ = New(Options{}).Print(doc, &fakeTransport{})
	})
}

package escpos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/escpos/printer/style"
	"github.com/hnimtadd/escpos/printer/transport"
)

func feedLines(n int) *int {
	return &n
}

func TestNew_Defaults(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCPL, r.CPL())
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"negative cpl", Options{CPL: -1}, "CPL"},
		{"negative feed", Options{FeedLines: feedLines(-2)}, "FeedLines"},
		{"negative page height", Options{RowsPerPage: -3}, "RowsPerPage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestReceipt_RejectsEventsAfterFinish(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, r.AddText("paid"))
	r.Finish()
	r.Finish()

	assert.ErrorIs(t, r.AddChar('x'), ErrFinished)
	assert.ErrorIs(t, r.AddText("x"), ErrFinished)
	assert.ErrorIs(t, r.NewLine(), ErrFinished)
	assert.ErrorIs(t, r.StartParagraph(style.JustifyCenter), ErrFinished)
	assert.ErrorIs(t, r.SetJustify(style.JustifyRight), ErrFinished)
	assert.ErrorIs(t, r.SetTextSize(style.SizeDoubleBoth), ErrFinished)
	assert.ErrorIs(t, r.SetFormat(style.SizeNormal, style.TextDecoration{}), ErrFinished)
	assert.ErrorIs(t, r.SetDecoration(style.TextDecoration{Bold: true}), ErrFinished)
	assert.ErrorIs(t, r.ResetStyles(), ErrFinished)
}

func TestReceipt_NewlinesBreakLines(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	require.NoError(t, r.AddText("subtotal\ntotal"))
	assert.Equal(t, 1, r.Lines())
	r.Finish()
	assert.Equal(t, 2, r.Lines())
}

func TestReceipt_WrapsLongText(t *testing.T) {
	r, err := New(Options{CPL: 20})
	require.NoError(t, err)
	require.NoError(t, r.AddText("The quick brown fox jumps over the lazy dog"))
	r.Finish()
	assert.Equal(t, 3, r.Lines())
}

func TestReceipt_StartParagraph(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)

	// A leading paragraph marker must not open with a blank line.
	require.NoError(t, r.StartParagraph(style.JustifyCenter))
	require.NoError(t, r.AddText("header"))
	require.NoError(t, r.StartParagraph(style.JustifyLeft))
	require.NoError(t, r.AddText("body"))
	r.Finish()
	assert.Equal(t, 2, r.Lines())
}

func TestReceipt_FingerprintStableAcrossBuilds(t *testing.T) {
	build := func(text string) *Receipt {
		r, err := New(Options{})
		require.NoError(t, err)
		require.NoError(t, r.AddText(text))
		r.Finish()
		return r
	}

	assert.Equal(t, build("same").Fingerprint(), build("same").Fingerprint())
	assert.NotEqual(t, build("same").Fingerprint(), build("different").Fingerprint())
}

func TestReceipt_PrintToConsole(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	console := transport.NewConsole(transport.ConsoleOptions{Output: &buf, CPL: 10})

	r, err := New(Options{CPL: 10})
	require.NoError(t, err)
	require.NoError(t, r.StartParagraph(style.JustifyCenter))
	require.NoError(t, r.SetDecoration(style.TextDecoration{Bold: true}))
	require.NoError(t, r.AddText("TOTAL"))

	require.NoError(t, r.PrintTo(console))
	assert.Equal(t, "  TOTAL\n\n\n\n-- cut ---\n", buf.String())
}

func TestReceipt_ZeroFeedLinesSuppressesFeed(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	console := transport.NewConsole(transport.ConsoleOptions{Output: &buf, CPL: 10})

	r, err := New(Options{CPL: 10, FeedLines: feedLines(0)})
	require.NoError(t, err)
	require.NoError(t, r.AddText("total"))

	require.NoError(t, r.PrintTo(console))
	assert.Equal(t, "total\n-- cut ---\n", buf.String())
}

func TestReceipt_PrintToFinishesAndAllowsReprint(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	console := transport.NewConsole(transport.ConsoleOptions{Output: &buf, CPL: 10})

	r, err := New(Options{CPL: 10, Cut: transport.CutNone, FeedLines: feedLines(1)})
	require.NoError(t, err)
	require.NoError(t, r.AddText("copy"))

	require.NoError(t, r.PrintTo(console))
	assert.ErrorIs(t, r.AddText("late"), ErrFinished)

	require.NoError(t, r.PrintTo(console))
	assert.Equal(t, "copy\n\ncopy\n\n", buf.String())
}

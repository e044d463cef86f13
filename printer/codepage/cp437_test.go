package codepage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode_ASCIIPassthrough(t *testing.T) {
	input := "The quick brown fox 0123456789 !\"#$%&'()*+,-./"
	var out []byte
	for _, r := range input {
		out = Encode(out, r)
	}
	assert.Equal(t, []byte(input), out)
}

func TestEncode_TypographicFolds(t *testing.T) {
	cases := []struct {
		in   rune
		want byte
	}{
		{'‘', '\''},
		{'’', '\''},
		{'ʼ', '\''},
		{'“', '"'},
		{'”', '"'},
		{'–', '-'},
		{'—', '-'},
	}
	for _, tc := range cases {
		out := Encode(nil, tc.in)
		assert.Equal(t, []byte{tc.want}, out, "fold of %U", tc.in)
	}
}

func TestEncode_EllipsisExpandsToThreePeriods(t *testing.T) {
	out := Encode(nil, '…')
	assert.Equal(t, []byte("..."), out)
	assert.Equal(t, 3, Width('…'))
}

func TestEncode_ExtendedCP437(t *testing.T) {
	cases := []struct {
		in   rune
		want byte
	}{
		{'é', 0x82},
		{'ñ', 0xA4},
		{'─', 0xC4},
		{'│', 0xB3},
		{'∙', 0xF9},
		{'■', 0xFE},
	}
	for _, tc := range cases {
		out := Encode(nil, tc.in)
		assert.Equal(t, []byte{tc.want}, out, "encoding of %q", tc.in)
	}
}

func TestEncode_FallbackIsTotal(t *testing.T) {
	for _, r := range []rune{'語', '€', '🙂', '​'} {
		out := Encode(nil, r)
		assert.Equal(t, []byte{Fallback}, out, "fallback for %U", r)
		assert.False(t, Representable(r))
	}
}

func TestEncode_AppendsToExistingBuffer(t *testing.T) {
	buf := []byte("abc")
	buf = Encode(buf, 'd')
	buf = Encode(buf, '…')
	assert.Equal(t, []byte("abcd..."), buf)
}

func TestWidth_NonEllipsisIsOne(t *testing.T) {
	for _, r := range []rune{'a', 'é', '語', '—'} {
		assert.Equal(t, 1, Width(r))
	}
}

func TestRepresentable(t *testing.T) {
	assert.True(t, Representable('a'))
	assert.True(t, Representable('é'))
	assert.True(t, Representable('…'))
	assert.True(t, Representable('’'))
	assert.False(t, Representable('語'))
}

func BenchmarkEncode(b *testing.B) {
	text := []rune("Eat… “healthy” — it’s café o’clock")
	buf := make([]byte, 0, 64)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf = buf[:0]
		for _, r := range text {
			buf = Encode(buf, r)
		}
	}
}

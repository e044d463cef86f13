// Package codepage folds Unicode text into code page 437, the code page
// this engine selects on the printer before writing any text.
//
// The mapping is total: every rune produces at least one output byte, so
// callers never handle an encoding failure. It is idempotent on ASCII,
// and a small set of typographic characters is folded to ASCII lookalikes
// instead of being rejected. U+2026 is the one rune that expands, to
// exactly three bytes; Width exists so layout can account for that.
package codepage

import "golang.org/x/text/encoding/charmap"

// Fallback is substituted for any rune with no CP437 representation.
const Fallback byte = '?'

const ellipsis = '…'

// typographic characters folded to ASCII before the CP437 table is
// consulted. Same set the upstream editors tend to autocorrect into.
var folds = map[rune]byte{
	'‘': '\'', // left single quote
	'’': '\'', // right single quote
	'ʼ': '\'', // modifier letter apostrophe
	'“': '"',  // left double quote
	'”': '"',  // right double quote
	'–': '-',  // en dash
	'—': '-',  // em dash
}

// Encode appends the CP437 bytes for r to dst and returns the extended
// slice. Appending into a caller-owned buffer keeps the per-character
// serialization path allocation-free once the buffer has grown.
func Encode(dst []byte, r rune) []byte {
	if r < 0x80 {
		return append(dst, byte(r))
	}
	if r == ellipsis {
		return append(dst, '.', '.', '.')
	}
	if b, ok := folds[r]; ok {
		return append(dst, b)
	}
	if b, ok := charmap.CodePage437.EncodeRune(r); ok {
		return append(dst, b)
	}
	return append(dst, Fallback)
}

// Width returns how many output bytes, and therefore visual columns at
// normal size, Encode produces for r. Only the ellipsis expands.
func Width(r rune) int {
	if r == ellipsis {
		return 3
	}
	return 1
}

// Representable reports whether Encode maps r without falling back to
// the placeholder.
func Representable(r rune) bool {
	if r < 0x80 {
		return true
	}
	if r == ellipsis {
		return true
	}
	if _, ok := folds[r]; ok {
		return true
	}
	_, ok := charmap.CodePage437.EncodeRune(r)
	return ok
}

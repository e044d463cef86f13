package markdown

import "github.com/hnimtadd/escpos"

// PlainText feeds content through the receipt verbatim, markup and
// all. Newlines still break lines.
func PlainText(r *escpos.Receipt, content string) error {
	return r.AddText(content)
}

// Package template prints ready-made stationery blueprints, boxes to
// write in and habit trackers, built from the box-drawing glyphs the
// printer's code page carries.
package template

import (
	"math/rand"
	"strings"
)

// Edge describes one horizontal slice of a box as a left cap, a fill
// glyph, and a right cap.
type Edge struct {
	Left  rune
	Fill  rune
	Right rune
}

// Line renders the edge at the given column width.
func (e Edge) Line(width int) string {
	fill := width - 2
	if fill < 0 {
		fill = 0
	}
	var b strings.Builder
	b.WriteRune(e.Left)
	b.WriteString(strings.Repeat(string(e.Fill), fill))
	b.WriteRune(e.Right)
	return b.String()
}

// Pattern is a reusable box skin.
type Pattern struct {
	Name   string
	Top    Edge
	Row    Edge
	Bottom Edge
}

var patterns = []Pattern{
	{
		Name:   "single",
		Top:    Edge{'┌', '─', '┐'},
		Row:    Edge{'│', ' ', '│'},
		Bottom: Edge{'└', '─', '┘'},
	},
	{
		Name:   "double",
		Top:    Edge{'╔', '═', '╗'},
		Row:    Edge{'║', ' ', '║'},
		Bottom: Edge{'╚', '═', '╝'},
	},
	{
		Name:   "shade",
		Top:    Edge{'▒', '▒', '▒'},
		Row:    Edge{'▒', ' ', '▒'},
		Bottom: Edge{'▒', '▒', '▒'},
	},
	{
		Name:   "block",
		Top:    Edge{'█', '█', '█'},
		Row:    Edge{'█', ' ', '█'},
		Bottom: Edge{'█', '█', '█'},
	},
	{
		Name:   "stars",
		Top:    Edge{'*', '*', '*'},
		Row:    Edge{'*', ' ', '*'},
		Bottom: Edge{'*', '*', '*'},
	},
}

// Patterns returns the built-in skins. The first entry is the default.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}

// Lookup finds a pattern by name.
func Lookup(name string) (Pattern, bool) {
	for _, p := range patterns {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

func RandomPattern() Pattern {
	return patterns[rand.Intn(len(patterns))]
}

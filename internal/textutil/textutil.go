// Package textutil provides display-width aware text helpers shared by the
// pagination engine, the stores, and the UI layers.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RuneWidth returns the number of terminal columns a rune occupies: 2 for
// East Asian wide and fullwidth forms, 1 for everything else. Runes the
// width tables report as zero or negative count as 1, so a single odd glyph
// can never stall or abort pagination.
func RuneWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// StringWidth returns the total display width of s.
func StringWidth(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// Truncate shortens s to at most width display columns, appending tail in
// place of anything cut.
func Truncate(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}

// CollapseSpaces rewrites every whitespace run in s as a single space and
// trims the ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Preview returns roughly the first width display columns of s with
// whitespace collapsed, stepping by grapheme cluster so joined characters
// are never split. Trimmed content is marked with an ellipsis.
func Preview(s string, width int) string {
	s = CollapseSpaces(s)
	if StringWidth(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if w <= 0 {
			w = 1
		}
		if used+w > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += w
	}
	return strings.TrimRight(b.String(), " ") + "…"
}

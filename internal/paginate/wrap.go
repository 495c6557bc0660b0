package paginate

import (
	"strings"

	"github.com/karitori/leaf/internal/textutil"
)

// wrapLine greedily wraps one logical line into visual lines that fit width
// display columns. Wrapping decisions are made on display width, never rune
// count, so CJK and fullwidth glyphs consume two columns of the budget.
//
// Blank and whitespace-only lines pass through untouched as a single visual
// line. A rune wider than the whole budget is emitted alone on its own line
// rather than looping.
func wrapLine(line string, width int) []string {
	if strings.TrimSpace(line) == "" {
		return []string{line}
	}

	var (
		out  []string
		cur  strings.Builder
		curW int
	)
	for _, r := range line {
		w := textutil.RuneWidth(r)
		if curW+w > width && cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteRune(r)
		curW += w
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

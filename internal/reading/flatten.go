package reading

import (
	"sort"
	"strings"

	"github.com/karitori/leaf/internal/paginate"
)

// Flatten renders every page into one scrollable string for the plain
// pager, inserting a blank separator line at chapter boundaries. The
// returned index holds each page's starting line number; it is also kept
// on the session for PageForLine.
func (s *Session) Flatten() (string, []int) {
	pages := s.pag.Paginate()

	var b strings.Builder
	starts := make([]int, len(pages))
	line := 0
	for i, p := range pages {
		if i > 0 {
			b.WriteByte('\n')
			if pages[i-1].ChapterIndex != p.ChapterIndex {
				b.WriteByte('\n')
				line++
			}
		}
		starts[i] = line
		b.WriteString(p.Content)
		line += strings.Count(p.Content, "\n") + 1
	}

	s.flatIndex = starts
	return b.String(), starts
}

// PageForLine maps a flattened-rendering cursor line back to the page
// covering it: the page with the greatest start line at or before line.
// Lines past the end resolve to the last page.
func (s *Session) PageForLine(line int) (paginate.Page, bool) {
	if s.flatIndex == nil {
		s.Flatten()
	}

	pages := s.pag.Paginate()
	if len(pages) == 0 || line < 0 {
		return paginate.Page{}, false
	}

	idx := sort.SearchInts(s.flatIndex, line+1) - 1
	if idx < 0 {
		idx = 0
	}
	return pages[idx], true
}

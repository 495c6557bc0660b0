// Package paginate reflows a parsed document into fixed-size pages for a
// terminal viewport.
//
// The engine is deterministic: the same document and viewport always produce
// byte-identical pages, numbered contiguously from 1 across all chapters.
// Lookups report misses with an ok=false result and never panic.
package paginate

import (
	"strings"

	"github.com/karitori/leaf/internal/document"
)

const (
	// Floors for the usable content area. Even absurdly small terminals
	// paginate against at least this much space.
	minRows = 10
	minCols = 40

	// Rows and columns reserved for header, footer, and margins.
	chromeRows = 6
	chromeCols = 6

	// Documents whose wrapped line count stays under this keep their page
	// list cached between calls; larger documents recompute on demand.
	smallDocLines = 1000
)

// Page is one viewport-sized block of reflowed text. Number is 1-based and
// globally contiguous across the whole document; Content holds the page's
// visual lines joined with newlines.
type Page struct {
	Content      string
	Number       int
	ChapterIndex int
}

// Paginator reflows one document for one viewport.
type Paginator struct {
	doc  *document.Document
	rows int
	cols int

	availRows int
	availCols int

	cache []Page
}

// New creates a paginator for doc at the given raw terminal size.
// Non-positive dimensions fall back to 24x80.
func New(doc *document.Document, rows, cols int) *Paginator {
	p := &Paginator{doc: doc}
	p.UpdateViewport(rows, cols)
	return p
}

// UpdateViewport replaces the viewport and drops any cached pagination; the
// next call recomputes from scratch. Resizes are rare, user-visible events,
// so a full recompute is preferred over incremental bookkeeping.
func (p *Paginator) UpdateViewport(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		rows, cols = FallbackRows, FallbackCols
	}
	p.rows, p.cols = rows, cols

	p.availRows = rows - chromeRows
	if p.availRows < minRows {
		p.availRows = minRows
	}
	p.availCols = cols - chromeCols
	if p.availCols < minCols {
		p.availCols = minCols
	}

	p.cache = nil
}

// Viewport returns the raw terminal size the paginator was last given.
func (p *Paginator) Viewport() (rows, cols int) { return p.rows, p.cols }

// AvailableRows returns the per-page line budget after chrome.
func (p *Paginator) AvailableRows() int { return p.availRows }

// AvailableCols returns the per-line column budget after chrome.
func (p *Paginator) AvailableCols() int { return p.availCols }

// Paginate reflows the whole document and returns its pages in order. The
// first call after construction or a viewport change always does the full
// computation; the result is retained only for small documents.
func (p *Paginator) Paginate() []Page {
	if p.cache != nil {
		return p.cache
	}
	pages, lines := p.compute()
	if lines < smallDocLines {
		p.cache = pages
	}
	return pages
}

// compute walks every chapter, wrapping logical lines to the column budget
// and cutting the resulting stream into pages of availRows lines. The last
// page of a chapter is trimmed of trailing blank lines and may disappear
// entirely; page numbering stays gapless regardless.
func (p *Paginator) compute() (pages []Page, lineCount int) {
	num := 1
	for _, ch := range p.doc.Chapters {
		var buf []string
		emit := func() {
			pages = append(pages, Page{
				Content:      strings.Join(buf, "\n"),
				Number:       num,
				ChapterIndex: ch.Index,
			})
			num++
			lineCount += len(buf)
			buf = buf[:0]
		}

		for _, logical := range strings.Split(ch.Content, "\n") {
			for _, visual := range wrapLine(logical, p.availCols) {
				buf = append(buf, visual)
				if len(buf) == p.availRows {
					emit()
				}
			}
		}

		for len(buf) > 0 && strings.TrimSpace(buf[len(buf)-1]) == "" {
			buf = buf[:len(buf)-1]
		}
		if len(buf) > 0 {
			emit()
		}
	}
	return pages, lineCount
}

// TotalPages returns the page count for the current viewport.
func (p *Paginator) TotalPages() int {
	return len(p.Paginate())
}

// Page returns the page with the given 1-based number.
func (p *Paginator) Page(n int) (Page, bool) {
	pages := p.Paginate()
	if n < 1 || n > len(pages) {
		return Page{}, false
	}
	return pages[n-1], true
}

// PageByChapter returns the first page belonging to the chapter.
func (p *Paginator) PageByChapter(chapterIndex int) (Page, bool) {
	if chapterIndex < 0 {
		return Page{}, false
	}
	for _, pg := range p.Paginate() {
		if pg.ChapterIndex == chapterIndex {
			return pg, true
		}
	}
	return Page{}, false
}

// FindPagePosition resolves a global page number to its chapter index and
// its 1-based position within that chapter.
func (p *Paginator) FindPagePosition(pageNumber int) (chapterIndex, pageInChapter int, ok bool) {
	pages := p.Paginate()
	if pageNumber < 1 || pageNumber > len(pages) {
		return 0, 0, false
	}

	pg := pages[pageNumber-1]
	first := pg.Number
	for i := pageNumber - 2; i >= 0 && pages[i].ChapterIndex == pg.ChapterIndex; i-- {
		first = pages[i].Number
	}
	return pg.ChapterIndex, pg.Number - first + 1, true
}

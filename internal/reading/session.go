// Package reading binds a parsed document, its pagination, and the
// persistence stores into one reader session. Both front ends drive a
// Session; it owns the current page and writes progress as it moves.
package reading

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/karitori/leaf/internal/document"
	"github.com/karitori/leaf/internal/paginate"
	"github.com/karitori/leaf/internal/parser"
	"github.com/karitori/leaf/internal/store"
	"github.com/karitori/leaf/internal/textutil"
)

// previewCells is the screen width allotted to bookmark previews.
const previewCells = 50

// Stores groups the persistence backends a session writes to.
type Stores struct {
	Progress  *store.ProgressStore
	Bookmarks *store.BookmarkStore
}

// Session is one open book: document, page index, cursor, and stores.
type Session struct {
	doc       *document.Document
	pag       *paginate.Paginator
	stores    Stores
	log       zerolog.Logger
	path      string
	hash      string
	current   int
	flatIndex []int // page start lines in the flattened rendering
}

// Open parses the file at path, paginates it for the viewport, and seeds
// the cursor from saved progress. Non-positive dimensions fall back to the
// detected terminal size. Saved pages beyond the new total are clamped,
// never fatal.
func Open(path string, rows, cols int, st Stores, log zerolog.Logger) (*Session, error) {
	doc, err := parser.Open(path)
	if err != nil {
		return nil, err
	}

	hash, err := store.ComputeHash(path)
	if err != nil {
		return nil, err
	}

	if rows <= 0 || cols <= 0 {
		rows, cols = paginate.DetectViewport()
	}

	s := &Session{
		doc:     doc,
		pag:     paginate.New(doc, rows, cols),
		stores:  st,
		log:     log,
		path:    path,
		hash:    hash,
		current: 1,
	}

	total := s.pag.TotalPages()
	if prev, err := st.Progress.Get(hash); err == nil {
		s.current = clamp(prev.CurrentPage, 1, total)
	}

	log.Info().
		Str("book", doc.Title).
		Str("format", doc.Format).
		Int("chapters", doc.TotalChapters()).
		Int("pages", total).
		Int("resume_page", s.current).
		Msg("opened document")

	return s, nil
}

// Document returns the parsed book.
func (s *Session) Document() *document.Document { return s.doc }

// Path returns the source file path.
func (s *Session) Path() string { return s.path }

// Hash returns the content hash identifying this book in the stores.
func (s *Session) Hash() string { return s.hash }

// PageNumber returns the current 1-based page number.
func (s *Session) PageNumber() int { return s.current }

// TotalPages returns the page count at the current viewport.
func (s *Session) TotalPages() int { return s.pag.TotalPages() }

// Viewport returns the rows and columns the session paginates for.
func (s *Session) Viewport() (rows, cols int) { return s.pag.Viewport() }

// CurrentPage returns the page under the cursor.
func (s *Session) CurrentPage() (paginate.Page, bool) {
	return s.pag.Page(s.current)
}

// Position returns the current chapter index and the page number within
// that chapter.
func (s *Session) Position() (chapterIndex, pageInChapter int, ok bool) {
	return s.pag.FindPagePosition(s.current)
}

// NextPage advances one page. Returns false at the last page.
func (s *Session) NextPage() bool {
	if s.current >= s.pag.TotalPages() {
		return false
	}
	s.current++
	s.persist()
	return true
}

// PrevPage steps back one page. Returns false at the first page.
func (s *Session) PrevPage() bool {
	if s.current <= 1 {
		return false
	}
	s.current--
	s.persist()
	return true
}

// JumpToPage moves to page n. Returns false when n is out of range.
func (s *Session) JumpToPage(n int) bool {
	if n < 1 || n > s.pag.TotalPages() {
		return false
	}
	s.current = n
	s.persist()
	return true
}

// JumpToStart moves to the first page.
func (s *Session) JumpToStart() bool { return s.JumpToPage(1) }

// JumpToEnd moves to the last page.
func (s *Session) JumpToEnd() bool { return s.JumpToPage(s.pag.TotalPages()) }

// NextChapter moves to the first page of the next chapter that produced
// pages, skipping chapters that reflowed to nothing. Returns false when no
// later chapter has pages.
func (s *Session) NextChapter() bool {
	page, ok := s.CurrentPage()
	if !ok {
		return false
	}
	for ci := page.ChapterIndex + 1; ci < s.doc.TotalChapters(); ci++ {
		if first, ok := s.pag.PageByChapter(ci); ok {
			s.current = first.Number
			s.persist()
			return true
		}
	}
	return false
}

// PrevChapter moves to the first page of the nearest earlier chapter with
// pages. Returns false when already in or before the first such chapter.
func (s *Session) PrevChapter() bool {
	page, ok := s.CurrentPage()
	if !ok {
		return false
	}
	for ci := page.ChapterIndex - 1; ci >= 0; ci-- {
		if first, ok := s.pag.PageByChapter(ci); ok {
			s.current = first.Number
			s.persist()
			return true
		}
	}
	return false
}

// JumpToChapter moves to the first page of the given chapter. Returns
// false when the index is out of range or the chapter produced no pages.
func (s *Session) JumpToChapter(chapterIndex int) bool {
	first, ok := s.pag.PageByChapter(chapterIndex)
	if !ok {
		return false
	}
	s.current = first.Number
	s.persist()
	return true
}

// Resize re-paginates for a new viewport. The reader stays in the same
// chapter, reseated at its first page; the exact line is not preserved.
func (s *Session) Resize(rows, cols int) {
	page, hadPage := s.CurrentPage()

	s.pag.UpdateViewport(rows, cols)
	s.flatIndex = nil

	total := s.pag.TotalPages()
	if hadPage {
		if first, ok := s.pag.PageByChapter(page.ChapterIndex); ok {
			s.current = first.Number
		} else {
			s.current = clamp(s.current, 1, total)
		}
	} else {
		s.current = clamp(s.current, 1, total)
	}
	s.persist()
}

// AddBookmark marks the current page, capturing the chapter title and a
// short content preview.
func (s *Session) AddBookmark(note string) (store.Bookmark, error) {
	page, ok := s.CurrentPage()
	if !ok {
		return store.Bookmark{}, store.ErrNotFound
	}

	title := ""
	if ch, ok := s.doc.Chapter(page.ChapterIndex); ok {
		title = ch.Title
	}

	return s.stores.Bookmarks.Add(s.hash, store.Bookmark{
		PageNumber:   page.Number,
		ChapterIndex: page.ChapterIndex,
		ChapterTitle: title,
		Preview:      textutil.Preview(page.Content, previewCells),
		Note:         note,
	})
}

// Bookmarks lists this book's bookmarks.
func (s *Session) Bookmarks() ([]store.Bookmark, error) {
	return s.stores.Bookmarks.List(s.hash)
}

// JumpToBookmark moves to a bookmark's page. Returns false for unknown IDs
// or bookmarks pointing past the current pagination.
func (s *Session) JumpToBookmark(id int) bool {
	b, err := s.stores.Bookmarks.Get(s.hash, id)
	if err != nil {
		return false
	}
	return s.JumpToPage(b.PageNumber)
}

// RemoveBookmark deletes a bookmark by ID.
func (s *Session) RemoveBookmark(id int) error {
	return s.stores.Bookmarks.Remove(s.hash, id)
}

// Close persists the final reading position.
func (s *Session) Close() error {
	return s.writeProgress()
}

// persist saves progress after a position change. Failures are logged and
// swallowed; navigation must keep working on a read-only disk.
func (s *Session) persist() {
	if err := s.writeProgress(); err != nil {
		s.log.Warn().Err(err).Msg("save progress")
	}
}

func (s *Session) writeProgress() error {
	page, ok := s.CurrentPage()
	if !ok {
		return nil
	}
	return s.stores.Progress.Put(store.Progress{
		FileHash:       s.hash,
		FilePath:       s.path,
		FileName:       filepath.Base(s.path),
		CurrentPage:    s.current,
		CurrentChapter: page.ChapterIndex,
		TotalPages:     s.pag.TotalPages(),
		TotalChapters:  s.doc.TotalChapters(),
		LastReadTime:   time.Now(),
	})
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

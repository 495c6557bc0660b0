package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	bookmarksFileName = "bookmarks.json"

	// MaxBookmarksPerBook caps how many bookmarks one book can hold.
	MaxBookmarksPerBook = 50
)

// ErrTooManyBookmarks is returned when a book is already at the bookmark cap.
var ErrTooManyBookmarks = errors.New("store: bookmark limit reached")

// Bookmark marks one page of one book.
type Bookmark struct {
	ID           int       `json:"id"`
	PageNumber   int       `json:"page_number"`
	ChapterIndex int       `json:"chapter_index"`
	ChapterTitle string    `json:"chapter_title"`
	Preview      string    `json:"preview"`
	CreatedAt    time.Time `json:"created_at"`
	Note         string    `json:"note,omitempty"`
}

// bookmarksFile is the root JSON structure stored on disk, keyed by
// content hash.
type bookmarksFile struct {
	Books map[string][]Bookmark `json:"books"`
}

// BookmarkStore persists per-book bookmark lists.
type BookmarkStore struct {
	path string
	mu   sync.RWMutex
}

// NewBookmarkStore creates a store backed by bookmarks.json inside dir.
func NewBookmarkStore(dir string) *BookmarkStore {
	return &BookmarkStore{path: filepath.Join(dir, bookmarksFileName)}
}

// Add stores a bookmark for the book identified by hash, assigning the
// next free ID. Returns ErrTooManyBookmarks when the book is at the cap.
func (s *BookmarkStore) Add(hash string, b Bookmark) (Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return Bookmark{}, err
	}

	list := file.Books[hash]
	if len(list) >= MaxBookmarksPerBook {
		return Bookmark{}, ErrTooManyBookmarks
	}

	maxID := 0
	for _, old := range list {
		if old.ID > maxID {
			maxID = old.ID
		}
	}
	b.ID = maxID + 1
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	file.Books[hash] = append(list, b)
	if err := s.save(file); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// List returns the bookmarks for hash, oldest first.
func (s *BookmarkStore) List(hash string) ([]Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	return file.Books[hash], nil
}

// Get returns one bookmark by ID. Returns ErrNotFound if absent.
func (s *BookmarkStore) Get(hash string, id int) (Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return Bookmark{}, err
	}

	for _, b := range file.Books[hash] {
		if b.ID == id {
			return b, nil
		}
	}
	return Bookmark{}, ErrNotFound
}

// Remove deletes one bookmark by ID. Returns ErrNotFound if absent.
func (s *BookmarkStore) Remove(hash string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	list := file.Books[hash]
	kept := make([]Bookmark, 0, len(list))
	for _, b := range list {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(list) {
		return ErrNotFound
	}

	if len(kept) == 0 {
		delete(file.Books, hash)
	} else {
		file.Books[hash] = kept
	}
	return s.save(file)
}

// Clear removes all bookmarks for hash and reports how many were dropped.
func (s *BookmarkStore) Clear(hash string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return 0, err
	}

	n := len(file.Books[hash])
	if n == 0 {
		return 0, nil
	}
	delete(file.Books, hash)

	return n, s.save(file)
}

// ClearAll removes every bookmark for every book and reports how many
// were dropped.
func (s *BookmarkStore) ClearAll() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return 0, err
	}

	n := 0
	for _, marks := range file.Books {
		n += len(marks)
	}
	if n == 0 {
		return 0, nil
	}
	file.Books = map[string][]Bookmark{}

	return n, s.save(file)
}

// load reads the bookmarks file from disk.
// Returns an empty map if the file doesn't exist.
func (s *BookmarkStore) load() (bookmarksFile, error) {
	file := bookmarksFile{Books: make(map[string][]Bookmark)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, err
	}
	if len(data) == 0 {
		return file, nil
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return bookmarksFile{Books: make(map[string][]Bookmark)}, err
	}
	if file.Books == nil {
		file.Books = make(map[string][]Bookmark)
	}
	return file, nil
}

// save writes the bookmarks file to disk atomically.
func (s *BookmarkStore) save(file bookmarksFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

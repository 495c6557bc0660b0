package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const progressFileName = "progress.json"

// Progress is one document's saved reading position.
type Progress struct {
	FileHash       string    `json:"file_hash"`
	FilePath       string    `json:"file_path"`
	FileName       string    `json:"file_name"`
	CurrentPage    int       `json:"current_page"`
	CurrentChapter int       `json:"current_chapter"`
	TotalPages     int       `json:"total_pages"`
	TotalChapters  int       `json:"total_chapters"`
	LastReadTime   time.Time `json:"last_read_time"`
}

// progressFile is the root JSON structure stored on disk.
type progressFile struct {
	Documents []Progress `json:"documents"`
}

// ProgressStore persists reading positions, keyed by content hash.
type ProgressStore struct {
	path string
	mu   sync.RWMutex
}

// NewProgressStore creates a store backed by progress.json inside dir.
func NewProgressStore(dir string) *ProgressStore {
	return &ProgressStore{path: filepath.Join(dir, progressFileName)}
}

// Get returns the saved progress for hash. Returns ErrNotFound if absent.
func (s *ProgressStore) Get(hash string) (Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return Progress{}, err
	}

	for _, p := range file.Documents {
		if p.FileHash == hash {
			return p, nil
		}
	}
	return Progress{}, ErrNotFound
}

// Put inserts or updates the record keyed by p.FileHash.
func (s *ProgressStore) Put(p Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	updated := false
	for i := range file.Documents {
		if file.Documents[i].FileHash == p.FileHash {
			file.Documents[i] = p
			updated = true
			break
		}
	}
	if !updated {
		file.Documents = append(file.Documents, p)
	}

	return s.save(file)
}

// Remove drops the record for hash. Returns ErrNotFound if absent.
func (s *ProgressStore) Remove(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	kept := file.Documents[:0]
	for _, p := range file.Documents {
		if p.FileHash != hash {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(file.Documents) {
		return ErrNotFound
	}
	file.Documents = kept

	return s.save(file)
}

// Recent returns all records, most recently read first.
func (s *ProgressStore) Recent() ([]Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	sort.Slice(file.Documents, func(i, j int) bool {
		return file.Documents[i].LastReadTime.After(file.Documents[j].LastReadTime)
	})
	return file.Documents, nil
}

// Clear removes every record and reports how many were dropped.
func (s *ProgressStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return 0, err
	}
	n := len(file.Documents)
	if n == 0 {
		return 0, nil
	}

	return n, s.save(progressFile{Documents: []Progress{}})
}

// load reads the progress file from disk.
// Returns an empty progressFile if the file doesn't exist.
func (s *ProgressStore) load() (progressFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return progressFile{}, nil
		}
		return progressFile{}, err
	}

	if len(data) == 0 {
		return progressFile{}, nil
	}

	var file progressFile
	if err := json.Unmarshal(data, &file); err != nil {
		return progressFile{}, err
	}
	return file, nil
}

// save writes the progress file to disk atomically.
func (s *ProgressStore) save(file progressFile) error {
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

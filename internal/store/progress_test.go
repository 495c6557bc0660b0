package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProgress(hash string, page int, at time.Time) Progress {
	return Progress{
		FileHash:       hash,
		FilePath:       "/books/" + hash + ".epub",
		FileName:       hash + ".epub",
		CurrentPage:    page,
		CurrentChapter: 0,
		TotalPages:     100,
		TotalChapters:  4,
		LastReadTime:   at,
	}
}

func TestProgressStoreRoundtrip(t *testing.T) {
	s := NewProgressStore(t.TempDir())

	_, err := s.Get("unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now().Truncate(time.Second)
	require.NoError(t, s.Put(sampleProgress("aaa", 7, now)))

	got, err := s.Get("aaa")
	require.NoError(t, err)
	assert.Equal(t, 7, got.CurrentPage)
	assert.Equal(t, 100, got.TotalPages)
	assert.True(t, got.LastReadTime.Equal(now))
}

func TestProgressStoreUpsert(t *testing.T) {
	s := NewProgressStore(t.TempDir())
	now := time.Now()

	require.NoError(t, s.Put(sampleProgress("aaa", 7, now)))
	require.NoError(t, s.Put(sampleProgress("aaa", 42, now.Add(time.Minute))))

	got, err := s.Get("aaa")
	require.NoError(t, err)
	assert.Equal(t, 42, got.CurrentPage)

	all, err := s.Recent()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestProgressStoreRecentOrder(t *testing.T) {
	s := NewProgressStore(t.TempDir())
	base := time.Now()

	require.NoError(t, s.Put(sampleProgress("old", 1, base.Add(-2*time.Hour))))
	require.NoError(t, s.Put(sampleProgress("new", 1, base)))
	require.NoError(t, s.Put(sampleProgress("mid", 1, base.Add(-time.Hour))))

	all, err := s.Recent()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].FileHash)
	assert.Equal(t, "mid", all[1].FileHash)
	assert.Equal(t, "old", all[2].FileHash)
}

func TestProgressStoreRemove(t *testing.T) {
	s := NewProgressStore(t.TempDir())

	assert.ErrorIs(t, s.Remove("aaa"), ErrNotFound)

	require.NoError(t, s.Put(sampleProgress("aaa", 7, time.Now())))
	require.NoError(t, s.Remove("aaa"))

	_, err := s.Get("aaa")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressStoreClear(t *testing.T) {
	s := NewProgressStore(t.TempDir())
	require.NoError(t, s.Put(sampleProgress("aaa", 1, time.Now())))
	require.NoError(t, s.Put(sampleProgress("bbb", 2, time.Now())))

	n, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.Recent()
	require.NoError(t, err)
	assert.Empty(t, all)

	n, err = s.Clear()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProgressStorePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1 := NewProgressStore(dir)
	require.NoError(t, s1.Put(sampleProgress("aaa", 9, time.Now())))

	s2 := NewProgressStore(dir)
	got, err := s2.Get("aaa")
	require.NoError(t, err)
	assert.Equal(t, 9, got.CurrentPage)
}

func TestProgressStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	s := NewProgressStore(dir)

	require.NoError(t, s.Put(sampleProgress("aaa", 1, time.Now())))

	_, err := os.Stat(filepath.Join(dir, "progress.json"))
	assert.NoError(t, err)
}

func TestProgressStoreToleratesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "progress.json"), nil, 0o644))

	s := NewProgressStore(dir)
	all, err := s.Recent()
	require.NoError(t, err)
	assert.Empty(t, all)
}

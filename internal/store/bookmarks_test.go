package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkAddAssignsIDs(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	b1, err := s.Add("hash1", Bookmark{PageNumber: 3, ChapterIndex: 0, ChapterTitle: "One", Preview: "It was the best"})
	require.NoError(t, err)
	assert.Equal(t, 1, b1.ID)
	assert.False(t, b1.CreatedAt.IsZero())

	b2, err := s.Add("hash1", Bookmark{PageNumber: 9, ChapterIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, b2.ID)

	// Another book's IDs are independent.
	other, err := s.Add("hash2", Bookmark{PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, other.ID)
}

func TestBookmarkIDReusesGapFreeMax(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	for page := 1; page <= 3; page++ {
		_, err := s.Add("h", Bookmark{PageNumber: page})
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove("h", 2))

	b, err := s.Add("h", Bookmark{PageNumber: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, b.ID, "next ID is max existing + 1, not a recycled gap")
}

func TestBookmarkListAndGet(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	list, err := s.List("h")
	require.NoError(t, err)
	assert.Empty(t, list)

	added, err := s.Add("h", Bookmark{PageNumber: 5, Note: "good part"})
	require.NoError(t, err)

	got, err := s.Get("h", added.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.PageNumber)
	assert.Equal(t, "good part", got.Note)

	_, err = s.Get("h", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookmarkLimit(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	for i := 0; i < MaxBookmarksPerBook; i++ {
		_, err := s.Add("h", Bookmark{PageNumber: i + 1})
		require.NoError(t, err)
	}

	_, err := s.Add("h", Bookmark{PageNumber: 999})
	assert.ErrorIs(t, err, ErrTooManyBookmarks)

	// The cap is per book.
	_, err = s.Add("other", Bookmark{PageNumber: 1})
	assert.NoError(t, err)
}

func TestBookmarkRemove(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	assert.ErrorIs(t, s.Remove("h", 1), ErrNotFound)

	b, err := s.Add("h", Bookmark{PageNumber: 1})
	require.NoError(t, err)
	require.NoError(t, s.Remove("h", b.ID))

	list, err := s.List("h")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookmarkClear(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	for i := 0; i < 4; i++ {
		_, err := s.Add("h", Bookmark{PageNumber: i + 1})
		require.NoError(t, err)
	}

	n, err := s.Clear("h")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.Clear("h")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookmarkClearAll(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	for _, hash := range []string{"h1", "h2"} {
		for i := 0; i < 3; i++ {
			_, err := s.Add(hash, Bookmark{PageNumber: i + 1})
			require.NoError(t, err)
		}
	}

	n, err := s.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	marks, err := s.List("h1")
	require.NoError(t, err)
	assert.Empty(t, marks)

	n, err = s.ClearAll()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookmarkPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	s1 := NewBookmarkStore(dir)
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	_, err := s1.Add("h", Bookmark{PageNumber: 12, ChapterTitle: "Two", CreatedAt: created})
	require.NoError(t, err)

	s2 := NewBookmarkStore(dir)
	list, err := s2.List("h")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 12, list[0].PageNumber)
	assert.True(t, list[0].CreatedAt.Equal(created))
}

func TestBookmarkManyBooks(t *testing.T) {
	s := NewBookmarkStore(t.TempDir())

	for i := 0; i < 5; i++ {
		hash := fmt.Sprintf("book-%d", i)
		_, err := s.Add(hash, Bookmark{PageNumber: i + 1})
		require.NoError(t, err)
	}

	for i := 0; i < 5; i++ {
		list, err := s.List(fmt.Sprintf("book-%d", i))
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
}

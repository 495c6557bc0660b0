package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHash(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "test1.txt")
	file2 := filepath.Join(tmpDir, "test2.txt")
	file3 := filepath.Join(tmpDir, "test1_copy.txt")

	require.NoError(t, os.WriteFile(file1, []byte("Hello, World!"), 0o644))
	require.NoError(t, os.WriteFile(file2, []byte("Different content"), 0o644))
	require.NoError(t, os.WriteFile(file3, []byte("Hello, World!"), 0o644))

	hash1, err := ComputeHash(file1)
	require.NoError(t, err)
	hash2, err := ComputeHash(file2)
	require.NoError(t, err)
	hash3, err := ComputeHash(file3)
	require.NoError(t, err)

	assert.Equal(t, hash1, hash3, "same content should produce same hash")
	assert.NotEqual(t, hash1, hash2, "different content should produce different hash")
	assert.Len(t, hash1, 32)
}

func TestComputeHashSmallFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.txt")
	require.NoError(t, os.WriteFile(path, []byte("tiny"), 0o644))

	hash, err := ComputeHash(path)
	require.NoError(t, err)
	assert.Len(t, hash, 32)
}

func TestComputeHashMissingFile(t *testing.T) {
	_, err := ComputeHash(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestStateDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	assert.Equal(t, filepath.Join("/tmp/xdg-state", "leaf"), StateDir())
}

func TestStateDirDefault(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "state", "leaf"), StateDir())
}

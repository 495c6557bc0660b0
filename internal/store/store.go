// Package store persists reading progress and bookmarks as JSON files in
// the user's state directory. Records are keyed by a content hash so a
// book keeps its place when the file is moved or renamed.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when a store has no record for the given key.
var ErrNotFound = errors.New("store: not found")

const (
	appDirName = "leaf"
	hashBytes  = 8192 // First 8KB for content hash
)

// StateDir returns XDG_STATE_HOME/leaf or ~/.local/state/leaf.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appDirName)
}

// ComputeHash generates the content hash used as a file's identity.
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil // First 16 bytes = 32 hex chars
}

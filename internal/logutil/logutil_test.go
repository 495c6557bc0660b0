package logutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "leaf.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.Info().Str("book", "voyage.epub").Msg("opened")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "opened", entry["message"])
	assert.Equal(t, "voyage.epub", entry["book"])
	assert.Contains(t, entry, "time")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.log")

	logger, closer, err := New("warn", path)
	require.NoError(t, err)

	logger.Info().Msg("filtered out")
	logger.Warn().Msg("kept")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "filtered out")
	assert.Contains(t, string(data), "kept")
}

func TestNewEmptyFileDiscards(t *testing.T) {
	logger, closer, err := New("info", "")
	require.NoError(t, err)
	defer closer()

	// Must not panic or write anywhere visible.
	logger.Info().Msg("into the void")
}

func TestNewBadLevel(t *testing.T) {
	_, _, err := New("shouty", "")
	assert.Error(t, err)
}

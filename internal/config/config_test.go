package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultIterations, cfg.Auth.Iterations)
	assert.False(t, cfg.Reading.PlainPager)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	src := "log:\n  level: debug\nreading:\n  plain_pager: true\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Reading.PlainPager)
	assert.Equal(t, DefaultIterations, cfg.Auth.Iterations, "unset fields keep defaults")
}

func TestLoadRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: shouty\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "log.level")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidateAuthPairing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.PasswordHash = "deadbeef"

	err := cfg.Validate()
	assert.ErrorContains(t, err, "auth.salt")

	cfg.Auth.Salt = "cafe"
	assert.NoError(t, cfg.Validate())
}

func TestValidateIterations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.Iterations = -5
	assert.ErrorContains(t, cfg.Validate(), "auth.iterations")
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Log.Level = "warn"
	cfg.Auth.PasswordHash = "deadbeef"
	cfg.Auth.Salt = "cafe"
	require.NoError(t, cfg.Save())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", again.Log.Level)
	assert.Equal(t, "deadbeef", again.Auth.PasswordHash)
	assert.Equal(t, "cafe", again.Auth.Salt)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveWithoutPath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Save())
}

func TestDefaultPathRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	assert.Equal(t, filepath.Join("/tmp/xdg-config", "leaf", "config.yaml"), DefaultPath())
}

func TestLogFileDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/state", "leaf.log"), cfg.LogFile("/state"))

	cfg.Log.File = "/var/log/custom.log"
	assert.Equal(t, "/var/log/custom.log", cfg.LogFile("/state"))
}

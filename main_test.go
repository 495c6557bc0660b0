//go:build !gui

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUsesLdflagsValues(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	version, commit, date = "1.2.3", "abcdef1234567890", "2026-01-02"
	assert.Equal(t, "1.2.3 (abcdef1) 2026-01-02", build())
}

func TestBuildShortCommitKeptAsIs(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	version, commit, date = "1.2.3", "abc", "2026-01-02"
	assert.Equal(t, "1.2.3 (abc) 2026-01-02", build())
}

func TestBuildDevFallback(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	version, commit, date = "dev", "none", "unknown"

	// Test binaries carry no main module version, so "dev" survives;
	// VCS settings may or may not be present depending on the checkout.
	got := build()
	assert.True(t, strings.HasPrefix(got, "dev ("), "got %q", got)
}

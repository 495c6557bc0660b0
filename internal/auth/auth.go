// Package auth guards the reader behind an optional startup password.
// The password never touches disk; only a PBKDF2-SHA256 hash and its salt
// are stored in the config file.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/karitori/leaf/internal/config"
)

const (
	// MaxAttempts bounds interactive password retries.
	MaxAttempts = 3

	// retryDelay slows down guessing between failed attempts.
	retryDelay = time.Second

	saltBytes = 16
	keyBytes  = 32
)

// ErrLocked is returned when every allowed attempt failed.
var ErrLocked = errors.New("auth: too many failed attempts")

// ErrEmptyPassword is returned when the password to store is blank.
var ErrEmptyPassword = errors.New("auth: password must not be empty")

// Guard verifies and updates the password stored in the config.
type Guard struct {
	cfg   *config.Config
	sleep func(time.Duration)
}

// NewGuard wraps cfg in a password guard.
func NewGuard(cfg *config.Config) *Guard {
	return &Guard{cfg: cfg, sleep: time.Sleep}
}

// Enabled reports whether a password is configured.
func (g *Guard) Enabled() bool {
	return g.cfg.Auth.PasswordHash != ""
}

// Set hashes password with a fresh random salt and saves it to the config.
func (g *Guard) Set(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("auth: generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, g.iterations(), keyBytes, sha256.New)

	g.cfg.Auth.PasswordHash = hex.EncodeToString(key)
	g.cfg.Auth.Salt = hex.EncodeToString(salt)
	g.cfg.Auth.Iterations = g.iterations()
	return g.cfg.Save()
}

// Reset removes the stored password.
func (g *Guard) Reset() error {
	g.cfg.Auth.PasswordHash = ""
	g.cfg.Auth.Salt = ""
	return g.cfg.Save()
}

// Check tests one password against the stored hash in constant time.
// A guard with no password configured accepts anything.
func (g *Guard) Check(password string) (bool, error) {
	if !g.Enabled() {
		return true, nil
	}

	salt, err := hex.DecodeString(g.cfg.Auth.Salt)
	if err != nil {
		return false, fmt.Errorf("auth: malformed salt: %w", err)
	}
	want, err := hex.DecodeString(g.cfg.Auth.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("auth: malformed hash: %w", err)
	}

	got := pbkdf2.Key([]byte(password), salt, g.iterations(), len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// Verify runs the interactive unlock flow: up to MaxAttempts prompts with
// a delay after each failure. Returns ErrLocked once attempts run out, or
// the prompt's error if it aborts.
func (g *Guard) Verify(prompt func(attempt int) (string, error)) error {
	if !g.Enabled() {
		return nil
	}

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		password, err := prompt(attempt)
		if err != nil {
			return err
		}

		ok, err := g.Check(password)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if attempt < MaxAttempts {
			g.sleep(retryDelay)
		}
	}
	return ErrLocked
}

func (g *Guard) iterations() int {
	if g.cfg.Auth.Iterations > 0 {
		return g.cfg.Auth.Iterations
	}
	return config.DefaultIterations
}

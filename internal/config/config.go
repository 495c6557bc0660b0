// Package config handles configuration loading and validation for leaf.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// DefaultIterations is the PBKDF2 work factor used for new passwords.
const DefaultIterations = 120000

// Config holds the application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Reading ReadingConfig `yaml:"reading"`
	Auth    AuthConfig    `yaml:"auth"`

	Path string `yaml:"-"` // set by caller, not from config file
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ReadingConfig holds reader front-end preferences.
type ReadingConfig struct {
	// PlainPager makes the line-oriented pager the default front end
	// instead of the full-screen book view.
	PlainPager bool `yaml:"plain_pager"`
}

// AuthConfig stores the optional startup password, hashed.
type AuthConfig struct {
	PasswordHash string `yaml:"password_hash"`
	Salt         string `yaml:"salt"`
	Iterations   int    `yaml:"iterations"`
}

// DefaultPath returns XDG_CONFIG_HOME/leaf/config.yaml or
// ~/.config/leaf/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "leaf", fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "leaf", fileName)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log:  LogConfig{Level: "info"},
		Auth: AuthConfig{Iterations: DefaultIterations},
	}
}

// Load reads configuration from the given path. A missing file is not an
// error; it yields defaults bound to that path so a later Save creates it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Path = path

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
			cfg.Path = path
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Auth.Iterations == 0 {
		c.Auth.Iterations = defaults.Auth.Iterations
	}
}

// Save writes the configuration back to its path, creating the directory
// if needed. The file can hold password hash material and is written 0600.
func (c *Config) Save() error {
	if c.Path == "" {
		return fmt.Errorf("config has no backing path")
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, data, 0o600)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	if c.Auth.Iterations < 1 {
		return fmt.Errorf("auth.iterations must be at least 1")
	}
	if c.Auth.PasswordHash != "" && c.Auth.Salt == "" {
		return fmt.Errorf("auth.password_hash is set without auth.salt")
	}
	return nil
}

// LogFile returns the configured log path, defaulting to leaf.log inside
// the state directory.
func (c *Config) LogFile(stateDir string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(stateDir, "leaf.log")
}

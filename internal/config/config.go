// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/nightowl-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete nightowl configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	History HistoryConfig `toml:"history"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig describes the generative-language endpoint.
type APIConfig struct {
	// Endpoint is the models collection URL; the model name and
	// ":generateContent" are appended per request.
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	// APIKey is sent as the "key" query parameter. Prefer NIGHTOWL_API_KEY.
	APIKey string `toml:"api_key"`
	// TimeoutSecs bounds a single request, throttle wait included.
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerMinute throttles outbound calls (0 = unlimited).
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// StorageConfig selects where preferences persist.
type StorageConfig struct {
	// Backend is "file" (JSON document) or "sqlite".
	Backend string `toml:"backend"`
	// Path of the preferences file or database. Empty = under ConfigDir.
	Path string `toml:"path"`
}

// HistoryConfig bounds the in-memory conversation history.
type HistoryConfig struct {
	// MaxEntries caps the history, evicting the oldest entry (0 = unbounded).
	MaxEntries int `toml:"max_entries"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// DefaultDark is the theme used until the user toggles it once.
	DefaultDark bool `toml:"default_dark"`
	// WordWrap for rendered answers (0 = follow the answer pane width).
	WordWrap int  `toml:"word_wrap"`
	Mouse    bool `toml:"mouse"`
}

// LogConfig controls the diagnostic log.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output; the terminal belongs to the UI.
	File string `toml:"file"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Backend names accepted in [storage].
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Endpoint:          "https://generativelanguage.googleapis.com/v1beta/models",
			Model:             "gemini-pro",
			TimeoutSecs:       60,
			RequestsPerMinute: 60,
		},
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		History: HistoryConfig{
			MaxEntries: 0,
		},
		UI: UIConfig{
			DefaultDark: true,
			Mouse:       true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the nightowl configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".nightowl"), nil
}

// ConfigPath returns the path to the default TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StoragePath returns the preferences location, resolving the default for
// the configured backend when Path is empty.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Backend == BackendSQLite {
		return filepath.Join(dir, "prefs.db"), nil
	}
	return filepath.Join(dir, "prefs.json"), nil
}

// LogPath returns the log file location, defaulting to nightowl.log in
// ConfigDir.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "nightowl.log"), nil
}

// ExportDir returns where history exports are written.
func ExportDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the default config file if it exists, falling back to
// defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields a file explicitly zeroed.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.API.Endpoint == "" {
		c.API.Endpoint = defaults.API.Endpoint
	}
	if c.API.Model == "" {
		c.API.Model = defaults.API.Model
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - NIGHTOWL_API_KEY: overrides api.api_key (GEMINI_API_KEY is read when unset)
//   - NIGHTOWL_MODEL: overrides api.model
//   - NIGHTOWL_ENDPOINT: overrides api.endpoint
//   - NIGHTOWL_TIMEOUT_SECS: overrides api.timeout_secs
//   - NIGHTOWL_STORAGE: overrides storage.backend
//   - NIGHTOWL_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("NIGHTOWL_API_KEY"); key != "" {
		c.API.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.API.APIKey == "" {
		c.API.APIKey = key
	}

	if model := os.Getenv("NIGHTOWL_MODEL"); model != "" {
		c.API.Model = model
	}

	if endpoint := os.Getenv("NIGHTOWL_ENDPOINT"); endpoint != "" {
		c.API.Endpoint = endpoint
	}

	if secs := os.Getenv("NIGHTOWL_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			c.API.TimeoutSecs = n
		}
	}

	if backend := os.Getenv("NIGHTOWL_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}

	if level := os.Getenv("NIGHTOWL_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path with 0600 permissions, since it
// may hold the API key.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# nightowl configuration file\n")
	buf.WriteString("# The API key may also be supplied with NIGHTOWL_API_KEY.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors. A missing
// API key is not an error here; requests fail at call time instead so the
// UI can still start and show the failure.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.endpoint",
			Message: fmt.Sprintf("invalid URL '%s'", c.API.Endpoint),
		})
	}

	if strings.TrimSpace(c.API.Model) == "" || strings.ContainsAny(c.API.Model, "/?# ") {
		errs = append(errs, ValidationError{
			Field:   "api.model",
			Message: fmt.Sprintf("invalid model name '%s'", c.API.Model),
		})
	}

	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("must be 1-600, got %d", c.API.TimeoutSecs),
		})
	}

	if c.API.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.requests_per_minute",
			Message: "cannot be negative",
		})
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite", c.Storage.Backend),
		})
	}

	if c.History.MaxEntries < 0 {
		errs = append(errs, ValidationError{
			Field:   "history.max_entries",
			Message: "cannot be negative",
		})
	}

	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.word_wrap",
			Message: "cannot be negative",
		})
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// String renders the config as TOML with the API key masked.
func (c *Config) String() string {
	masked := *c
	if masked.API.APIKey != "" {
		masked.API.APIKey = fmt.Sprintf("[REDACTED, length=%d]", len(c.API.APIKey))
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(masked); err != nil {
		return fmt.Sprintf("config encode error: %v", err)
	}
	return buf.String()
}

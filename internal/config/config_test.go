// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv isolates a test from NIGHTOWL_* variables set by the developer.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"NIGHTOWL_API_KEY", "GEMINI_API_KEY", "NIGHTOWL_MODEL", "NIGHTOWL_ENDPOINT",
		"NIGHTOWL_TIMEOUT_SECS", "NIGHTOWL_STORAGE", "NIGHTOWL_LOG_LEVEL",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// TestConfig_Default tests that Default() returns a valid config.
func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if !cfg.UI.DefaultDark {
		t.Error("Default theme should be dark")
	}
	if cfg.API.APIKey != "" {
		t.Error("Default config must not carry an API key")
	}
	if cfg.History.MaxEntries != 0 {
		t.Errorf("History should be unbounded by default, got %d", cfg.History.MaxEntries)
	}
	if cfg.API.Timeout() != 60*time.Second {
		t.Errorf("Timeout() = %v, want 60s", cfg.API.Timeout())
	}
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, "", false},
		{"sqlite backend", func(c *Config) { c.Storage.Backend = BackendSQLite }, "", false},
		{"relative endpoint", func(c *Config) { c.API.Endpoint = "/models" }, "api.endpoint", true},
		{"model with slash", func(c *Config) { c.API.Model = "a/b" }, "api.model", true},
		{"empty model", func(c *Config) { c.API.Model = " " }, "api.model", true},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs", true},
		{"negative rpm", func(c *Config) { c.API.RequestsPerMinute = -1 }, "api.requests_per_minute", true},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "storage.backend", true},
		{"negative history cap", func(c *Config) { c.History.MaxEntries = -5 }, "history.max_entries", true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidateErrors, got %T", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.field)
			}
		})
	}
}

func TestLoadFromPath(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[api]
model = "gemini-1.5-flash"
api_key = "from-file"

[history]
max_entries = 50

[ui]
default_dark = false
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.API.Model != "gemini-1.5-flash" {
		t.Errorf("Model = %q", cfg.API.Model)
	}
	if cfg.API.APIKey != "from-file" {
		t.Errorf("APIKey = %q", cfg.API.APIKey)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("MaxEntries = %d", cfg.History.MaxEntries)
	}
	if cfg.UI.DefaultDark {
		t.Error("DefaultDark should be false from file")
	}
	// Untouched sections keep defaults.
	if cfg.API.Endpoint != Default().API.Endpoint {
		t.Errorf("Endpoint = %q, want default", cfg.API.Endpoint)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Storage.Backend)
	}
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "[api]\nmodle = \"typo\"\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "api.modle") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "[storage]\nbackend = \"etcd\"\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NIGHTOWL_API_KEY", "env-key")
	t.Setenv("NIGHTOWL_MODEL", "gemini-1.5-pro")
	t.Setenv("NIGHTOWL_STORAGE", "SQLITE")
	t.Setenv("NIGHTOWL_TIMEOUT_SECS", "15")

	cfg := Default()
	cfg.API.APIKey = "from-file"
	cfg.ApplyEnvOverrides()

	if cfg.API.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.API.APIKey)
	}
	if cfg.API.Model != "gemini-1.5-pro" {
		t.Errorf("Model = %q", cfg.API.Model)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q", cfg.Storage.Backend)
	}
	if cfg.API.TimeoutSecs != 15 {
		t.Errorf("TimeoutSecs = %d", cfg.API.TimeoutSecs)
	}
}

func TestApplyEnvOverrides_GeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.API.APIKey != "gemini-key" {
		t.Errorf("APIKey = %q, want gemini-key", cfg.API.APIKey)
	}

	// A key from the config file wins over the generic variable.
	cfg = Default()
	cfg.API.APIKey = "from-file"
	cfg.ApplyEnvOverrides()
	if cfg.API.APIKey != "from-file" {
		t.Errorf("APIKey = %q, want from-file", cfg.API.APIKey)
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.API.APIKey = "secret"
	cfg.History.MaxEntries = 10

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 && os.PathSeparator == '/' {
		t.Errorf("permissions = %o, want 600", perm)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.API.APIKey != "secret" || loaded.History.MaxEntries != 10 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestStoragePath_Defaults(t *testing.T) {
	cfg := Default()

	path, err := cfg.StoragePath()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if filepath.Base(path) != "prefs.json" {
		t.Errorf("file backend path = %q", path)
	}

	cfg.Storage.Backend = BackendSQLite
	path, _ = cfg.StoragePath()
	if filepath.Base(path) != "prefs.db" {
		t.Errorf("sqlite backend path = %q", path)
	}

	cfg.Storage.Path = "/tmp/custom.db"
	path, _ = cfg.StoragePath()
	if path != "/tmp/custom.db" {
		t.Errorf("explicit path = %q", path)
	}
}

func TestString_MasksAPIKey(t *testing.T) {
	cfg := Default()
	cfg.API.APIKey = "AIzaSecretValue"

	out := cfg.String()
	if strings.Contains(out, "AIzaSecretValue") {
		t.Error("String() leaked the API key")
	}
	if !strings.Contains(out, "REDACTED") {
		t.Error("String() should show a redaction marker")
	}
	if cfg.API.APIKey != "AIzaSecretValue" {
		t.Error("String() must not modify the receiver")
	}
}

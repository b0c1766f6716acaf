// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nightowl-tui/internal/config"
)

// =============================================================================
// SHARED BEHAVIOUR
// =============================================================================

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLite(filepath.Join(dir, "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "prefs.json")),
		"sqlite": sqlite,
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			raw, ok, err := store.Get("isDarkMode")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, raw)
		})
	}
}

func TestStore_SetGet(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set("isDarkMode", []byte("false")))
			require.NoError(t, store.Set("other", []byte(`"x"`)))
			require.NoError(t, store.Set("isDarkMode", []byte("true")))

			raw, ok, err := store.Get("isDarkMode")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, "true", string(raw))

			raw, ok, err = store.Get("other")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.JSONEq(t, `"x"`, string(raw))
		})
	}
}

func TestStore_Closed(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Close())

			_, _, err := store.Get("isDarkMode")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, store.Set("isDarkMode", []byte("true")), ErrClosed)
		})
	}
}

// =============================================================================
// FILE BACKEND
// =============================================================================

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	require.NoError(t, NewFileStore(path).Set("isDarkMode", []byte("false")))

	raw, ok, err := NewFileStore(path).Get("isDarkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", string(raw))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	assert.Error(t, store.Set("isDarkMode", []byte("not json")))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	store := NewFileStore(path)
	_, _, err := store.Get("isDarkMode")
	assert.Error(t, err)

	// Writing recovers the file.
	require.NoError(t, store.Set("isDarkMode", []byte("true")))
	raw, ok, err := store.Get("isDarkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", string(raw))
}

// =============================================================================
// OPEN
// =============================================================================

func TestOpen_Backends(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(dir, "prefs.json")
	store, err := Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
	store.Close()

	cfg.Storage.Backend = config.BackendSQLite
	cfg.Storage.Path = filepath.Join(dir, "prefs.db")
	store, err = Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.Equal(t, cfg.Storage.Path, store.Path())
	store.Close()

	cfg.Storage.Backend = "redis"
	_, err = Open(cfg)
	assert.Error(t, err)
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_ReportsExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, path, 20*time.Millisecond)
	require.NoError(t, err)

	// A second process writing the same file.
	require.NoError(t, NewFileStore(path).Set("isDarkMode", []byte("false")))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := Watch(ctx, filepath.Join(dir, "prefs.json"), 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("x"), 0600))

	select {
	case <-changes:
		t.Fatal("unexpected change for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	changes, err := Watch(ctx, filepath.Join(t.TempDir(), "prefs.json"), 0)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nightowl-tui/internal/prefs"
)

func newStore(t *testing.T) (*Store, *prefs.FileStore, *test.Hook) {
	t.Helper()
	p := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	log, hook := test.NewNullLogger()
	return New(p, DefaultDark, log), p, hook
}

func TestLoad_DefaultsToDark(t *testing.T) {
	s, _, _ := newStore(t)

	dark, err := s.Load()
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, s.IsDark())
}

func TestLoad_StoredValue(t *testing.T) {
	s, p, _ := newStore(t)
	require.NoError(t, p.Set(Key, []byte("false")))

	dark, err := s.Load()
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestLoad_MalformedValue(t *testing.T) {
	s, p, hook := newStore(t)
	require.NoError(t, p.Set(Key, []byte(`"yes"`)))

	dark, err := s.Load()
	require.NoError(t, err)
	assert.True(t, dark)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

// Toggling twice returns to the original value and the stored value always
// matches the in-memory one.
func TestToggle_RoundTrip(t *testing.T) {
	s, p, _ := newStore(t)
	_, err := s.Load()
	require.NoError(t, err)

	dark, err := s.Toggle()
	require.NoError(t, err)
	assert.False(t, dark)

	raw, ok, err := p.Get(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", string(raw))

	dark, err = s.Toggle()
	require.NoError(t, err)
	assert.True(t, dark)
	assert.True(t, s.IsDark())
}

// A fresh store over the same backing file sees the toggled value, which
// is what a restart does.
func TestToggle_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	log, _ := test.NewNullLogger()

	first := New(prefs.NewFileStore(path), DefaultDark, log)
	_, err := first.Load()
	require.NoError(t, err)
	_, err = first.Toggle()
	require.NoError(t, err)

	second := New(prefs.NewFileStore(path), DefaultDark, log)
	dark, err := second.Load()
	require.NoError(t, err)
	assert.False(t, dark)
}

func TestToggle_WriteFailureKeepsValue(t *testing.T) {
	s, p, _ := newStore(t)
	require.NoError(t, p.Close())

	dark, err := s.Toggle()
	assert.Error(t, err)
	assert.True(t, dark)
	assert.True(t, s.IsDark())
}

func TestWatch_ExternalChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	log, _ := test.NewNullLogger()

	s := New(prefs.NewFileStore(path), DefaultDark, log)
	_, err := s.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := s.Watch(ctx)
	require.NoError(t, err)

	other := New(prefs.NewFileStore(path), DefaultDark, log)
	_, err = other.Toggle()
	require.NoError(t, err)

	select {
	case dark := <-changes:
		assert.False(t, dark)
		assert.False(t, s.IsDark())
	case <-time.After(5 * time.Second):
		t.Fatal("external change not reported")
	}
}

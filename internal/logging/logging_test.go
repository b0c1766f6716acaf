// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/nightowl-tui/internal/config"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "WARN")
	require.NoError(t, err)

	log.Info("hidden")
	log.WithField("status", 500).Warn("request failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "request failed")
	assert.Contains(t, out, "status=500")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty")
	assert.Error(t, err)
}

func TestSetup_WritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "logs", "nightowl.log")

	log, closer, err := Setup(cfg)
	require.NoError(t, err)

	log.WithFields(logrus.Fields{"component": "test"}).Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "component=test"))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error("dropped")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

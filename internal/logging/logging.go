// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the diagnostic logger. The terminal belongs to
// the UI, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/nightowl-tui/internal/config"
)

// Setup builds a logger from cfg and opens the log file. The returned closer
// must be called on exit.
func Setup(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log, err := New(f, cfg.Log.Level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, f, nil
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return log, nil
}

// Discard returns a logger that drops everything, for callers that were not
// handed one.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

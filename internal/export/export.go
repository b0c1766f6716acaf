// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/nightowl-tui/internal/history"
	"github.com/jeranaias/nightowl-tui/internal/util"
)

// ErrNothingToExport is returned for an empty history.
var ErrNothingToExport = errors.New("no answered questions to export")

// Exporter converts history entries to one file format.
type Exporter interface {
	Export(entries []history.Entry) ([]byte, error)

	// FileExtension includes the dot.
	FileExtension() string
}

// ForFormat returns the exporter for "md"/"markdown" or "json".
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "md", "markdown":
		return NewMarkdownExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want md or json)", format)
	}
}

// ToFile writes entries to a new timestamped file in dir and returns its
// path.
func ToFile(entries []history.Entry, exporter Exporter, dir string) (string, error) {
	return toFileAt(entries, exporter, dir, time.Now())
}

func toFileAt(entries []history.Entry, exporter Exporter, dir string, now time.Time) (string, error) {
	if len(entries) == 0 {
		return "", ErrNothingToExport
	}

	content, err := exporter.Export(entries)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	name := fmt.Sprintf("nightowl_%s%s", now.Format("20060102_150405"), exporter.FileExtension())
	path := filepath.Join(dir, name)
	if err := util.AtomicWriteFile(path, content, 0600); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"errors"
	"fmt"

	"github.com/jeranaias/nightowl-tui/internal/config"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("prefs: store is closed")

// Store is a durable string-keyed store of raw JSON values.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key. The write is durable when Set returns.
	Set(key string, value []byte) error

	// Path returns the backing file, for watching.
	Path() string

	Close() error
}

// Open opens the backend selected by cfg.Storage.
func Open(cfg *config.Config) (Store, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case config.BackendFile, "":
		return NewFileStore(path), nil
	case config.BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

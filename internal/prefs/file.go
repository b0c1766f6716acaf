// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jeranaias/nightowl-tui/internal/util"
)

// FileStore keeps all keys in a single JSON object on disk. Every Get reads
// the file so that writes from other processes are seen.
type FileStore struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// NewFileStore returns a store backed by path. The file is created on the
// first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements Store.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	values, err := s.read()
	if err != nil {
		return nil, false, err
	}
	raw, ok := values[key]
	return raw, ok, nil
}

// Set implements Store.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if !json.Valid(value) {
		return fmt.Errorf("prefs: value for %q is not valid JSON", key)
	}

	values, err := s.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every later write.
		values = make(map[string]json.RawMessage)
	}
	values[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Path implements Store.
func (s *FileStore) Path() string {
	return s.path
}

// Close implements Store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}
	return values, nil
}

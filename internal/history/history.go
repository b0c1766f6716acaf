// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the question/answer pairs of the current run. It is
// memory only and is lost on exit.
package history

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrIndexOutOfRange is returned by Select for an index outside [0, Len).
var ErrIndexOutOfRange = errors.New("history: index out of range")

// Entry is one answered question. Entries are values and are never
// modified after Append.
type Entry struct {
	Question string
	Answer   string
	AskedAt  time.Time
}

// Store is an ordered, append-only list of entries. Duplicates are kept.
type Store struct {
	mu         sync.RWMutex
	entries    []Entry
	maxEntries int
}

// New returns an empty store. maxEntries <= 0 means unbounded; otherwise the
// oldest entries are dropped once the cap is exceeded.
func New(maxEntries int) *Store {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &Store{maxEntries: maxEntries}
}

// Append adds e at the end.
func (s *Store) Append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.AskedAt.IsZero() {
		e.AskedAt = time.Now()
	}
	s.entries = append(s.entries, e)
	s.prune()
}

// Select returns the entry at index.
func (s *Store) Select(index int) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.entries) {
		return Entry{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(s.entries))
	}
	return s.entries[index], nil
}

// Entries returns a copy of all entries, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// prune drops the oldest entries over the cap. Caller holds the lock.
func (s *Store) prune() {
	if s.maxEntries == 0 || len(s.entries) <= s.maxEntries {
		return
	}
	excess := len(s.entries) - s.maxEntries
	kept := make([]Entry, s.maxEntries)
	copy(kept, s.entries[excess:])
	s.entries = kept
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme persists the light/dark preference.
package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jeranaias/nightowl-tui/internal/prefs"
)

// Key is the preference key holding the dark-mode flag as a JSON boolean.
const Key = "isDarkMode"

// DefaultDark applies when nothing is stored.
const DefaultDark = true

// Store reads and writes the theme preference. The in-memory value mirrors
// what was last loaded or written.
type Store struct {
	mu       sync.RWMutex
	prefs    prefs.Store
	log      logrus.FieldLogger
	fallback bool
	dark     bool
}

// New returns a theme store over p. fallback is used when the key is absent
// or unreadable.
func New(p prefs.Store, fallback bool, log logrus.FieldLogger) *Store {
	return &Store{
		prefs:    p,
		log:      log.WithField("component", "theme"),
		fallback: fallback,
		dark:     fallback,
	}
}

// Load reads the stored preference. A missing key yields the fallback; a
// corrupt value yields the fallback and is logged, not returned.
func (s *Store) Load() (bool, error) {
	raw, ok, err := s.prefs.Get(Key)
	if err != nil {
		s.log.WithError(err).Warn("failed to read theme preference")
		s.set(s.fallback)
		return s.fallback, err
	}
	if !ok {
		s.set(s.fallback)
		return s.fallback, nil
	}

	var dark bool
	if err := json.Unmarshal(raw, &dark); err != nil {
		s.log.WithField("value", string(raw)).Warn("ignoring malformed theme preference")
		s.set(s.fallback)
		return s.fallback, nil
	}

	s.set(dark)
	return dark, nil
}

// Toggle flips the preference and writes it before returning.
func (s *Store) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := !s.dark
	raw, err := json.Marshal(next)
	if err != nil {
		return s.dark, err
	}
	if err := s.prefs.Set(Key, raw); err != nil {
		return s.dark, fmt.Errorf("failed to save theme preference: %w", err)
	}

	s.dark = next
	s.log.WithField("dark", next).Debug("theme toggled")
	return next, nil
}

// IsDark reports the current value.
func (s *Store) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// Watch emits the preference each time another process changes it. The
// channel closes when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan bool, error) {
	changes, err := prefs.Watch(ctx, s.prefs.Path(), prefs.DefaultDebounce)
	if err != nil {
		return nil, err
	}

	out := make(chan bool)
	go func() {
		defer close(out)
		for range changes {
			before := s.IsDark()
			dark, err := s.Load()
			if err != nil || dark == before {
				continue
			}
			select {
			case out <- dark:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *Store) set(dark bool) {
	s.mu.Lock()
	s.dark = dark
	s.mu.Unlock()
}

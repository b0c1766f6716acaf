// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAppend_Order(t *testing.T) {
	s := New(0)
	s.Append(Entry{Question: "q1", Answer: "a1"})
	s.Append(Entry{Question: "q2", Answer: "a2"})
	s.Append(Entry{Question: "q1", Answer: "a1"})

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	got := s.Entries()
	want := []string{"q1", "q2", "q1"}
	for i, q := range want {
		if got[i].Question != q {
			t.Errorf("Entries()[%d].Question = %q, want %q", i, got[i].Question, q)
		}
	}
}

func TestAppend_StampsTime(t *testing.T) {
	s := New(0)
	before := time.Now()
	s.Append(Entry{Question: "q", Answer: "a"})

	e, err := s.Select(0)
	if err != nil {
		t.Fatalf("Select(0) error: %v", err)
	}
	if e.AskedAt.Before(before) {
		t.Errorf("AskedAt = %v, want >= %v", e.AskedAt, before)
	}

	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Append(Entry{Question: "q", Answer: "a", AskedAt: fixed})
	e, _ = s.Select(1)
	if !e.AskedAt.Equal(fixed) {
		t.Errorf("AskedAt = %v, want %v", e.AskedAt, fixed)
	}
}

func TestSelect(t *testing.T) {
	s := New(0)
	s.Append(Entry{Question: "What is 2+2?", Answer: "4"})

	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{"first", 0, false},
		{"negative", -1, true},
		{"past end", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := s.Select(tt.index)
			if tt.wantErr {
				if !errors.Is(err, ErrIndexOutOfRange) {
					t.Errorf("Select(%d) error = %v, want ErrIndexOutOfRange", tt.index, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Select(%d) error: %v", tt.index, err)
			}
			if e.Answer != "4" {
				t.Errorf("Answer = %q, want %q", e.Answer, "4")
			}
		})
	}
}

func TestEntries_IsCopy(t *testing.T) {
	s := New(0)
	s.Append(Entry{Question: "q", Answer: "a"})

	got := s.Entries()
	got[0].Answer = "changed"

	e, _ := s.Select(0)
	if e.Answer != "a" {
		t.Errorf("stored entry modified through Entries(): %q", e.Answer)
	}
}

func TestMaxEntries(t *testing.T) {
	s := New(2)
	for i := 0; i < 5; i++ {
		s.Append(Entry{Question: fmt.Sprintf("q%d", i)})
	}

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	got := s.Entries()
	if got[0].Question != "q3" || got[1].Question != "q4" {
		t.Errorf("kept %q, %q; want q3, q4", got[0].Question, got[1].Question)
	}
}

func TestUnbounded(t *testing.T) {
	s := New(-1)
	for i := 0; i < 1000; i++ {
		s.Append(Entry{Question: "q"})
	}
	if s.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", s.Len())
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders answers for the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Standard glamour style names.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// DefaultWidth is used when no positive width is given.
const DefaultWidth = 80

// StyleFor picks the glamour style for a background and output kind.
func StyleFor(dark, tty bool) string {
	switch {
	case !tty:
		return StyleNoTTY
	case dark:
		return StyleDark
	default:
		return StyleLight
	}
}

// Renderer wraps a glamour renderer that is rebuilt when the style or wrap
// width changes.
type Renderer struct {
	mu    sync.Mutex
	style string
	width int
	tr    *glamour.TermRenderer
}

// New returns a renderer for the given glamour style and wrap width.
func New(style string, width int) *Renderer {
	r := &Renderer{}
	r.configure(style, width)
	return r
}

// SetStyle switches the glamour style.
func (r *Renderer) SetStyle(style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if style != r.style {
		r.configure(style, r.width)
	}
}

// SetWidth changes the wrap width.
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 {
		width = DefaultWidth
	}
	if width != r.width {
		r.configure(r.style, width)
	}
}

// Style returns the current glamour style name.
func (r *Renderer) Style() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

// Render returns md rendered for the terminal, or md unchanged if glamour
// could not be initialized or fails on the input.
func (r *Renderer) Render(md string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tr == nil {
		return md
	}
	out, err := r.tr.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// configure rebuilds the glamour renderer. Caller holds the lock.
func (r *Renderer) configure(style string, width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	r.style = style
	r.width = width

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.tr = nil
		return
	}
	r.tr = tr
}

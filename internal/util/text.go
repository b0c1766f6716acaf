// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to text cut by Shorten.
const Ellipsis = "…"

// SingleLine collapses every run of whitespace, newlines included, into one
// space so multi-line questions and answers fit on a list row.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Shorten flattens s to a single line and cuts it to at most maxWidth
// terminal columns. Wide (CJK, emoji) runes count as two columns.
func Shorten(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = SingleLine(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// PadRight pads s with spaces up to width columns. Text already wider than
// width is returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

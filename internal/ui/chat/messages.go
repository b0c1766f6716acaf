// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nightowl-tui/internal/session"
)

// AnswerMsg carries the outcome of a request back to the event loop.
type AnswerMsg struct {
	Result session.Result
}

// ThemeChangedMsg reports a theme preference written by another process.
type ThemeChangedMsg struct {
	Dark bool
}

// themeWatchClosedMsg ends the theme watch loop.
type themeWatchClosedMsg struct{}

// askCmd runs req off the event loop.
func askCmd(s *session.Controller, req *session.Request) tea.Cmd {
	return func() tea.Msg {
		return AnswerMsg{Result: s.Run(req)}
	}
}

// waitForTheme receives the next external theme change.
func waitForTheme(changes <-chan bool) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		dark, ok := <-changes
		if !ok {
			return themeWatchClosedMsg{}
		}
		return ThemeChangedMsg{Dark: dark}
	}
}

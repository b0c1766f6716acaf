// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/nightowl-tui/internal/export"
	"github.com/jeranaias/nightowl-tui/internal/session"
	"github.com/jeranaias/nightowl-tui/internal/ui/styles"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case AnswerMsg:
		return m.handleAnswer(msg)

	case ThemeChangedMsg:
		m.applyTheme(msg.Dark)
		return m, waitForTheme(m.themeChanges)

	case themeWatchClosedMsg:
		m.themeChanges = nil
		return m, nil

	case spinner.TickMsg:
		if !m.session.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshAnswer()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.session.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m.toggleTheme()

	case key.Matches(msg, m.keyMap.Export):
		return m.exportHistory()

	case key.Matches(msg, m.keyMap.Focus):
		return m.switchFocus()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.focus == FocusHistory {
		return m.handleHistoryKey(msg)
	}

	if key.Matches(msg, m.keyMap.Submit) {
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetQuestion(m.input.Value())
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.session.History().Len()

	switch {
	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keyMap.Select):
		m.selectHistory(m.cursor)
	}
	m.ensureCursorVisible()
	return m, nil
}

func (m Model) switchFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusInput {
		if m.session.History().Len() == 0 {
			m.status = "No history yet."
			return m, nil
		}
		m.focus = FocusHistory
		m.input.Blur()
		m.clampCursor()
		return m, nil
	}

	m.focus = FocusInput
	return m, m.input.Focus()
}

// submit starts a request for the input text. Blank input and a request
// already in flight are no-ops.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session.SetQuestion(m.input.Value())

	req, err := m.session.Begin()
	switch {
	case errors.Is(err, session.ErrEmptyQuestion), errors.Is(err, session.ErrBusy):
		return m, nil
	case err != nil:
		m.log.WithError(err).Warn("submit rejected")
		return m, nil
	}

	m.refreshAnswer()
	return m, tea.Batch(askCmd(m.session, req), m.spinner.Tick)
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(3)
		return m, nil
	case tea.MouseWheelDown:
		m.viewport.LineDown(3)
		return m, nil
	case tea.MouseLeft:
		if index, ok := m.historyIndexAt(msg.X, msg.Y); ok {
			m.cursor = index
			m.selectHistory(index)
		}
	}
	return m, nil
}

// =============================================================================
// REQUEST COMPLETION
// =============================================================================

func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if !m.session.Complete(msg.Result) {
		return m, nil
	}

	m.syncInput()
	m.refreshAnswer()
	return m, nil
}

// =============================================================================
// HISTORY
// =============================================================================

func (m *Model) selectHistory(index int) {
	if err := m.session.SelectHistory(index); err != nil {
		m.log.WithError(err).Debug("history selection ignored")
		return
	}
	m.syncInput()
	m.refreshAnswer()
	m.viewport.GotoTop()
}

func (m *Model) clampCursor() {
	n := m.session.History().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	rows := m.historyRows()
	if rows < 1 {
		rows = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// exportHistory writes the answered questions as Markdown.
func (m Model) exportHistory() (tea.Model, tea.Cmd) {
	if m.exportDir == "" {
		return m, nil
	}
	path, err := export.ToFile(m.session.History().Entries(), export.NewMarkdownExporter(), m.exportDir)
	switch {
	case errors.Is(err, export.ErrNothingToExport):
		m.status = "No history yet."
	case err != nil:
		m.log.WithError(err).Error("history export failed")
		m.status = "Could not export history."
	default:
		m.log.WithField("path", path).Info("history exported")
		m.status = "Exported to " + path
	}
	return m, nil
}

// =============================================================================
// THEME
// =============================================================================

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	dark, err := m.themeStore.Toggle()
	if err != nil {
		m.log.WithError(err).Error("failed to save theme")
		m.status = "Could not save theme preference."
		return m, nil
	}
	m.applyTheme(dark)
	return m, nil
}

// applyTheme rebuilds styles and markdown for the new background.
func (m *Model) applyTheme(dark bool) {
	if m.theme.IsDark == dark {
		return
	}
	m.theme = styles.NewThemeWithProfile(dark, m.theme.ColorProfile)
	m.md.SetStyle(m.theme.GlamourStyle())
	m.applyThemeStyles()
	m.refreshAnswer()
}

func (m *Model) applyThemeStyles() {
	m.input.PromptStyle = m.theme.InputPrompt
	m.input.TextStyle = m.theme.InputText
	m.input.PlaceholderStyle = m.theme.InputHint
	m.input.Cursor.Style = m.theme.InputPrompt
	m.spinner.Style = m.theme.Spinner
	m.help.Styles.ShortKey = m.theme.Help.Copy().Bold(true).Padding(0)
	m.help.Styles.ShortDesc = m.theme.Help.Copy().Padding(0)
	m.help.Styles.ShortSeparator = m.theme.Help.Copy().Padding(0)
}

// =============================================================================
// SYNC
// =============================================================================

// syncInput copies the session question into the input box.
func (m *Model) syncInput() {
	q := m.session.Question()
	if m.input.Value() != q {
		m.input.SetValue(q)
		m.input.CursorEnd()
	}
}

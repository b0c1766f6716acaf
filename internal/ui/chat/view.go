// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/nightowl-tui/internal/session"
	"github.com/jeranaias/nightowl-tui/internal/util"
)

// Fixed layout heights. Borders count.
const (
	headerHeight  = 1
	inputHeight   = 3
	footerHeight  = 1
	minBodyHeight = 6

	// Rows above the first history entry inside the sidebar: border,
	// title and the title margin.
	sidebarChrome = 3

	// Rows above the viewport inside the answer pane: border, label and
	// the label margin.
	answerChrome = 3

	minSidebarWidth = 18
	maxSidebarWidth = 36
)

// =============================================================================
// GEOMETRY
// =============================================================================

func (m Model) bodyHeight() int {
	h := m.height - headerHeight - inputHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

func (m Model) sidebarWidth() int {
	w := m.width / 3
	if w < minSidebarWidth {
		w = minSidebarWidth
	}
	if w > maxSidebarWidth {
		w = maxSidebarWidth
	}
	return w
}

func (m Model) answerWidth() int {
	w := m.width - m.sidebarWidth()
	if w < 10 {
		w = 10
	}
	return w
}

// historyRows is the number of entries visible in the sidebar.
func (m Model) historyRows() int {
	return m.bodyHeight() - sidebarChrome - 1
}

// historyIndexAt maps a screen cell to a history index.
func (m Model) historyIndexAt(x, y int) (int, bool) {
	if x < 0 || x >= m.sidebarWidth() {
		return 0, false
	}
	row := y - headerHeight - sidebarChrome
	if row < 0 || row >= m.historyRows() {
		return 0, false
	}
	index := m.offset + row
	if index >= m.session.History().Len() {
		return 0, false
	}
	return index, true
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Border and horizontal padding on each side.
	contentWidth := m.answerWidth() - 4
	if contentWidth < 1 {
		contentWidth = 1
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = m.bodyHeight() - answerChrome - 1
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}

	if m.wordWrap == 0 {
		m.md.SetWidth(contentWidth)
	}

	// Input box: border, padding, prompt, one space and the button.
	inputWidth := m.width - 4 - len(m.input.Prompt) - 1 - (len(ButtonLabel) + 4)
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.help.Width = m.width

	m.ensureCursorVisible()
	m.refreshAnswer()
	return m, nil
}

// =============================================================================
// CONTENT
// =============================================================================

// refreshAnswer renders the displayed answer into the viewport.
func (m *Model) refreshAnswer() {
	var content string
	switch answer := m.session.Answer(); answer {
	case "":
		content = m.theme.InputHint.Render("Ask a question to get started.")
	case session.Placeholder:
		content = m.spinner.View() + " " + m.theme.Placeholder.Render(session.Placeholder)
	case session.ErrorAnswer:
		content = m.theme.ErrorText.Render(session.ErrorAnswer)
	default:
		content = m.md.Render(answer)
	}
	m.viewport.SetContent(content)
}

// =============================================================================
// RENDER
// =============================================================================

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		m.renderAnswer(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderInput(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(Title)
	badge := m.theme.ThemeBadge.Render(m.theme.ModeLabel() + " mode")

	// Header padding is one column on each side.
	gap := m.width - 2 - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(m.width).Render(title + strings.Repeat(" ", gap) + badge)
}

func (m Model) renderSidebar() string {
	width := m.sidebarWidth()
	inner := width - 4

	style := m.theme.Sidebar
	if m.focus == FocusHistory {
		style = m.theme.SidebarFocused
	}

	entries := m.session.History().Entries()
	lines := []string{m.theme.SidebarTitle.Render(fmt.Sprintf("History (%d)", len(entries)))}

	if len(entries) == 0 {
		lines = append(lines, m.theme.HistoryEmpty.Render(util.Shorten("No questions yet", inner)))
	}

	end := m.offset + m.historyRows()
	if end > len(entries) {
		end = len(entries)
	}
	for i := m.offset; i < end; i++ {
		label := fmt.Sprintf("%d. %s", i+1, util.SingleLine(entries[i].Question))
		label = util.PadRight(util.Shorten(label, inner), inner)

		if m.focus == FocusHistory && i == m.cursor {
			lines = append(lines, m.theme.HistoryItemSelected.Render(label))
		} else {
			lines = append(lines, m.theme.HistoryItem.Render(label))
		}
	}

	return style.
		Width(width - 2).
		Height(m.bodyHeight() - 2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderAnswer() string {
	label := m.theme.QuestionLabel.Render("Answer")
	if q := util.SingleLine(m.session.Question()); q != "" && !m.session.Generating() {
		label += m.theme.QuestionText.Render("  " + util.Shorten(q, m.viewport.Width-8))
	}

	return m.theme.AnswerPane.
		Width(m.answerWidth() - 2).
		Height(m.bodyHeight() - 2).
		Render(label + "\n\n" + m.viewport.View())
}

func (m Model) renderInput() string {
	style := m.theme.Input
	if m.focus == FocusInput {
		style = m.theme.InputFocused
	}

	button := m.theme.Button.Render(ButtonLabel)
	if m.session.Generating() {
		button = m.theme.ButtonDisabled.Render(util.PadRight(ButtonBusyLabel, len(ButtonLabel)))
	}

	line := m.input.View()
	gap := m.width - 4 - lipgloss.Width(line) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return style.Width(m.width - 2).Render(line + strings.Repeat(" ", gap) + button)
}

func (m Model) renderFooter() string {
	if m.status != "" {
		return m.theme.Help.Render(util.Shorten(m.status, m.width-2))
	}
	if m.focus == FocusHistory {
		return m.theme.Help.Render(m.help.View(historyKeys{m.keyMap}))
	}
	return m.theme.Help.Render(m.help.View(m.keyMap))
}

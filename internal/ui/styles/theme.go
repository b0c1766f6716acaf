// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for one light/dark setting.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile
	Renderer     *lipgloss.Renderer

	// ==========================================================================
	// FRAME
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	ThemeBadge  lipgloss.Style
	Help        lipgloss.Style

	// ==========================================================================
	// HISTORY SIDEBAR
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarFocused      lipgloss.Style
	SidebarTitle        lipgloss.Style
	HistoryItem         lipgloss.Style
	HistoryItemSelected lipgloss.Style
	HistoryEmpty        lipgloss.Style

	// ==========================================================================
	// ANSWER PANE
	// ==========================================================================

	AnswerPane    lipgloss.Style
	QuestionLabel lipgloss.Style
	QuestionText  lipgloss.Style
	Placeholder   lipgloss.Style
	ErrorText     lipgloss.Style
	Spinner       lipgloss.Style

	// ==========================================================================
	// INPUT FORM
	// ==========================================================================

	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	InputPrompt    lipgloss.Style
	InputText      lipgloss.Style
	InputHint      lipgloss.Style
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
}

// NewTheme builds a theme for the given background using the color
// profile of stdout.
func NewTheme(dark bool) *Theme {
	return NewThemeWithProfile(dark, termenv.NewOutput(os.Stdout).ColorProfile())
}

// NewThemeWithProfile builds a theme with an explicit color profile.
func NewThemeWithProfile(dark bool, profile termenv.Profile) *Theme {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(dark)

	t := &Theme{
		IsDark:       dark,
		ColorProfile: profile,
		Renderer:     r,
	}
	t.initStyles()
	return t
}

// Toggle returns the theme for the opposite background.
func (t *Theme) Toggle() *Theme {
	return NewThemeWithProfile(!t.IsDark, t.ColorProfile)
}

// GlamourStyle names the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// ModeLabel is the header indicator text.
func (t *Theme) ModeLabel() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

func (t *Theme) initStyles() {
	r := t.Renderer

	t.App = r.NewStyle().
		Background(Surface).
		Foreground(TextPrimary)

	t.Header = r.NewStyle().
		Background(IndigoDeep).
		Padding(0, 1)

	t.HeaderTitle = r.NewStyle().
		Bold(true).
		Foreground(Indigo)

	t.ThemeBadge = r.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Help = r.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	// History sidebar
	t.Sidebar = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarFocused = t.Sidebar.
		BorderForeground(Indigo)

	t.SidebarTitle = r.NewStyle().
		Bold(true).
		Foreground(TextSecondary).
		MarginBottom(1)

	t.HistoryItem = r.NewStyle().
		Foreground(TextPrimary)

	t.HistoryItemSelected = r.NewStyle().
		Foreground(Teal).
		Background(SelectionBg).
		Bold(true)

	t.HistoryEmpty = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Answer pane
	t.AnswerPane = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.QuestionLabel = r.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.QuestionText = r.NewStyle().
		Foreground(TextPrimary)

	t.Placeholder = r.NewStyle().
		Foreground(Amber).
		Italic(true)

	t.ErrorText = r.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Spinner = r.NewStyle().
		Foreground(Amber)

	// Input form
	t.Input = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputFocused = t.Input.
		BorderForeground(Indigo)

	t.InputPrompt = r.NewStyle().
		Foreground(Indigo).
		Bold(true)

	t.InputText = r.NewStyle().
		Foreground(TextPrimary)

	t.InputHint = r.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Button = r.NewStyle().
		Foreground(TextInverse).
		Background(Teal).
		Bold(true).
		Padding(0, 2)

	t.ButtonDisabled = r.NewStyle().
		Foreground(TextMuted).
		Background(Overlay).
		Padding(0, 2)
}

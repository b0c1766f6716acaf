// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jeranaias/nightowl-tui/internal/session"
	"github.com/jeranaias/nightowl-tui/internal/ui/markdown"
	"github.com/jeranaias/nightowl-tui/internal/ui/styles"
)

// Title is shown in the header.
const Title = "NightOwl AI"

// Button labels of the input form.
const (
	ButtonLabel     = "Ask"
	ButtonBusyLabel = "..."
)

// Focus is the widget receiving keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusHistory
)

// ThemeToggler is the part of the theme store the view uses.
type ThemeToggler interface {
	Toggle() (bool, error)
	IsDark() bool
}

// Options configure a Model.
type Options struct {
	Session *session.Controller
	Theme   ThemeToggler

	// ThemeChanges delivers preferences written by other processes. May be
	// nil.
	ThemeChanges <-chan bool

	// WordWrap fixes the markdown wrap width. Zero follows the pane width.
	WordWrap int

	// ExportDir receives history exports. Empty disables ctrl+s.
	ExportDir string

	Log logrus.FieldLogger
}

// Model is the Bubble Tea model of the chat view.
type Model struct {
	session      *session.Controller
	themeStore   ThemeToggler
	themeChanges <-chan bool
	log          logrus.FieldLogger

	theme    *styles.Theme
	md       *markdown.Renderer
	keyMap   KeyMap
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model

	focus     Focus
	cursor    int // highlighted history row
	offset    int // first visible history row
	wordWrap  int
	exportDir string

	// status is a transient line shown above the help, cleared on the next
	// key press.
	status string

	width  int
	height int
}

// New builds the view from opts. The theme is taken from opts.Theme.
func New(opts Options) Model {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}

	theme := styles.NewTheme(opts.Theme.IsDark())

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask NightOwl anything..."
	ti.Focus()

	vp := viewport.New(80, 10)

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Bubbles()

	m := Model{
		session:      opts.Session,
		themeStore:   opts.Theme,
		themeChanges: opts.ThemeChanges,
		log:          log.WithField("component", "chat"),
		theme:        theme,
		md:           markdown.New(theme.GlamourStyle(), opts.WordWrap),
		keyMap:       DefaultKeyMap(),
		input:        ti,
		viewport:     vp,
		spinner:      sp,
		help:         help.New(),
		focus:        FocusInput,
		wordWrap:     opts.WordWrap,
		exportDir:    opts.ExportDir,
	}
	m.applyThemeStyles()
	m.input.SetValue(m.session.Question())
	m.refreshAnswer()
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and the theme watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForTheme(m.themeChanges))
}

// View renders the screen.
func (m Model) View() string {
	return m.render()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Focus returns the focused widget.
func (m Model) Focus() Focus {
	return m.focus
}

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

// Cursor returns the highlighted history row.
func (m Model) Cursor() int {
	return m.cursor
}

// Status returns the transient status line.
func (m Model) Status() string {
	return m.status
}

// InputValue returns the text in the input box.
func (m Model) InputValue() string {
	return m.input.Value()
}

// ButtonText is the label of the submit button.
func (m Model) ButtonText() string {
	if m.session.Generating() {
		return ButtonBusyLabel
	}
	return ButtonLabel
}

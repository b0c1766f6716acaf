// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the colors and lipgloss styles of the nightowl TUI.

# Colors (colors.go)

Every color is a lipgloss AdaptiveColor. Which half is used depends on the
dark-background flag of the renderer a style was built from, not on terminal
detection, so the user's theme preference decides.

	Indigo  - brand, title, focused borders
	Teal    - the Ask button and selected history entries
	Rose    - the error answer
	Surface - pane backgrounds

# Themes (theme.go)

A Theme owns its own lipgloss.Renderer. Switching light/dark means building a
new Theme:

	theme := styles.NewTheme(dark)
	header := theme.Header.Render("NightOwl AI")

# Spinners (spinner.go)

Frame sets for the generating indicator, convertible to bubbles spinners.
*/
package styles

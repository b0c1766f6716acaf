// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Indigo - brand color, title, focus
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"}

// IndigoDeep - header background
var IndigoDeep = lipgloss.AdaptiveColor{Light: "#E0E7FF", Dark: "#1E1B4B"}

// Teal - button and selection
var Teal = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}

// Amber - generating state
var Amber = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}

// Rose - errors
var Rose = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#FB7185"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"}

// SurfaceDim - sidebar and footer
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F1F5F9", Dark: "#111827"}

// Overlay - borders and separators
var Overlay = lipgloss.AdaptiveColor{Light: "#CBD5E1", Dark: "#334155"}

// SelectionBg - selected history entry
var SelectionBg = lipgloss.AdaptiveColor{Light: "#CCFBF1", Dark: "#134E4A"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#0F172A", Dark: "#E2E8F0"}

// TextSecondary - labels
var TextSecondary = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#94A3B8"}

// TextMuted - hints and placeholders
var TextMuted = lipgloss.AdaptiveColor{Light: "#94A3B8", Dark: "#64748B"}

// TextInverse - text on the button
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"}

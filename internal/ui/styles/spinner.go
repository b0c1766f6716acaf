// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SpinnerConfig holds the frames of a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// DotsSpinner - three-dot animation, the default
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// LineSpinner - ASCII line rotation for terminals without unicode
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// EyesSpinner - an owl blinking
var EyesSpinner = SpinnerConfig{
	Frames: []string{"(o,o)", "(o,o)", "(-,o)", "(o,o)", "(o,-)", "(o,o)"},
	FPS:    4,
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Bubbles converts the config for use with the bubbles spinner model.
func (s SpinnerConfig) Bubbles() spinner.Spinner {
	return spinner.Spinner{
		Frames: s.Frames,
		FPS:    s.Duration(),
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestNewThemeWithProfile(t *testing.T) {
	for _, dark := range []bool{true, false} {
		theme := NewThemeWithProfile(dark, termenv.TrueColor)

		if theme.IsDark != dark {
			t.Errorf("IsDark = %v, want %v", theme.IsDark, dark)
		}
		if theme.Renderer.HasDarkBackground() != dark {
			t.Errorf("renderer dark background = %v, want %v", theme.Renderer.HasDarkBackground(), dark)
		}
	}
}

// The two halves of an adaptive color must actually differ in output.
func TestTheme_DarkAndLightRenderDifferently(t *testing.T) {
	dark := NewThemeWithProfile(true, termenv.TrueColor)
	light := NewThemeWithProfile(false, termenv.TrueColor)

	d := dark.HeaderTitle.Render("NightOwl AI")
	l := light.HeaderTitle.Render("NightOwl AI")

	if d == l {
		t.Error("dark and light header titles rendered identically")
	}
	if !strings.Contains(d, "NightOwl AI") || !strings.Contains(l, "NightOwl AI") {
		t.Error("rendered title lost its text")
	}
}

func TestTheme_Toggle(t *testing.T) {
	theme := NewThemeWithProfile(true, termenv.ANSI256)
	toggled := theme.Toggle()

	if toggled.IsDark {
		t.Error("Toggle() of dark theme should be light")
	}
	if toggled.ColorProfile != termenv.ANSI256 {
		t.Errorf("Toggle() changed color profile to %v", toggled.ColorProfile)
	}
	if !toggled.Toggle().IsDark {
		t.Error("double Toggle() should be dark again")
	}
}

func TestTheme_Labels(t *testing.T) {
	tests := []struct {
		dark    bool
		glamour string
	}{
		{true, "dark"},
		{false, "light"},
	}
	for _, tt := range tests {
		theme := NewThemeWithProfile(tt.dark, termenv.Ascii)
		if got := theme.GlamourStyle(); got != tt.glamour {
			t.Errorf("GlamourStyle() = %q, want %q", got, tt.glamour)
		}
		if got := theme.ModeLabel(); got != tt.glamour {
			t.Errorf("ModeLabel() = %q, want %q", got, tt.glamour)
		}
	}
}

func TestTheme_StylesInitialized(t *testing.T) {
	theme := NewThemeWithProfile(true, termenv.Ascii)

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Sidebar", theme.Sidebar},
		{"AnswerPane", theme.AnswerPane},
		{"Input", theme.Input},
		{"InputFocused", theme.InputFocused},
	}
	for _, s := range styles {
		// Bordered styles add lines around the content.
		if lines := strings.Count(s.style.Render("x"), "\n"); lines < 2 {
			t.Errorf("%s style has no border (%d newlines)", s.name, lines)
		}
	}
}

func TestSpinnerConfig(t *testing.T) {
	if DotsSpinner.Duration() != time.Second/6 {
		t.Errorf("DotsSpinner.Duration() = %v", DotsSpinner.Duration())
	}
	if (SpinnerConfig{}).Duration() != time.Second {
		t.Error("zero FPS should default to one frame per second")
	}

	s := EyesSpinner.Bubbles()
	if len(s.Frames) != len(EyesSpinner.Frames) {
		t.Errorf("Bubbles() frames = %d, want %d", len(s.Frames), len(EyesSpinner.Frames))
	}
	if s.FPS != EyesSpinner.Duration() {
		t.Errorf("Bubbles() FPS = %v, want %v", s.FPS, EyesSpinner.Duration())
	}
}

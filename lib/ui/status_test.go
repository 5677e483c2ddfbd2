// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestView_ExactDimensions(t *testing.T) {
	app := NewStatusApp("test", DefaultTheme)
	tests := []struct {
		width, height int
	}{
		{80, 24},
		{40, 10},
		{120, 40},
	}
	for _, test := range tests {
		view := app.View(test.width, test.height)
		if got := lipgloss.Height(view); got != test.height {
			t.Errorf("View(%d, %d) height = %d", test.width, test.height, got)
		}
		if got := lipgloss.Width(view); got != test.width {
			t.Errorf("View(%d, %d) width = %d", test.width, test.height, got)
		}
	}
}

func TestView_Deterministic(t *testing.T) {
	first := NewStatusApp("test", DefaultTheme)
	second := NewStatusApp("test", DefaultTheme)
	first.HandleInput([]byte("xy"))
	second.HandleInput([]byte("xy"))

	if first.View(80, 24) != second.View(80, 24) {
		t.Error("two apps with identical state produced different views")
	}
	if first.View(80, 24) != first.View(80, 24) {
		t.Error("repeated View calls on one app differ")
	}
}

func TestView_ShowsGeometry(t *testing.T) {
	app := NewStatusApp("test", DefaultTheme)
	plain := ansi.Strip(app.View(40, 10))
	if !strings.Contains(plain, "40x10") {
		t.Errorf("view does not show its geometry: %q", plain)
	}
}

func TestHandleInput_Echo(t *testing.T) {
	app := NewStatusApp("test", DefaultTheme)

	plain := ansi.Strip(app.View(60, 12))
	if !strings.Contains(plain, "(none)") {
		t.Errorf("fresh app should show empty input marker: %q", plain)
	}

	app.HandleInput([]byte("ab"))
	plain = ansi.Strip(app.View(60, 12))
	if !strings.Contains(plain, "ab") {
		t.Errorf("view does not echo input: %q", plain)
	}

	// Control bytes are shown in escaped form, not written raw
	// into the frame.
	app.HandleInput([]byte{0x03})
	plain = ansi.Strip(app.View(60, 12))
	if !strings.Contains(plain, `\x03`) {
		t.Errorf("control byte not escaped in echo: %q", plain)
	}
}

func TestHandleInput_BoundsEcho(t *testing.T) {
	app := NewStatusApp("test", DefaultTheme)
	app.HandleInput([]byte(strings.Repeat("a", 500)))
	if len(app.lastInput) > maxInputEcho {
		t.Errorf("echo length %d exceeds cap %d", len(app.lastInput), maxInputEcho)
	}
}

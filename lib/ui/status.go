// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxInputEcho bounds the input echo line so a paste burst cannot
// blow out the layout.
const maxInputEcho = 24

// StatusApp is the built-in hosted application: a bordered panel
// showing the session's negotiated geometry and the most recent
// input. It exists to exercise the full pipeline — resize events
// change the readout, keystrokes change the echo line — and serves
// as the template for real hosted applications.
type StatusApp struct {
	title     string
	theme     Theme
	lastInput string

	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	bodyStyle  lipgloss.Style
	helpStyle  lipgloss.Style
}

// NewStatusApp creates a status application with the given panel
// title. Styles are built from a pinned renderer (see [NewRenderer])
// so the rendered bytes are environment-independent.
func NewStatusApp(title string, theme Theme) *StatusApp {
	renderer := NewRenderer()
	return &StatusApp{
		title: title,
		theme: theme,
		frameStyle: renderer.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.BorderColor),
		titleStyle: renderer.NewStyle().
			Foreground(theme.TitleForeground).
			Bold(true),
		labelStyle: renderer.NewStyle().Foreground(theme.FaintText),
		valueStyle: renderer.NewStyle().Foreground(theme.Accent),
		bodyStyle:  renderer.NewStyle().Foreground(theme.NormalText),
		helpStyle:  renderer.NewStyle().Foreground(theme.HelpText),
	}
}

// HandleInput records the chunk for the echo line.
func (a *StatusApp) HandleInput(data []byte) {
	echo := fmt.Sprintf("%q", data)
	// Strip the surrounding quotes from the %q form; they add
	// nothing on a status line.
	echo = strings.TrimPrefix(echo, `"`)
	echo = strings.TrimSuffix(echo, `"`)
	if len(echo) > maxInputEcho {
		echo = echo[:maxInputEcho]
	}
	a.lastInput = echo
}

// View renders the full panel for the given viewport.
func (a *StatusApp) View(width, height int) string {
	// Live input in the accent color, the placeholder in plain body
	// text.
	inputEcho := a.bodyStyle.Render("(none)")
	if a.lastInput != "" {
		inputEcho = a.valueStyle.Render(a.lastInput)
	}

	lines := []string{
		a.titleStyle.Render(a.title),
		"",
		a.labelStyle.Render("terminal  ") + a.valueStyle.Render(fmt.Sprintf("%dx%d", width, height)),
		a.labelStyle.Render("last keys ") + inputEcho,
		"",
		a.helpStyle.Render("close your terminal to disconnect"),
	}
	content := strings.Join(lines, "\n")

	// The border consumes one cell on each side; size the content
	// box so the framed result fills the viewport exactly. The
	// render backend clips anything that would overflow a viewport
	// too small for the content.
	innerWidth := max(width-2, 0)
	innerHeight := max(height-2, 0)
	return a.frameStyle.Width(innerWidth).Height(innerHeight).Render(content)
}

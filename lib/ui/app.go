// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// App is a hosted terminal application. One instance serves one
// channel; all methods are invoked from that channel's render loop
// goroutine, never concurrently.
type App interface {
	// View returns a complete frame snapshot for a width x height
	// viewport. The returned string must contain exactly height
	// lines, each width terminal cells wide, and must be a pure
	// function of the application's state and the dimensions —
	// no clocks, no randomness.
	View(width, height int) string

	// HandleInput consumes one chunk of raw bytes from the remote
	// terminal. The slice must not be retained after the call.
	HandleInput(data []byte)
}

// NewRenderer returns a lipgloss renderer with an explicitly pinned
// ANSI-256 color profile. Both the writer argument and the ambient
// environment are ignored for profile detection: output goes to a
// remote terminal whose capabilities the server cannot observe, so
// we standardize on 256 colors rather than letting lipgloss sniff
// the server's own TTY.
//
// SetColorProfile is required in addition to WithProfile because
// lipgloss re-detects from the environment unless the profile is set
// explicitly on the renderer.
func NewRenderer() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return renderer
}

// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Viewport is the rectangle being rendered. The origin is always
// (0, 0) in this design; the fields exist so frame geometry travels
// as one value.
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Positive reports whether the viewport has renderable area.
func (v Viewport) Positive() bool {
	return v.Width > 0 && v.Height > 0
}

// Backend converts view snapshots into terminal control bytes. The
// byte slices are written verbatim to the channel's data stream.
//
// Frame must be deterministic: identical view and viewport produce
// identical bytes.
type Backend interface {
	// Setup returns the bytes that prepare the remote terminal
	// (entering the alternate screen, hiding the cursor).
	Setup() []byte

	// Frame returns one complete frame for view at viewport. The
	// emitted bytes must confine all drawing to the viewport's
	// bounding box.
	Frame(view string, viewport Viewport) []byte

	// Restore returns the bytes that undo Setup.
	Restore() []byte
}

// DEC private mode sequences. Mode 1049 is the alternate screen
// buffer with cursor save/restore.
const (
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
	eraseToLineEnd = "\x1b[K"
	cursorHome     = "\x1b[H"
)

// ANSIBackend renders frames for xterm-compatible terminals. Each
// frame homes the cursor and repaints every viewport line with an
// erase-to-end-of-line, so no state from the previous frame survives
// and no explicit full-screen clear (with its attendant flicker) is
// needed.
type ANSIBackend struct{}

// NewANSIBackend creates the standard backend.
func NewANSIBackend() *ANSIBackend {
	return &ANSIBackend{}
}

// Setup enters the alternate screen and hides the cursor.
func (b *ANSIBackend) Setup() []byte {
	return []byte(enterAltScreen + ansi.ResetModeTextCursorEnable)
}

// Restore shows the cursor and leaves the alternate screen.
func (b *ANSIBackend) Restore() []byte {
	return []byte(ansi.SetModeTextCursorEnable + exitAltScreen)
}

// Frame serializes one full repaint of view into viewport. Lines are
// clipped to the viewport width (ANSI-aware, so styled text cannot
// smear past the right edge) and the line count is clipped to the
// viewport height. A view smaller than the viewport leaves the
// remaining lines blank via erase-to-end-of-line.
func (b *ANSIBackend) Frame(view string, viewport Viewport) []byte {
	if !viewport.Positive() {
		return nil
	}

	lines := strings.Split(view, "\n")
	if len(lines) > viewport.Height {
		lines = lines[:viewport.Height]
	}

	var frame bytes.Buffer
	frame.WriteString(cursorHome)
	for row := range viewport.Height {
		if row > 0 {
			// Explicit addressing per row: unlike "\r\n" it
			// cannot scroll the screen when painting the
			// bottom line. Rows and columns are 1-based.
			fmt.Fprintf(&frame, "\x1b[%d;1H", row+1)
		}
		if row < len(lines) {
			frame.WriteString(ansi.Truncate(lines[row], viewport.Width, ""))
		}
		frame.WriteString(eraseToLineEnd)
	}
	return frame.Bytes()
}

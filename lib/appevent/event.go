// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package appevent

import "fmt"

// Kind discriminates the event variants carried by a [Queue].
type Kind int

const (
	// KindRender requests a full redraw using current state.
	KindRender Kind = iota
	// KindResize carries new terminal geometry. The receiver must
	// replace its viewport with the event's dimensions, not merge
	// or clamp them against previous values.
	KindResize
	// KindInput carries raw bytes received on the channel's data
	// stream (keystrokes from the remote terminal).
	KindInput
	// KindShutdown asks the consumer to stop after processing all
	// earlier events.
	KindShutdown
)

// String returns the kind's name for log output.
func (k Kind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindResize:
		return "resize"
	case KindInput:
		return "input"
	case KindShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Event is one message on a session's event queue. Only the fields
// relevant to the Kind are populated; use the constructor functions
// rather than building Event literals.
type Event struct {
	Kind Kind

	// Width and Height are set for KindResize.
	Width  int
	Height int

	// Data is set for KindInput. The slice is owned by the event:
	// producers must not retain or mutate it after sending.
	Data []byte
}

// Render constructs a redraw request.
func Render() Event {
	return Event{Kind: KindRender}
}

// Resize constructs a geometry update. Validation of the dimensions
// is the producer's responsibility; see the channel bridge, which
// rejects non-positive sizes before they reach the queue.
func Resize(width, height int) Event {
	return Event{Kind: KindResize, Width: width, Height: height}
}

// Input constructs an input event carrying a private copy of data.
func Input(data []byte) Event {
	owned := make([]byte, len(data))
	copy(owned, data)
	return Event{Kind: KindInput, Data: owned}
}

// Shutdown constructs a stop request.
func Shutdown() Event {
	return Event{Kind: KindShutdown}
}

// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package sshd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/shipboard-dev/shipboard/lib/appevent"
	"github.com/shipboard-dev/shipboard/lib/render"
	"github.com/shipboard-dev/shipboard/lib/ui"
)

// Precondition errors surfaced to the peer as request failures.
var (
	// ErrNoPTY is returned for stdin or resize before pty-req.
	ErrNoPTY = errors.New("sshd: no PTY established on this channel")
	// ErrPTYExists is returned for a second pty-req on one channel.
	ErrPTYExists = errors.New("sshd: PTY already established on this channel")
	// ErrBadGeometry is returned for non-positive dimensions.
	ErrBadGeometry = errors.New("sshd: terminal dimensions must be positive")
)

// channelBridge owns one session channel's geometry and PTY
// lifecycle and bridges protocol events into the channel's render
// loop. Methods are called from the channel's request goroutine and
// its stdin goroutine; the mutex covers the lifecycle fields.
//
// newChannelBridge is the only construction path: a bridge always
// starts with no PTY and no geometry.
type channelBridge struct {
	id     string
	logger *slog.Logger
	app    ui.App
	queue  *appevent.Queue

	mu         sync.Mutex
	ptyCreated bool
	width      int
	height     int
	loop       *render.Loop
}

func newChannelBridge(id string, app ui.App, logger *slog.Logger) *channelBridge {
	return &channelBridge{
		id:     id,
		logger: logger,
		app:    app,
		queue:  appevent.NewQueue(),
	}
}

// stdin forwards raw channel bytes toward the hosted application as
// an input event. Bytes arriving before PTY establishment are
// rejected, not buffered: silent buffering would hide a protocol
// misuse from the peer.
func (b *channelBridge) stdin(data []byte) error {
	b.mu.Lock()
	ready := b.ptyCreated
	b.mu.Unlock()
	if !ready {
		return ErrNoPTY
	}
	if err := b.queue.Send(appevent.Input(data)); err != nil {
		return fmt.Errorf("sshd: channel %s closed: %w", b.id, err)
	}
	return nil
}

// createPTY establishes the channel's virtual terminal: it primes the
// queue with the negotiated geometry followed by an initial redraw,
// then starts the render loop bound to sink, so the first frame
// reflects the requested size rather than a default. One PTY per
// channel; calling this twice is an error.
func (b *channelBridge) createPTY(ctx context.Context, sink io.Writer, cols, rows int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ptyCreated {
		return ErrPTYExists
	}
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrBadGeometry, cols, rows)
	}

	// Prime the queue before committing any state: a closed queue
	// here means the channel is already tearing down, and the peer
	// must see a failed pty-req rather than a success acknowledgment
	// for a terminal that will never draw.
	if err := b.queue.Send(appevent.Resize(cols, rows)); err != nil {
		return fmt.Errorf("sshd: channel %s closed: %w", b.id, err)
	}
	if err := b.queue.Send(appevent.Render()); err != nil {
		return fmt.Errorf("sshd: channel %s closed: %w", b.id, err)
	}

	b.ptyCreated = true
	b.width, b.height = cols, rows
	b.loop = render.NewLoop(b.queue, b.app, render.NewANSIBackend(), sink, b.logger)
	b.loop.Start(ctx)
	return nil
}

// resize enqueues the new geometry fire-and-forget: the acknowledgment
// latency seen by the peer is independent of how fast frames render.
func (b *channelBridge) resize(cols, rows int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ptyCreated {
		return ErrNoPTY
	}
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrBadGeometry, cols, rows)
	}

	if err := b.queue.Send(appevent.Resize(cols, rows)); err != nil {
		return fmt.Errorf("sshd: channel %s closed: %w", b.id, err)
	}
	b.width, b.height = cols, rows
	return nil
}

// size returns the last negotiated geometry.
func (b *channelBridge) size() (cols, rows int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// close drops the producer side of the event queue. The render loop
// observes end-of-stream on its next receive and exits without
// further writes. Idempotent.
func (b *channelBridge) close() {
	b.queue.Close()
}

// done exposes the render loop's exit signal, or nil before PTY
// establishment.
func (b *channelBridge) done() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loop == nil {
		return nil
	}
	return b.loop.Done()
}

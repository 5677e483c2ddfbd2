// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/shipboard-dev/shipboard/lib/appevent"
	"github.com/shipboard-dev/shipboard/lib/ui"
)

// Loop consumes one channel's event queue and produces that channel's
// entire outbound byte stream. Create with [NewLoop], then either call
// Run directly or Start it on its own goroutine.
type Loop struct {
	// Queue is the event source. The loop exits when the queue is
	// closed and drained.
	Queue *appevent.Queue

	// App provides view snapshots and consumes input.
	App ui.App

	// Backend serializes views into terminal bytes.
	Backend Backend

	// Sink is the channel's data stream. The loop is its only
	// writer.
	Sink io.Writer

	// Logger receives structured log output. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	viewport Viewport
	done     chan struct{}
}

// NewLoop assembles a loop. The viewport starts empty: nothing is
// rendered until the first resize event delivers positive geometry,
// which the channel bridge guarantees by enqueuing the PTY request's
// dimensions before the first render event.
func NewLoop(queue *appevent.Queue, app ui.App, backend Backend, sink io.Writer, logger *slog.Logger) *Loop {
	return &Loop{
		Queue:   queue,
		App:     app,
		Backend: backend,
		Sink:    sink,
		Logger:  logger,
		done:    make(chan struct{}),
	}
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Start runs the loop on a new goroutine. Context cancellation is a
// normal teardown, not a failure.
func (l *Loop) Start(ctx context.Context) {
	go func() {
		err := l.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			l.logger().Error("render loop failed", "error", err)
		}
	}()
}

// Done is closed when the loop has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run processes events until the queue is closed and drained, a
// shutdown event arrives, or ctx is cancelled. Events are handled
// strictly in arrival order.
//
// Terminal restore bytes are written only on the shutdown path: when
// the loop exits because the producer dropped the queue, the channel
// underneath the sink is already gone and nothing further is written.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	if _, err := l.Sink.Write(l.Backend.Setup()); err != nil {
		return err
	}

	for {
		event, err := l.Queue.Receive(ctx)
		if errors.Is(err, appevent.ErrClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		switch event.Kind {
		case appevent.KindResize:
			if event.Width <= 0 || event.Height <= 0 {
				l.logger().Warn("ignoring resize to empty viewport",
					"width", event.Width,
					"height", event.Height,
				)
				continue
			}
			// Overwrite, never merge: the remote terminal's
			// report is authoritative.
			l.viewport = Viewport{Width: event.Width, Height: event.Height}
			l.render()

		case appevent.KindRender:
			l.render()

		case appevent.KindInput:
			l.App.HandleInput(event.Data)
			l.render()

		case appevent.KindShutdown:
			if _, err := l.Sink.Write(l.Backend.Restore()); err != nil {
				l.logger().Debug("restore write failed", "error", err)
			}
			return nil

		default:
			// An unrecognized variant degrades this channel's
			// output, never the process.
			l.logger().Error("unsupported event", "kind", event.Kind)
		}
	}
}

// Viewport returns the current geometry. Run mutates it, so callers
// outside the loop goroutine should only use this after Done.
func (l *Loop) Viewport() Viewport {
	return l.viewport
}

func (l *Loop) render() {
	if !l.viewport.Positive() {
		return
	}
	view := l.App.View(l.viewport.Width, l.viewport.Height)
	frame := l.Backend.Frame(view, l.viewport)
	if _, err := l.Sink.Write(frame); err != nil {
		// A dead sink means the channel is going away; the
		// bridge will close the queue and end the loop. Keep
		// consuming events until then.
		l.logger().Debug("frame write failed", "error", err)
	}
}

// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/shipboard-dev/shipboard/lib/appevent"
	"github.com/shipboard-dev/shipboard/lib/testutil"
)

// echoApp renders its dimensions and remembers every input chunk.
// Mutated only from the loop goroutine; tests read it after Done.
type echoApp struct {
	inputs [][]byte
}

func (a *echoApp) View(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

func (a *echoApp) HandleInput(data []byte) {
	a.inputs = append(a.inputs, slices.Clone(data))
}

// recordingSink captures each Write as a separate slice and signals
// every write on a channel so tests can wait without polling.
type recordingSink struct {
	mu     sync.Mutex
	writes [][]byte
	wrote  chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{wrote: make(chan struct{}, 64)}
}

func (s *recordingSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	s.writes = append(s.writes, slices.Clone(p))
	s.mu.Unlock()
	s.wrote <- struct{}{}
	return len(p), nil
}

func (s *recordingSink) Writes() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.writes)
}

func newTestLoop(app *echoApp) (*Loop, *appevent.Queue, *recordingSink) {
	queue := appevent.NewQueue()
	sink := newRecordingSink()
	loop := NewLoop(queue, app, NewANSIBackend(), sink, nil)
	return loop, queue, sink
}

func TestRun_LastResizeWins(t *testing.T) {
	loop, queue, sink := newTestLoop(&echoApp{})
	queue.Send(appevent.Resize(80, 24))
	queue.Send(appevent.Resize(40, 10))
	queue.Close()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := loop.Viewport(); got.Width != 40 || got.Height != 10 {
		t.Errorf("viewport = %+v, want 40x10", got)
	}

	// Setup plus one frame per resize; the last frame reflects the
	// last geometry.
	writes := sink.Writes()
	if len(writes) != 3 {
		t.Fatalf("got %d writes, want 3 (setup + 2 frames)", len(writes))
	}
	lastFrame := ansi.Strip(string(writes[2]))
	if !strings.Contains(lastFrame, "40x10") {
		t.Errorf("last frame renders %q, want the 40x10 view", lastFrame)
	}
}

func TestRun_ResizeRendersImmediately(t *testing.T) {
	loop, queue, sink := newTestLoop(&echoApp{})
	queue.Send(appevent.Resize(40, 10))
	queue.Close()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	writes := sink.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes, want 2 (setup + frame)", len(writes))
	}
	rows := frameRows(t, writes[1])
	if len(rows) != 10 {
		t.Errorf("frame has %d rows, want 10", len(rows))
	}
	for i, row := range rows {
		if width := ansi.StringWidth(row); width > 40 {
			t.Errorf("row %d is %d cells wide, want <= 40", i, width)
		}
	}
}

func TestRun_NoFrameWithoutGeometry(t *testing.T) {
	loop, queue, sink := newTestLoop(&echoApp{})
	queue.Send(appevent.Render())
	queue.Send(appevent.Resize(0, 24))
	queue.Send(appevent.Render())
	queue.Close()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Only the setup bytes: render requests before any positive
	// geometry must not produce frames.
	if writes := sink.Writes(); len(writes) != 1 {
		t.Errorf("got %d writes, want 1 (setup only)", len(writes))
	}
}

func TestRun_ProducerDropTerminatesWithoutFurtherWrites(t *testing.T) {
	loop, queue, sink := newTestLoop(&echoApp{})
	loop.Start(context.Background())

	// Setup write happens first, then the frame for the resize.
	testutil.RequireReceive(t, sink.wrote, 5*time.Second, "setup write")
	queue.Send(appevent.Resize(80, 24))
	testutil.RequireReceive(t, sink.wrote, 5*time.Second, "first frame write")

	before := len(sink.Writes())
	queue.Close()
	testutil.RequireClosed(t, loop.Done(), 5*time.Second, "render loop exit")

	// No restore, no frames: the channel under the sink is gone, so
	// the loop must not touch it after end-of-stream.
	if after := len(sink.Writes()); after != before {
		t.Errorf("loop wrote %d times after producer drop", after-before)
	}
}

func TestRun_ShutdownWritesRestore(t *testing.T) {
	loop, queue, sink := newTestLoop(&echoApp{})
	queue.Send(appevent.Resize(20, 5))
	queue.Send(appevent.Shutdown())

	// No Close: shutdown alone must end the loop.
	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	writes := sink.Writes()
	if len(writes) < 3 {
		t.Fatalf("got %d writes, want setup + frame + restore", len(writes))
	}
	restore := writes[len(writes)-1]
	if !bytes.Equal(restore, NewANSIBackend().Restore()) {
		t.Errorf("last write = %q, want restore sequence", restore)
	}
}

func TestRun_InputDeliveredThenRendered(t *testing.T) {
	app := &echoApp{}
	loop, queue, sink := newTestLoop(app)
	queue.Send(appevent.Resize(20, 5))
	queue.Send(appevent.Input([]byte("hi")))
	queue.Close()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(app.inputs) != 1 || string(app.inputs[0]) != "hi" {
		t.Errorf("app received inputs %q, want [\"hi\"]", app.inputs)
	}
	// Setup, resize frame, post-input frame.
	if writes := sink.Writes(); len(writes) != 3 {
		t.Errorf("got %d writes, want 3", len(writes))
	}
}

func TestRun_UnsupportedEventDegradesOnly(t *testing.T) {
	loop, queue, sink := newTestLoop(&echoApp{})
	queue.Send(appevent.Resize(20, 5))
	queue.Send(appevent.Event{Kind: appevent.Kind(99)})
	queue.Send(appevent.Render())
	queue.Close()

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// The unknown event is skipped; the render after it still runs.
	if writes := sink.Writes(); len(writes) != 3 {
		t.Errorf("got %d writes, want 3 (setup + 2 frames)", len(writes))
	}
}

func TestRun_ContextCancel(t *testing.T) {
	loop, queue, _ := newTestLoop(&echoApp{})
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- loop.Run(ctx)
	}()

	cancel()
	err := testutil.RequireReceive(t, errs, 5*time.Second, "cancelled Run")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

// lockedBuffer is a concurrency-safe log destination.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStart_CancelIsQuietTeardown(t *testing.T) {
	queue := appevent.NewQueue()
	defer queue.Close()
	sink := newRecordingSink()
	logs := &lockedBuffer{}
	loop := NewLoop(queue, &echoApp{}, NewANSIBackend(), sink,
		slog.New(slog.NewTextHandler(logs, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	loop.Start(ctx)
	testutil.RequireReceive(t, sink.wrote, 5*time.Second, "setup write")

	cancel()
	testutil.RequireClosed(t, loop.Done(), 5*time.Second, "render loop exit")

	// Any failure log lands just after Done closes; give it a beat
	// before asserting its absence.
	time.Sleep(50 * time.Millisecond)
	if logged := logs.String(); strings.Contains(logged, "render loop failed") {
		t.Errorf("cancellation logged as a failure: %q", logged)
	}
}

func TestRun_DeterministicFrames(t *testing.T) {
	// Two loops fed identical event sequences must emit identical
	// byte streams.
	runOnce := func() []byte {
		loop, queue, sink := newTestLoop(&echoApp{})
		queue.Send(appevent.Resize(40, 10))
		queue.Send(appevent.Render())
		queue.Close()
		if err := loop.Run(context.Background()); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		return bytes.Join(sink.Writes(), nil)
	}

	first := runOnce()
	second := runOnce()
	if !bytes.Equal(first, second) {
		t.Errorf("identical event sequences produced different byte streams")
	}
}

// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

package appevent

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send after Close, and by Receive once the
// queue is closed and every pending event has been delivered.
var ErrClosed = errors.New("appevent: queue closed")

// Queue is an unbounded FIFO event queue. Any number of goroutines
// may Send concurrently; exactly one goroutine must Receive.
//
// The zero value is not usable; call [NewQueue].
type Queue struct {
	mu      sync.Mutex
	pending []Event
	closed  bool

	// wake has capacity 1 and carries at most one token. A token
	// means "state changed since you last looked" — the receiver
	// re-checks pending and closed after draining it.
	wake chan struct{}
}

// NewQueue creates an empty open queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Send appends event to the queue. It never blocks; the queue grows
// as needed. Returns ErrClosed if Close has been called.
func (q *Queue) Send(event Event) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.pending = append(q.pending, event)
	q.mu.Unlock()
	q.notify()
	return nil
}

// Close marks the producer side as gone. The consumer still receives
// every event sent before Close, then gets ErrClosed. Close is
// idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

// Receive returns the next event in enqueue order. It blocks until an
// event is available, the queue is closed and drained (ErrClosed), or
// ctx is cancelled (ctx.Err()).
func (q *Queue) Receive(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			event := q.pending[0]
			// Drop the reference so delivered events can be
			// collected even while the backing array persists.
			q.pending[0] = Event{}
			q.pending = q.pending[1:]
			if len(q.pending) == 0 {
				q.pending = nil
			}
			q.mu.Unlock()
			return event, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return Event{}, ErrClosed
		}

		select {
		case <-q.wake:
		case <-ctx.Done():
			return Event{}, ctx.Err()
		}
	}
}

// Len reports the number of undelivered events. Intended for tests
// and diagnostics; the value is stale the moment it is returned.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *Queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

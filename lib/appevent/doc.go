// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package appevent defines the event stream between a session's
// protocol handler and its render loop.
//
// [Event] is a tagged variant: Render requests a redraw with current
// state, Resize carries authoritative geometry reported by the remote
// terminal, Input carries raw bytes typed by the remote user, and
// Shutdown asks the consumer to stop.
//
// [Queue] is the only resource shared between the protocol goroutine
// and the render goroutine. It is unbounded and multi-producer/
// single-consumer: Send never blocks (it is bounded only by memory),
// and events are delivered in enqueue order across all producers.
// Closing the queue is how the producer side signals end-of-stream;
// the consumer drains any pending events first and then observes
// [ErrClosed]. This replaces explicit cancellation tokens — when the
// channel or connection goes away, the owning bridge closes the queue
// and the render loop exits on its next receive.
package appevent

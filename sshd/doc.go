// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package sshd hosts terminal applications over SSH. No process PTY
// is ever allocated: the "terminal" each client sees is fully
// emulated by a render loop writing control bytes into the session
// channel.
//
// [Server] accepts transport connections and runs one session handler
// per connection. The handler is a small state machine over the SSH
// callbacks: authentication always succeeds (placeholder policy), the
// first session-channel open creates the connection's channel bridge,
// and every later session open is a protocol violation that tears the
// connection down. PTY and window-change requests are delegated to
// the bridge and acknowledged with the protocol's success or failure
// reply; failures are recovered locally and never kill the
// connection.
//
// The channel bridge owns one channel's geometry and PTY lifecycle.
// Creating the PTY starts the channel's render loop bound to the
// channel as its byte sink and immediately enqueues the negotiated
// size followed by a redraw, so the first frame is never drawn at a
// default size. Closing the channel or connection closes the bridge's
// event queue, which is what stops the render loop.
//
// Outbound channel data is written only by the render loop. The
// protocol side replies through the SSH request reply path, which is
// framed separately from channel data, so the single-writer rule on
// the data stream holds.
package sshd

// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package render owns the per-channel render loop: the single
// consumer of a session's event queue and the single writer to the
// channel's outbound byte stream.
//
// [Loop] holds the authoritative viewport. A resize event overwrites
// the viewport with exactly the reported geometry and triggers an
// immediate redraw, so a stale frame at the old size is never left on
// screen. A render event serializes the hosted application's full
// view — no incremental diffing — through a [Backend] into terminal
// control bytes. Input events are delivered to the application and
// followed by a redraw.
//
// Nothing else may write to the loop's sink. Protocol replies travel
// on the transport's own reply path, which keeps the data stream free
// of interleaved writes from two goroutines.
//
// The loop exits only when its queue is closed and drained (the
// producer side dropped it) or when it processes a shutdown event. A
// slow or stalled sink is not detected here: a write to a dead peer
// can block the loop until the owning bridge tears the queue down.
package render

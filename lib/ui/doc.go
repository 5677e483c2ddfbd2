// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package ui defines the surface a hosted application presents to the
// render loop, and provides the built-in status application.
//
// [App] is the contract: the render loop asks for a full-frame view at
// the current viewport size and hands the application every input
// byte sequence typed in the remote terminal. Implementations are
// called from a single goroutine (the session's render loop) and need
// no internal locking.
//
// Views are composed with lipgloss. [NewRenderer] returns a renderer
// pinned to the ANSI-256 profile so that the bytes produced for a
// given view never depend on the environment of the host process —
// the remote terminal, not the server's, is the display. This is what
// makes frame output reproducible enough for golden tests.
package ui

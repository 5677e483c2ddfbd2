// Copyright 2026 The Shipboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Shipboard packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. A test
// waiting on a goroutine that never delivers fails with a message
// instead of hanging the suite.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Shipboard-internal dependencies.
package testutil

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for flipclock packages.
//
// Countdown logic is tested against clock.Fake and never waits on the
// wall clock. The few tests that exercise clock.Real or a running
// command still need a timeout so a broken scheduler fails instead of
// hanging. [RequireReceive] and [RequireClosed] wrap that select with
// a time.After fallback so individual tests do not call time.After
// directly.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no flipclock-internal dependencies.
package testutil

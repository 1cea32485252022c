// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable scheduler for code that must
// run callbacks on a single event loop: "on the next frame", "after a
// delay", and "every interval".
//
// Production code accepts a [Scheduler] instead of calling time.Now,
// time.AfterFunc, or time.NewTicker directly. In production, [Real]
// runs callbacks through a dispatcher that serializes them (by default
// under a mutex; the TUI routes them into the bubbletea update loop).
// In tests, [Fake] provides a deterministic scheduler that only moves
// when Advance is called.
//
// # Wiring Pattern
//
//	scheduler := clock.Real(clock.RealConfig{Dispatch: loop.Dispatch})
//	timer := countdown.New(target, board, scheduler)
//
// In tests:
//
//	scheduler := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	timer := countdown.New(target, board, scheduler)
//	timer.Start()
//	scheduler.Advance(time.Second) // fires the first tick synchronously
//
// # Cancellation
//
// Every scheduling call returns a [Token]. Cancel is idempotent and
// accepts the zero Token. A cancelled callback never runs, including
// one the real scheduler had already handed to its dispatcher: the
// token is re-checked on the loop immediately before the callback
// executes.
package clock

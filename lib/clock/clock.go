// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// FrameInterval is the delay used for NextFrame when no other interval
// is configured. 16ms approximates a 60Hz display refresh.
const FrameInterval = 16 * time.Millisecond

// Token identifies a scheduled callback so it can be cancelled. The
// zero Token is never issued and is safe to pass to Cancel.
type Token uint64

// Scheduler abstracts deferred callback execution for testability.
// Production code injects Real(); tests inject Fake() with
// deterministic time control.
//
// Implementations run every callback on one logical loop: two
// callbacks from the same Scheduler never execute concurrently.
// Callbacks may schedule and cancel further callbacks.
type Scheduler interface {
	// Now returns the current time.
	Now() time.Time

	// NextFrame runs callback at the next animation frame boundary.
	// Any state the caller changed before NextFrame is committed
	// before callback observes it.
	NextFrame(callback func()) Token

	// AfterFunc runs callback once after delay elapses. A delay <= 0
	// runs it as soon as the loop is free, never synchronously.
	AfterFunc(delay time.Duration, callback func()) Token

	// Every runs callback repeatedly at the given interval until the
	// token is cancelled. The first run happens one interval from now.
	// Panics if interval <= 0.
	Every(interval time.Duration, callback func()) Token

	// Cancel prevents any future run of the callback identified by
	// token. Cancelling an unknown, fired, or zero token is a no-op.
	Cancel(token Token)
}

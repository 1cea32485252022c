// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeScheduler initialized to the given time. Time
// stands still until Advance is called.
//
// FakeScheduler is safe for concurrent use, but callbacks run
// synchronously in the goroutine that calls Advance.
func Fake(initial time.Time) *FakeScheduler {
	return &FakeScheduler{
		current:       initial,
		frameInterval: FrameInterval,
	}
}

// FakeScheduler is a deterministic Scheduler for testing. Callbacks
// fire during Advance in deadline order; callbacks with equal
// deadlines fire in the order they were scheduled. While a callback
// runs, Now reports that callback's deadline, so code that samples the
// clock from inside a tick sees the tick's own time.
type FakeScheduler struct {
	mu            sync.Mutex
	current       time.Time
	frameInterval time.Duration
	waiters       []*fakeWaiter
	lastToken     Token
	sequence      uint64
}

// fakeWaiter is a pending one-shot or periodic callback.
type fakeWaiter struct {
	token    Token
	deadline time.Time
	callback func()

	// interval is non-zero for periodic waiters. After firing, the
	// waiter is rescheduled at deadline + interval.
	interval time.Duration

	// sequence breaks deadline ties in scheduling order. Periodic
	// waiters take a fresh sequence each time they are rescheduled.
	sequence uint64
}

// SetFrameInterval changes the delay used by NextFrame.
func (scheduler *FakeScheduler) SetFrameInterval(interval time.Duration) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.frameInterval = interval
}

// Now returns the current fake time.
func (scheduler *FakeScheduler) Now() time.Time {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.current
}

// NextFrame schedules callback one frame interval from now.
func (scheduler *FakeScheduler) NextFrame(callback func()) Token {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.addLocked(scheduler.frameInterval, 0, callback)
}

// AfterFunc schedules callback after delay. A delay <= 0 fires on the
// next Advance, including Advance(0).
func (scheduler *FakeScheduler) AfterFunc(delay time.Duration, callback func()) Token {
	if delay < 0 {
		delay = 0
	}
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.addLocked(delay, 0, callback)
}

// Every schedules callback at each interval. Panics if interval <= 0.
func (scheduler *FakeScheduler) Every(interval time.Duration, callback func()) Token {
	if interval <= 0 {
		panic("clock: non-positive interval for Every")
	}
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.addLocked(interval, interval, callback)
}

// Cancel removes the waiter identified by token.
func (scheduler *FakeScheduler) Cancel(token Token) {
	if token == 0 {
		return
	}
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	for index, waiter := range scheduler.waiters {
		if waiter.token == token {
			scheduler.waiters = append(scheduler.waiters[:index], scheduler.waiters[index+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, firing every callback whose
// deadline falls within the new time. Callbacks scheduled by other
// callbacks fire in the same Advance if their deadline is also due.
// Periodic callbacks fire once per elapsed interval.
//
// Do not call Advance from within a callback.
func (scheduler *FakeScheduler) Advance(d time.Duration) {
	scheduler.mu.Lock()
	target := scheduler.current.Add(d)
	scheduler.mu.Unlock()

	for {
		callback, ok := scheduler.popDue(target)
		if !ok {
			break
		}
		callback()
	}

	scheduler.mu.Lock()
	scheduler.current = target
	scheduler.mu.Unlock()
}

// Pending returns the number of scheduled callbacks that have not
// fired or been cancelled. A periodic callback counts once.
func (scheduler *FakeScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.waiters)
}

// popDue removes (or reschedules) the earliest waiter due at or
// before target, moves the clock to its deadline, and returns its
// callback.
func (scheduler *FakeScheduler) popDue(target time.Time) (func(), bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	earliest := -1
	for index, waiter := range scheduler.waiters {
		if waiter.deadline.After(target) {
			continue
		}
		if earliest < 0 || waiter.before(scheduler.waiters[earliest]) {
			earliest = index
		}
	}
	if earliest < 0 {
		return nil, false
	}

	waiter := scheduler.waiters[earliest]
	if waiter.deadline.After(scheduler.current) {
		scheduler.current = waiter.deadline
	}

	if waiter.interval > 0 {
		waiter.deadline = waiter.deadline.Add(waiter.interval)
		waiter.sequence = scheduler.nextSequenceLocked()
	} else {
		scheduler.waiters = append(scheduler.waiters[:earliest], scheduler.waiters[earliest+1:]...)
	}
	return waiter.callback, true
}

func (scheduler *FakeScheduler) addLocked(delay, interval time.Duration, callback func()) Token {
	scheduler.lastToken++
	scheduler.waiters = append(scheduler.waiters, &fakeWaiter{
		token:    scheduler.lastToken,
		deadline: scheduler.current.Add(delay),
		callback: callback,
		interval: interval,
		sequence: scheduler.nextSequenceLocked(),
	})
	return scheduler.lastToken
}

func (scheduler *FakeScheduler) nextSequenceLocked() uint64 {
	scheduler.sequence++
	return scheduler.sequence
}

func (waiter *fakeWaiter) before(other *fakeWaiter) bool {
	if waiter.deadline.Equal(other.deadline) {
		return waiter.sequence < other.sequence
	}
	return waiter.deadline.Before(other.deadline)
}

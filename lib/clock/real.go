// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// RealConfig configures a RealScheduler. The zero value is valid.
type RealConfig struct {
	// Dispatch hands a ready callback to the event loop. It may run
	// the callback inline or queue it for another goroutine, but it
	// must never run two callbacks concurrently. When nil, callbacks
	// run on the timer goroutine under a scheduler-wide mutex.
	Dispatch func(callback func())

	// FrameInterval is the delay used by NextFrame. Defaults to
	// [FrameInterval].
	FrameInterval time.Duration
}

// Real returns a Scheduler backed by the standard time package.
func Real(config RealConfig) *RealScheduler {
	scheduler := &RealScheduler{
		dispatch:      config.Dispatch,
		frameInterval: config.FrameInterval,
		entries:       make(map[Token]*realEntry),
	}
	if scheduler.frameInterval <= 0 {
		scheduler.frameInterval = FrameInterval
	}
	if scheduler.dispatch == nil {
		scheduler.dispatch = scheduler.serialize
	}
	return scheduler
}

// RealScheduler schedules callbacks on wall-clock timers and delivers
// them through the configured dispatcher. Safe for concurrent use.
type RealScheduler struct {
	dispatch      func(func())
	frameInterval time.Duration

	// loop serializes callbacks for the default dispatcher.
	loop sync.Mutex

	mu        sync.Mutex
	entries   map[Token]*realEntry
	lastToken Token
}

// realEntry tracks a live timer or ticker. stop releases the
// underlying runtime timer; it does not touch entries.
type realEntry struct {
	oneShot bool
	stop    func()
}

// Now returns time.Now().
func (scheduler *RealScheduler) Now() time.Time { return time.Now() }

// NextFrame runs callback after the configured frame interval.
func (scheduler *RealScheduler) NextFrame(callback func()) Token {
	return scheduler.AfterFunc(scheduler.frameInterval, callback)
}

// AfterFunc runs callback once after delay.
func (scheduler *RealScheduler) AfterFunc(delay time.Duration, callback func()) Token {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	token := scheduler.nextTokenLocked()
	timer := time.AfterFunc(delay, func() {
		scheduler.fire(token, callback)
	})
	scheduler.entries[token] = &realEntry{
		oneShot: true,
		stop:    func() { timer.Stop() },
	}
	return token
}

// Every runs callback at each interval until cancelled.
func (scheduler *RealScheduler) Every(interval time.Duration, callback func()) Token {
	if interval <= 0 {
		panic("clock: non-positive interval for Every")
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	token := scheduler.nextTokenLocked()
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				scheduler.fire(token, callback)
			}
		}
	}()
	scheduler.entries[token] = &realEntry{
		stop: func() { close(done) },
	}
	return token
}

// Do runs callback on the event loop through the dispatcher, the same
// way timer callbacks run. Code outside the loop uses it to touch
// state the callbacks own.
func (scheduler *RealScheduler) Do(callback func()) {
	scheduler.dispatch(callback)
}

// Cancel stops the timer or ticker identified by token.
func (scheduler *RealScheduler) Cancel(token Token) {
	if token == 0 {
		return
	}
	scheduler.mu.Lock()
	entry, exists := scheduler.entries[token]
	delete(scheduler.entries, token)
	scheduler.mu.Unlock()

	if exists {
		entry.stop()
	}
}

// fire hands callback to the dispatcher, wrapped so that the token is
// claimed on the loop itself. A Cancel that lands between the timer
// firing and the loop running the callback wins.
func (scheduler *RealScheduler) fire(token Token, callback func()) {
	scheduler.dispatch(func() {
		if !scheduler.claim(token) {
			return
		}
		callback()
	})
}

// claim reports whether token is still live, removing one-shot
// entries so they cannot run twice.
func (scheduler *RealScheduler) claim(token Token) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	entry, exists := scheduler.entries[token]
	if !exists {
		return false
	}
	if entry.oneShot {
		delete(scheduler.entries, token)
	}
	return true
}

func (scheduler *RealScheduler) serialize(callback func()) {
	scheduler.loop.Lock()
	defer scheduler.loop.Unlock()
	callback()
}

func (scheduler *RealScheduler) nextTokenLocked() Token {
	scheduler.lastToken++
	return scheduler.lastToken
}

// pending returns the number of live entries. Used by tests.
func (scheduler *RealScheduler) pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.entries)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bureau-foundation/flipclock/lib/testutil"
)

func TestRealSchedulerAfterFuncRunsThroughDispatcher(t *testing.T) {
	dispatched := make(chan func(), 1)
	scheduler := Real(RealConfig{Dispatch: func(callback func()) { dispatched <- callback }})

	var fired atomic.Bool
	scheduler.AfterFunc(time.Millisecond, func() { fired.Store(true) })

	callback := testutil.RequireReceive(t, dispatched, 5*time.Second, "waiting for dispatch")

	if fired.Load() {
		t.Fatal("callback ran before the dispatcher executed it")
	}
	callback()
	if !fired.Load() {
		t.Fatal("dispatched callback did not run")
	}
	if pending := scheduler.pending(); pending != 0 {
		t.Fatalf("pending() = %d after one-shot fired, want 0", pending)
	}
}

func TestRealSchedulerCancelAfterDispatchSuppressesCallback(t *testing.T) {
	dispatched := make(chan func(), 1)
	scheduler := Real(RealConfig{Dispatch: func(callback func()) { dispatched <- callback }})

	var fired atomic.Bool
	token := scheduler.AfterFunc(time.Millisecond, func() { fired.Store(true) })

	callback := testutil.RequireReceive(t, dispatched, 5*time.Second, "waiting for dispatch")

	scheduler.Cancel(token)
	callback()
	if fired.Load() {
		t.Fatal("callback ran after its token was cancelled")
	}
}

func TestRealSchedulerEveryStopsOnCancel(t *testing.T) {
	scheduler := Real(RealConfig{})
	ticks := make(chan struct{}, 16)
	token := scheduler.Every(time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})

	testutil.RequireReceive(t, ticks, 5*time.Second, "waiting for first tick")

	scheduler.Cancel(token)
	scheduler.Cancel(token)
	if pending := scheduler.pending(); pending != 0 {
		t.Fatalf("pending() = %d after cancel, want 0", pending)
	}
}

func TestRealSchedulerDefaultFrameInterval(t *testing.T) {
	scheduler := Real(RealConfig{})
	if scheduler.frameInterval != FrameInterval {
		t.Fatalf("frameInterval = %v, want %v", scheduler.frameInterval, FrameInterval)
	}
}

func TestRealSchedulerDoSerializesWithCallbacks(t *testing.T) {
	scheduler := Real(RealConfig{})

	var running atomic.Int32
	var overlapped atomic.Bool
	work := func() {
		if running.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(time.Millisecond) //nolint:realclock widen the overlap window
		running.Add(-1)
	}

	token := scheduler.Every(time.Millisecond, work)
	for range 20 {
		scheduler.Do(work)
	}
	scheduler.Cancel(token)

	if overlapped.Load() {
		t.Fatal("Do ran concurrently with a ticker callback")
	}
}

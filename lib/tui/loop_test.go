// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bureau-foundation/flipclock/lib/clock"
	"github.com/bureau-foundation/flipclock/lib/testutil"
)

func TestCallbackLoopDeliversToUpdate(t *testing.T) {
	loop := NewCallbackLoop(1)
	defer loop.Close()

	var ran atomic.Bool
	loop.Dispatch(func() { ran.Store(true) })

	message := listenForCallback(loop.Callbacks())()
	callback, ok := message.(callbackMsg)
	if !ok {
		t.Fatalf("listenForCallback returned %T, want callbackMsg", message)
	}
	callback.callback()
	if !ran.Load() {
		t.Fatal("delivered callback did not run")
	}
}

func TestCallbackLoopCloseUnblocksDispatch(t *testing.T) {
	loop := NewCallbackLoop(0)

	returned := make(chan struct{})
	go func() {
		loop.Dispatch(func() {})
		close(returned)
	}()

	loop.Close()
	loop.Close()
	testutil.RequireClosed(t, returned, 5*time.Second, "Dispatch still blocked after Close")
}

func TestCallbackLoopWithRealScheduler(t *testing.T) {
	loop := NewCallbackLoop(4)
	defer loop.Close()
	scheduler := clock.Real(clock.RealConfig{Dispatch: loop.Dispatch})

	var fired atomic.Bool
	scheduler.AfterFunc(time.Millisecond, func() { fired.Store(true) })

	callback := testutil.RequireReceive(t, loop.Callbacks(), 5*time.Second, "waiting for scheduler callback")
	if fired.Load() {
		t.Fatal("callback ran on the timer goroutine instead of the update loop")
	}
	callback()
	if !fired.Load() {
		t.Fatal("callback did not run when the update loop executed it")
	}
}

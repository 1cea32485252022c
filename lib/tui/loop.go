// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// callbackMsg carries a scheduler callback into Update.
type callbackMsg struct {
	callback func()
}

// CallbackLoop bridges a clock.RealScheduler onto the bubbletea update
// loop. Pass Dispatch as the scheduler's RealConfig.Dispatch and
// Callbacks to NewModel.
type CallbackLoop struct {
	callbacks chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewCallbackLoop creates a loop whose queue holds up to buffer ready
// callbacks before Dispatch blocks.
func NewCallbackLoop(buffer int) *CallbackLoop {
	return &CallbackLoop{
		callbacks: make(chan func(), buffer),
		done:      make(chan struct{}),
	}
}

// Dispatch queues callback for the update loop. After Close, callbacks
// are dropped instead of blocking the timer goroutine.
func (loop *CallbackLoop) Dispatch(callback func()) {
	select {
	case loop.callbacks <- callback:
	case <-loop.done:
	}
}

// Callbacks returns the receive side of the queue.
func (loop *CallbackLoop) Callbacks() <-chan func() {
	return loop.callbacks
}

// Close stops accepting callbacks. Safe to call more than once.
func (loop *CallbackLoop) Close() {
	loop.closeOnce.Do(func() { close(loop.done) })
}

// listenForCallback returns a tea.Cmd that blocks until a callback is
// ready, then delivers it as a callbackMsg.
func listenForCallback(channel <-chan func()) tea.Cmd {
	return func() tea.Msg {
		callback, ok := <-channel
		if !ok {
			return nil
		}
		return callbackMsg{callback: callback}
	}
}

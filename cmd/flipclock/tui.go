// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/flipclock/lib/chime"
	"github.com/bureau-foundation/flipclock/lib/clock"
	"github.com/bureau-foundation/flipclock/lib/countdown"
	"github.com/bureau-foundation/flipclock/lib/tui"
)

// callbackBuffer is how many ready scheduler callbacks may queue
// before the timer goroutines block on the update loop.
const callbackBuffer = 64

// runTUI draws the cards full screen until the user quits. Every
// scheduler callback is routed through the bubbletea update loop so
// the countdown and the renderer share one goroutine. Warnings logged
// through status show on the help line.
func runTUI(resolved settings, logger *slog.Logger, status *tui.StatusLogHandler, player *chime.Player) error {
	loop := tui.NewCallbackLoop(callbackBuffer)
	defer loop.Close()

	scheduler := clock.Real(clock.RealConfig{
		Dispatch:      loop.Dispatch,
		FrameInterval: resolved.timing.Frame,
	})

	board := tui.NewBoard(scheduler.Now, resolved.timing.Flip)
	if resolved.hideDays {
		board.RemoveCard(countdown.Days)
	}

	onExpire := func() {
		logger.Info("countdown expired", "target", resolved.target)
		if player != nil {
			// Opening the audio device can take a moment; keep it off
			// the update loop.
			go player.Play()
		}
	}
	timer := countdown.New(resolved.target, board, scheduler, timerOptions(resolved, logger, onExpire)...)

	model := tui.NewModel(timer, board, loop.Callbacks())
	if resolved.caption != "" {
		model.SetCaption(resolved.caption)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	status.SetProgram(program)
	_, err := program.Run()
	return err
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bureau-foundation/flipclock/lib/chime"
	"github.com/bureau-foundation/flipclock/lib/clock"
	"github.com/bureau-foundation/flipclock/lib/countdown"
	"github.com/bureau-foundation/flipclock/lib/tui"
)

// plainPollInterval is how often plain mode samples the board for a
// settled change.
const plainPollInterval = 100 * time.Millisecond

// linePrinter writes the board's settled values whenever they change.
type linePrinter struct {
	board *tui.Board
	out   io.Writer
	last  string
}

func (printer *linePrinter) print() {
	line := printer.board.Line()
	// Negative units only show between a Start past the target and
	// the first tick, which expires the countdown.
	if line == printer.last || strings.Contains(line, "-") {
		return
	}
	printer.last = line
	fmt.Fprintln(printer.out, line)
}

// runPlain runs the countdown without drawing cards. It returns when
// the countdown expires (after the chime finishes) or ctx is done.
func runPlain(ctx context.Context, resolved settings, logger *slog.Logger, player *chime.Player, out io.Writer) error {
	scheduler := clock.Real(clock.RealConfig{FrameInterval: resolved.timing.Frame})
	return runPlainWith(ctx, scheduler, scheduler.Do, resolved, logger, player, out)
}

// runPlainWith runs plain mode on any scheduler. do must run a
// callback on the scheduler's event loop.
func runPlainWith(
	ctx context.Context,
	scheduler clock.Scheduler,
	do func(func()),
	resolved settings,
	logger *slog.Logger,
	player *chime.Player,
	out io.Writer,
) error {
	board := tui.NewBoard(scheduler.Now, resolved.timing.Flip)
	if resolved.hideDays {
		board.RemoveCard(countdown.Days)
	}
	printer := &linePrinter{board: board, out: out}

	expired := make(chan struct{})
	onExpire := func() {
		printer.print()
		logger.Info("countdown expired", "target", resolved.target)
		if player != nil {
			player.Play()
		}
		close(expired)
	}
	timer := countdown.New(resolved.target, board, scheduler, timerOptions(resolved, logger, onExpire)...)

	var poll clock.Token
	do(func() {
		timer.Start()
		printer.print()
		poll = scheduler.Every(plainPollInterval, printer.print)
	})
	defer do(func() {
		scheduler.Cancel(poll)
		timer.Stop()
	})

	select {
	case <-ctx.Done():
		logger.Info("countdown interrupted")
		return nil
	case <-expired:
	}

	if player != nil && resolved.chime != nil {
		select {
		case <-ctx.Done():
		case <-time.After(resolved.chime.Duration):
		}
	}
	return nil
}

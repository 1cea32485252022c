// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// flipclock is a terminal flip-card countdown to a fixed instant.
//
// Two modes of operation:
//
// TUI mode (default on a terminal): draws one card per unit (days,
// hours, minutes, seconds) and animates each change as a card flip.
// Space stops and restarts the countdown; q quits.
//
// Plain mode (--plain, or when stdout is not a terminal): prints the
// settled display as one DD:HH:MM:SS line per change and exits when
// the countdown expires.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/flipclock/lib/chime"
	"github.com/bureau-foundation/flipclock/lib/countdown"
	"github.com/bureau-foundation/flipclock/lib/tui"
	"github.com/bureau-foundation/flipclock/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	var opts options
	flagSet := newFlagSet(&opts)

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return validation("%w", err)
	}

	if opts.help {
		printHelp(flagSet)
		return nil
	}
	if opts.version {
		fmt.Printf("flipclock %s\n", version.Info())
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return validation("unexpected argument: %s", args[0])
	}

	resolved, err := resolveSettings(opts, flagSet, time.Now())
	if err != nil {
		return err
	}
	if !resolved.plain && !term.IsTerminal(int(os.Stdout.Fd())) {
		resolved.plain = true
	}

	var status *tui.StatusLogHandler
	var statusHandler slog.Handler
	if !resolved.plain {
		status = tui.NewStatusLogHandler(slog.LevelWarn)
		statusHandler = status
	}
	logger, closeLog, err := newLogger(resolved.logOutput, statusHandler, resolved.verbose, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	var player *chime.Player
	if resolved.chime != nil {
		player = chime.NewPlayer(*resolved.chime, logger)
		defer player.Close()
	}

	logger.Info("countdown configured",
		"target", resolved.target,
		"tick_interval", resolved.timing.Tick,
		"flip_duration", resolved.timing.Flip,
		"overlap", resolved.overlap,
		"plain", resolved.plain,
		"chime", player != nil,
	)

	if resolved.plain {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runPlain(ctx, resolved, logger, player, os.Stdout)
	}
	return runTUI(resolved, logger, status, player)
}

// timerOptions translates settings into countdown options. onExpire
// runs on the event loop when the countdown passes its target.
func timerOptions(resolved settings, logger *slog.Logger, onExpire func()) []countdown.Option {
	return []countdown.Option{
		countdown.WithTickInterval(resolved.timing.Tick),
		countdown.WithFlipDuration(resolved.timing.Flip),
		countdown.WithOverlapPolicy(resolved.overlap),
		countdown.WithLogger(logger),
		countdown.OnExpire(onExpire),
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	printHelpTo(os.Stderr, flagSet)
}

func printHelpTo(writer io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(writer, `flipclock - flip-card countdown for the terminal.

Counts down to a fixed instant, showing days, hours, minutes, and
seconds on cards that flip when their value changes. The target comes
from --target, --in, or the config file's target field.

Usage:
  flipclock [flags]

Examples:
  # Count down to the new year
  flipclock --target 2027-01-01T00:00:00+01:00

  # A 25 minute timer with a tone at the end
  flipclock --in 25m --chime --hide-days

  # Settings from a file; flags still override it
  flipclock --config ~/.config/flipclock.yaml --overlap restart

  # Log the countdown from a script
  flipclock --in 90s --plain > countdown.log

Keys (TUI mode):
  space   stop or restart the countdown
  q       quit

Flags:
`)
	flagSet.SetOutput(writer)
	flagSet.PrintDefaults()
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/flipclock/lib/chime"
	"github.com/bureau-foundation/flipclock/lib/config"
	"github.com/bureau-foundation/flipclock/lib/countdown"
)

// options holds the raw command-line flags.
type options struct {
	target     string
	in         time.Duration
	configPath string
	logOutput  string
	caption    string
	overlap    string
	chime      bool
	noChime    bool
	hideDays   bool
	plain      bool
	verbose    bool
	help       bool
	version    bool
}

// settings is the resolved run configuration: config file values with
// flag overrides applied and every field parsed.
type settings struct {
	target    time.Time
	timing    config.Timing
	overlap   countdown.OverlapPolicy
	caption   string
	hideDays  bool
	logOutput string
	plain     bool
	verbose   bool

	// chime is nil when the expiry tone is disabled.
	chime *chime.Config
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("flipclock", pflag.ContinueOnError)
	flagSet.StringVar(&opts.target, "target", "", "count down to this instant (RFC 3339, e.g. 2026-12-31T23:59:59Z)")
	flagSet.DurationVar(&opts.in, "in", 0, "count down for this long from now (e.g. 25m, 1h30m)")
	flagSet.StringVar(&opts.configPath, "config", "", "config file, YAML or JSONC (default: $FLIPCLOCK_CONFIG)")
	flagSet.StringVar(&opts.logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.StringVar(&opts.caption, "caption", "", "markdown caption shown above the cards")
	flagSet.StringVar(&opts.overlap, "overlap", "", "overlapping flips on one card: preserve or restart")
	flagSet.BoolVar(&opts.chime, "chime", false, "play a tone when the countdown expires")
	flagSet.BoolVar(&opts.noChime, "no-chime", false, "never play the expiry tone, even if the config enables it")
	flagSet.BoolVar(&opts.hideDays, "hide-days", false, "hide the days card")
	flagSet.BoolVar(&opts.plain, "plain", false, "print one line per change instead of drawing cards")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	flagSet.BoolVar(&opts.version, "version", false, "print version information and exit")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")
	flagSet.SortFlags = false
	return flagSet
}

// resolveSettings loads the config file, applies flag overrides, and
// parses the result. now anchors --in.
func resolveSettings(opts options, flagSet *pflag.FlagSet, now time.Time) (settings, error) {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return settings{}, err
	}

	if flagSet.Changed("target") && flagSet.Changed("in") {
		return settings{}, validation("--target and --in are mutually exclusive")
	}
	if flagSet.Changed("chime") && opts.noChime {
		return settings{}, validation("--chime and --no-chime are mutually exclusive")
	}

	if flagSet.Changed("target") {
		cfg.Target = opts.target
	}
	if flagSet.Changed("overlap") {
		cfg.Overlap = opts.overlap
	}
	if flagSet.Changed("caption") {
		cfg.Caption = opts.caption
	}
	if flagSet.Changed("hide-days") {
		cfg.HideDays = opts.hideDays
	}
	if flagSet.Changed("log-output") {
		cfg.LogOutput = opts.logOutput
	}
	if flagSet.Changed("chime") {
		cfg.Chime.Enabled = opts.chime
	}
	if opts.noChime {
		cfg.Chime.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return settings{}, validation("invalid configuration:\n%w", err)
	}

	resolved := settings{
		caption:   cfg.Caption,
		hideDays:  cfg.HideDays,
		logOutput: cfg.LogOutput,
		plain:     opts.plain,
		verbose:   opts.verbose,
	}

	if flagSet.Changed("in") {
		if opts.in < 0 {
			return settings{}, validation("--in must not be negative, got %s", opts.in)
		}
		resolved.target = now.Add(opts.in)
	} else {
		target, found, err := cfg.TargetTime()
		if err != nil {
			return settings{}, validation("%w", err)
		}
		if !found {
			return settings{}, validation("no target: pass --target or --in, or set target in the config file")
		}
		resolved.target = target
	}

	// Validate has already checked these parse.
	resolved.timing, _ = cfg.Timing()
	resolved.overlap, _ = cfg.OverlapPolicy()

	if cfg.Chime.Enabled {
		duration, _ := cfg.ChimeDuration()
		resolved.chime = &chime.Config{
			Frequency: cfg.Chime.Frequency,
			Duration:  duration,
			Volume:    cfg.Chime.Volume,
		}
	}

	return resolved, nil
}

// loadConfig reads the file named by --config, then FLIPCLOCK_CONFIG,
// and falls back to defaults when neither is set.
func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, validation("loading config: %w", err)
		}
		return cfg, nil
	case config.Configured():
		cfg, err := config.Load()
		if err != nil {
			return nil, validation("loading config: %w", err)
		}
		return cfg, nil
	default:
		return config.Default(), nil
	}
}

// usageError is an invalid-input error. main prints it and exits 2.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
func (e *usageError) ExitCode() int { return 2 }

func validation(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// isUsageError reports whether err is an invalid-input error.
func isUsageError(err error) bool {
	var usage *usageError
	return errors.As(err, &usage)
}

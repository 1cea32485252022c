// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package countdown

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/flipclock/lib/clock"
)

const (
	// DefaultTickInterval is how often the remaining time is sampled.
	DefaultTickInterval = time.Second

	// DefaultFlipDuration is how long a card flip runs before the new
	// value commits.
	DefaultFlipDuration = 600 * time.Millisecond
)

// OverlapPolicy decides what happens when a unit changes again while
// its previous flip is still in flight.
type OverlapPolicy int

const (
	// OverlapPreserve lets every flip run to completion. The last
	// flip's completion determines the final value; intermediate
	// flags may flicker.
	OverlapPreserve OverlapPolicy = iota

	// OverlapRestart cancels the unit's pending frame and completion
	// callbacks before starting the new flip.
	OverlapRestart
)

// ParseOverlapPolicy parses "preserve" or "restart".
func ParseOverlapPolicy(value string) (OverlapPolicy, error) {
	switch value {
	case "preserve", "":
		return OverlapPreserve, nil
	case "restart":
		return OverlapRestart, nil
	default:
		return OverlapPreserve, fmt.Errorf("unknown overlap policy %q (want preserve or restart)", value)
	}
}

func (policy OverlapPolicy) String() string {
	if policy == OverlapRestart {
		return "restart"
	}
	return "preserve"
}

// Option configures a Timer.
type Option func(*Timer)

// WithTickInterval overrides [DefaultTickInterval]. Non-positive
// values are ignored.
func WithTickInterval(interval time.Duration) Option {
	return func(timer *Timer) {
		if interval > 0 {
			timer.tickInterval = interval
		}
	}
}

// WithFlipDuration overrides [DefaultFlipDuration]. Negative values
// are ignored.
func WithFlipDuration(duration time.Duration) Option {
	return func(timer *Timer) {
		if duration >= 0 {
			timer.flipDuration = duration
		}
	}
}

// WithOverlapPolicy selects how overlapping flips on one unit behave.
func WithOverlapPolicy(policy OverlapPolicy) Option {
	return func(timer *Timer) { timer.overlap = policy }
}

// WithLogger sets the logger for lifecycle and missing-element
// records. Defaults to a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(timer *Timer) {
		if logger != nil {
			timer.logger = logger
		}
	}
}

// OnExpire registers a hook that runs on the loop, once per Start,
// when the countdown passes its target.
func OnExpire(hook func()) Option {
	return func(timer *Timer) { timer.onExpire = hook }
}

// Timer is a countdown to a fixed target that renders through a
// Surface and schedules through a clock.Scheduler.
type Timer struct {
	target    time.Time
	surface   Surface
	scheduler clock.Scheduler
	logger    *slog.Logger

	tickInterval time.Duration
	flipDuration time.Duration
	overlap      OverlapPolicy
	onExpire     func()

	// rendered is the last committed value per unit. Flips compare
	// against it and commit into it when they complete.
	rendered Values

	// tick is the periodic task; zero when stopped.
	tick clock.Token

	// inFlight tracks each unit's most recent flip so OverlapRestart
	// can cancel it.
	inFlight map[Unit]*flip

	expired bool
}

// flip is one unit's pending frame and completion callbacks.
type flip struct {
	frame      clock.Token
	completion clock.Token
}

// New creates a stopped Timer counting down to target. Rendered state
// starts at "00" for every unit; nothing is written to the surface
// until Initialize or Start.
func New(target time.Time, surface Surface, scheduler clock.Scheduler, options ...Option) *Timer {
	timer := &Timer{
		target:       target,
		surface:      surface,
		scheduler:    scheduler,
		logger:       slog.New(slog.DiscardHandler),
		tickInterval: DefaultTickInterval,
		flipDuration: DefaultFlipDuration,
		rendered:     RestingValues(),
		inFlight:     make(map[Unit]*flip),
	}
	for _, option := range options {
		option(timer)
	}
	return timer
}

// Target returns the instant the countdown runs to.
func (timer *Timer) Target() time.Time { return timer.target }

// Rendered returns the last committed value of every unit.
func (timer *Timer) Rendered() Values { return timer.rendered }

// Running reports whether the periodic tick is active.
func (timer *Timer) Running() bool { return timer.tick != 0 }

// Expired reports whether a tick has observed the target passing
// since the last Start.
func (timer *Timer) Expired() bool { return timer.expired }

// Remaining returns the time left until the target, negative once it
// has passed.
func (timer *Timer) Remaining() time.Duration {
	return timer.target.Sub(timer.scheduler.Now())
}

// Initialize samples the clock once and writes every unit's value to
// its top, bottom, and next elements directly, without animation.
// Missing elements are skipped.
func (timer *Timer) Initialize() {
	timer.rendered = Decompose(timer.distanceMillis())
	for _, unit := range Units {
		value := timer.rendered.Get(unit)
		for _, elementID := range ElementIDs(unit) {
			if !timer.surface.SetText(elementID, value) {
				timer.logger.Debug("countdown element missing", "element", elementID, "unit", string(unit))
			}
		}
	}
}

// Start initializes the display and begins ticking. A Timer that is
// already running is restarted; there is never more than one periodic
// task.
func (timer *Timer) Start() {
	timer.Stop()
	timer.expired = false
	timer.Initialize()
	timer.tick = timer.scheduler.Every(timer.tickInterval, timer.update)
	timer.logger.Debug("countdown started",
		"target", timer.target,
		"initial", timer.rendered.String(),
		"tick_interval", timer.tickInterval,
	)
}

// Stop cancels the periodic tick. Flips already in flight still
// complete. Calling Stop on a stopped Timer does nothing.
func (timer *Timer) Stop() {
	if timer.tick == 0 {
		return
	}
	timer.scheduler.Cancel(timer.tick)
	timer.tick = 0
	timer.logger.Debug("countdown stopped")
}

// update is the periodic tick.
func (timer *Timer) update() {
	distance := timer.distanceMillis()
	if distance < 0 {
		timer.expire()
		return
	}

	values := Decompose(distance)
	for _, unit := range Units {
		value := values.Get(unit)
		if value != timer.rendered.Get(unit) {
			timer.flip(unit, value)
		}
	}
}

// expire stops ticking and forces every element to "00".
func (timer *Timer) expire() {
	timer.Stop()
	for _, unit := range Units {
		for _, elementID := range ElementIDs(unit) {
			timer.surface.SetText(elementID, Resting)
		}
		timer.rendered.Set(unit, Resting)
	}

	if timer.expired {
		return
	}
	timer.expired = true
	timer.logger.Info("countdown expired", "target", timer.target)
	if timer.onExpire != nil {
		timer.onExpire()
	}
}

// flip starts the flip sequence for unit. The whole unit is skipped if
// its card or any of its three text elements is missing.
func (timer *Timer) flip(unit Unit, value string) {
	group, found := timer.surface.FindGroup(BottomID(unit))
	if !found {
		timer.logger.Debug("countdown card missing", "unit", string(unit))
		return
	}
	for _, elementID := range ElementIDs(unit) {
		if !timer.surface.Has(elementID) {
			timer.logger.Debug("countdown element missing", "element", elementID, "unit", string(unit))
			return
		}
	}

	if timer.overlap == OverlapRestart {
		timer.cancelFlip(unit)
	}

	timer.surface.SetText(NextID(unit), value)
	timer.surface.SetFlag(group.NextLayerID, FlagVisible, true)

	pending := &flip{}
	pending.frame = timer.scheduler.NextFrame(func() {
		pending.frame = 0
		timer.surface.SetFlag(group.TopLayerID, FlagFlipping, true)
	})
	pending.completion = timer.scheduler.AfterFunc(timer.flipDuration, func() {
		pending.completion = 0
		timer.surface.SetText(TopID(unit), value)
		timer.surface.SetText(BottomID(unit), value)
		timer.surface.SetFlag(group.TopLayerID, FlagFlipping, false)
		timer.surface.SetFlag(group.NextLayerID, FlagVisible, false)
		timer.rendered.Set(unit, value)
		if timer.inFlight[unit] == pending {
			delete(timer.inFlight, unit)
		}
	})
	timer.inFlight[unit] = pending
}

// cancelFlip cancels the unit's in-flight flip, if any.
func (timer *Timer) cancelFlip(unit Unit) {
	pending, exists := timer.inFlight[unit]
	if !exists {
		return
	}
	timer.scheduler.Cancel(pending.frame)
	timer.scheduler.Cancel(pending.completion)
	delete(timer.inFlight, unit)
}

// distanceMillis is target minus now in whole epoch milliseconds.
func (timer *Timer) distanceMillis() int64 {
	return timer.target.UnixMilli() - timer.scheduler.Now().UnixMilli()
}

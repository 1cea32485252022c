// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chime

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker is opened at.
const SampleRate = beep.SampleRate(44100)

// releaseDuration is the fade at the end of the tone.
const releaseDuration = 50 * time.Millisecond

// Config describes the expiry tone.
type Config struct {
	// Frequency is the pitch in hertz. Must be below half the sample
	// rate.
	Frequency float64

	// Duration is how long the tone sounds.
	Duration time.Duration

	// Volume is a base-2 gain exponent: 0 leaves the sine at full
	// scale, -1 halves it.
	Volume float64
}

// Tone returns a finite streamer for config at rate. The streamer
// yields exactly rate.N(config.Duration) samples.
func Tone(config Config, rate beep.SampleRate) (beep.Streamer, error) {
	if config.Duration <= 0 {
		return nil, fmt.Errorf("chime duration must be positive, got %s", config.Duration)
	}
	if config.Frequency <= 0 {
		return nil, fmt.Errorf("chime frequency must be positive, got %v", config.Frequency)
	}
	sine, err := generators.SineTone(rate, config.Frequency)
	if err != nil {
		return nil, fmt.Errorf("chime tone: %w", err)
	}

	total := rate.N(config.Duration)
	shaped := &release{
		streamer: beep.Take(total, sine),
		total:    total,
		fade:     min(total, rate.N(releaseDuration)),
	}
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: config.Volume}, nil
}

// release fades the last samples of a finite stream linearly to zero.
type release struct {
	streamer beep.Streamer
	position int
	total    int
	fade     int
}

func (r *release) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = r.streamer.Stream(samples)
	fadeStart := r.total - r.fade
	for i := range n {
		if r.position >= fadeStart && r.fade > 0 {
			gain := float64(r.total-r.position) / float64(r.fade)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		r.position++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }

// Player plays the expiry tone on the default audio device.
type Player struct {
	config Config
	logger *slog.Logger

	// Speaker entry points; tests replace them.
	open     func(beep.SampleRate) error
	play     func(beep.Streamer)
	shutdown func()

	mu     sync.Mutex
	opened bool
}

// NewPlayer creates a player for config. logger receives audio
// failures; nil discards them.
func NewPlayer(config Config, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Player{
		config: config,
		logger: logger,
		open: func(rate beep.SampleRate) error {
			return speaker.Init(rate, rate.N(time.Second/10))
		},
		play: func(streamer beep.Streamer) { speaker.Play(streamer) },
		shutdown: func() {
			speaker.Clear()
			speaker.Close()
		},
	}
}

// Play starts the tone and returns without waiting for it to finish.
// The speaker is opened on the first call.
func (player *Player) Play() {
	tone, err := Tone(player.config, SampleRate)
	if err != nil {
		player.logger.Warn("chime disabled", "error", err)
		return
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.opened {
		if err := player.open(SampleRate); err != nil {
			player.logger.Warn("opening audio device failed", "error", err)
			return
		}
		player.opened = true
	}
	player.play(tone)
	player.logger.Debug("chime playing",
		"frequency", player.config.Frequency,
		"duration", player.config.Duration,
	)
}

// Close stops playback and releases the audio device if Play opened
// it.
func (player *Player) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.opened {
		return
	}
	player.shutdown()
	player.opened = false
}

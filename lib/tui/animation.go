// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// AnimationTickInterval is the re-render interval while any card is
// flipping. 33ms gives ~30fps, enough for a two-row fold.
const AnimationTickInterval = 33 * time.Millisecond

// FlipTracker maps card layer IDs to the time their flip started, for
// animated rendering. A flip progresses linearly from 0.0 at start to
// 1.0 after the tracker's duration and stays at 1.0 until Finish.
type FlipTracker struct {
	duration time.Duration
	started  map[string]time.Time
}

// NewFlipTracker creates an empty tracker for flips lasting duration.
func NewFlipTracker(duration time.Duration) *FlipTracker {
	return &FlipTracker{
		duration: duration,
		started:  make(map[string]time.Time),
	}
}

// Start records that a layer began flipping. Restarts the flip if the
// layer was already flipping.
func (tracker *FlipTracker) Start(layerID string, now time.Time) {
	tracker.started[layerID] = now
}

// Finish forgets a layer's flip.
func (tracker *FlipTracker) Finish(layerID string) {
	delete(tracker.started, layerID)
}

// Flipping reports whether a layer has started and not finished.
func (tracker *FlipTracker) Flipping(layerID string) bool {
	_, exists := tracker.started[layerID]
	return exists
}

// Progress returns how far through its flip a layer is, in [0, 1].
// Layers that are not flipping return 0.
func (tracker *FlipTracker) Progress(layerID string, now time.Time) float64 {
	start, exists := tracker.started[layerID]
	if !exists {
		return 0.0
	}
	if tracker.duration <= 0 {
		return 1.0
	}
	elapsed := now.Sub(start)
	if elapsed <= 0 {
		return 0.0
	}
	if elapsed >= tracker.duration {
		return 1.0
	}
	return float64(elapsed) / float64(tracker.duration)
}

// HasActive returns true if any flip is still moving, meaning the
// animation tick should keep running.
func (tracker *FlipTracker) HasActive(now time.Time) bool {
	for layerID := range tracker.started {
		if tracker.Progress(layerID, now) < 1.0 {
			return true
		}
	}
	return false
}

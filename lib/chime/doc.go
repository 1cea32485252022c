// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chime plays a short sine tone when a countdown expires.
//
// [Tone] builds the tone as a finite beep.Streamer: a sine wave cut to
// the configured duration, scaled by a base-2 volume exponent, with a
// short linear release so the tone does not end in a click. [Player]
// opens the speaker lazily on first use, so a countdown that never
// expires never touches the audio device.
//
// Audio failures are logged and otherwise ignored. A missing sound
// card must not stop the clock.
package chime

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package countdown drives a flip-card countdown to a fixed target
// instant.
//
// A [Timer] samples its [clock.Scheduler] once per tick, decomposes
// the remaining milliseconds into days, hours, minutes, and seconds
// ([Decompose]), and compares each unit's two-digit string against
// what it last rendered. Units that changed are flipped: the new value
// is written to the unit's "next" element behind the card, the card's
// top layer starts flipping on the next frame, and after the flip
// duration the top and bottom elements take the new value and the
// rendered state commits.
//
// The display is reached only through the [Surface] port, so the same
// Timer drives the terminal board in lib/tui and the in-memory boards
// used by tests. Missing elements are tolerated: the update for that
// unit is skipped and the other units proceed.
//
// When the target passes, the next tick cancels the periodic task and
// writes "00" to every element directly, without animation.
//
// A Timer is not safe for concurrent use. All of its methods must be
// called from the scheduler's loop (in the TUI, from Model.Update).
package countdown

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui is the terminal front end for the flip clock. Built on
// bubbletea (Elm architecture), it hosts a countdown.Timer on the
// bubbletea update loop and draws its cards with lipgloss.
//
// [Board] is the presentation surface: an in-memory tree of text
// elements and card layers that the countdown mutates through the
// countdown.Surface port. [Model] reads the Board on every View.
//
// Scheduler callbacks reach the update loop through a [CallbackLoop]:
// the real scheduler dispatches each ready callback onto a channel,
// and the Model receives it as a message and runs it inside Update.
// Every state change therefore happens on bubbletea's goroutine.
//
// While a card is flipping, [FlipTracker] converts the time since the
// flip started into animation progress, and the Model re-renders on a
// short tick until no card is mid-flip.
package tui

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"time"

	"github.com/bureau-foundation/flipclock/lib/countdown"
)

// TopLayerID returns the ID of the card layer that flips.
func TopLayerID(unit countdown.Unit) string { return string(unit) + "-card-top" }

// NextLayerID returns the ID of the card layer that reveals the
// incoming value.
func NextLayerID(unit countdown.Unit) string { return string(unit) + "-card-next" }

// Board is an in-memory countdown.Surface: one card per unit, each
// holding three text elements (top, bottom, next) and two layers (top,
// next) that carry visual flags. Turning FlagFlipping on for a layer
// starts that layer's animation in the board's FlipTracker.
//
// Board is not safe for concurrent use; the Model only touches it from
// Update and View.
type Board struct {
	now    func() time.Time
	texts  map[string]string
	flags  map[string]map[countdown.Flag]bool
	groups map[string]countdown.Group
	cards  []countdown.Unit
	flips  *FlipTracker
}

// CardState is a snapshot of one card for rendering.
type CardState struct {
	Unit        countdown.Unit
	Top         string
	Bottom      string
	Next        string
	NextVisible bool
	Flipping    bool

	// Progress is the flip animation position in [0, 1]; 0 when the
	// card is not flipping.
	Progress float64
}

// NewBoard creates a board with a card for every unit, all showing
// "00". now supplies the animation clock; flipDuration is how long a
// flip animation runs.
func NewBoard(now func() time.Time, flipDuration time.Duration) *Board {
	board := &Board{
		now:    now,
		texts:  make(map[string]string),
		flags:  make(map[string]map[countdown.Flag]bool),
		groups: make(map[string]countdown.Group),
		flips:  NewFlipTracker(flipDuration),
	}
	for _, unit := range countdown.Units {
		board.addCard(unit)
	}
	return board
}

func (board *Board) addCard(unit countdown.Unit) {
	group := countdown.Group{
		TopLayerID:  TopLayerID(unit),
		NextLayerID: NextLayerID(unit),
	}
	for _, elementID := range countdown.ElementIDs(unit) {
		board.texts[elementID] = countdown.Resting
		board.groups[elementID] = group
	}
	board.flags[group.TopLayerID] = make(map[countdown.Flag]bool)
	board.flags[group.NextLayerID] = make(map[countdown.Flag]bool)
	board.cards = append(board.cards, unit)
}

// RemoveCard deletes a unit's card and all of its elements. The
// countdown keeps running and silently skips the missing unit.
func (board *Board) RemoveCard(unit countdown.Unit) {
	for _, elementID := range countdown.ElementIDs(unit) {
		delete(board.texts, elementID)
		delete(board.groups, elementID)
	}
	delete(board.flags, TopLayerID(unit))
	delete(board.flags, NextLayerID(unit))
	board.flips.Finish(TopLayerID(unit))

	for index, card := range board.cards {
		if card == unit {
			board.cards = append(board.cards[:index], board.cards[index+1:]...)
			break
		}
	}
}

// Has implements countdown.Surface.
func (board *Board) Has(elementID string) bool {
	_, exists := board.texts[elementID]
	return exists
}

// SetText implements countdown.Surface.
func (board *Board) SetText(elementID, text string) bool {
	if _, exists := board.texts[elementID]; !exists {
		return false
	}
	board.texts[elementID] = text
	return true
}

// SetFlag implements countdown.Surface.
func (board *Board) SetFlag(elementID string, flag countdown.Flag, enabled bool) bool {
	flags, exists := board.flags[elementID]
	if !exists {
		return false
	}
	flags[flag] = enabled

	if flag == countdown.FlagFlipping {
		if enabled {
			board.flips.Start(elementID, board.now())
		} else {
			board.flips.Finish(elementID)
		}
	}
	return true
}

// FindGroup implements countdown.Surface.
func (board *Board) FindGroup(elementID string) (countdown.Group, bool) {
	group, exists := board.groups[elementID]
	return group, exists
}

// Text returns an element's text, or "" if it does not exist.
func (board *Board) Text(elementID string) string {
	return board.texts[elementID]
}

// Flag reports whether a flag is set on a layer.
func (board *Board) Flag(layerID string, flag countdown.Flag) bool {
	return board.flags[layerID][flag]
}

// Cards returns a snapshot of every card in display order.
func (board *Board) Cards() []CardState {
	now := board.now()
	states := make([]CardState, 0, len(board.cards))
	for _, unit := range board.cards {
		topLayer := TopLayerID(unit)
		states = append(states, CardState{
			Unit:        unit,
			Top:         board.texts[countdown.TopID(unit)],
			Bottom:      board.texts[countdown.BottomID(unit)],
			Next:        board.texts[countdown.NextID(unit)],
			NextVisible: board.Flag(NextLayerID(unit), countdown.FlagVisible),
			Flipping:    board.Flag(topLayer, countdown.FlagFlipping),
			Progress:    board.flips.Progress(topLayer, now),
		})
	}
	return states
}

// Animating reports whether any card is mid-flip.
func (board *Board) Animating() bool {
	return board.flips.HasActive(board.now())
}

// Bottoms returns the settled value of every present card in display
// order, as a viewer reading the lower halves would see them.
func (board *Board) Bottoms() countdown.Values {
	values := countdown.Values{}
	for _, unit := range board.cards {
		values.Set(unit, board.texts[countdown.BottomID(unit)])
	}
	return values
}

// Line returns the settled values of the present cards joined with
// colons, e.g. "01:02:03:04", or "02:03:04" without the days card.
func (board *Board) Line() string {
	parts := make([]string, 0, len(board.cards))
	for _, unit := range board.cards {
		parts = append(parts, board.texts[countdown.BottomID(unit)])
	}
	return strings.Join(parts, ":")
}

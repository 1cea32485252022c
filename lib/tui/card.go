// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cardHalfRows is the height of each half of a card, excluding the
// hinge and border.
const cardHalfRows = 2

// cardMinInnerWidth fits two digits with generous padding.
const cardMinInnerWidth = 8

// renderCard draws one card with its label underneath.
//
// A flip folds the top flap down around the hinge. During the first
// half of the animation the flap shrinks toward the hinge and uncovers
// the incoming value from the top; during the second half the back of
// the flap (showing the incoming value) falls over the bottom half
// from the hinge down.
func renderCard(state CardState, theme Theme) string {
	innerWidth := max(cardMinInnerWidth, len(state.Bottom)+4, len(state.Next)+4, len(state.Top)+4)

	face := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(theme.CardForeground).
		Background(theme.CardBackground).
		Bold(true)
	flap := face.
		Foreground(theme.FlapForeground).
		Background(theme.FlapBackground)

	topRows := make([]string, cardHalfRows)
	bottomRows := make([]string, cardHalfRows)
	for row := range cardHalfRows {
		topRows[row] = face.Render(upperHalfRow(state.Top, row))
		bottomRows[row] = face.Render(lowerHalfRow(state.Bottom, row))
	}

	if state.Flipping {
		folded := int(math.Round(state.Progress * 2 * cardHalfRows))
		if folded <= cardHalfRows {
			// The flap still covers the rows nearest the hinge; rows
			// above it show the incoming value.
			for row := range folded {
				topRows[row] = face.Render(upperHalfRow(state.Next, row))
			}
			for row := folded; row < cardHalfRows; row++ {
				topRows[row] = flap.Render(upperHalfRow(state.Top, row))
			}
		} else {
			for row := range cardHalfRows {
				topRows[row] = face.Render(upperHalfRow(state.Next, row))
			}
			for row := range folded - cardHalfRows {
				bottomRows[row] = flap.Render(lowerHalfRow(state.Next, row))
			}
		}
	}

	hinge := lipgloss.NewStyle().
		Foreground(theme.HingeColor).
		Background(theme.CardBackground).
		Render(strings.Repeat("─", innerWidth))

	rows := make([]string, 0, 2*cardHalfRows+1)
	rows = append(rows, topRows...)
	rows = append(rows, hinge)
	rows = append(rows, bottomRows...)

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Render(strings.Join(rows, "\n"))

	label := lipgloss.NewStyle().
		Foreground(theme.LabelText).
		Render(strings.ToUpper(string(state.Unit)))

	return lipgloss.JoinVertical(lipgloss.Center, body, label)
}

// upperHalfRow returns the text for a row of the upper half. The digits
// sit on the row nearest the hinge.
func upperHalfRow(value string, row int) string {
	if row == cardHalfRows-1 {
		return value
	}
	return ""
}

// lowerHalfRow returns the text for a row of the lower half. The digits
// sit on the row nearest the hinge.
func lowerHalfRow(value string, row int) string {
	if row == 0 {
		return value
	}
	return ""
}

// renderSeparator draws the colon between two cards, aligned with the
// hinge.
func renderSeparator(theme Theme) string {
	rows := make([]string, 0, 2*cardHalfRows+4)
	// Top border plus the upper half.
	for range cardHalfRows + 1 {
		rows = append(rows, "   ")
	}
	rows = append(rows, " : ")
	// Lower half, bottom border, label.
	for range cardHalfRows + 2 {
		rows = append(rows, "   ")
	}
	return lipgloss.NewStyle().
		Foreground(theme.SeparatorColor).
		Bold(true).
		Render(strings.Join(rows, "\n"))
}

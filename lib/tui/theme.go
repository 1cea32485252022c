// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the flip clock. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Card faces.
	CardForeground lipgloss.Color
	CardBackground lipgloss.Color

	// The moving flap while a card flips.
	FlapForeground lipgloss.Color
	FlapBackground lipgloss.Color

	// The hinge line between the two halves of a card.
	HingeColor lipgloss.Color

	// UI chrome.
	BorderColor    lipgloss.Color
	LabelText      lipgloss.Color
	SeparatorColor lipgloss.Color
	FaintText      lipgloss.Color
	HelpText       lipgloss.Color

	// Caption above the cards. Inline code spans use CodeForeground.
	CaptionText    lipgloss.Color
	CodeForeground lipgloss.Color

	// Banner stamped over the cards once the countdown expires.
	ExpiredForeground lipgloss.Color
	ExpiredBackground lipgloss.Color

	// Log records shown in place of the help line.
	WarningText lipgloss.Color
	ErrorText   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	CardForeground: lipgloss.Color("255"),
	CardBackground: lipgloss.Color("236"),

	FlapForeground: lipgloss.Color("250"),
	FlapBackground: lipgloss.Color("238"),

	HingeColor: lipgloss.Color("233"),

	BorderColor:    lipgloss.Color("240"),
	LabelText:      lipgloss.Color("245"),
	SeparatorColor: lipgloss.Color("241"),
	FaintText:      lipgloss.Color("243"),
	HelpText:       lipgloss.Color("241"),

	CaptionText:    lipgloss.Color("252"),
	CodeForeground: lipgloss.Color("220"), // amber

	ExpiredForeground: lipgloss.Color("231"),
	ExpiredBackground: lipgloss.Color("124"), // dark red

	WarningText: lipgloss.Color("214"),
	ErrorText:   lipgloss.Color("196"),
}

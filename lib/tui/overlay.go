// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines, the first placed at (column, row). Text on either side
// of the overlay keeps its styling: the view is cut with ANSI-aware
// truncation and a reset is emitted around the overlay.
func SpliceOverlay(view string, overlay []string, column, row int) string {
	if len(overlay) == 0 {
		return view
	}

	lines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlay[0])

	for offset, overlayLine := range overlay {
		lineIndex := row + offset
		if lineIndex < 0 || lineIndex >= len(lines) {
			continue
		}
		line := lines[lineIndex]
		lineWidth := ansi.StringWidth(line)

		var spliced strings.Builder
		if column > 0 {
			left := ansi.Truncate(line, column, "")
			spliced.WriteString(left)
			// Pad short lines so the overlay lands at its column.
			if gap := column - ansi.StringWidth(left); gap > 0 {
				spliced.WriteString(strings.Repeat(" ", gap))
			}
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(overlayLine)
		spliced.WriteString("\x1b[0m")

		if rightStart := column + overlayWidth; rightStart < lineWidth {
			spliced.WriteString(ansi.TruncateLeft(line, rightStart, ""))
		}
		lines[lineIndex] = spliced.String()
	}

	return strings.Join(lines, "\n")
}

// CenterOverlay splices overlay into the middle of view.
func CenterOverlay(view string, overlay []string) string {
	if len(overlay) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")

	viewWidth := 0
	for _, line := range lines {
		viewWidth = max(viewWidth, ansi.StringWidth(line))
	}
	column := max(0, (viewWidth-ansi.StringWidth(overlay[0]))/2)
	row := max(0, (len(lines)-len(overlay))/2)
	return SpliceOverlay(view, overlay, column, row)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderCaptionInlineStyles(t *testing.T) {
	rendered := RenderCaption("**Launch** in `T-minus` *soon*", DefaultTheme)

	if got := ansi.Strip(rendered); got != "Launch in T-minus soon" {
		t.Fatalf("visible caption = %q, want %q", got, "Launch in T-minus soon")
	}
	if rendered == ansi.Strip(rendered) {
		t.Fatal("caption carries no styling")
	}
}

func TestRenderCaptionParagraphsAndHeadings(t *testing.T) {
	rendered := RenderCaption("# Release day\n\nfirst line\nwraps here\n\n~~old~~ new", DefaultTheme)

	want := "Release day\nfirst line wraps here\nold new"
	if got := ansi.Strip(rendered); got != want {
		t.Fatalf("visible caption = %q, want %q", got, want)
	}
}

func TestRenderCaptionAutoLink(t *testing.T) {
	rendered := RenderCaption("see <https://example.com/launch>", DefaultTheme)
	if got := ansi.Strip(rendered); got != "see https://example.com/launch" {
		t.Fatalf("visible caption = %q", got)
	}
}

func TestRenderCaptionEmpty(t *testing.T) {
	if got := RenderCaption("  \n ", DefaultTheme); got != "" {
		t.Fatalf("RenderCaption(blank) = %q, want empty", got)
	}
}

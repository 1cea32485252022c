// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// The caption parser never changes configuration; goldmark parsers
// are safe to share.
var (
	captionParserInstance goldmark.Markdown
	captionParserOnce     sync.Once
)

func getCaptionParser() goldmark.Markdown {
	captionParserOnce.Do(func() {
		captionParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
		)
	})
	return captionParserInstance
}

// RenderCaption renders a short markdown caption as one styled line
// per paragraph or heading. Inline emphasis, strong emphasis, code
// spans, strikethrough, and links are styled; block structure beyond
// paragraphs and headings is flattened to its text.
func RenderCaption(input string, theme Theme) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getCaptionParser().Parser().Parse(text.NewReader(source))

	// Force ANSI256: the caption is always drawn inside the TUI, and
	// auto-detection would strip color when stdout is not yet a TTY.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &captionRenderer{
		source:      source,
		theme:       theme,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	renderer.flushLine()

	return strings.Join(renderer.lines, "\n")
}

// captionRenderer walks a goldmark AST accumulating styled fragments
// into the current line. Style state is held in counters so nested
// emphasis unwinds correctly.
type captionRenderer struct {
	source      []byte
	theme       Theme
	lipRenderer *lipgloss.Renderer

	lines   []string
	current strings.Builder

	boldCount          int
	italicCount        int
	codeCount          int
	strikethroughCount int
	linkCount          int
}

func (renderer *captionRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if !entering {
			renderer.flushLine()
		}

	case *ast.Heading:
		if entering {
			renderer.boldCount++
		} else {
			renderer.boldCount--
			renderer.flushLine()
		}

	case *ast.Emphasis:
		if node.Level >= 2 {
			renderer.boldCount += adjust(entering)
		} else {
			renderer.italicCount += adjust(entering)
		}

	case *ast.CodeSpan:
		renderer.codeCount += adjust(entering)

	case *extast.Strikethrough:
		renderer.strikethroughCount += adjust(entering)

	case *ast.Link:
		renderer.linkCount += adjust(entering)

	case *ast.AutoLink:
		if entering {
			renderer.linkCount++
			renderer.emit(string(node.URL(renderer.source)))
			renderer.linkCount--
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			renderer.emit(string(node.Segment.Value(renderer.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				renderer.emit(" ")
			}
		}

	case *ast.String:
		if entering {
			renderer.emit(string(node.Value))
		}
	}
	return ast.WalkContinue, nil
}

// emit appends text styled by the current counters.
func (renderer *captionRenderer) emit(fragment string) {
	if fragment == "" {
		return
	}
	style := renderer.lipRenderer.NewStyle().Foreground(renderer.theme.CaptionText)
	if renderer.boldCount > 0 {
		style = style.Bold(true)
	}
	if renderer.italicCount > 0 {
		style = style.Italic(true)
	}
	if renderer.codeCount > 0 {
		style = style.Foreground(renderer.theme.CodeForeground)
	}
	if renderer.strikethroughCount > 0 {
		style = style.Strikethrough(true)
	}
	if renderer.linkCount > 0 {
		style = style.Underline(true)
	}
	renderer.current.WriteString(style.Render(fragment))
}

func (renderer *captionRenderer) flushLine() {
	if renderer.current.Len() == 0 {
		return
	}
	renderer.lines = append(renderer.lines, strings.TrimRight(renderer.current.String(), " "))
	renderer.current.Reset()
}

// adjust converts a walk direction into a counter delta.
func adjust(entering bool) int {
	if entering {
		return 1
	}
	return -1
}

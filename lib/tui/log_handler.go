// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in
// place of the help line.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" text.
	Summary string

	// Level is the slog level for styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears a status message once it has been visible
// for logRecordFadeDelay. Sequence identifies the message it fades, so
// a newer message is not cleared early.
type logRecordFadeMsg struct {
	Sequence int
}

// logRecordFadeDelay is how long log messages stay visible before the
// help line returns.
const logRecordFadeDelay = 5 * time.Second

// StatusLogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages, so warnings reach the user without
// writing to stderr under the alt screen. Records below the configured
// level are dropped.
//
// Records arriving before SetProgram is called are dropped. Handlers
// derived via WithAttrs/WithGroup share the program, so one SetProgram
// call reaches every derived handler.
type StatusLogHandler struct {
	level  slog.Level
	send   *atomic.Pointer[func(tea.Msg)]
	attrs  []slog.Attr
	prefix string
}

// NewStatusLogHandler creates a handler that delivers records at or
// above level. Call SetProgram once the tea.Program exists.
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{
		level: level,
		send:  &atomic.Pointer[func(tea.Msg)]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (handler *StatusLogHandler) SetProgram(program *tea.Program) {
	handler.setSend(program.Send)
}

func (handler *StatusLogHandler) setSend(send func(tea.Msg)) {
	handler.send.Store(&send)
}

// Enabled implements slog.Handler.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle implements slog.Handler.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	send := handler.send.Load()
	if send == nil {
		return nil
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s%s=%s", handler.prefix, attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	// Program.Send blocks until Update receives the message, and a
	// record logged from inside Update would wait on itself.
	go (*send)(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs implements slog.Handler.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := handler.clone()
	for _, attr := range attrs {
		attr.Key = handler.prefix + attr.Key
		derived.attrs = append(derived.attrs, attr)
	}
	return derived
}

// WithGroup implements slog.Handler. Group names prefix later keys,
// e.g. "chime.frequency".
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := handler.clone()
	derived.prefix += name + "."
	return derived
}

func (handler *StatusLogHandler) clone() *StatusLogHandler {
	return &StatusLogHandler{
		level:  handler.level,
		send:   handler.send,
		attrs:  append([]slog.Attr(nil), handler.attrs...),
		prefix: handler.prefix,
	}
}

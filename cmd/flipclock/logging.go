// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// newLogger builds the process logger. A --log-output file always
// gets JSON records. When the TUI owns the screen, status receives the
// records it is enabled for and stderr gets nothing, so the alt screen
// stays intact. In plain mode (status nil) logs go to stderr: text on
// a terminal, JSON when redirected. The returned cleanup closes the
// log file.
func newLogger(logOutput string, status slog.Handler, verbose bool, stderr *os.File) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handlers fanoutHandler
	if status != nil {
		handlers = append(handlers, status)
	}

	cleanup := func() {}
	if logOutput != "" {
		file, err := os.OpenFile(logOutput, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, validation("cannot open log file %s: %w", logOutput, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, options))
		cleanup = func() { file.Close() }
	} else if status == nil {
		handlers = append(handlers, stderrHandler(stderr, term.IsTerminal(int(stderr.Fd())), options))
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), cleanup, nil
	}
	return slog.New(handlers), cleanup, nil
}

// stderrHandler picks text output for people and JSON for pipes.
func stderrHandler(writer io.Writer, terminal bool, options *slog.HandlerOptions) slog.Handler {
	if terminal {
		return slog.NewTextHandler(writer, options)
	}
	return slog.NewJSONHandler(writer, options)
}

// fanoutHandler sends each record to every sub-handler enabled for its
// level. A record is enabled if any sub-handler is.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			errs = append(errs, handler.Handle(ctx, record.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}

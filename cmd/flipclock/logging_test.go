// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLoggerWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipclock.log")

	logger, closeLog, err := newLogger(path, nil, false, os.Stderr)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	logger.Info("countdown expired", "unit", "seconds")
	logger.Debug("suppressed at info level")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log has %d lines, want 1:\n%s", len(lines), data)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "countdown expired" || record["unit"] != "seconds" {
		t.Errorf("record = %v", record)
	}
}

func TestNewLoggerVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipclock.log")
	logger, closeLog, err := newLogger(path, nil, true, os.Stderr)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	defer closeLog()

	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug disabled with verbose set")
	}
}

func TestNewLoggerKeepsStderrQuietUnderTUI(t *testing.T) {
	status := &recordingHandler{level: slog.LevelWarn}
	logger, closeLog, err := newLogger("", status, true, os.Stderr)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	defer closeLog()

	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info enabled with only the status handler attached")
	}
	logger.Warn("opening audio device failed")
	if diff := cmp.Diff([]string{"opening audio device failed"}, status.messages); diff != "" {
		t.Errorf("status records mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLoggerFansOutToStatusAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipclock.log")
	status := &recordingHandler{level: slog.LevelWarn}

	logger, closeLog, err := newLogger(path, status, false, os.Stderr)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	logger = logger.With("component", "chime")
	logger.Info("countdown configured")
	logger.Warn("opening audio device failed")
	closeLog()

	if diff := cmp.Diff([]string{"opening audio device failed"}, status.messages); diff != "" {
		t.Errorf("status records mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 {
		t.Fatalf("log file has %d lines, want both records:\n%s", len(lines), data)
	}
	if !strings.Contains(string(data), `"component":"chime"`) {
		t.Errorf("file records lost the With attributes:\n%s", data)
	}
}

// recordingHandler keeps the messages of the records it handles.
// Derived handlers record into the same slice.
type recordingHandler struct {
	level    slog.Level
	messages []string
	parent   *recordingHandler
}

func (handler *recordingHandler) root() *recordingHandler {
	if handler.parent != nil {
		return handler.parent
	}
	return handler
}

func (handler *recordingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

func (handler *recordingHandler) Handle(_ context.Context, record slog.Record) error {
	root := handler.root()
	root.messages = append(root.messages, record.Message)
	return nil
}

func (handler *recordingHandler) WithAttrs([]slog.Attr) slog.Handler {
	return &recordingHandler{level: handler.level, parent: handler.root()}
}

func (handler *recordingHandler) WithGroup(string) slog.Handler {
	return &recordingHandler{level: handler.level, parent: handler.root()}
}

func TestNewLoggerBadPath(t *testing.T) {
	_, _, err := newLogger(filepath.Join(t.TempDir(), "missing", "flipclock.log"), nil, false, os.Stderr)
	if err == nil || !isUsageError(err) {
		t.Fatalf("newLogger = %v, want a usage error", err)
	}
}

func TestStderrHandlerFormat(t *testing.T) {
	var text, structured bytes.Buffer
	options := &slog.HandlerOptions{Level: slog.LevelInfo}

	slog.New(stderrHandler(&text, true, options)).Info("started", "unit", "days")
	slog.New(stderrHandler(&structured, false, options)).Info("started", "unit", "days")

	if !strings.Contains(text.String(), "msg=started") {
		t.Errorf("terminal output = %q, want text format", text.String())
	}
	if !strings.HasPrefix(structured.String(), "{") {
		t.Errorf("redirected output = %q, want JSON", structured.String())
	}
}

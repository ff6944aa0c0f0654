package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"mergehelper/internal/services"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	return slog.New(newConsoleHandler(buf, lvl))
}

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)
	logger = NewComponentLogger(logger, "sweep")

	logger.Info("merge complete", slog.String("title", "GameA"), slog.Int("tracks", 3))

	line := buf.String()
	if !strings.Contains(line, "INFO sweep: merge complete") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "title=GameA") || !strings.Contains(line, "tracks=3") {
		t.Fatalf("missing attributes: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	logger.Warn("skip", slog.String("reason", "multiple cue sheets"))

	if !strings.Contains(buf.String(), `reason="multiple cue sheets"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, slog.LevelInfo)

	ctx := services.WithTitle(context.Background(), "GameB")
	ctx = services.WithStep(ctx, "backup")
	WithContext(ctx, base).Info("staged")

	out := buf.String()
	if !strings.Contains(out, "title=GameB") || !strings.Contains(out, "step=backup") {
		t.Fatalf("context fields missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic")
}

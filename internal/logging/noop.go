package logging

import (
	"context"
	"log/slog"
)

// NoopHandler discards every record. Useful for tests and wiring code that
// cannot fail.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }
func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler        { return NoopHandler{} }
func (NoopHandler) WithGroup(string) slog.Handler             { return NoopHandler{} }

// NewNop returns a logger that drops all output.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

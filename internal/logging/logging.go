package logging

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// New returns a logger writing to stderr. Interactive sessions get the
// text handler; anything else (CI, cron, pipes) gets JSON with source
// information so runs can be grepped after the fact.
func New() *slog.Logger {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{AddSource: true}))
}

type ctxKey struct{}

// NewContext returns a copy of ctx with logger attached.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves a logger from ctx or returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

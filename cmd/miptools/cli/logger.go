// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the structured logger handed to commands.
// When stderr is a terminal it uses slog.TextHandler for people; when
// stderr is piped or redirected (cron jobs, scripts) it uses
// slog.JSONHandler so the records can be collected.
//
// The handler admits every level; [WithLevel] narrows it to the
// configured level once the command has loaded its configuration.
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelDebug}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// WithLevel returns a logger that drops records below level and
// otherwise writes through logger's handler.
func WithLevel(logger *slog.Logger, level slog.Leveler) *slog.Logger {
	return slog.New(&levelHandler{level: level, inner: logger.Handler()})
}

type levelHandler struct {
	level slog.Leveler
	inner slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.inner.Enabled(ctx, level)
}

func (h *levelHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.inner.Handle(ctx, record)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, inner: h.inner.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, inner: h.inner.WithGroup(name)}
}

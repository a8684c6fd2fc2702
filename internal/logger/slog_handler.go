package logger

import (
	"context"
	"log/slog"
)

// blockHandler wraps slog.Handler and gates records on a shared level var so
// that SetLogLevel takes effect without rebuilding the handler chain.
type blockHandler struct {
	inner    slog.Handler
	levelVar *slog.LevelVar
}

func newBlockHandler(inner slog.Handler, levelVar *slog.LevelVar) *blockHandler {
	return &blockHandler{
		inner:    inner,
		levelVar: levelVar,
	}
}

// Enabled checks if the handler is enabled for the given level
func (h *blockHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.levelVar.Level() {
		return false
	}
	return h.inner.Enabled(ctx, level)
}

// Handle processes a log record
func (h *blockHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs creates a new handler with additional attributes
func (h *blockHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &blockHandler{
		inner:    h.inner.WithAttrs(attrs),
		levelVar: h.levelVar,
	}
}

// WithGroup creates a new handler with a group
func (h *blockHandler) WithGroup(name string) slog.Handler {
	return &blockHandler{
		inner:    h.inner.WithGroup(name),
		levelVar: h.levelVar,
	}
}

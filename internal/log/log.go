package log

import (
	"context"
	"log/slog"
)

type contextKey int

const attrsContextKey contextKey = iota

// WithAttrs returns a context carrying attributes that will be attached to
// every record logged with it.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing := Attrs(ctx)

	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)

	return context.WithValue(ctx, attrsContextKey, merged)
}

// Attrs returns the attributes carried by the given context.
func Attrs(ctx context.Context) []slog.Attr {
	attrs, ok := ctx.Value(attrsContextKey).([]slog.Attr)
	if !ok {
		return nil
	}

	return attrs
}

// ContextHandler enriches records with the attributes carried by the
// context before delegating to the wrapped handler.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs := Attrs(ctx); len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, record)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

var _ slog.Handler = ContextHandler{}

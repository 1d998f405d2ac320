package logging

import (
	"context"
	"log/slog"
)

// switchHandler builds a text handler over the current output for every
// record, replaying the attributes and groups it was derived with.
type switchHandler struct {
	attrs  []slog.Attr
	groups []string
}

func (h *switchHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= level.Level()
}

func (h *switchHandler) Handle(ctx context.Context, r slog.Record) error {
	var inner slog.Handler = slog.NewTextHandler(currentOutput(), &slog.HandlerOptions{Level: level})
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	for _, g := range h.groups {
		inner = inner.WithGroup(g)
	}
	return inner.Handle(ctx, r)
}

func (h *switchHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &switchHandler{
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
		groups: h.groups,
	}
	return next
}

func (h *switchHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &switchHandler{
		attrs:  h.attrs,
		groups: append(append([]string(nil), h.groups...), name),
	}
}

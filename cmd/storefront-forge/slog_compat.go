package main

import (
	"bytes"
	"context"
	"log"
	"log/slog"
	"strings"
	"sync"
)

// setLogLoggerLevel backports slog.SetLogLoggerLevel (added in Go 1.22) for
// older toolchains. It installs a default slog handler that filters records
// below level and writes the survivors through the standard log package in
// the default handler's "LEVEL msg key=val" style.
func setLogLoggerLevel(level slog.Level) {
	mu := &sync.Mutex{}
	buf := &bytes.Buffer{}
	text := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 {
				switch a.Key {
				case slog.TimeKey, slog.LevelKey, slog.MessageKey:
					return slog.Attr{}
				}
			}
			return a
		},
	})
	slog.SetDefault(slog.New(&logLoggerHandler{mu: mu, buf: buf, text: text}))
}

// logLoggerHandler bridges slog records to the standard log package, using a
// TextHandler over a shared buffer to format attributes.
type logLoggerHandler struct {
	mu   *sync.Mutex
	buf  *bytes.Buffer
	text slog.Handler
}

func (h *logLoggerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.text.Enabled(ctx, level)
}

func (h *logLoggerHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.Reset()
	if err := h.text.Handle(ctx, r); err != nil {
		return err
	}
	line := r.Level.String() + " " + r.Message
	if attrs := strings.TrimSuffix(h.buf.String(), "\n"); attrs != "" {
		line += " " + attrs
	}
	return log.Output(4, line)
}

func (h *logLoggerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logLoggerHandler{mu: h.mu, buf: h.buf, text: h.text.WithAttrs(attrs)}
}

func (h *logLoggerHandler) WithGroup(name string) slog.Handler {
	return &logLoggerHandler{mu: h.mu, buf: h.buf, text: h.text.WithGroup(name)}
}

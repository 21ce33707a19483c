package inscription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// messageHandler writes records as "LEVEL: message", followed by any
// attributes as key=value pairs.
type messageHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Level
	prefix string
	attrs  []string
}

func newMessageHandler(w io.Writer, level slog.Level) *messageHandler {
	return &messageHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *messageHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *messageHandler) Handle(_ context.Context, record slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(levelName(record.Level))
	buf.WriteString(": ")
	buf.WriteString(record.Message)
	for _, attr := range h.attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		if !attr.Equal(slog.Attr{}) {
			buf.WriteByte(' ')
			buf.WriteString(h.format(attr))
		}
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *messageHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append([]string(nil), h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, h.format(attr))
	}
	return &clone
}

func (h *messageHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *messageHandler) format(attr slog.Attr) string {
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		parts := make([]string, 0, len(attr.Value.Group()))
		nested := &messageHandler{prefix: h.prefix + attr.Key + "."}
		for _, member := range attr.Value.Group() {
			parts = append(parts, nested.format(member))
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s%s=%v", h.prefix, attr.Key, attr.Value.Any())
}

func levelName(level slog.Level) string {
	if level >= LevelCritical {
		return "CRITICAL"
	}
	return level.String()
}

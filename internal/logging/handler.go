// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that retains recent
// WARN and ERROR records in a bounded in-memory ring, so the admin
// status page can show what went wrong without a log aggregator.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultRingSize bounds the retained event ring.
const DefaultRingSize = 200

// Event is one retained log record.
type Event struct {
	Time    time.Time         `json:"time"`
	Level   string            `json:"level"`
	Message string            `json:"message"`
	Attrs   map[string]string `json:"attrs,omitempty"`
}

// EventRingHandler is a slog.Handler that wraps another handler and also
// keeps records at WARN level and above in a fixed-size ring buffer.
type EventRingHandler struct {
	inner slog.Handler
	level slog.Level

	mu     sync.Mutex
	ring   []Event
	next   int
	filled bool
}

// NewEventRingHandler wraps the given handler with a ring of
// DefaultRingSize retained events.
func NewEventRingHandler(inner slog.Handler) *EventRingHandler {
	return NewEventRingHandlerWithSize(inner, DefaultRingSize)
}

// NewEventRingHandlerWithSize wraps the given handler with a custom
// ring capacity.
func NewEventRingHandlerWithSize(inner slog.Handler, size int) *EventRingHandler {
	if size < 1 {
		size = DefaultRingSize
	}
	return &EventRingHandler{
		inner: inner,
		level: slog.LevelWarn,
		ring:  make([]Event, size),
	}
}

// Enabled implements slog.Handler.
func (h *EventRingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventRingHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.retain(r)
	}
	return nil
}

// WithAttrs implements slog.Handler. The retained ring is shared across
// derived handlers so the status page sees every record.
func (h *EventRingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringChild{inner: h.inner.WithAttrs(attrs), parent: h}
}

// WithGroup implements slog.Handler.
func (h *EventRingHandler) WithGroup(name string) slog.Handler {
	return &ringChild{inner: h.inner.WithGroup(name), parent: h}
}

// Recent returns retained events, newest first.
func (h *EventRingHandler) Recent() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.next
	if h.filled {
		n = len(h.ring)
	}
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		idx := h.next - 1 - i
		if idx < 0 {
			idx += len(h.ring)
		}
		out = append(out, h.ring[idx])
	}
	return out
}

func (h *EventRingHandler) retain(r slog.Record) {
	ev := Event{
		Time:    r.Time,
		Level:   levelName(r.Level),
		Message: r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		if ev.Attrs == nil {
			ev.Attrs = make(map[string]string)
		}
		ev.Attrs[a.Key] = a.Value.String()
		return true
	})

	h.mu.Lock()
	h.ring[h.next] = ev
	h.next++
	if h.next == len(h.ring) {
		h.next = 0
		h.filled = true
	}
	h.mu.Unlock()
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return strings.ToLower(level.String())
	}
}

// ringChild forwards to a derived inner handler while retaining into
// the parent's shared ring.
type ringChild struct {
	inner  slog.Handler
	parent *EventRingHandler
}

func (c *ringChild) Enabled(ctx context.Context, level slog.Level) bool {
	return c.inner.Enabled(ctx, level)
}

func (c *ringChild) Handle(ctx context.Context, r slog.Record) error {
	if err := c.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= c.parent.level {
		c.parent.retain(r)
	}
	return nil
}

func (c *ringChild) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ringChild{inner: c.inner.WithAttrs(attrs), parent: c.parent}
}

func (c *ringChild) WithGroup(name string) slog.Handler {
	return &ringChild{inner: c.inner.WithGroup(name), parent: c.parent}
}

// ParseLevel maps a config string onto a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package debounce coalesces rapid repeated triggers into a single
// trailing invocation per key. It batches bursts of local edits (e.g.
// keystrokes in an admin form) into infrequent remote writes.
package debounce

import (
	"sync"
	"time"
)

// Config holds debouncer configuration.
type Config struct {
	// Interval is the debounce window. Triggers within this window for
	// the same key are coalesced into a single flush.
	Interval time.Duration
	// MaxWait is the maximum time a key may stay pending. Even if
	// triggers keep coming, the key flushes after this time. Zero
	// disables the cap.
	MaxWait time.Duration
}

// DefaultConfig returns the default debounce configuration.
func DefaultConfig() Config {
	return Config{
		Interval: 800 * time.Millisecond,
		MaxWait:  5 * time.Second,
	}
}

// pending tracks a debounced key.
type pending struct {
	payload   any
	timer     *time.Timer
	firstSeen time.Time
}

// FlushFunc receives the key and the payload of its most recent trigger.
type FlushFunc func(key string, payload any)

// Debouncer coalesces triggers per key. At most one flush is pending per
// key at any time, and it always carries the latest payload. A flush
// already dispatched is never cancelled by a newer trigger; the new
// trigger simply starts a fresh window.
type Debouncer struct {
	config Config
	flush  FlushFunc

	mu      sync.Mutex
	pending map[string]*pending
	stopped bool
	wg      sync.WaitGroup
}

// New creates a debouncer that calls flush for each expired key.
func New(config Config, flush FlushFunc) *Debouncer {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	return &Debouncer{
		config:  config,
		flush:   flush,
		pending: make(map[string]*pending),
	}
}

// Trigger queues a flush for key. If the key is already pending, its
// payload is replaced with the new one and the timer resets.
func (d *Debouncer) Trigger(key string, payload any) {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	if p, ok := d.pending[key]; ok {
		p.payload = payload
		if d.config.MaxWait > 0 && now.Sub(p.firstSeen) >= d.config.MaxWait {
			d.flushLocked(key)
			return
		}
		p.timer.Reset(d.config.Interval)
		return
	}

	p := &pending{payload: payload, firstSeen: now}
	p.timer = time.AfterFunc(d.config.Interval, func() {
		d.mu.Lock()
		d.flushLocked(key)
		d.mu.Unlock()
	})
	d.pending[key] = p
}

// flushLocked dispatches a pending key. Must be called with lock held.
func (d *Debouncer) flushLocked(key string) {
	p, ok := d.pending[key]
	if !ok {
		return
	}
	p.timer.Stop()
	delete(d.pending, key)

	d.wg.Add(1)
	go func(payload any) {
		defer d.wg.Done()
		d.flush(key, payload)
	}(p.payload)
}

// Flush immediately dispatches every pending key and waits until the
// dispatched flushes return. Callers that reload state from the store
// right after can rely on the pending writes having landed.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	for key := range d.pending {
		d.flushLocked(key)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Stop flushes all pending keys, rejects further triggers and waits for
// in-flight flushes to finish.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	for key := range d.pending {
		d.flushLocked(key)
	}
	d.stopped = true
	d.mu.Unlock()
	d.wg.Wait()
}

// PendingCount returns the number of pending keys.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

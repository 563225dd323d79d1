// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import "time"

// Config holds configuration for store creation.
type Config struct {
	// RedisURL is the remote store connection URL. Empty means no remote
	// store is configured.
	RedisURL string

	// Prefix is the key prefix for the Redis backend.
	Prefix string

	// ConnectTimeout bounds the initial connection attempt.
	ConnectTimeout time.Duration
}

// New creates a store for the given configuration: Redis when a URL is
// present, an in-memory store otherwise. The boolean reports whether the
// returned store is a real remote (callers use it to decide between
// remote sync and local-fallback mode).
func New(cfg Config) (Store, bool, error) {
	if cfg.RedisURL == "" {
		return NewMemoryStore(), false, nil
	}

	opts := DefaultRedisStoreOptions()
	opts.URL = cfg.RedisURL
	if cfg.Prefix != "" {
		opts.Prefix = cfg.Prefix
	}
	if cfg.ConnectTimeout > 0 {
		opts.ConnectTimeout = cfg.ConnectTimeout
	}

	store, err := NewRedisStore(opts)
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed Store implementation. Documents live at
// "<prefix><collection>:<id>" as JSON strings; batches execute inside a
// MULTI/EXEC pipeline, so all writes of a batch apply together.
type RedisStore struct {
	client *redis.Client
	prefix string
	closed atomic.Bool
}

// RedisStoreOptions configures the Redis store.
type RedisStoreOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to all keys (e.g., "mtour:")
	Prefix string

	// PoolSize is the maximum number of connections (0 = use default)
	PoolSize int

	// ConnectTimeout is the timeout for establishing a connection
	ConnectTimeout time.Duration

	// ReadTimeout is the timeout for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for write operations
	WriteTimeout time.Duration
}

// DefaultRedisStoreOptions returns sensible defaults.
func DefaultRedisStoreOptions() RedisStoreOptions {
	return RedisStoreOptions{
		Prefix:         "mtour:",
		PoolSize:       10,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// NewRedisStore creates a Redis store and verifies connectivity.
func NewRedisStore(opts RedisStoreOptions) (*RedisStore, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisStore{client: client, prefix: opts.Prefix}, nil
}

// NewRedisStoreFromURL creates a Redis store from just a URL with
// default options.
func NewRedisStoreFromURL(url, prefix string) (*RedisStore, error) {
	opts := DefaultRedisStoreOptions()
	opts.URL = url
	if prefix != "" {
		opts.Prefix = prefix
	}
	return NewRedisStore(opts)
}

// key builds the storage key for a document.
func (s *RedisStore) key(collection, id string) string {
	return s.prefix + collection + ":" + id
}

// scanKeys collects every key of a collection using SCAN, which is safe
// for production use unlike KEYS.
func (s *RedisStore) scanKeys(ctx context.Context, collection string) ([]string, error) {
	var (
		cursor  uint64
		keys    []string
		pattern = s.prefix + collection + ":*"
	)
	for {
		batch, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			return keys, nil
		}
	}
}

// GetAll returns every document in a collection.
func (s *RedisStore) GetAll(ctx context.Context, collection string) ([]Document, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	keys, err := s.scanKeys(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []Document{}, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	keyPrefix := s.prefix + collection + ":"
	docs := make([]Document, 0, len(keys))
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue // deleted between SCAN and MGET
		}
		docs = append(docs, Document{
			ID:   strings.TrimPrefix(keys[i], keyPrefix),
			Data: json.RawMessage(str),
		})
	}
	return docs, nil
}

// ListIDs returns the ids of every document in a collection.
func (s *RedisStore) ListIDs(ctx context.Context, collection string) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	keys, err := s.scanKeys(ctx, collection)
	if err != nil {
		return nil, err
	}
	keyPrefix := s.prefix + collection + ":"
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, keyPrefix))
	}
	return ids, nil
}

// Get returns a single document or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, collection, id string) (Document, error) {
	if s.closed.Load() {
		return Document{}, ErrStoreClosed
	}

	val, err := s.client.Get(ctx, s.key(collection, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return Document{ID: id, Data: val}, nil
}

// SetMerge shallow-merges data over the existing document. The
// read-modify-write is not guarded by WATCH; concurrent writers follow
// last-write-wins semantics at document granularity.
func (s *RedisStore) SetMerge(ctx context.Context, collection, id string, data json.RawMessage) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	if err := checkSize(data); err != nil {
		return err
	}

	merged, err := s.mergedDocument(ctx, collection, id, data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(collection, id), []byte(merged), 0).Err()
}

// mergedDocument reads the current document and merges data over it.
func (s *RedisStore) mergedDocument(ctx context.Context, collection, id string, data json.RawMessage) (json.RawMessage, error) {
	existing, err := s.client.Get(ctx, s.key(collection, id)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	merged, err := mergeJSON(existing, data)
	if err != nil {
		return nil, err
	}
	if err := checkSize(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes a document.
func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	return s.client.Del(ctx, s.key(collection, id)).Err()
}

// Batch applies all operations in one MULTI/EXEC pipeline. Merge reads
// happen before the pipeline is queued; the writes themselves commit
// together.
func (s *RedisStore) Batch(ctx context.Context, ops []Op) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	type write struct {
		key  string
		data []byte
		del  bool
	}
	writes := make([]write, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case OpSet:
			merged, err := s.mergedDocument(ctx, op.Collection, op.ID, op.Data)
			if err != nil {
				return err
			}
			writes = append(writes, write{key: s.key(op.Collection, op.ID), data: merged})
		case OpDelete:
			writes = append(writes, write{key: s.key(op.Collection, op.ID), del: true})
		}
	}

	pipe := s.client.TxPipeline()
	for _, w := range writes {
		if w.del {
			pipe.Del(ctx, w.key)
		} else {
			pipe.Set(ctx, w.key, w.data, 0)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Ping checks if the Redis connection is healthy.
func (s *RedisStore) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		return s.client.Close()
	}
	return nil
}

// Client returns the underlying Redis client for advanced operations.
// Use with caution.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package docstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It backs tests and
// serves as a stand-in remote when no Redis URL is configured but a
// store instance is still required.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	closed      bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string][]byte),
	}
}

// GetAll returns every document in a collection, ordered by id for
// deterministic tests.
func (s *MemoryStore) GetAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	coll := s.collections[collection]
	docs := make([]Document, 0, len(coll))
	for id, data := range coll {
		docs = append(docs, Document{ID: id, Data: append([]byte(nil), data...)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// ListIDs returns the ids in a collection, sorted.
func (s *MemoryStore) ListIDs(_ context.Context, collection string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	coll := s.collections[collection]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Get returns a single document or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Document{}, ErrStoreClosed
	}

	data, ok := s.collections[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: append([]byte(nil), data...)}, nil
}

// SetMerge shallow-merges data over the existing document.
func (s *MemoryStore) SetMerge(_ context.Context, collection, id string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	return s.setMergeLocked(collection, id, data)
}

func (s *MemoryStore) setMergeLocked(collection, id string, data []byte) error {
	if err := checkSize(data); err != nil {
		return err
	}
	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string][]byte)
		s.collections[collection] = coll
	}
	merged, err := mergeJSON(coll[id], data)
	if err != nil {
		return err
	}
	if err := checkSize(merged); err != nil {
		return err
	}
	coll[id] = append([]byte(nil), merged...)
	return nil
}

// Delete removes a document. Absent documents are a no-op.
func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.collections[collection], id)
	return nil
}

// Batch applies all operations under one lock, so the batch is atomic
// with respect to readers. Size violations fail the whole batch before
// any write is applied.
func (s *MemoryStore) Batch(_ context.Context, ops []Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	for _, op := range ops {
		if op.Kind == OpSet {
			if err := checkSize(op.Data); err != nil {
				return err
			}
		}
	}
	for _, op := range ops {
		switch op.Kind {
		case OpSet:
			if err := s.setMergeLocked(op.Collection, op.ID, op.Data); err != nil {
				return err
			}
		case OpDelete:
			delete(s.collections[op.Collection], op.ID)
		}
	}
	return nil
}

// Ping always succeeds on an open store.
func (s *MemoryStore) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

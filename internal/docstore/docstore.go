// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package docstore provides the client for the remote document store:
// named collections of independently identified JSON documents with
// merge-writes, batched multi-document writes and deletes. Implementations
// must be thread-safe.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// MaxDocumentSize is the per-document size limit enforced on writes,
// matching the remote store's 1 MiB document cap.
const MaxDocumentSize = 1 << 20

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound Error = "document not found"

	// ErrDocumentTooLarge indicates a write exceeded MaxDocumentSize.
	ErrDocumentTooLarge Error = "document exceeds the maximum allowed size"

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed Error = "store closed"
)

// Document is one identified JSON document in a collection.
type Document struct {
	ID   string
	Data json.RawMessage
}

// OpKind is the kind of a batched write operation.
type OpKind int

const (
	// OpSet merge-writes a document, creating it if absent.
	OpSet OpKind = iota
	// OpDelete removes a document.
	OpDelete
)

// Op is one operation of a batched write.
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Data       json.RawMessage
}

// Store defines the document store contract. All list-returning methods
// give no ordering guarantee.
type Store interface {
	// GetAll returns every document in a collection. An unknown
	// collection yields an empty slice, not an error.
	GetAll(ctx context.Context, collection string) ([]Document, error)

	// ListIDs returns the ids of every document in a collection.
	ListIDs(ctx context.Context, collection string) ([]string, error)

	// Get returns a single document. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// SetMerge writes a document, shallow-merging its top-level fields
	// over any existing document (create-if-absent).
	SetMerge(ctx context.Context, collection, id string, data json.RawMessage) error

	// Delete removes a document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, collection, id string) error

	// Batch applies all operations as one write, atomically where the
	// backend supports it.
	Batch(ctx context.Context, ops []Op) error

	// Ping checks connectivity to the store.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// mergeJSON shallow-merges the top-level fields of patch over base.
// A nil base returns patch unchanged.
func mergeJSON(base, patch json.RawMessage) (json.RawMessage, error) {
	if len(base) == 0 {
		return patch, nil
	}
	var dst, src map[string]json.RawMessage
	if err := json.Unmarshal(base, &dst); err != nil {
		return nil, fmt.Errorf("decoding existing document: %w", err)
	}
	if err := json.Unmarshal(patch, &src); err != nil {
		return nil, fmt.Errorf("decoding merge patch: %w", err)
	}
	for k, v := range src {
		dst[k] = v
	}
	merged, err := json.Marshal(dst)
	if err != nil {
		return nil, fmt.Errorf("encoding merged document: %w", err)
	}
	return merged, nil
}

// checkSize rejects payloads over the document size limit.
func checkSize(data json.RawMessage) error {
	if len(data) > MaxDocumentSize {
		return ErrDocumentTooLarge
	}
	return nil
}

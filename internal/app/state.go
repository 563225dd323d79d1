// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package app owns the in-memory application state: the full content
// snapshot loaded at startup, mutated by admin and visitor actions, and
// pushed back to the remote store through debounced sync calls. All
// mutations go through this package; handlers never touch the store.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mangotour/mtour-go/internal/ai"
	"github.com/mangotour/mtour-go/internal/debounce"
	"github.com/mangotour/mtour-go/internal/defaults"
	"github.com/mangotour/mtour-go/internal/docstore"
	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/service"
)

// htmlSanitizer strips unsafe markup from user-generated content.
// It uses bluemonday's UGCPolicy which allows safe HTML tags for user-generated content
// while removing dangerous elements like scripts.
var htmlSanitizer = bluemonday.UGCPolicy()

// textSanitizer reduces plain fields (titles, author names) to text.
var textSanitizer = bluemonday.StrictPolicy()

// flushTimeout bounds one debounced write burst against the store.
const flushTimeout = 30 * time.Second

// State is the application state controller.
type State struct {
	sync    *service.SyncService
	planner *ai.Planner
	logger  *slog.Logger

	deb *debounce.Debouncer

	mu    sync.RWMutex
	data  *model.GlobalData
	users []model.User
}

// New creates the state controller. Load must be called before any
// accessor or mutation.
func New(syncSvc *service.SyncService, planner *ai.Planner, debCfg debounce.Config, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	s := &State{
		sync:    syncSvc,
		planner: planner,
		logger:  logger,
		data:    &model.GlobalData{},
	}
	s.deb = debounce.New(debCfg, s.flush)
	return s
}

// Load pulls the full snapshot and the user registry. It never fails:
// an unreachable store yields the bundled defaults with the fallback
// flag set, and an empty registry is seeded with the sample users.
func (s *State) Load(ctx context.Context) {
	data := s.sync.LoadGlobalData(ctx)

	users, err := s.sync.LoadUsers(ctx)
	if err != nil {
		s.logger.Warn("failed to load user registry, using sample users", "error", err)
		users = defaults.Users()
	}
	if len(users) == 0 {
		users = defaults.Users()
		for _, u := range users {
			if err := s.sync.SaveUser(ctx, u); err != nil {
				s.logger.Warn("failed to seed user", "user", u.Username, "error", err)
			}
		}
	}

	s.mu.Lock()
	s.data = data
	s.users = users
	s.mu.Unlock()

	s.logger.Info("application state loaded",
		"products", len(data.Products),
		"videos", len(data.Videos),
		"posts", len(data.Posts),
		"users", len(users),
		"local_fallback", data.UsingLocalFallback)
}

// Stop flushes pending syncs and shuts the debouncer down.
func (s *State) Stop() {
	s.deb.Stop()
}

// UsingLocalFallback reports whether the snapshot came from bundled
// defaults instead of the remote store.
func (s *State) UsingLocalFallback() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UsingLocalFallback
}

// Snapshot returns a copy of the current global data. The copy shares
// no backing arrays with live state, so callers may hold or marshal it
// after the lock is released.
func (s *State) Snapshot() model.GlobalData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// SyncStates returns the per-key sync state machine snapshot.
func (s *State) SyncStates() map[string]service.SyncState {
	return s.sync.States()
}

// flush is the debounce target: it pushes one key's latest payload to
// the store. Failures are recorded in the sync state machine and kept
// out of local state, so the admin's edits survive a dead store.
func (s *State) flush(key string, payload any) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	var err error
	switch key {
	case service.CollectionProducts, service.CollectionVideos, service.CollectionPosts:
		err = s.sync.SyncCollection(ctx, key, payload.([]docstore.Document))
	case service.CollectionPages:
		err = s.sync.SyncPages(ctx, payload.(map[string]model.PageContent))
	case service.DocPopupCollection:
		err = s.sync.SyncPopup(ctx, payload.(model.PopupNotification))
	case service.DocSettingsCollection:
		err = s.sync.SyncSettings(ctx, payload.(model.AppSettings))
	default:
		s.logger.Error("flush for unknown sync key", "key", key)
		return
	}
	if err != nil {
		s.logger.Warn("debounced sync failed", "key", key, "error", err)
	}
}

// queueCollection snapshots a collection into store documents and arms
// the debounce timer. Must be called with s.mu held.
func (s *State) queueCollection(key string, docs []docstore.Document, err error) {
	if err != nil {
		s.logger.Error("failed to encode collection for sync", "key", key, "error", err)
		return
	}
	s.sync.MarkPending(key)
	s.deb.Trigger(key, docs)
}

// Resync force-flushes every pending write, waits for it to land and
// then reloads the snapshot from the store, so no local edit is lost
// across the reload.
func (s *State) Resync(ctx context.Context) {
	s.deb.Flush()
	s.Load(ctx)
}

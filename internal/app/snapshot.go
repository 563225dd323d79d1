// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"context"
	"encoding/json"

	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/service"
)

// ExportSnapshot serializes the content snapshot for the Drive backup.
// The user registry is deliberately excluded: password hashes never
// leave the store.
func (s *State) ExportSnapshot() ([]byte, error) {
	data := s.Snapshot()
	data.UsingLocalFallback = false
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fault.Wrap(fault.KindUnknown, "encoding backup snapshot", err)
	}
	return out, nil
}

// ImportSnapshot replaces the content snapshot from a Drive backup and
// pushes every collection to the store immediately.
func (s *State) ImportSnapshot(ctx context.Context, raw []byte) error {
	var data model.GlobalData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fault.Wrap(fault.KindValidationFailure, "backup file is not a valid snapshot", err)
	}
	data.UsingLocalFallback = false

	s.mu.Lock()
	s.data = &data
	s.queueProductsLocked()
	s.queueVideosLocked()
	s.queuePostsLocked()
	pages := make(map[string]model.PageContent, len(data.PageContents))
	for id, page := range data.PageContents {
		pages[id] = page
	}
	s.sync.MarkPending(service.CollectionPages)
	s.deb.Trigger(service.CollectionPages, pages)
	s.queueSettingsLocked()
	s.sync.MarkPending(service.DocPopupCollection)
	s.deb.Trigger(service.DocPopupCollection, data.Popup)
	s.mu.Unlock()

	// A restore should hit the store now, not after the debounce window.
	s.deb.Flush()
	s.logger.Info("snapshot restored from backup",
		"products", len(data.Products), "videos", len(data.Videos), "posts", len(data.Posts))
	return nil
}

// TripPlan generates a quote through the AI planner (or its local
// estimate when the API is unavailable).
func (s *State) TripPlan(ctx context.Context, req model.TripPlanRequest) *model.TripPlanResult {
	return s.planner.GenerateTripPlan(ctx, req)
}

// AIAvailable reports whether the AI planner has an API key.
func (s *State) AIAvailable() bool {
	return s.planner.Configured()
}

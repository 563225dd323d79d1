// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package app

import (
	"fmt"

	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/service"
)

// PageContents returns the per-page content map.
func (s *State) PageContents() map[string]model.PageContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]model.PageContent, len(s.data.PageContents))
	for id, page := range s.data.PageContents {
		out[id] = page
	}
	return out
}

// PageContent returns one page's content.
func (s *State) PageContent(id string) (model.PageContent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.data.PageContents[id]
	return page, ok
}

// UpdatePageContent replaces one page's content and arms the pages
// sync. The page id must be one of the known set.
func (s *State) UpdatePageContent(id string, content model.PageContent) error {
	if !model.ValidPageID(id) {
		return fault.New(fault.KindValidationFailure, fmt.Sprintf("unknown page %q", id))
	}
	content.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.PageContents == nil {
		s.data.PageContents = make(map[string]model.PageContent)
	}
	s.data.PageContents[id] = content

	pages := make(map[string]model.PageContent, len(s.data.PageContents))
	for pid, page := range s.data.PageContents {
		pages[pid] = page
	}
	s.sync.MarkPending(service.CollectionPages)
	s.deb.Trigger(service.CollectionPages, pages)
	return nil
}

// Popup returns the promotional popup.
func (s *State) Popup() model.PopupNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Popup
}

// UpdatePopup replaces the popup document and arms its sync.
func (s *State) UpdatePopup(popup model.PopupNotification) {
	popup.ID = service.DocPopupID

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Popup = popup

	s.sync.MarkPending(service.DocPopupCollection)
	s.deb.Trigger(service.DocPopupCollection, popup)
}

// Settings returns the settings document.
func (s *State) Settings() model.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Settings
}

// UpdateHeroImages replaces the hero slider and arms the settings sync.
func (s *State) UpdateHeroImages(images []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Settings.HeroImages = images
	s.queueSettingsLocked()
}

// UpdateMenuItems replaces the sub menu and arms the settings sync.
func (s *State) UpdateMenuItems(items []model.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Settings.MenuItems = items
	s.queueSettingsLocked()
}

// SetAIPublic opens or closes the AI quote form to visitors.
func (s *State) SetAIPublic(public bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Settings.AIPublic = public
	s.queueSettingsLocked()
}

func (s *State) queueSettingsLocked() {
	s.sync.MarkPending(service.DocSettingsCollection)
	s.deb.Trigger(service.DocSettingsCollection, s.data.Settings)
}

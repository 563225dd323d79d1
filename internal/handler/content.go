// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/mangotour/mtour-go/internal/model"
)

// pageResponse is a page plus the rendered HTML of its markdown
// section details.
type pageResponse struct {
	model.PageContent
	SectionsHTML []string `json:"sectionsHtml,omitempty"`
}

// ListPages returns every page's content.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.state.PageContents())
}

// GetPage returns one page with its section markdown rendered to HTML.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, ok := h.state.PageContent(id)
	if !ok {
		WriteNotFound(w, "page not found")
		return
	}

	resp := pageResponse{PageContent: page}
	for _, section := range page.Sections {
		if section.DetailContent == "" {
			resp.SectionsHTML = append(resp.SectionsHTML, "")
			continue
		}
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(section.DetailContent), &buf); err != nil {
			h.logger.Warn("failed to render section markdown", "page", id, "error", err)
			resp.SectionsHTML = append(resp.SectionsHTML, "")
			continue
		}
		resp.SectionsHTML = append(resp.SectionsHTML, buf.String())
	}
	WriteSuccess(w, resp)
}

// UpdatePage replaces one page's content.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	var page model.PageContent
	if !decodeJSON(w, r, &page) {
		return
	}

	if err := h.state.UpdatePageContent(chi.URLParam(r, "id"), page); err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, page)
}

// GetPopup returns the promotional popup.
func (h *Handler) GetPopup(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.state.Popup())
}

// UpdatePopup replaces the promotional popup.
func (h *Handler) UpdatePopup(w http.ResponseWriter, r *http.Request) {
	var popup model.PopupNotification
	if !decodeJSON(w, r, &popup) {
		return
	}
	h.state.UpdatePopup(popup)
	WriteSuccess(w, h.state.Popup())
}

// GetSettings returns the settings document.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.state.Settings())
}

// UpdateHeroImages replaces the hero slider image list.
func (h *Handler) UpdateHeroImages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HeroImages []string `json:"heroImages"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.state.UpdateHeroImages(req.HeroImages)
	WriteSuccess(w, h.state.Settings())
}

// UpdateMenuItems replaces the sub menu.
func (h *Handler) UpdateMenuItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MenuItems []model.MenuItem `json:"menuItems"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.state.UpdateMenuItems(req.MenuItems)
	WriteSuccess(w, h.state.Settings())
}

// SetAIPublic opens or closes the AI quote form to visitors.
func (h *Handler) SetAIPublic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AIPublic bool `json:"isAIPublic"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.state.SetAIPublic(req.AIPublic)
	WriteSuccess(w, h.state.Settings())
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mangotour/mtour-go/internal/model"
)

// GetGlobalData returns the whole public snapshot in one call, the way
// the site boots.
func (h *Handler) GetGlobalData(w http.ResponseWriter, r *http.Request) {
	snapshot := h.state.Snapshot()
	snapshot.Posts = h.state.Posts() // redacted copies, not the raw entries
	WriteSuccess(w, snapshot)
}

// ListProducts returns the catalog, optionally filtered by ?type=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if t := r.URL.Query().Get("type"); t != "" {
		p := model.Product{Type: t}
		if !p.ValidType() {
			WriteBadRequest(w, "unknown product type "+strconv.Quote(t))
			return
		}
		WriteSuccess(w, h.state.ProductsByType(t))
		return
	}
	WriteSuccess(w, h.state.Products())
}

// GetProduct returns one catalog entry.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.state.Product(chi.URLParam(r, "id"))
	if !ok {
		WriteNotFound(w, "product not found")
		return
	}
	WriteSuccess(w, p)
}

// SaveProduct creates or updates a catalog entry.
func (h *Handler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		p.ID = id
	}

	saved, err := h.state.SaveProduct(p)
	if err != nil {
		WriteFault(w, err)
		return
	}
	if r.Method == http.MethodPost {
		WriteCreated(w, saved)
		return
	}
	WriteSuccess(w, saved)
}

// DeleteProduct removes a catalog entry.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.state.DeleteProduct(chi.URLParam(r, "id")) {
		WriteNotFound(w, "product not found")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true})
}

// DeleteItineraryDay removes one day from a product itinerary; the
// remaining days renumber contiguously.
func (h *Handler) DeleteItineraryDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		WriteBadRequest(w, "day must be a number")
		return
	}
	if err := h.state.RemoveProductItineraryDay(chi.URLParam(r, "id"), day); err != nil {
		WriteFault(w, err)
		return
	}
	p, _ := h.state.Product(chi.URLParam(r, "id"))
	WriteSuccess(w, p)
}

// ListVideos returns the gallery, optionally filtered by ?category=.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos := h.state.Videos()
	if cat := r.URL.Query().Get("category"); cat != "" {
		if !model.ValidVideoCategory(cat) {
			WriteBadRequest(w, "unknown video category "+strconv.Quote(cat))
			return
		}
		filtered := videos[:0]
		for _, v := range videos {
			if v.Category == cat {
				filtered = append(filtered, v)
			}
		}
		videos = filtered
	}
	WriteSuccess(w, videos)
}

// SaveVideo creates or updates a gallery entry.
func (h *Handler) SaveVideo(w http.ResponseWriter, r *http.Request) {
	var v model.VideoItem
	if !decodeJSON(w, r, &v) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		v.ID = id
	}

	saved, err := h.state.SaveVideo(r.Context(), v)
	if err != nil {
		WriteFault(w, err)
		return
	}
	if r.Method == http.MethodPost {
		WriteCreated(w, saved)
		return
	}
	WriteSuccess(w, saved)
}

// DeleteVideo removes a gallery entry.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if !h.state.DeleteVideo(chi.URLParam(r, "id")) {
		WriteNotFound(w, "video not found")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true})
}

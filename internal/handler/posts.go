// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mangotour/mtour-go/internal/model"
)

// ListPosts returns the board with private bodies redacted.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.state.Posts())
}

// CreatePost adds a board entry for the logged-in user.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var p model.CommunityPost
	if !decodeJSON(w, r, &p) {
		return
	}

	post, err := h.state.AddPost(p)
	if err != nil {
		WriteFault(w, err)
		return
	}
	// The caller authored it; no need to redact their own password.
	post.Password = ""
	WriteCreated(w, post)
}

// OpenPost unlocks a post (password required when private) and counts
// the view.
func (h *Handler) OpenPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if r.ContentLength > 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	post, err := h.state.OpenPost(chi.URLParam(r, "id"), req.Password)
	if err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, post)
}

// AddComment appends a comment to a post.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var c model.Comment
	if !decodeJSON(w, r, &c) {
		return
	}

	comment, err := h.state.AddComment(chi.URLParam(r, "id"), c)
	if err != nil {
		WriteFault(w, err)
		return
	}
	WriteCreated(w, comment)
}

// DeletePost removes a board entry.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if !h.state.DeletePost(chi.URLParam(r, "id")) {
		WriteNotFound(w, "post not found")
		return
	}
	WriteSuccess(w, map[string]bool{"deleted": true})
}

// SetAdminReply sets or clears the admin reply on a post.
func (h *Handler) SetAdminReply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reply string `json:"reply"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.state.SetAdminReply(chi.URLParam(r, "id"), req.Reply); err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, map[string]bool{"updated": true})
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/session"
)

// userResponse is the public view of a registry entry.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Nickname string `json:"nickname,omitempty"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: u.Role, Nickname: u.Nickname}
}

// Login authenticates a user and establishes a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.state.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login failed", "username", req.Username)
		WriteUnauthorized(w, "사용자 정보가 일치하지 않습니다")
		return
	}

	// Rotate the session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "failed to establish session")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessions.Put(r.Context(), session.KeyUserRole, user.Role)

	WriteSuccess(w, toUserResponse(user))
}

// Register creates a board account and logs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.state.Register(r.Context(), req.Username, req.Password, req.Nickname)
	if err != nil {
		WriteFault(w, err)
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "failed to establish session")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessions.Put(r.Context(), session.KeyUserRole, user.Role)

	WriteCreated(w, toUserResponse(user))
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		WriteInternalError(w, "failed to destroy session")
		return
	}
	WriteSuccess(w, map[string]bool{"loggedOut": true})
}

// Me returns the current session's user, if any.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetString(r.Context(), session.KeyUserID)
	if userID == "" {
		WriteUnauthorized(w, "로그인이 필요합니다")
		return
	}
	for _, u := range h.state.Users() {
		if u.ID == userID {
			WriteSuccess(w, toUserResponse(u))
			return
		}
	}
	WriteUnauthorized(w, "세션이 만료되었습니다")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/mangotour/mtour-go/internal/model"
	"github.com/mangotour/mtour-go/internal/session"
)

// TripQuote generates an AI trip quotation. The form is open to
// visitors only when the admin has made it public; admins can always
// use it.
func (h *Handler) TripQuote(w http.ResponseWriter, r *http.Request) {
	if !h.state.Settings().AIPublic {
		role := h.sessions.GetString(r.Context(), session.KeyUserRole)
		if role != model.RoleAdmin {
			WriteError(w, http.StatusForbidden, "forbidden", "AI 견적 기능이 아직 공개되지 않았습니다")
			return
		}
	}

	var req model.TripPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Destination == "" || req.Duration == "" {
		WriteBadRequest(w, "destination and duration are required")
		return
	}

	WriteSuccess(w, h.state.TripPlan(r.Context(), req))
}

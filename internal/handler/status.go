// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/mangotour/mtour-go/internal/logging"
	"github.com/mangotour/mtour-go/internal/service"
)

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusResponse is the admin status page payload.
type statusResponse struct {
	UsingLocalFallback bool                         `json:"isUsingLocalFallback"`
	AIAvailable        bool                         `json:"aiAvailable"`
	UploadBackends     []string                     `json:"uploadBackends"`
	SyncStates         map[string]service.SyncState `json:"syncStates"`
	RecentEvents       []logging.Event              `json:"recentEvents,omitempty"`
}

// Status reports the sync state machine, the fallback flag and recent
// warning/error log events.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		UsingLocalFallback: h.state.UsingLocalFallback(),
		AIAvailable:        h.state.AIAvailable(),
		UploadBackends:     h.uploads.Backends(),
		SyncStates:         h.state.SyncStates(),
	}
	if h.events != nil {
		resp.RecentEvents = h.events.Recent()
	}
	WriteSuccess(w, resp)
}

// Resync force-flushes pending writes and reloads the snapshot from
// the store.
func (h *Handler) Resync(w http.ResponseWriter, r *http.Request) {
	h.state.Resync(r.Context())
	WriteSuccess(w, map[string]bool{
		"isUsingLocalFallback": h.state.UsingLocalFallback(),
	})
}

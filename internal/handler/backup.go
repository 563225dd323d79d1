// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/mangotour/mtour-go/internal/backup"
)

// BackupAuthURL starts the Drive consent handshake and returns the URL
// the admin must open.
func (h *Handler) BackupAuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.backup.AuthURL()
	if err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"url": url})
}

// BackupCallback completes the consent handshake with the code from
// the Google redirect.
func (h *Handler) BackupCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		WriteBadRequest(w, "missing authorization code")
		return
	}

	if err := h.backup.Exchange(r.Context(), state, code); err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, map[string]bool{"connected": true})
}

// BackupStatus reports the handshake state.
func (h *Handler) BackupStatus(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]bool{
		"configured": h.backup.Configured(),
		"connected":  h.backup.Connected(),
	})
}

// BackupSave writes the current snapshot to Drive.
func (h *Handler) BackupSave(w http.ResponseWriter, r *http.Request) {
	data, err := h.state.ExportSnapshot()
	if err != nil {
		WriteFault(w, err)
		return
	}

	fileID, err := h.backup.Save(r.Context(), data)
	if err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, map[string]any{"fileId": fileID, "bytes": len(data)})
}

// BackupRestore loads the Drive snapshot and replaces the local state.
func (h *Handler) BackupRestore(w http.ResponseWriter, r *http.Request) {
	data, err := h.backup.Load(r.Context())
	if errors.Is(err, backup.ErrNoBackup) {
		WriteNotFound(w, "Drive에 백업 파일이 없습니다")
		return
	}
	if err != nil {
		WriteFault(w, err)
		return
	}

	if err := h.state.ImportSnapshot(r.Context(), data); err != nil {
		WriteFault(w, err)
		return
	}
	WriteSuccess(w, map[string]bool{"restored": true})
}

// BackupDisconnect drops the Drive token. The admin must run the
// consent handshake again to reconnect.
func (h *Handler) BackupDisconnect(w http.ResponseWriter, r *http.Request) {
	h.backup.Disconnect()
	WriteSuccess(w, map[string]bool{"connected": false})
}

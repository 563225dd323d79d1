// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io"
	"net/http"

	"github.com/mangotour/mtour-go/internal/upload"
)

// maxUploadBytes caps a single multipart upload request.
const maxUploadBytes = 25 << 20 // 25MB

// Upload accepts one multipart file under the "file" field and pushes
// it through the upload pipeline. The optional "folder" field selects
// the storage namespace (default "media").
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteBadRequest(w, "invalid multipart request: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteInternalError(w, "failed to read upload")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "media"
	}

	var lastPct int
	url, err := h.uploads.Upload(r.Context(), folder, &upload.File{
		Name:        header.Filename,
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}, func(pct int) { lastPct = pct })
	if err != nil {
		WriteFault(w, err)
		return
	}

	WriteCreated(w, map[string]any{
		"url":      url,
		"progress": lastPct,
	})
}

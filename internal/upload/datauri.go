// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"context"
	"encoding/base64"

	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/imaging"
)

// MaxEmbeddedSize caps files accepted by the embedded backend. Larger
// payloads would blow up the document they end up stored inside.
const MaxEmbeddedSize = 700 * 1024

// EmbeddedBackend returns the file itself as a base64 data URL instead
// of uploading it anywhere. It is a degraded last resort for installs
// with no CDN and no writable media directory: the resulting URL is
// stored inline in the owning document, so documents grow with their
// images. It must be opted into explicitly when building the chain.
type EmbeddedBackend struct{}

func NewEmbedded() *EmbeddedBackend { return &EmbeddedBackend{} }

func (b *EmbeddedBackend) Name() string { return "embedded" }

func (b *EmbeddedBackend) Configured() bool { return true }

func (b *EmbeddedBackend) Upload(ctx context.Context, folder string, f *File, progress ProgressFunc) (string, error) {
	if len(f.Data) > MaxEmbeddedSize {
		return "", fault.New(fault.KindQuotaOrSizeExceeded,
			"file is too large to embed; configure a CDN or media directory")
	}
	mime := f.ContentType
	if mime == "" {
		mime = imaging.DetectMimeType(f.Data)
	}
	if progress != nil {
		progress(100)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(f.Data), nil
}

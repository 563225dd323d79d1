// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/util"
)

// MaxLocalFileSize caps files accepted by the local media store.
const MaxLocalFileSize = 20 * 1024 * 1024 // 20MB

// LocalBackend stores uploads on disk under a media directory and
// serves them back through the application's /uploads/ route.
type LocalBackend struct {
	dir     string
	baseURL string
}

// NewLocal creates the local media store backend. dir is the media
// directory on disk, baseURL the public origin the files are served
// from (for example "https://mangotour.example.com").
func NewLocal(dir, baseURL string) *LocalBackend {
	return &LocalBackend{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) Configured() bool { return b.dir != "" }

func (b *LocalBackend) Upload(ctx context.Context, folder string, f *File, progress ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fault.FromTransport("local store unavailable", err)
	}
	if len(f.Data) > MaxLocalFileSize {
		return "", fault.New(fault.KindQuotaOrSizeExceeded, "file exceeds the local store size limit")
	}

	dir, err := util.SafeJoinPath(b.dir, folder)
	if err != nil {
		return "", fault.Wrap(fault.KindValidationFailure, "invalid upload folder", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fault.Wrap(fault.KindUnknown, "failed to create media directory", err)
	}

	dst, err := util.SafeJoinPath(dir, f.Name)
	if err != nil {
		return "", fault.Wrap(fault.KindValidationFailure, "invalid upload filename", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", fault.Wrap(fault.KindUnknown, "failed to create media file", err)
	}
	if _, err := io.Copy(out, newProgressReader(f.Data, progress)); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fault.Wrap(fault.KindUnknown, "failed to write media file", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fault.Wrap(fault.KindUnknown, "failed to write media file", err)
	}

	rel := filepath.ToSlash(filepath.Join(folder, f.Name))
	return b.baseURL + "/uploads/" + rel, nil
}

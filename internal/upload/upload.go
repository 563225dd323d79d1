// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package upload sends files to one of the configured storage backends
// and returns a stable retrieval URL. Backends form an explicit ordered
// strategy chain: the CDN provider when configured, then the local media
// store, and — only when a caller opts in — a degraded embedded-data-URL
// fallback that should never be the default path.
package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/imaging"
)

// File is an upload payload held fully in memory.
type File struct {
	Name        string
	Data        []byte
	ContentType string
}

// ProgressFunc receives upload progress as a 0-100 integer. Reported
// values are monotonically non-decreasing and end at 100 on success.
type ProgressFunc func(pct int)

// Uploader is a single storage backend strategy.
type Uploader interface {
	// Name identifies the backend in logs and error messages.
	Name() string

	// Configured reports whether the backend has usable credentials.
	Configured() bool

	// Upload writes the file under the folder namespace and returns a
	// stable URL usable directly as an <img>/<video> source.
	Upload(ctx context.Context, folder string, f *File, progress ProgressFunc) (string, error)
}

// Pipeline compresses images and pushes files through the backend chain.
type Pipeline struct {
	compressor *imaging.Compressor
	backends   []Uploader
	logger     *slog.Logger
}

// NewPipeline creates a pipeline over the given backends, tried in
// order. A nil compressor disables image pre-compression.
func NewPipeline(compressor *imaging.Compressor, logger *slog.Logger, backends ...Uploader) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{compressor: compressor, backends: backends, logger: logger}
}

// Upload pushes the file to the first configured backend that accepts
// it. Images are compressed first; compression failure never fails the
// upload — the original bytes go out instead. The returned error is
// always a classified fault.
func (p *Pipeline) Upload(ctx context.Context, folder string, f *File, progress ProgressFunc) (string, error) {
	if f == nil || len(f.Data) == 0 {
		return "", fault.New(fault.KindValidationFailure, "no file data provided")
	}

	out := *f
	if p.compressor != nil && imaging.IsImage(f.Data) {
		if res, err := p.compressor.Compress(newByteReader(f.Data)); err != nil {
			p.logger.Warn("image compression failed, uploading original bytes",
				"file", f.Name, "error", err)
		} else {
			out.Data = res.Data
			out.ContentType = res.MimeType
			out.Name = jpegName(f.Name)
		}
	}
	out.Name = UniqueName(out.Name)

	var lastErr error
	for _, backend := range p.backends {
		if !backend.Configured() {
			continue
		}
		url, err := backend.Upload(ctx, folder, &out, progress)
		if err == nil {
			if progress != nil {
				progress(100)
			}
			p.logger.Info("file uploaded", "backend", backend.Name(), "file", out.Name, "url", url)
			return url, nil
		}
		lastErr = classify(backend.Name(), err)
		p.logger.Warn("upload backend failed", "backend", backend.Name(),
			"file", out.Name, "error", err)
	}

	if lastErr == nil {
		return "", fault.New(fault.KindConfigurationMissing,
			"no upload backend is configured; set the CDN credentials or a local media directory")
	}
	return "", lastErr
}

// Backends returns the names of configured backends in chain order.
func (p *Pipeline) Backends() []string {
	names := make([]string, 0, len(p.backends))
	for _, b := range p.backends {
		if b.Configured() {
			names = append(names, b.Name())
		}
	}
	return names
}

// jpegName swaps the filename extension for .jpg after re-encoding.
func jpegName(name string) string {
	base := name
	for i := len(base) - 1; i >= 0; i-- {
		if base[i] == '.' {
			base = base[:i]
			break
		}
		if base[i] == '/' || base[i] == '\\' {
			break
		}
	}
	return base + ".jpg"
}

// classify wraps a backend error into the fault taxonomy unless it is
// already classified.
func classify(backend string, err error) error {
	if err == nil {
		return nil
	}
	if f, ok := err.(*fault.Fault); ok {
		return f
	}
	if kind := fault.KindOf(err); kind != fault.KindUnknown {
		return err
	}
	return fault.FromTransport(fmt.Sprintf("%s upload failed", backend), err)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging compresses images before upload: bounded dimensions,
// EXIF auto-orientation and lossy JPEG re-encoding, all in memory.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"image/jpeg"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
	_ "image/gif"
	_ "image/png"
)

// Defaults applied by NewCompressor when a bound is zero.
const (
	DefaultMaxWidth  = 1200
	DefaultMaxHeight = 1200
	DefaultQuality   = 70
)

// Result is the outcome of a compression.
type Result struct {
	Data     []byte
	Width    int
	Height   int
	MimeType string
}

// Compressor re-encodes images within bounded dimensions. The zero
// bounds fall back to the defaults.
type Compressor struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// NewCompressor creates a compressor with the given bounds, filling in
// defaults for zero values.
func NewCompressor(maxWidth, maxHeight, quality int) *Compressor {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Compressor{MaxWidth: maxWidth, MaxHeight: maxHeight, Quality: quality}
}

// Compress decodes the image, applies EXIF orientation, scales it down
// to fit the bounds preserving aspect ratio and re-encodes it as JPEG at
// the configured quality. Images already within bounds keep their
// dimensions but are still re-encoded. The transform is purely in
// memory; on any decode or encode failure the caller should fall back
// to the original bytes.
func (c *Compressor) Compress(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	orientation := readExifOrientation(bytes.NewReader(data))
	img = applyOrientation(img, orientation)

	bounds := img.Bounds()
	if bounds.Dx() > c.MaxWidth || bounds.Dy() > c.MaxHeight {
		img = imaging.Fit(img, c.MaxWidth, c.MaxHeight, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: c.Quality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	return &Result{
		Data:     buf.Bytes(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: "image/jpeg",
	}, nil
}

// IsImage reports whether data looks like a decodable image, based on
// content sniffing.
func IsImage(data []byte) bool {
	return strings.HasPrefix(DetectMimeType(data), "image/")
}

// DetectMimeType detects the MIME type of file data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	// http.DetectContentType returns types like "image/jpeg; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation applies EXIF orientation transformation to an image.
// Orientation values:
// 1: Normal
// 2: Flip horizontal
// 3: Rotate 180°
// 4: Flip vertical
// 5: Rotate 90° CW + flip horizontal
// 6: Rotate 90° CW
// 7: Rotate 90° CCW + flip horizontal
// 8: Rotate 90° CCW
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// filenameRegex matches characters unsafe in stored filenames
	filenameRegex = regexp.MustCompile(`[^a-z0-9._-]+`)
	// multipleDashes matches runs of consecutive hyphens
	multipleDashes = regexp.MustCompile(`-{2,}`)
)

// SanitizeFilename converts an arbitrary user filename into a safe
// ASCII name. Accents are decomposed and stripped, remaining non-Latin
// text (Korean titles in particular) is transliterated, and anything
// outside [a-z0-9._-] becomes a hyphen. The extension is preserved in
// lowercase. An unusable name falls back to "file".
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	base := strings.TrimSuffix(name, path.Ext(name))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	base, _, _ = transform.String(t, base)
	base = unidecode.Unidecode(base)

	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "-")
	base = filenameRegex.ReplaceAllString(base, "-")
	base = multipleDashes.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")

	if base == "" {
		base = "file"
	}
	return base + ext
}

// UniqueName prefixes a sanitized filename with a millisecond timestamp
// so repeated uploads of the same file never collide.
func UniqueName(name string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), SanitizeFilename(name))
}

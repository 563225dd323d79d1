// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxExternalURLLength is the maximum allowed length for a stored media
// or embed URL.
const MaxExternalURLLength = 2048

// ValidateExternalURL checks a URL stored in content (video embeds, hero
// images, popup links). It accepts http and https URLs with a hostname
// and rejects anything else, including javascript: and data: schemes
// that would otherwise reach the frontend.
func ValidateExternalURL(rawURL string) error {
	if len(rawURL) > MaxExternalURLLength {
		return fmt.Errorf("URL exceeds maximum length of %d characters", MaxExternalURLLength)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme")
	}
	if parsedURL.Hostname() == "" {
		return fmt.Errorf("URL must have a hostname")
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePathWithinBase reports whether target stays inside base once
// both are cleaned and made absolute. Anything that escapes base,
// including a sibling that merely shares the prefix (/uploads vs
// /uploads-x), is an error.
func ValidatePathWithinBase(base, target string) error {
	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}
	absTarget, err := filepath.Abs(filepath.Clean(target))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory")
	}
	return nil
}

// SafeJoinPath joins the components under base and rejects the result
// if it resolves outside base. Upload folder and file names pass
// through here before touching the disk.
func SafeJoinPath(base string, components ...string) (string, error) {
	full := filepath.Join(append([]string{base}, components...)...)
	if err := ValidatePathWithinBase(base, full); err != nil {
		return "", err
	}
	return full, nil
}

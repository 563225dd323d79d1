// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatePathWithinBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "uploads")

	tests := []struct {
		name    string
		target  string
		wantErr bool
	}{
		{"base itself", base, false},
		{"subdirectory", filepath.Join(base, "images"), false},
		{"nested subdirectory", filepath.Join(base, "images", "2026", "01"), false},
		{"parent", filepath.Join(base, ".."), true},
		{"climb out through subdirectory", filepath.Join(base, "images", "..", ".."), true},
		{"sibling", filepath.Join(base, "..", "config"), true},
		{"absolute path outside", "/etc/passwd", true},
		{"sibling sharing the prefix", base + "-evil", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePathWithinBase(base, tt.target)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePathWithinBase(%q, %q) error = %v, wantErr %v", base, tt.target, err, tt.wantErr)
			}
		})
	}
}

func TestSafeJoinPath(t *testing.T) {
	base := t.TempDir()

	got, err := SafeJoinPath(base, "docs", "file.txt")
	if err != nil {
		t.Fatalf("SafeJoinPath() error = %v", err)
	}
	if !strings.HasPrefix(got, base) {
		t.Errorf("SafeJoinPath() = %q, want a path under %q", got, base)
	}

	for _, components := range [][]string{
		{"..", "secret.txt"},
		{"docs", "..", "..", "etc", "passwd"},
	} {
		if _, err := SafeJoinPath(base, components...); err == nil {
			t.Errorf("SafeJoinPath(%q, %v) accepted a path outside the base", base, components)
		}
	}

	// filepath.Join does not treat a later absolute component as a new
	// root, so this lands under the base and is fine.
	if _, err := SafeJoinPath(base, "/etc/passwd"); err != nil {
		t.Errorf("SafeJoinPath(%q, /etc/passwd) error = %v", base, err)
	}
}

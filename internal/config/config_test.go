// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "Str0ng!Secret#ForTests_0123456789"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MTOUR_SESSION_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env is not development")
	}
	if cfg.UseRedisStore() {
		t.Error("UseRedisStore() = true without a Redis URL")
	}
	if cfg.LoadTimeout != 3*time.Second {
		t.Errorf("LoadTimeout = %s, want 3s", cfg.LoadTimeout)
	}
	if cfg.SyncDebounce != 800*time.Millisecond {
		t.Errorf("SyncDebounce = %s, want 800ms", cfg.SyncDebounce)
	}
	if cfg.StorePrefix != "mtour:" {
		t.Errorf("StorePrefix = %q", cfg.StorePrefix)
	}
	if cfg.AllowEmbeddedMedia {
		t.Error("embedded media enabled by default")
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("MTOUR_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() succeeded without a session secret")
	}
}

func TestLoadShortSecret(t *testing.T) {
	t.Setenv("MTOUR_SESSION_SECRET", "short")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "at least") {
		t.Fatalf("Load() error = %v, want length complaint", err)
	}
}

func TestLoadWeakSecret(t *testing.T) {
	t.Setenv("MTOUR_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted a known default secret")
	}
}

func TestLoadInvalidSyncWindow(t *testing.T) {
	setRequired(t)
	t.Setenv("MTOUR_SYNC_DEBOUNCE", "2s")
	t.Setenv("MTOUR_SYNC_MAX_WAIT", "1s")

	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted max wait shorter than debounce")
	}
}

func TestBackupConfiguration(t *testing.T) {
	setRequired(t)
	t.Setenv("MTOUR_GOOGLE_CLIENT_ID", "id")
	t.Setenv("MTOUR_GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("MTOUR_BASE_URL", "https://mangotour.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.BackupEnabled() {
		t.Error("BackupEnabled() = false with credentials set")
	}
	want := "https://mangotour.example.com/admin/backup/callback"
	if got := cfg.BackupRedirectURL(); got != want {
		t.Errorf("BackupRedirectURL() = %q, want %q", got, want)
	}
}

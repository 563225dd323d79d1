// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost    string `env:"MTOUR_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"MTOUR_SERVER_PORT" envDefault:"8080"`
	BaseURL       string `env:"MTOUR_BASE_URL" envDefault:"http://localhost:8080"`
	Env           string `env:"MTOUR_ENV" envDefault:"development"`
	LogLevel      string `env:"MTOUR_LOG_LEVEL" envDefault:"info"`
	SessionSecret string `env:"MTOUR_SESSION_SECRET,required"`

	// Document store configuration. Without a Redis URL the site runs
	// on the in-memory store and serves the bundled sample data.
	RedisURL    string        `env:"MTOUR_REDIS_URL"`
	StorePrefix string        `env:"MTOUR_STORE_PREFIX" envDefault:"mtour:"`
	LoadTimeout time.Duration `env:"MTOUR_LOAD_TIMEOUT" envDefault:"3s"`

	// Media storage configuration
	UploadsDir          string `env:"MTOUR_UPLOADS_DIR" envDefault:"./uploads"`
	CloudinaryCloudName string `env:"MTOUR_CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"MTOUR_CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"MTOUR_CLOUDINARY_API_SECRET"`
	AllowEmbeddedMedia  bool   `env:"MTOUR_ALLOW_EMBEDDED_MEDIA" envDefault:"false"`

	// AI configuration
	OpenAIAPIKey string `env:"MTOUR_OPENAI_API_KEY"`

	// Google Drive backup configuration
	GoogleClientID     string `env:"MTOUR_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"MTOUR_GOOGLE_CLIENT_SECRET"`
	BackupSchedule     string `env:"MTOUR_BACKUP_SCHEDULE"` // cron expression, empty disables the job

	// Admin bootstrap. When the password is set, the admin account is
	// provisioned (or its hash refreshed) at startup; without it the
	// back office stays locked until the registry already holds a hash.
	AdminUsername string `env:"MTOUR_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"MTOUR_ADMIN_PASSWORD"`

	// Sync configuration
	SyncDebounce time.Duration `env:"MTOUR_SYNC_DEBOUNCE" envDefault:"800ms"`
	SyncMaxWait  time.Duration `env:"MTOUR_SYNC_MAX_WAIT" envDefault:"5s"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisStore returns true if a Redis document store is configured.
func (c Config) UseRedisStore() bool {
	return c.RedisURL != ""
}

// BackupEnabled returns true if Google Drive credentials are configured.
func (c Config) BackupEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// BackupRedirectURL is the OAuth callback the consent flow returns to.
func (c Config) BackupRedirectURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/admin/backup/callback"
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("MTOUR_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("MTOUR_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("MTOUR_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.LoadTimeout <= 0 {
		return nil, fmt.Errorf("MTOUR_LOAD_TIMEOUT must be positive, got %s", cfg.LoadTimeout)
	}
	if cfg.SyncDebounce <= 0 || cfg.SyncMaxWait < cfg.SyncDebounce {
		return nil, fmt.Errorf("invalid sync debounce window: debounce=%s max_wait=%s",
			cfg.SyncDebounce, cfg.SyncMaxWait)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}

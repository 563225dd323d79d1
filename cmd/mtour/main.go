// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mangotour/mtour-go/internal/ai"
	"github.com/mangotour/mtour-go/internal/app"
	"github.com/mangotour/mtour-go/internal/backup"
	"github.com/mangotour/mtour-go/internal/config"
	"github.com/mangotour/mtour-go/internal/debounce"
	"github.com/mangotour/mtour-go/internal/docstore"
	"github.com/mangotour/mtour-go/internal/handler"
	"github.com/mangotour/mtour-go/internal/imaging"
	"github.com/mangotour/mtour-go/internal/logging"
	"github.com/mangotour/mtour-go/internal/service"
	"github.com/mangotour/mtour-go/internal/session"
	"github.com/mangotour/mtour-go/internal/upload"
	"github.com/mangotour/mtour-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "mtour - Mango Tour marketing site and back office\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_REDIS_URL        Redis URL for the document store (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_UPLOADS_DIR      Local media directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_ADMIN_PASSWORD   Bootstrap password for the admin account\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MTOUR_OPENAI_API_KEY   Enables AI trip quotes and video classification\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Println(version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime})
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Create version info from build-time injected values
	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger with an in-memory event ring feeding the admin status
	// endpoint (WARN and above are retained).
	logLevel := logging.ParseLevel(cfg.LogLevel)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	events := logging.NewEventRingHandler(textHandler)
	logger := slog.New(events)
	slog.SetDefault(logger)

	// Initialize the document store: Redis when configured, an in-memory
	// fallback otherwise. A failed Redis connection also degrades to the
	// fallback so the site stays up on the bundled sample data.
	store, remote, err := docstore.New(docstore.Config{
		RedisURL:       cfg.RedisURL,
		Prefix:         cfg.StorePrefix,
		ConnectTimeout: cfg.LoadTimeout,
	})
	if err != nil {
		slog.Warn("document store unavailable, using local fallback", "error", err)
		store = docstore.NewMemoryStore()
		remote = false
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing document store", "error", err)
		}
	}()
	if remote {
		slog.Info("document store ready", "backend", "redis", "prefix", cfg.StorePrefix)
	} else {
		slog.Warn("document store ready", "backend", "memory", "note", "changes are not persisted")
	}

	syncSvc := service.NewSyncService(store, remote, cfg.LoadTimeout, logger)

	// AI planner degrades to local estimates without an API key.
	planner := ai.NewPlanner(cfg.OpenAIAPIKey, logger)
	slog.Info("trip planner initialized", "ai", planner.Configured())

	// Upload pipeline: Cloudinary first, local disk next, embedded data
	// URIs only when explicitly allowed.
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}
	compressor := imaging.NewCompressor(imaging.DefaultMaxWidth, imaging.DefaultMaxHeight, imaging.DefaultQuality)
	backends := []upload.Uploader{}
	cloudinary, err := upload.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		slog.Warn("cloudinary backend unavailable", "error", err)
	} else {
		backends = append(backends, cloudinary)
	}
	backends = append(backends, upload.NewLocal(cfg.UploadsDir, cfg.BaseURL))
	if cfg.AllowEmbeddedMedia {
		backends = append(backends, upload.NewEmbedded())
	}
	uploads := upload.NewPipeline(compressor, logger, backends...)
	slog.Info("upload pipeline initialized", "backends", uploads.Backends())

	// Google Drive backup (optional)
	bkp := backup.NewManager(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BackupRedirectURL(), logger)
	slog.Info("drive backup", "configured", bkp.Configured())

	// Application state: load remote documents (or seed the samples) and
	// provision the admin account.
	ctx := context.Background()
	state := app.New(syncSvc, planner, debounce.Config{
		Interval: cfg.SyncDebounce,
		MaxWait:  cfg.SyncMaxWait,
	}, logger)
	state.Load(ctx)
	defer state.Stop()

	if cfg.AdminPassword != "" {
		if err := state.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return fmt.Errorf("provisioning admin account: %w", err)
		}
		slog.Info("admin account provisioned", "username", cfg.AdminUsername)
	}

	// Initialize session manager
	sessionManager := session.New(cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Scheduled Drive backups, when a schedule and credentials are set.
	// Runs only while a Drive connection is established.
	var sched *cron.Cron
	if cfg.BackupSchedule != "" && bkp.Configured() {
		sched = cron.New()
		_, err := sched.AddFunc(cfg.BackupSchedule, func() {
			if !bkp.Connected() {
				return
			}
			data, err := state.ExportSnapshot()
			if err != nil {
				slog.Error("scheduled backup export failed", "error", err)
				return
			}
			jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := bkp.Save(jobCtx, data); err != nil {
				slog.Error("scheduled backup failed", "error", err)
				return
			}
			slog.Info("scheduled backup saved", "bytes", len(data))
		})
		if err != nil {
			return fmt.Errorf("invalid backup schedule %q: %w", cfg.BackupSchedule, err)
		}
		sched.Start()
		defer sched.Stop()
		slog.Info("backup scheduler started", "schedule", cfg.BackupSchedule)
	}

	// Assemble the API
	h := handler.New(state, uploads, bkp, sessionManager, events, logger)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(cfg.UploadsDir),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env,
			"version", versionInfo.Version, "commit", versionInfo.GitCommit)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout. Pending edits are flushed by
	// state.Stop in the deferred chain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

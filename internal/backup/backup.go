// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backup stores a snapshot of the site's data as a single JSON
// file in the administrator's Google Drive. The OAuth token lives in
// memory only: a restart requires reconnecting, and nothing secret is
// ever written to the document store.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mangotour/mtour-go/internal/fault"
)

// FileName is the fixed backup object name in the admin's Drive.
const FileName = "mango_tour_data.json"

// ErrNoBackup is returned by Load when the Drive holds no backup file.
var ErrNoBackup = errors.New("backup: no backup file found")

// Manager drives the OAuth handshake and the Drive file round-trip.
type Manager struct {
	cfg    *oauth2.Config
	logger *slog.Logger

	mu    sync.Mutex
	state string
	token *oauth2.Token
}

// NewManager builds a backup manager. Empty credentials yield a manager
// that reports itself unconfigured and refuses the handshake.
func NewManager(clientID, clientSecret, redirectURL string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{logger: logger}
	if clientID != "" && clientSecret != "" {
		m.cfg = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{drive.DriveFileScope},
			Endpoint:     google.Endpoint,
		}
	}
	return m
}

// Configured reports whether OAuth credentials are present.
func (m *Manager) Configured() bool { return m.cfg != nil }

// Connected reports whether a usable token is held.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != nil && m.token.Valid()
}

// AuthURL starts the handshake: it returns the Google consent URL the
// admin must visit, bound to a fresh single-use state value.
func (m *Manager) AuthURL() (string, error) {
	if m.cfg == nil {
		return "", fault.New(fault.KindConfigurationMissing, "Google Drive backup is not configured")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = uuid.New().String()
	return m.cfg.AuthCodeURL(m.state, oauth2.AccessTypeOffline), nil
}

// Exchange completes the handshake with the code from the consent
// redirect. The state must match the one issued by AuthURL.
func (m *Manager) Exchange(ctx context.Context, state, code string) error {
	if m.cfg == nil {
		return fault.New(fault.KindConfigurationMissing, "Google Drive backup is not configured")
	}
	m.mu.Lock()
	expected := m.state
	m.state = ""
	m.mu.Unlock()

	if expected == "" || state != expected {
		return fault.New(fault.KindAuthorizationDenied, "OAuth state mismatch")
	}

	token, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		return classifyDrive("OAuth code exchange failed", err)
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	m.logger.Info("Google Drive connected")
	return nil
}

// Disconnect drops the in-memory token.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	m.token = nil
	m.mu.Unlock()
}

// Save writes the snapshot to Drive, replacing an existing backup file
// when one exists. It returns the Drive file id.
func (m *Manager) Save(ctx context.Context, data []byte) (string, error) {
	svc, err := m.service(ctx)
	if err != nil {
		return "", err
	}

	fileID, err := m.findBackup(svc)
	if err != nil {
		return "", err
	}

	if fileID == "" {
		created, err := svc.Files.Create(&drive.File{
			Name:     FileName,
			MimeType: "application/json",
		}).Media(bytes.NewReader(data)).Context(ctx).Do()
		if err != nil {
			return "", classifyDrive("failed to create backup file", err)
		}
		m.logger.Info("backup created", "file_id", created.Id, "bytes", len(data))
		return created.Id, nil
	}

	if _, err := svc.Files.Update(fileID, &drive.File{}).Media(bytes.NewReader(data)).Context(ctx).Do(); err != nil {
		return "", classifyDrive("failed to update backup file", err)
	}
	m.logger.Info("backup updated", "file_id", fileID, "bytes", len(data))
	return fileID, nil
}

// Load downloads the current backup snapshot from Drive.
func (m *Manager) Load(ctx context.Context) ([]byte, error) {
	svc, err := m.service(ctx)
	if err != nil {
		return nil, err
	}

	fileID, err := m.findBackup(svc)
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, ErrNoBackup
	}

	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, classifyDrive("failed to download backup file", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyDrive("failed to read backup file", err)
	}
	return data, nil
}

func (m *Manager) service(ctx context.Context) (*drive.Service, error) {
	if m.cfg == nil {
		return nil, fault.New(fault.KindConfigurationMissing, "Google Drive backup is not configured")
	}
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == nil {
		return nil, fault.New(fault.KindAuthorizationDenied, "Google Drive is not connected")
	}
	svc, err := drive.NewService(ctx, option.WithHTTPClient(m.cfg.Client(ctx, token)))
	if err != nil {
		return nil, classifyDrive("failed to build Drive client", err)
	}
	return svc, nil
}

// findBackup looks up the backup file by name, ignoring trashed copies.
// An empty id means no backup exists yet.
func (m *Manager) findBackup(svc *drive.Service) (string, error) {
	list, err := svc.Files.List().
		Q(fmt.Sprintf("name = '%s' and trashed = false", FileName)).
		Spaces("drive").
		Fields("files(id, name)").
		PageSize(1).
		Do()
	if err != nil {
		return "", classifyDrive("failed to list backup files", err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// classifyDrive maps Drive API failures onto the fault taxonomy.
func classifyDrive(message string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fault.Wrap(fault.KindAuthorizationDenied, message, err)
		case apiErr.Code == 413 || apiErr.Code == 429:
			return fault.Wrap(fault.KindQuotaOrSizeExceeded, message, err)
		}
		return fault.Wrap(fault.KindUnknown, message, err)
	}
	return fault.FromTransport(message, err)
}

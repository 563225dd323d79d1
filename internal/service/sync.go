// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the remote sync service: the single
// authority for moving data between local application state and the
// remote document store. It reconciles the named collections (products,
// videos, posts) and the singleton documents (settings, popup, pages),
// seeds defaults into an empty store and falls back to the bundled
// defaults whenever the store is unreachable.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mangotour/mtour-go/internal/defaults"
	"github.com/mangotour/mtour-go/internal/docstore"
	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
)

// Collection and document names in the remote store.
const (
	CollectionProducts = "products"
	CollectionVideos   = "videos"
	CollectionPosts    = "posts"
	CollectionPages    = "pages"
	CollectionUsers    = "users"

	DocSettingsCollection = "settings"
	DocSettingsID         = "global"
	DocPopupCollection    = "popup"
	DocPopupID            = "main"
)

// DefaultLoadTimeout bounds each remote call of the initial bulk load.
const DefaultLoadTimeout = 3 * time.Second

// SyncPhase is the lifecycle phase of a collection's sync state machine:
// idle -> pending (debounce timer running) -> syncing (batch in flight)
// -> synced | failed. There is no automatic retry; the next local edit
// re-triggers a sync attempt.
type SyncPhase string

const (
	PhaseIdle    SyncPhase = "idle"
	PhasePending SyncPhase = "pending"
	PhaseSyncing SyncPhase = "syncing"
	PhaseSynced  SyncPhase = "synced"
	PhaseFailed  SyncPhase = "failed"
)

// SyncState is the observable state of one collection key.
type SyncState struct {
	Phase      SyncPhase `json:"phase"`
	Error      string    `json:"error,omitempty"`
	LastSynced time.Time `json:"lastSynced,omitzero"`
}

// SyncService reconciles local state with the remote document store.
type SyncService struct {
	store       docstore.Store
	remote      bool
	loadTimeout time.Duration
	logger      *slog.Logger

	mu     sync.Mutex
	states map[string]SyncState
}

// NewSyncService creates a sync service. remote must be false when the
// store is a local stand-in rather than a configured remote; in that
// mode LoadGlobalData short-circuits to the bundled defaults and writes
// become no-ops.
func NewSyncService(store docstore.Store, remote bool, loadTimeout time.Duration, logger *slog.Logger) *SyncService {
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncService{
		store:       store,
		remote:      remote,
		loadTimeout: loadTimeout,
		logger:      logger,
		states:      make(map[string]SyncState),
	}
}

// Remote reports whether a real remote store is configured.
func (s *SyncService) Remote() bool { return s.remote }

// Documents marshals a typed slice into store documents keyed by each
// item's own id. Items without an id are skipped (defensive; the data
// model keeps ids unique and present).
func Documents[T model.Identifiable](items []T) ([]docstore.Document, error) {
	docs := make([]docstore.Document, 0, len(items))
	for _, item := range items {
		if item.DocID() == "" {
			continue
		}
		data, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encoding document %q: %w", item.DocID(), err)
		}
		docs = append(docs, docstore.Document{ID: item.DocID(), Data: data})
	}
	return docs, nil
}

// decodeDocs unmarshals store documents into a typed slice.
func decodeDocs[T any](docs []docstore.Document) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc.Data, &item); err != nil {
			return nil, fmt.Errorf("decoding document %q: %w", doc.ID, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// callCtx derives a per-call context bounded by the load timeout.
func (s *SyncService) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.loadTimeout)
}

// LoadGlobalData assembles the full application snapshot. It never
// returns an error: any failure at any step (timeout, permission denial,
// offline) yields the bundled default snapshot with UsingLocalFallback
// set, so the caller can always start.
func (s *SyncService) LoadGlobalData(ctx context.Context) *model.GlobalData {
	if !s.remote {
		s.logger.Info("remote store not configured, using bundled defaults")
		return localFallback()
	}

	data, err := s.loadRemote(ctx)
	if err != nil {
		s.logger.Warn("remote store unreachable, falling back to bundled defaults",
			"error", err)
		return localFallback()
	}
	return data
}

func localFallback() *model.GlobalData {
	data := defaults.GlobalData()
	data.UsingLocalFallback = true
	return data
}

// loadRemote fetches every collection and singleton, seeding defaults
// where the remote is empty.
func (s *SyncService) loadRemote(ctx context.Context) (*model.GlobalData, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	products, err := fetchOrSeed(ctx, s, CollectionProducts, defaults.Products())
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	videos, err := fetchOrSeed(ctx, s, CollectionVideos, defaults.Videos())
	if err != nil {
		return nil, fmt.Errorf("loading videos: %w", err)
	}
	posts, err := fetchOrSeed(ctx, s, CollectionPosts, defaults.Posts())
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}

	pages, err := s.loadPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pages: %w", err)
	}

	popup, err := s.loadPopup(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading popup: %w", err)
	}

	return &model.GlobalData{
		Settings:     settings,
		Products:     products,
		Videos:       videos,
		Posts:        posts,
		PageContents: pages,
		Popup:        popup,
	}, nil
}

// loadSettings reads settings/global, seeding the default document when
// absent. Seed failures are logged, not fatal: the defaults are
// returned either way.
func (s *SyncService) loadSettings(ctx context.Context) (model.AppSettings, error) {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	doc, err := s.store.Get(cctx, DocSettingsCollection, DocSettingsID)
	if errors.Is(err, docstore.ErrNotFound) {
		def := defaults.Settings()
		if err := s.seedDoc(ctx, DocSettingsCollection, DocSettingsID, def); err != nil {
			s.logger.Warn("failed to seed settings", "error", err)
		}
		return def, nil
	}
	if err != nil {
		return model.AppSettings{}, err
	}

	// Remote fields override defaults per field; an older document may
	// miss newer fields.
	settings := defaults.Settings()
	if err := json.Unmarshal(doc.Data, &settings); err != nil {
		return model.AppSettings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return settings, nil
}

// fetchOrSeed returns a collection's documents, writing the seed items
// through when the remote collection is empty.
func fetchOrSeed[T model.Identifiable](ctx context.Context, s *SyncService, collection string, seed []T) ([]T, error) {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	docs, err := s.store.GetAll(cctx, collection)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 && len(seed) > 0 {
		s.logger.Info("seeding empty collection", "collection", collection, "items", len(seed))
		seedDocs, err := Documents(seed)
		if err != nil {
			return nil, err
		}
		if err := s.batchSet(ctx, collection, seedDocs); err != nil {
			return nil, err
		}
		return seed, nil
	}

	return decodeDocs[T](docs)
}

// loadPages returns the per-page documents merged over the default map:
// remote overrides default per page id. An empty remote set is seeded
// with all pages in one batched write.
func (s *SyncService) loadPages(ctx context.Context) (map[string]model.PageContent, error) {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	pages := defaults.PageContents()

	docs, err := s.store.GetAll(cctx, CollectionPages)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		seedDocs := make([]docstore.Document, 0, len(pages))
		for _, page := range pages {
			data, err := json.Marshal(page)
			if err != nil {
				return nil, fmt.Errorf("encoding page %q: %w", page.ID, err)
			}
			seedDocs = append(seedDocs, docstore.Document{ID: page.ID, Data: data})
		}
		if err := s.batchSet(ctx, CollectionPages, seedDocs); err != nil {
			s.logger.Warn("failed to seed pages", "error", err)
		}
		return pages, nil
	}

	for _, doc := range docs {
		var page model.PageContent
		if err := json.Unmarshal(doc.Data, &page); err != nil {
			return nil, fmt.Errorf("decoding page %q: %w", doc.ID, err)
		}
		pages[page.ID] = page
	}
	return pages, nil
}

// loadPopup reads popup/main, seeding the default when absent.
func (s *SyncService) loadPopup(ctx context.Context) (model.PopupNotification, error) {
	cctx, cancel := s.callCtx(ctx)
	defer cancel()

	doc, err := s.store.Get(cctx, DocPopupCollection, DocPopupID)
	if errors.Is(err, docstore.ErrNotFound) {
		def := defaults.Popup()
		if err := s.seedDoc(ctx, DocPopupCollection, DocPopupID, def); err != nil {
			s.logger.Warn("failed to seed popup", "error", err)
		}
		return def, nil
	}
	if err != nil {
		return model.PopupNotification{}, err
	}

	var popup model.PopupNotification
	if err := json.Unmarshal(doc.Data, &popup); err != nil {
		return model.PopupNotification{}, fmt.Errorf("decoding popup: %w", err)
	}
	return popup, nil
}

// seedDoc merge-writes a single default document under the load timeout.
func (s *SyncService) seedDoc(ctx context.Context, collection, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.store.SetMerge(cctx, collection, id, data)
}

// batchSet writes all documents of a collection in one batch.
func (s *SyncService) batchSet(ctx context.Context, collection string, docs []docstore.Document) error {
	ops := make([]docstore.Op, 0, len(docs))
	for _, doc := range docs {
		ops = append(ops, docstore.Op{Kind: docstore.OpSet, Collection: collection, ID: doc.ID, Data: doc.Data})
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.store.Batch(cctx, ops)
}

// SyncCollection reconciles a named remote collection to exactly match
// items: every item is upserted by its id, and every remote document
// absent from items is deleted, in one atomic batch. Failures are
// normalized into the fault taxonomy and returned; local state is never
// touched, so the caller keeps the user's edits.
func (s *SyncService) SyncCollection(ctx context.Context, name string, items []docstore.Document) error {
	if !s.remote {
		s.setState(name, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
		return nil
	}

	s.setState(name, SyncState{Phase: PhaseSyncing})

	remoteIDs, err := s.store.ListIDs(ctx, name)
	if err != nil {
		return s.failSync(name, fault.FromTransport(
			fmt.Sprintf("reading remote collection %q", name), err))
	}

	keep := make(map[string]bool, len(items))
	ops := make([]docstore.Op, 0, len(items)+len(remoteIDs))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		keep[item.ID] = true
		ops = append(ops, docstore.Op{Kind: docstore.OpSet, Collection: name, ID: item.ID, Data: item.Data})
	}
	for _, id := range remoteIDs {
		if !keep[id] {
			ops = append(ops, docstore.Op{Kind: docstore.OpDelete, Collection: name, ID: id})
		}
	}

	if err := s.store.Batch(ctx, ops); err != nil {
		return s.failSync(name, s.classifyWrite(name, err))
	}

	s.setState(name, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
	s.logger.Debug("collection synced", "collection", name, "items", len(items))
	return nil
}

// classifyWrite maps a store write error into the fault taxonomy. A
// document-size violation gets the specific diagnostic: the common cause
// is a large image stored inline as text instead of uploaded.
func (s *SyncService) classifyWrite(name string, err error) error {
	if errors.Is(err, docstore.ErrDocumentTooLarge) {
		return fault.Wrap(fault.KindQuotaOrSizeExceeded,
			fmt.Sprintf("%q exceeds the store's document size limit; "+
				"a large image was likely embedded as text instead of uploaded — "+
				"remove or re-upload recently added images", name),
			err)
	}
	return fault.FromTransport(fmt.Sprintf("writing collection %q", name), err)
}

// failSync records a failed sync and returns the fault.
func (s *SyncService) failSync(name string, err error) error {
	s.setState(name, SyncState{Phase: PhaseFailed, Error: err.Error()})
	s.logger.Warn("collection sync failed", "collection", name, "error", err)
	return err
}

// SaveSettings merge-writes one top-level field of settings/global.
func (s *SyncService) SaveSettings(ctx context.Context, key string, value any) error {
	return s.saveField(ctx, DocSettingsCollection, DocSettingsID, key, value)
}

// SyncSettings merge-writes the whole settings document, tracking the
// sync state under the settings key. This is the debounced flush path.
func (s *SyncService) SyncSettings(ctx context.Context, settings model.AppSettings) error {
	if !s.remote {
		s.setState(DocSettingsCollection, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
		return nil
	}
	s.setState(DocSettingsCollection, SyncState{Phase: PhaseSyncing})
	data, err := json.Marshal(settings)
	if err != nil {
		return s.failSync(DocSettingsCollection, fmt.Errorf("encoding settings: %w", err))
	}
	if err := s.store.SetMerge(ctx, DocSettingsCollection, DocSettingsID, data); err != nil {
		return s.failSync(DocSettingsCollection, s.classifyWrite(DocSettingsCollection, err))
	}
	s.setState(DocSettingsCollection, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
	return nil
}

// SyncPopup merge-writes popup/main, tracking the sync state under the
// popup key. This is the debounced flush path.
func (s *SyncService) SyncPopup(ctx context.Context, popup model.PopupNotification) error {
	if !s.remote {
		s.setState(DocPopupCollection, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
		return nil
	}
	s.setState(DocPopupCollection, SyncState{Phase: PhaseSyncing})
	if err := s.SavePopup(ctx, popup); err != nil {
		return s.failSync(DocPopupCollection, err)
	}
	s.setState(DocPopupCollection, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
	return nil
}

// SyncPages batch-writes every page document, tracking the sync state
// under the pages key. This is the debounced flush path.
func (s *SyncService) SyncPages(ctx context.Context, pages map[string]model.PageContent) error {
	if !s.remote {
		s.setState(CollectionPages, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
		return nil
	}
	s.setState(CollectionPages, SyncState{Phase: PhaseSyncing})
	if err := s.SyncAllPages(ctx, pages); err != nil {
		return s.failSync(CollectionPages, err)
	}
	s.setState(CollectionPages, SyncState{Phase: PhaseSynced, LastSynced: time.Now()})
	return nil
}

// SavePageContent merge-writes a single page document.
func (s *SyncService) SavePageContent(ctx context.Context, id string, content model.PageContent) error {
	if !s.remote {
		return nil
	}
	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encoding page %q: %w", id, err)
	}
	if err := s.store.SetMerge(ctx, CollectionPages, id, data); err != nil {
		return s.classifyWrite(CollectionPages, err)
	}
	return nil
}

// SyncAllPages merge-writes every page document in one batch.
func (s *SyncService) SyncAllPages(ctx context.Context, pages map[string]model.PageContent) error {
	if !s.remote {
		return nil
	}
	ops := make([]docstore.Op, 0, len(pages))
	for _, page := range pages {
		data, err := json.Marshal(page)
		if err != nil {
			return fmt.Errorf("encoding page %q: %w", page.ID, err)
		}
		ops = append(ops, docstore.Op{Kind: docstore.OpSet, Collection: CollectionPages, ID: page.ID, Data: data})
	}
	if err := s.store.Batch(ctx, ops); err != nil {
		return s.classifyWrite(CollectionPages, err)
	}
	return nil
}

// SavePopup merge-writes the popup/main document.
func (s *SyncService) SavePopup(ctx context.Context, popup model.PopupNotification) error {
	if !s.remote {
		return nil
	}
	data, err := json.Marshal(popup)
	if err != nil {
		return fmt.Errorf("encoding popup: %w", err)
	}
	if err := s.store.SetMerge(ctx, DocPopupCollection, DocPopupID, data); err != nil {
		return s.classifyWrite(DocPopupCollection, err)
	}
	return nil
}

// saveField merge-writes {key: value} into a singleton document.
func (s *SyncService) saveField(ctx context.Context, collection, id, key string, value any) error {
	if !s.remote {
		return nil
	}
	data, err := json.Marshal(map[string]any{key: value})
	if err != nil {
		return fmt.Errorf("encoding %s.%s: %w", collection, key, err)
	}
	if err := s.store.SetMerge(ctx, collection, id, data); err != nil {
		return s.classifyWrite(collection, err)
	}
	return nil
}

// LoadUsers reads the user registry.
func (s *SyncService) LoadUsers(ctx context.Context) ([]model.User, error) {
	if !s.remote {
		return nil, nil
	}
	cctx, cancel := s.callCtx(ctx)
	defer cancel()
	docs, err := s.store.GetAll(cctx, CollectionUsers)
	if err != nil {
		return nil, fault.FromTransport("reading user registry", err)
	}
	return decodeDocs[model.User](docs)
}

// SaveUser merge-writes one registry entry.
func (s *SyncService) SaveUser(ctx context.Context, user model.User) error {
	if !s.remote {
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user %q: %w", user.ID, err)
	}
	if err := s.store.SetMerge(ctx, CollectionUsers, user.ID, data); err != nil {
		return s.classifyWrite(CollectionUsers, err)
	}
	return nil
}

// MarkPending records that a debounce timer is running for key.
func (s *SyncService) MarkPending(key string) {
	s.setState(key, SyncState{Phase: PhasePending})
}

// States returns a copy of the per-key sync states.
func (s *SyncService) States() map[string]SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]SyncState, len(s.states))
	for k, v := range s.states {
		out[k] = v
	}
	return out
}

func (s *SyncService) setState(key string, state SyncState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.LastSynced.IsZero() {
		if prev, ok := s.states[key]; ok {
			state.LastSynced = prev.LastSynced
		}
	}
	s.states[key] = state
}

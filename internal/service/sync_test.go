package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/mangotour/mtour-go/internal/defaults"
	"github.com/mangotour/mtour-go/internal/docstore"
	"github.com/mangotour/mtour-go/internal/fault"
	"github.com/mangotour/mtour-go/internal/model"
)

// newTestService wires a sync service onto a fresh in-memory store
// acting as the fake remote.
func newTestService(t *testing.T) (*SyncService, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	svc := NewSyncService(store, true, time.Second, slog.Default())
	return svc, store
}

// productDocs marshals products or fails the test.
func productDocs(t *testing.T, items []model.Product) []docstore.Document {
	t.Helper()
	docs, err := Documents(items)
	if err != nil {
		t.Fatalf("Documents error: %v", err)
	}
	return docs
}

// remoteIDs reads the current ids of a collection.
func remoteIDs(t *testing.T, store docstore.Store, collection string) []string {
	t.Helper()
	ids, err := store.ListIDs(context.Background(), collection)
	if err != nil {
		t.Fatalf("ListIDs error: %v", err)
	}
	return ids
}

func TestSyncCollection_UpsertAndDeleteDiff(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	initial := []model.Product{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
		{ID: "c", Title: "C"},
	}
	if err := svc.SyncCollection(ctx, CollectionProducts, productDocs(t, initial)); err != nil {
		t.Fatalf("initial sync error: %v", err)
	}

	// Drop "b", modify "a", add "d".
	next := []model.Product{
		{ID: "a", Title: "A2"},
		{ID: "c", Title: "C"},
		{ID: "d", Title: "D"},
	}
	if err := svc.SyncCollection(ctx, CollectionProducts, productDocs(t, next)); err != nil {
		t.Fatalf("second sync error: %v", err)
	}

	ids := remoteIDs(t, store, CollectionProducts)
	want := []string{"a", "c", "d"}
	if len(ids) != len(want) {
		t.Fatalf("remote ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("remote ids = %v, want %v", ids, want)
		}
	}

	doc, err := store.Get(ctx, CollectionProducts, "a")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	var got model.Product
	if err := json.Unmarshal(doc.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "A2" {
		t.Errorf("upsert did not apply latest fields: %+v", got)
	}
}

func TestSyncCollection_Idempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	items := []model.Product{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	if err := svc.SyncCollection(ctx, CollectionProducts, productDocs(t, items)); err != nil {
		t.Fatalf("first sync error: %v", err)
	}
	first := remoteIDs(t, store, CollectionProducts)

	if err := svc.SyncCollection(ctx, CollectionProducts, productDocs(t, items)); err != nil {
		t.Fatalf("second sync error: %v", err)
	}
	second := remoteIDs(t, store, CollectionProducts)

	if len(first) != len(second) {
		t.Fatalf("second sync changed the collection: %v -> %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second sync changed the collection: %v -> %v", first, second)
		}
	}
}

func TestSyncCollection_SkipsItemsWithoutID(t *testing.T) {
	svc, store := newTestService(t)

	docs := []docstore.Document{
		{ID: "a", Data: json.RawMessage(`{"id":"a"}`)},
		{ID: "", Data: json.RawMessage(`{"title":"orphan"}`)},
	}
	if err := svc.SyncCollection(context.Background(), CollectionVideos, docs); err != nil {
		t.Fatalf("sync error: %v", err)
	}
	ids := remoteIDs(t, store, CollectionVideos)
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("remote ids = %v, want [a]", ids)
	}
}

func TestSyncCollection_DocumentTooLargeFault(t *testing.T) {
	svc, _ := newTestService(t)

	big := make([]byte, docstore.MaxDocumentSize+1)
	for i := range big {
		big[i] = 'x'
	}
	data, _ := json.Marshal(map[string]string{"image": string(big)})
	docs := []docstore.Document{{ID: "huge", Data: data}}

	err := svc.SyncCollection(context.Background(), CollectionProducts, docs)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !fault.Is(err, fault.KindQuotaOrSizeExceeded) {
		t.Errorf("fault kind = %v, want quota_or_size_exceeded", fault.KindOf(err))
	}

	states := svc.States()
	if states[CollectionProducts].Phase != PhaseFailed {
		t.Errorf("sync state = %+v, want failed", states[CollectionProducts])
	}
}

func TestLoadGlobalData_NotConfigured(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewSyncService(store, false, time.Second, slog.Default())

	data := svc.LoadGlobalData(context.Background())
	if !data.UsingLocalFallback {
		t.Error("expected UsingLocalFallback = true without remote config")
	}
	if len(data.Products) != len(defaults.Products()) {
		t.Errorf("products = %d, want bundled defaults", len(data.Products))
	}
}

func TestLoadGlobalData_SeedsEmptyStoreOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first := svc.LoadGlobalData(ctx)
	if first.UsingLocalFallback {
		t.Fatal("unexpected fallback against a healthy store")
	}
	if len(first.Products) != 3 {
		t.Fatalf("first load products = %d, want 3 bundled defaults", len(first.Products))
	}
	if got := len(remoteIDs(t, store, CollectionProducts)); got != 3 {
		t.Fatalf("seeded products = %d, want 3", got)
	}

	// Second load must read back the same three without duplicating.
	second := svc.LoadGlobalData(ctx)
	if len(second.Products) != 3 {
		t.Errorf("second load products = %d, want 3", len(second.Products))
	}
	if got := len(remoteIDs(t, store, CollectionProducts)); got != 3 {
		t.Errorf("products after second load = %d, want 3 (no re-seed)", got)
	}
	if got := len(remoteIDs(t, store, CollectionPages)); got != len(model.PageIDs) {
		t.Errorf("seeded pages = %d, want %d", got, len(model.PageIDs))
	}
}

func TestLoadGlobalData_MergesRemotePagesOverDefaults(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	custom := model.PageContent{ID: model.PageGolf, Title: "골프", HeroTitle: "커스텀 골프"}
	data, _ := json.Marshal(custom)
	if err := store.SetMerge(ctx, CollectionPages, model.PageGolf, data); err != nil {
		t.Fatalf("SetMerge error: %v", err)
	}

	global := svc.LoadGlobalData(ctx)
	if global.PageContents[model.PageGolf].HeroTitle != "커스텀 골프" {
		t.Errorf("remote page did not override default: %+v", global.PageContents[model.PageGolf])
	}
	if _, ok := global.PageContents[model.PageFood]; !ok {
		t.Error("default page missing from merged map")
	}
}

// slowStore blocks every read long enough to trip the load timeout.
type slowStore struct {
	*docstore.MemoryStore
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	select {
	case <-time.After(s.delay):
		return s.MemoryStore.Get(ctx, collection, id)
	case <-ctx.Done():
		return docstore.Document{}, ctx.Err()
	}
}

func TestLoadGlobalData_TimeoutFallsBackToDefaults(t *testing.T) {
	store := &slowStore{MemoryStore: docstore.NewMemoryStore(), delay: time.Second}
	svc := NewSyncService(store, true, 50*time.Millisecond, slog.Default())

	start := time.Now()
	data := svc.LoadGlobalData(context.Background())
	elapsed := time.Since(start)

	if !data.UsingLocalFallback {
		t.Error("expected fallback snapshot on timeout")
	}
	if len(data.Products) != 3 {
		t.Errorf("fallback products = %d, want 3", len(data.Products))
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("fallback took %v, want well under the per-call bound", elapsed)
	}
}

// failingStore rejects every operation.
type failingStore struct {
	*docstore.MemoryStore
}

var errDown = errors.New("connection refused")

func (s *failingStore) Get(context.Context, string, string) (docstore.Document, error) {
	return docstore.Document{}, errDown
}

func (s *failingStore) GetAll(context.Context, string) ([]docstore.Document, error) {
	return nil, errDown
}

func TestLoadGlobalData_ErrorFallsBackToDefaults(t *testing.T) {
	store := &failingStore{MemoryStore: docstore.NewMemoryStore()}
	svc := NewSyncService(store, true, time.Second, slog.Default())

	data := svc.LoadGlobalData(context.Background())
	if !data.UsingLocalFallback {
		t.Error("expected fallback snapshot on store error")
	}
}

func TestSaveSettings_MergesSingleField(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := svc.SaveSettings(ctx, model.SettingsKeyHeroImages, []string{"x"}); err != nil {
		t.Fatalf("SaveSettings error: %v", err)
	}
	if err := svc.SaveSettings(ctx, model.SettingsKeyAIPublic, false); err != nil {
		t.Fatalf("SaveSettings error: %v", err)
	}

	doc, err := store.Get(ctx, DocSettingsCollection, DocSettingsID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(doc.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got["heroImages"]; !ok {
		t.Errorf("first field lost by later merge: %v", got)
	}
	if got["isAIPublic"] != false {
		t.Errorf("isAIPublic = %v, want false", got["isAIPublic"])
	}
}

func TestSyncAllPages_WritesEveryPage(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	if err := svc.SyncAllPages(ctx, defaults.PageContents()); err != nil {
		t.Fatalf("SyncAllPages error: %v", err)
	}
	if got := len(remoteIDs(t, store, CollectionPages)); got != len(model.PageIDs) {
		t.Errorf("pages written = %d, want %d", got, len(model.PageIDs))
	}
}

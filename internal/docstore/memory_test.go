package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// newTestStore creates a memory store and registers cleanup.
func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// mustSet merge-writes a document or fails the test.
func mustSet(t *testing.T, s Store, collection, id, data string) {
	t.Helper()
	if err := s.SetMerge(context.Background(), collection, id, json.RawMessage(data)); err != nil {
		t.Fatalf("SetMerge(%s/%s) error: %v", collection, id, err)
	}
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	mustSet(t, s, "products", "p1", `{"title":"Golf"}`)

	doc, err := s.Get(context.Background(), "products", "p1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !bytes.Contains(doc.Data, []byte(`"Golf"`)) {
		t.Errorf("unexpected document data: %s", doc.Data)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "products", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_SetMerge_ShallowMerge(t *testing.T) {
	s := newTestStore(t)
	mustSet(t, s, "settings", "global", `{"heroImages":["a"],"isAIPublic":true}`)
	mustSet(t, s, "settings", "global", `{"heroImages":["b","c"]}`)

	doc, err := s.Get(context.Background(), "settings", "global")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(doc.Data, &got); err != nil {
		t.Fatalf("decoding merged doc: %v", err)
	}
	if imgs, ok := got["heroImages"].([]any); !ok || len(imgs) != 2 {
		t.Errorf("heroImages not overwritten: %v", got["heroImages"])
	}
	if got["isAIPublic"] != true {
		t.Errorf("untouched field lost in merge: %v", got)
	}
}

func TestMemoryStore_ListIDs(t *testing.T) {
	s := newTestStore(t)
	mustSet(t, s, "videos", "v2", `{}`)
	mustSet(t, s, "videos", "v1", `{}`)

	ids, err := s.ListIDs(context.Background(), "videos")
	if err != nil {
		t.Fatalf("ListIDs error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "v1" || ids[1] != "v2" {
		t.Errorf("ListIDs = %v, want [v1 v2]", ids)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := newTestStore(t)
	mustSet(t, s, "posts", "a", `{}`)

	if err := s.Delete(context.Background(), "posts", "a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(context.Background(), "posts", "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing document is not an error.
	if err := s.Delete(context.Background(), "posts", "missing"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	s := newTestStore(t)
	mustSet(t, s, "products", "stale", `{}`)

	ops := []Op{
		{Kind: OpSet, Collection: "products", ID: "p1", Data: json.RawMessage(`{"title":"A"}`)},
		{Kind: OpSet, Collection: "products", ID: "p2", Data: json.RawMessage(`{"title":"B"}`)},
		{Kind: OpDelete, Collection: "products", ID: "stale"},
	}
	if err := s.Batch(context.Background(), ops); err != nil {
		t.Fatalf("Batch error: %v", err)
	}

	ids, _ := s.ListIDs(context.Background(), "products")
	if len(ids) != 2 || ids[0] != "p1" || ids[1] != "p2" {
		t.Errorf("after batch, ids = %v, want [p1 p2]", ids)
	}
}

func TestMemoryStore_DocumentTooLarge(t *testing.T) {
	s := newTestStore(t)

	big := `{"image":"` + strings.Repeat("x", MaxDocumentSize) + `"}`
	err := s.SetMerge(context.Background(), "products", "huge", json.RawMessage(big))
	if !errors.Is(err, ErrDocumentTooLarge) {
		t.Errorf("expected ErrDocumentTooLarge, got %v", err)
	}

	// A batch containing an oversized write fails entirely.
	ops := []Op{
		{Kind: OpSet, Collection: "products", ID: "ok", Data: json.RawMessage(`{}`)},
		{Kind: OpSet, Collection: "products", ID: "huge", Data: json.RawMessage(big)},
	}
	if err := s.Batch(context.Background(), ops); !errors.Is(err, ErrDocumentTooLarge) {
		t.Errorf("expected batch ErrDocumentTooLarge, got %v", err)
	}
	if _, err := s.Get(context.Background(), "products", "ok"); !errors.Is(err, ErrNotFound) {
		t.Errorf("partial batch applied: %v", err)
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Close()

	if _, err := s.GetAll(context.Background(), "products"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed, got %v", err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed from Ping, got %v", err)
	}
}

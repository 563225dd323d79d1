package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("MTOUR_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: MTOUR_TEST_REDIS_URL not set")
	}
	return url
}

func newRedisTestStore(t *testing.T) *RedisStore {
	t.Helper()
	url := skipIfNoRedis(t)

	s, err := NewRedisStoreFromURL(url, "mtour-test:")
	if err != nil {
		t.Fatalf("failed to create Redis store: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		ids, _ := s.ListIDs(ctx, "products")
		for _, id := range ids {
			_ = s.Delete(ctx, "products", id)
		}
		_ = s.Close()
	})
	return s
}

func TestRedisStore_Basic(t *testing.T) {
	s := newRedisTestStore(t)
	ctx := context.Background()

	if err := s.SetMerge(ctx, "products", "p1", json.RawMessage(`{"title":"Golf","price":100}`)); err != nil {
		t.Fatalf("SetMerge error: %v", err)
	}
	if err := s.SetMerge(ctx, "products", "p1", json.RawMessage(`{"price":200}`)); err != nil {
		t.Fatalf("merge SetMerge error: %v", err)
	}

	doc, err := s.Get(ctx, "products", "p1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	var got struct {
		Title string `json:"title"`
		Price int    `json:"price"`
	}
	if err := json.Unmarshal(doc.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Golf" || got.Price != 200 {
		t.Errorf("merged doc = %+v, want title Golf price 200", got)
	}
}

func TestRedisStore_BatchAndList(t *testing.T) {
	s := newRedisTestStore(t)
	ctx := context.Background()

	ops := []Op{
		{Kind: OpSet, Collection: "products", ID: "a", Data: json.RawMessage(`{"n":1}`)},
		{Kind: OpSet, Collection: "products", ID: "b", Data: json.RawMessage(`{"n":2}`)},
	}
	if err := s.Batch(ctx, ops); err != nil {
		t.Fatalf("Batch error: %v", err)
	}

	ids, err := s.ListIDs(ctx, "products")
	if err != nil {
		t.Fatalf("ListIDs error: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("ListIDs = %v, want 2 ids", ids)
	}

	if err := s.Batch(ctx, []Op{{Kind: OpDelete, Collection: "products", ID: "a"}}); err != nil {
		t.Fatalf("delete batch error: %v", err)
	}
	if _, err := s.Get(ctx, "products", "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after batch delete, got %v", err)
	}
}

package storage

import (
	"context"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	ctx := context.Background()

	if _, ok, _ := store.Get(ctx, "luxestore_cart"); ok {
		t.Error("expected absent key before first set")
	}

	if err := store.Set(ctx, "luxestore_cart", `[{"id":1}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, ok, err := store.Get(ctx, "luxestore_cart")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || val != `[{"id":1}]` {
		t.Errorf("expected stored document back, got %q (ok=%v)", val, ok)
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	store.Set(ctx, "luxestore_session", `{"id":1}`)
	store.Set(ctx, "luxestore_session", `{"id":2}`)

	val, _, _ := store.Get(ctx, "luxestore_session")
	if val != `{"id":2}` {
		t.Errorf("expected last write to win, got %q", val)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	if err := store.Delete(ctx, "never-written"); err != nil {
		t.Errorf("deleting an absent key should be a no-op, got: %v", err)
	}

	store.Set(ctx, "luxestore_session", "{}")
	if err := store.Delete(ctx, "luxestore_session"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "luxestore_session"); ok {
		t.Error("expected key gone after delete")
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rl1809/luxestore/internal/port"
)

// Storage keys. Everything is a JSON document under the application
// prefix applied by the store adapter.
const (
	keyUsers          = "luxestore_users"
	keyLegacyUsers    = "users" // read-only fallback for pre-prefix data
	keySession        = "luxestore_session"
	keyCart           = "luxestore_cart"
	keyWishlist       = "luxestore_wishlist"
	keyRecentlyViewed = "recentlyViewed"
	keyNewsletter     = "newsletterEmails"
)

// readDoc unmarshals the document at key into out. Absent or malformed
// documents fail soft: out is left untouched and the result is false.
// The corrupt value is not rewritten; the next save replaces it.
func readDoc(ctx context.Context, store port.KeyValueStore, key string, out any) bool {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

// writeDoc marshals v and persists it under key.
func writeDoc(ctx context.Context, store port.KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

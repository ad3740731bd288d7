package port

import "context"

// KeyValueStore is the persistent string-keyed document store every
// ledger writes through. Implementations namespace keys under the
// application prefix. Values are opaque to the store; malformed
// documents are the reader's problem and must fail soft.
type KeyValueStore interface {
	// Get returns the raw document for key, or ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the document for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

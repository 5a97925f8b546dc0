package shared

import "context"

// UnitOfWork demarcates one all-or-nothing persistence transaction.
// The callback runs with a transaction-bearing context; repositories called
// with that context join the open transaction. Commit happens on clean return,
// rollback on error or panic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ObjectStorage uploads and deletes binary blobs by key and builds public
// URLs. It is deliberately outside the transactional boundary: callers order
// their writes so the relational commit stays the single source of truth.
type ObjectStorage interface {
	// Upload stores data under the given key.
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// Delete removes the object with the given key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// BuildKey generates a collision-resistant key of the form
	// {folder}/{uuid}{ext} for the given original filename.
	BuildKey(folder, filename string) string

	// PublicURL returns the deterministic public URL for a key.
	PublicURL(key string) string
}

// Package storage provides clients for content-addressed blob stores.
// A store accepts raw bytes and returns a stable, reproducible
// identifier for them; submitting the same bytes twice yields the same
// identifier. The reconciliation engine only consumes the Store
// interface — concrete clients exist for IPFS-compatible HTTP APIs and
// S3-compatible object stores.
package storage

import "context"

// Store is a content-addressed blob store.
type Store interface {
	// Insert stores data and returns its content identifier.
	// The identifier is opaque to callers but stable: inserting
	// identical bytes again returns the same identifier.
	Insert(ctx context.Context, data []byte) (string, error)
}

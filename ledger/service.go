// Package ledger provides the client side of the authoritative file
// registry: an append-only record of (storage identifier, display name)
// pairs owned by the caller's identity. Every mutation goes through an
// explicit, fallible confirmation step — the registry daemon holds the
// signing keys and may reject a registration outright (the user
// declines to sign) or fail it after broadcast.
package ledger

import "context"

// Entry is one committed ledger record. Entries are immutable between
// snapshot refreshes; the engine never mutates them locally.
type Entry struct {
	StorageID string `json:"storage_id"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"` // epoch seconds, set by the ledger
}

// Service is the primary interface for ledger interaction.
type Service interface {
	// Register durably records (storageID, name) under the caller's
	// identity. It blocks until the registration settles. A signer
	// decline or on-chain failure is returned as a *RegistrationError.
	Register(ctx context.Context, storageID, name string) error

	// ListEntries returns the caller's committed entries in ledger order.
	ListEntries(ctx context.Context) ([]Entry, error)

	// RemoveEntry deletes the entry at the given position (index into
	// the ListEntries ordering). Subject to the same confirmation step
	// as Register.
	RemoveEntry(ctx context.Context, position int) error
}

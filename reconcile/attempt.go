// Package reconcile drives file submissions through content hashing,
// deduplication, blob-store insertion, and ledger registration. The
// blob store and the ledger offer no joint transaction, so the engine
// tracks every in-flight submission in a persisted pending queue and a
// persisted dedup index: content that was stored but never registered
// is never re-uploaded, and a failed registration can be retried up to
// a bounded number of times before the attempt is evicted.
package reconcile

// MaxRetries is the retry cap for ledger registration. An attempt whose
// retry count reaches this value is evicted from the pending queue and
// cannot be retried again. The threshold is applied consistently: the
// eviction happens as soon as the count reaches MaxRetries, so counts
// 0, 1 and 2 are the only values ever visible in the queue.
const MaxRetries = 3

// Status is the lifecycle state of a pending upload attempt.
type Status string

const (
	// StatusUploading: blob-store insertion is in flight.
	StatusUploading Status = "uploading"

	// StatusConfirming: content is stored; ledger registration is in flight.
	StatusConfirming Status = "confirming"

	// StatusFailed: ledger registration failed; the attempt can be
	// retried while its retry count is below MaxRetries.
	StatusFailed Status = "failed"

	// StatusRetrying: a user-triggered retry is in flight.
	StatusRetrying Status = "retrying"
)

// AttemptError captures why a registration failed, in structured form.
// Kind is "user_rejected" when the signer declined, "other" otherwise.
type AttemptError struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Attempt is one in-flight or recently-failed submission. Attempts live
// in the pending queue until they commit to the ledger or are evicted.
type Attempt struct {
	// ID is locally unique and monotonic (epoch milliseconds at
	// creation, bumped on collision). Stable for the attempt's lifetime.
	ID int64 `json:"id"`

	// Name is the user-supplied display name. Unique, case-insensitive,
	// across committed ledger entries and pending attempts.
	Name string `json:"name"`

	// ContentDigest is the hex digest of the source bytes, computed
	// once at creation.
	ContentDigest string `json:"digest"`

	// StorageID is set exactly when the blob-store phase has completed
	// for this attempt.
	StorageID string `json:"storage_id,omitempty"`

	Status     Status        `json:"status"`
	RetryCount int           `json:"retries"`
	LastError  *AttemptError `json:"error,omitempty"`

	// CreatedAt is epoch seconds, for display and audit.
	CreatedAt int64 `json:"created_at"`
}

// expired reports whether the attempt has exhausted its retries and
// must be evicted.
func (a *Attempt) expired() bool {
	return a.RetryCount >= MaxRetries
}

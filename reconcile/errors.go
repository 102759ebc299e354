package reconcile

import "errors"

var (
	// ErrEmptyName indicates a submission without a display name.
	ErrEmptyName = errors.New("reconcile: display name is required")

	// ErrDuplicateName indicates the display name collides with a
	// committed ledger entry or another pending attempt. Not retryable;
	// resubmit under a different name.
	ErrDuplicateName = errors.New("reconcile: a file with this name already exists")

	// ErrAlreadyOnLedger indicates the content digest is already
	// registered on the ledger. Not retryable.
	ErrAlreadyOnLedger = errors.New("reconcile: this file is already registered on the ledger")

	// ErrStorageUnavailable indicates the blob store could not accept
	// the content. The attempt is discarded rather than queued: no
	// resource was consumed, so the caller simply resubmits.
	ErrStorageUnavailable = errors.New("reconcile: blob store unavailable")

	// ErrMaxRetriesExceeded indicates the attempt reached the retry cap
	// and was evicted from the pending queue.
	ErrMaxRetriesExceeded = errors.New("reconcile: maximum retry attempts reached, file removed from pending")

	// ErrNotFound indicates no pending attempt exists with the given id.
	ErrNotFound = errors.New("reconcile: pending attempt not found")

	// ErrNotRetryable indicates the attempt failed before the blob-store
	// phase completed and must be resubmitted, not retried.
	ErrNotRetryable = errors.New("reconcile: attempt has no stored content, resubmit instead")

	// ErrConfirmRemoval indicates the attempt's content is stored but
	// not registered; removal must be explicitly confirmed.
	ErrConfirmRemoval = errors.New("reconcile: content is stored but unregistered, confirm removal")

	// ErrDigestConflict indicates an attempt to record a different
	// storage identifier for an already-known digest. The store is
	// content-addressed, so this should not occur.
	ErrDigestConflict = errors.New("reconcile: conflicting storage identifier for known digest")
)

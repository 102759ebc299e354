package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/filedger/libfiledger-go/digest"
	"github.com/filedger/libfiledger-go/kv"
	"github.com/filedger/libfiledger-go/ledger"
	"github.com/filedger/libfiledger-go/storage"
)

// Engine reconciles file submissions across the blob store and the
// ledger. It is the only owner of the pending queue and the dedup
// index; observers read snapshots, never shared references.
//
// The two backends offer no joint transaction, so the engine's job is
// to guarantee that content paid for in bandwidth and storage is never
// silently lost: a stored-but-unregistered blob stays in the dedup
// index forever, and the registration half can be retried from the
// pending queue until it commits or exhausts its retries.
//
// The engine mutex serializes all queue, index and snapshot mutations.
// Network calls to the collaborators happen outside the mutex — they
// are the suspension points, and multiple attempts may be in flight
// through them concurrently.
type Engine struct {
	store  storage.Store
	ledger ledger.Service

	mu       sync.Mutex
	queue    *PendingQueue
	index    *DedupIndex
	snapshot []ledger.Entry
}

// NewEngine creates an engine with the given collaborators, loading
// queue and index state from the persistence store. The ledger snapshot
// starts empty; call RefreshLedger before the first Submit to enable
// duplicate detection against committed entries.
func NewEngine(store storage.Store, svc ledger.Service, state kv.Store) *Engine {
	return &Engine{
		store:  store,
		ledger: svc,
		queue:  NewPendingQueue(state),
		index:  NewDedupIndex(state),
	}
}

// Submit drives one file submission: hash, duplicate pre-checks, blob
// store insertion, ledger registration.
//
// Pre-check failures (ErrAlreadyOnLedger, ErrDuplicateName) and storage
// failures (ErrStorageUnavailable) leave no queue state behind. A
// registration failure leaves the attempt queued in status failed and
// is returned alongside a copy of the attempt, so callers see both the
// error and the retryable state.
func (e *Engine) Submit(ctx context.Context, data []byte, name string) (Attempt, error) {
	if strings.TrimSpace(name) == "" {
		return Attempt{}, ErrEmptyName
	}

	dgst := digest.Sum(data)

	e.mu.Lock()
	if e.onLedgerLocked(dgst) {
		e.mu.Unlock()
		return Attempt{}, ErrAlreadyOnLedger
	}
	if e.committedNameLocked(name) {
		e.mu.Unlock()
		return Attempt{}, ErrDuplicateName
	}

	// Dedup hit: the content is already in the blob store, skip the
	// insertion phase entirely and go straight to registration.
	if storageID, ok := e.index.Lookup(dgst); ok {
		att, err := e.queue.CreateConfirming(name, dgst, storageID)
		e.mu.Unlock()
		if err != nil {
			return Attempt{}, err
		}
		return e.register(ctx, att)
	}

	att, err := e.queue.Create(name, dgst)
	e.mu.Unlock()
	if err != nil {
		return Attempt{}, err
	}

	storageID, err := e.store.Insert(ctx, data)
	if err != nil {
		// No resource was consumed: discard the attempt instead of
		// queueing it as failed. The caller resubmits.
		e.mu.Lock()
		_ = e.queue.Remove(att.ID)
		e.mu.Unlock()
		return Attempt{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	e.mu.Lock()
	if err := e.index.Record(dgst, storageID); err != nil {
		e.mu.Unlock()
		return Attempt{}, err
	}
	err = e.queue.Transition(att.ID, StatusConfirming, func(a *Attempt) {
		a.StorageID = storageID
	})
	e.mu.Unlock()
	if err != nil {
		return Attempt{}, err
	}

	att.Status = StatusConfirming
	att.StorageID = storageID
	return e.register(ctx, att)
}

// Retry re-attempts ledger registration for a previously failed
// attempt. The attempt must have completed its blob-store phase; one
// that failed earlier can only be resubmitted.
func (e *Engine) Retry(ctx context.Context, id int64) (Attempt, error) {
	e.mu.Lock()
	att, ok := e.queue.Get(id)
	if !ok {
		e.mu.Unlock()
		return Attempt{}, ErrNotFound
	}
	if att.StorageID == "" {
		e.mu.Unlock()
		return Attempt{}, ErrNotRetryable
	}
	if att.expired() {
		// Stale persisted state; evict instead of attempting.
		_ = e.queue.Remove(id)
		e.mu.Unlock()
		return Attempt{}, ErrMaxRetriesExceeded
	}
	err := e.queue.Transition(id, StatusRetrying, func(a *Attempt) {
		a.LastError = nil
	})
	e.mu.Unlock()
	if err != nil {
		return Attempt{}, err
	}

	att.Status = StatusRetrying
	att.LastError = nil
	return e.register(ctx, att)
}

// register performs the ledger-registration phase for an attempt whose
// content is stored. On success the attempt leaves the queue and the
// ledger snapshot is refreshed; on failure the retry count advances and
// the attempt either returns to status failed or is evicted at the cap.
func (e *Engine) register(ctx context.Context, att Attempt) (Attempt, error) {
	regErr := e.ledger.Register(ctx, att.StorageID, att.Name)

	if regErr == nil {
		e.mu.Lock()
		_ = e.queue.Remove(att.ID)
		e.mu.Unlock()

		// Best-effort refresh; the snapshot is stale-but-safe until the
		// next mutating call if the ledger is briefly unreadable.
		_ = e.RefreshLedger(ctx)
		return att, nil
	}

	newCount := att.RetryCount + 1

	e.mu.Lock()
	defer e.mu.Unlock()

	if newCount >= MaxRetries {
		_ = e.queue.Remove(att.ID)
		return Attempt{}, fmt.Errorf("%w: %s", ErrMaxRetriesExceeded, regErr.Error())
	}

	lastErr := classifyError(regErr)
	err := e.queue.Transition(att.ID, StatusFailed, func(a *Attempt) {
		a.RetryCount = newCount
		a.LastError = lastErr
	})
	if err != nil {
		return Attempt{}, err
	}

	att.Status = StatusFailed
	att.RetryCount = newCount
	att.LastError = lastErr
	return att, regErr
}

// RemovePending deletes a pending attempt. When the attempt's content
// is already stored but not registered, confirmed must be true: the
// caller acknowledges that the stored blob will have no ledger entry.
// This is a warning gate, not a correctness rule — removal always
// succeeds once confirmed.
func (e *Engine) RemovePending(id int64, confirmed bool) (Attempt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	att, ok := e.queue.Get(id)
	if !ok {
		return Attempt{}, ErrNotFound
	}
	if att.StorageID != "" && !confirmed {
		return att, ErrConfirmRemoval
	}
	if err := e.queue.Remove(id); err != nil {
		return Attempt{}, err
	}
	return att, nil
}

// ListPending returns copies of all pending attempts in creation order.
func (e *Engine) ListPending() []Attempt {
	return e.queue.List()
}

// RefreshLedger replaces the cached ledger snapshot with a fresh one.
func (e *Engine) RefreshLedger(ctx context.Context) error {
	entries, err := e.ledger.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("reconcile: refresh ledger: %w", err)
	}
	e.mu.Lock()
	e.snapshot = entries
	e.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the cached ledger snapshot.
func (e *Engine) Snapshot() []ledger.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ledger.Entry, len(e.snapshot))
	copy(out, e.snapshot)
	return out
}

// Entries returns the cached ledger snapshot with the filter applied.
func (e *Engine) Entries(f Filter) []ledger.Entry {
	return FilterEntries(e.Snapshot(), f)
}

// RemoveEntry deletes a committed ledger entry by its position in the
// snapshot ordering, then refreshes the snapshot.
func (e *Engine) RemoveEntry(ctx context.Context, position int) error {
	if err := e.ledger.RemoveEntry(ctx, position); err != nil {
		return err
	}
	return e.RefreshLedger(ctx)
}

// onLedgerLocked reports whether the digest is already registered on
// the ledger: either an entry's identifier is the digest itself
// (digest-addressed stores) or the dedup index maps the digest to an
// identifier present in the snapshot.
func (e *Engine) onLedgerLocked(dgst string) bool {
	for _, entry := range e.snapshot {
		if digest.Equal(entry.StorageID, dgst) {
			return true
		}
	}
	if storageID, ok := e.index.Lookup(dgst); ok {
		for _, entry := range e.snapshot {
			if entry.StorageID == storageID {
				return true
			}
		}
	}
	return false
}

// committedNameLocked reports whether name collides case-insensitively
// with a committed ledger entry.
func (e *Engine) committedNameLocked(name string) bool {
	for _, entry := range e.snapshot {
		if strings.EqualFold(entry.Name, name) {
			return true
		}
	}
	return false
}

// classifyError converts a ledger failure into the structured error
// persisted on the attempt.
func classifyError(err error) *AttemptError {
	if ledger.UserRejected(err) {
		return &AttemptError{
			Message: "transaction canceled by user",
			Kind:    ledger.KindUserRejected.String(),
		}
	}
	return &AttemptError{
		Message: err.Error(),
		Kind:    ledger.KindOther.String(),
	}
}

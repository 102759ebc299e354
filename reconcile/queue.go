package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/filedger/libfiledger-go/kv"
)

// queueKey is the kv key the queue persists under.
const queueKey = "pending_files"

// PendingQueue is the ordered, persisted collection of in-flight upload
// attempts. Every mutation rewrites the whole queue to the backing
// store before returning, so a mutation is durable by the time the next
// one is applied. Attempts whose retry count reached MaxRetries are
// evicted at load time and after every mutation; an expired attempt is
// never visible to callers.
type PendingQueue struct {
	mu       sync.Mutex
	attempts []*Attempt
	store    kv.Store
}

// NewPendingQueue loads the queue from store. Missing or unparsable
// persisted data yields an empty queue, never an error — local state
// corruption must not block startup.
func NewPendingQueue(store kv.Store) *PendingQueue {
	q := &PendingQueue{store: store}

	raw, ok, err := store.Get(queueKey)
	if err == nil && ok {
		var attempts []*Attempt
		if json.Unmarshal([]byte(raw), &attempts) == nil {
			q.attempts = attempts
		}
	}
	q.evictLocked()
	return q
}

// Create appends a new attempt in status uploading with a zero retry
// count. Fails with ErrDuplicateName if name collides case-insensitively
// with another pending attempt.
func (q *PendingQueue) Create(name, contentDigest string) (Attempt, error) {
	return q.create(name, contentDigest, "", StatusUploading)
}

// CreateConfirming appends a new attempt that skips the blob-store
// phase: the content is already stored under storageID (dedup hit), so
// the attempt starts in status confirming.
func (q *PendingQueue) CreateConfirming(name, contentDigest, storageID string) (Attempt, error) {
	return q.create(name, contentDigest, storageID, StatusConfirming)
}

func (q *PendingQueue) create(name, contentDigest, storageID string, status Status) (Attempt, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, a := range q.attempts {
		if strings.EqualFold(a.Name, name) {
			return Attempt{}, ErrDuplicateName
		}
	}

	a := &Attempt{
		ID:            q.nextIDLocked(),
		Name:          name,
		ContentDigest: contentDigest,
		StorageID:     storageID,
		Status:        status,
		CreatedAt:     time.Now().Unix(),
	}
	q.attempts = append(q.attempts, a)
	if err := q.persistLocked(); err != nil {
		q.attempts = q.attempts[:len(q.attempts)-1]
		return Attempt{}, err
	}
	return *a, nil
}

// nextIDLocked returns a monotonic id: creation time in epoch
// milliseconds, bumped past the last assigned id on clock collision.
func (q *PendingQueue) nextIDLocked() int64 {
	id := time.Now().UnixMilli()
	for _, a := range q.attempts {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	return id
}

// Transition atomically updates one attempt: the status is set, mutate
// (if non-nil) adjusts the other mutable fields, expired attempts are
// evicted, and the queue is persisted. Other entries keep their order.
func (q *PendingQueue) Transition(id int64, status Status, mutate func(*Attempt)) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	a := q.findLocked(id)
	if a == nil {
		return ErrNotFound
	}
	a.Status = status
	if mutate != nil {
		mutate(a)
	}
	q.evictLocked()
	return q.persistLocked()
}

// Remove deletes the attempt with the given id.
func (q *PendingQueue) Remove(id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, a := range q.attempts {
		if a.ID == id {
			q.attempts = append(q.attempts[:i], q.attempts[i+1:]...)
			return q.persistLocked()
		}
	}
	return ErrNotFound
}

// EvictExpired removes every attempt whose retry count reached
// MaxRetries and returns how many were evicted.
func (q *PendingQueue) EvictExpired() (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.evictLocked()
	if n == 0 {
		return 0, nil
	}
	return n, q.persistLocked()
}

func (q *PendingQueue) evictLocked() int {
	live := q.attempts[:0]
	evicted := 0
	for _, a := range q.attempts {
		if a.expired() {
			evicted++
			continue
		}
		live = append(live, a)
	}
	q.attempts = live
	return evicted
}

// Get returns a copy of the attempt with the given id.
func (q *PendingQueue) Get(id int64) (Attempt, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if a := q.findLocked(id); a != nil {
		return *a, true
	}
	return Attempt{}, false
}

// List returns copies of all pending attempts in creation order.
func (q *PendingQueue) List() []Attempt {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Attempt, len(q.attempts))
	for i, a := range q.attempts {
		out[i] = *a
	}
	return out
}

// HasName reports whether a pending attempt already uses name
// (case-insensitive).
func (q *PendingQueue) HasName(name string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, a := range q.attempts {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// Len returns the number of pending attempts.
func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.attempts)
}

func (q *PendingQueue) findLocked(id int64) *Attempt {
	for _, a := range q.attempts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (q *PendingQueue) persistLocked() error {
	data, err := json.Marshal(q.attempts)
	if err != nil {
		return fmt.Errorf("reconcile: marshal queue: %w", err)
	}
	if err := q.store.Set(queueKey, string(data)); err != nil {
		return fmt.Errorf("reconcile: persist queue: %w", err)
	}
	return nil
}

package reconcile

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/filedger/libfiledger-go/digest"
	"github.com/filedger/libfiledger-go/kv"
)

// indexKey is the kv key the dedup index persists under.
const indexKey = "uploaded_hashes"

// indexEntry maps a content digest to the storage identifier the blob
// store returned for it.
type indexEntry struct {
	Digest    string `json:"hash"`
	StorageID string `json:"storage_id"`
}

// DedupIndex remembers which content has already been inserted into the
// blob store, keyed by digest. Entries are created on the first
// successful insertion and never expire: content that was stored but
// whose ledger registration failed or was abandoned must not be
// uploaded again.
type DedupIndex struct {
	mu      sync.Mutex
	entries []indexEntry
	store   kv.Store
}

// NewDedupIndex loads the index from store. Missing or unparsable
// persisted data yields an empty index, never an error.
func NewDedupIndex(store kv.Store) *DedupIndex {
	idx := &DedupIndex{store: store}

	raw, ok, err := store.Get(indexKey)
	if err == nil && ok {
		var entries []indexEntry
		if json.Unmarshal([]byte(raw), &entries) == nil {
			idx.entries = entries
		}
	}
	return idx
}

// Lookup returns the storage identifier previously recorded for the
// digest, if any.
func (idx *DedupIndex) Lookup(contentDigest string) (string, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, e := range idx.entries {
		if digest.Equal(e.Digest, contentDigest) {
			return e.StorageID, true
		}
	}
	return "", false
}

// Record stores the (digest, storageID) pair and persists the index.
// Recording an identical pair again is a no-op. Recording a different
// identifier for a known digest fails with ErrDigestConflict and
// leaves the index unchanged — the blob store is content-addressed, so
// a conflict means something upstream is broken.
func (idx *DedupIndex) Record(contentDigest, storageID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, e := range idx.entries {
		if digest.Equal(e.Digest, contentDigest) {
			if e.StorageID == storageID {
				return nil
			}
			return fmt.Errorf("%w: digest %s has %s, got %s",
				ErrDigestConflict, contentDigest, e.StorageID, storageID)
		}
	}

	idx.entries = append(idx.entries, indexEntry{Digest: contentDigest, StorageID: storageID})
	if err := idx.persistLocked(); err != nil {
		idx.entries = idx.entries[:len(idx.entries)-1]
		return err
	}
	return nil
}

// Len returns the number of recorded digests.
func (idx *DedupIndex) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return len(idx.entries)
}

func (idx *DedupIndex) persistLocked() error {
	data, err := json.Marshal(idx.entries)
	if err != nil {
		return fmt.Errorf("reconcile: marshal index: %w", err)
	}
	if err := idx.store.Set(indexKey, string(data)); err != nil {
		return fmt.Errorf("reconcile: persist index: %w", err)
	}
	return nil
}

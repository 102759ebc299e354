package reconcile

import (
	"sort"
	"strings"
	"time"

	"github.com/filedger/libfiledger-go/ledger"
)

// SortOrder controls how filtered entries are ordered.
type SortOrder int

const (
	// SortNewestFirst orders entries by descending timestamp (default).
	SortNewestFirst SortOrder = iota

	// SortOldestFirst orders entries by ascending timestamp.
	SortOldestFirst
)

// Filter selects and orders ledger entries for display.
type Filter struct {
	// Search keeps entries whose name contains the term
	// (case-insensitive). Empty matches everything.
	Search string

	// Since keeps entries registered at or after the given time.
	// The zero value matches everything.
	Since time.Time

	Sort SortOrder
}

// FilterEntries applies f to a copy of entries; the input is never
// mutated.
func FilterEntries(entries []ledger.Entry, f Filter) []ledger.Entry {
	out := make([]ledger.Entry, 0, len(entries))
	term := strings.ToLower(f.Search)

	for _, e := range entries {
		if term != "" && !strings.Contains(strings.ToLower(e.Name), term) {
			continue
		}
		if !f.Since.IsZero() && e.Timestamp < f.Since.Unix() {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Sort == SortOldestFirst {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].Timestamp > out[j].Timestamp
	})

	return out
}

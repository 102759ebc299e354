package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filedger/libfiledger-go/ledger"
)

func testEntries() []ledger.Entry {
	return []ledger.Entry{
		{StorageID: "Qm1", Name: "report.pdf", Timestamp: 1000},
		{StorageID: "Qm2", Name: "photo.jpg", Timestamp: 3000},
		{StorageID: "Qm3", Name: "Annual-Report.pdf", Timestamp: 2000},
	}
}

func TestFilterEntriesDefaultSort(t *testing.T) {
	got := FilterEntries(testEntries(), Filter{})
	require.Len(t, got, 3)
	assert.Equal(t, "Qm2", got[0].StorageID, "newest first by default")
	assert.Equal(t, "Qm3", got[1].StorageID)
	assert.Equal(t, "Qm1", got[2].StorageID)
}

func TestFilterEntriesOldestFirst(t *testing.T) {
	got := FilterEntries(testEntries(), Filter{Sort: SortOldestFirst})
	require.Len(t, got, 3)
	assert.Equal(t, "Qm1", got[0].StorageID)
	assert.Equal(t, "Qm2", got[2].StorageID)
}

func TestFilterEntriesSearch(t *testing.T) {
	got := FilterEntries(testEntries(), Filter{Search: "REPORT"})
	require.Len(t, got, 2)
	assert.Equal(t, "Annual-Report.pdf", got[0].Name)
	assert.Equal(t, "report.pdf", got[1].Name)
}

func TestFilterEntriesSince(t *testing.T) {
	got := FilterEntries(testEntries(), Filter{Since: time.Unix(2000, 0)})
	require.Len(t, got, 2)
	for _, e := range got {
		assert.GreaterOrEqual(t, e.Timestamp, int64(2000))
	}
}

func TestFilterEntriesDoesNotMutateInput(t *testing.T) {
	in := testEntries()
	FilterEntries(in, Filter{Sort: SortOldestFirst})
	assert.Equal(t, "Qm1", in[0].StorageID, "input order must be preserved")
}

func TestFilterEntriesEmpty(t *testing.T) {
	got := FilterEntries(nil, Filter{Search: "x"})
	assert.Empty(t, got)
}

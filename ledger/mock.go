package ledger

import "context"

// Mock is a test double for Service.
// Function fields must be set before the corresponding method is called.
type Mock struct {
	RegisterFn    func(ctx context.Context, storageID, name string) error
	ListEntriesFn func(ctx context.Context) ([]Entry, error)
	RemoveEntryFn func(ctx context.Context, position int) error
}

func (m *Mock) Register(ctx context.Context, storageID, name string) error {
	return m.RegisterFn(ctx, storageID, name)
}

func (m *Mock) ListEntries(ctx context.Context) ([]Entry, error) {
	return m.ListEntriesFn(ctx)
}

func (m *Mock) RemoveEntry(ctx context.Context, position int) error {
	return m.RemoveEntryFn(ctx, position)
}

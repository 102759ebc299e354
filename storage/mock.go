package storage

import "context"

// MockStore is a test double for Store.
// InsertFn must be set before Insert is called.
type MockStore struct {
	InsertFn func(ctx context.Context, data []byte) (string, error)
}

func (m *MockStore) Insert(ctx context.Context, data []byte) (string, error) {
	return m.InsertFn(ctx, data)
}

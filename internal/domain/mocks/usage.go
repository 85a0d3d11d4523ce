package mocks

import (
	"context"
	"sync"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// UsageStore is a mock implementation of ports.UsageStore. Update holds a
// mutex across the load-apply-store cycle to mirror the real store's
// transactional behavior.
type UsageStore struct {
	mu      sync.Mutex
	Records map[string]*entities.UsageRecord

	GetErr    error
	UpdateErr error

	// Call tracking
	UpdateCallCount int
}

// NewUsageStore creates an empty mock usage store.
func NewUsageStore() *UsageStore {
	return &UsageStore{Records: make(map[string]*entities.UsageRecord)}
}

// Get returns the user's record, seeding it from defaults if absent.
func (m *UsageStore) Get(ctx context.Context, userID string, defaults entities.UsageRecord) (*entities.UsageRecord, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.load(userID, defaults)
	copied := *rec
	return &copied, nil
}

// Update applies fn to the user's record under the store mutex.
func (m *UsageStore) Update(ctx context.Context, userID string, defaults entities.UsageRecord, fn func(*entities.UsageRecord) error) (*entities.UsageRecord, error) {
	m.UpdateCallCount++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.load(userID, defaults)
	working := *rec
	if err := fn(&working); err != nil {
		return nil, err
	}
	m.Records[userID] = &working
	copied := working
	return &copied, nil
}

// load returns the stored record or seeds one from defaults. Caller must
// hold the mutex.
func (m *UsageStore) load(userID string, defaults entities.UsageRecord) *entities.UsageRecord {
	if rec, ok := m.Records[userID]; ok {
		return rec
	}
	defaults.UserID = userID
	m.Records[userID] = &defaults
	return &defaults
}

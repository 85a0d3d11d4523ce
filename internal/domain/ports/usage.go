package ports

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// UsageStore persists per-user extraction usage records. It is the
// authoritative storage layer behind the quota engine.
type UsageStore interface {
	// Get returns the user's usage record, creating a zeroed record with the
	// given default window limits if none exists yet.
	Get(ctx context.Context, userID string, defaults entities.UsageRecord) (*entities.UsageRecord, error)

	// Update loads the user's record, applies fn, and persists the result as
	// a single transaction. Check-then-increment must not be split across two
	// round trips: two concurrent reservations would otherwise both observe
	// "under limit". fn returning an error aborts without writing.
	Update(ctx context.Context, userID string, defaults entities.UsageRecord, fn func(*entities.UsageRecord) error) (*entities.UsageRecord, error)
}

package ports

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// ElementRepository provides read and write access to confirmed campaign
// elements. The reconciliation pipeline only reads from it.
type ElementRepository interface {
	// GetCollection returns all elements of the given kind.
	GetCollection(ctx context.Context, kind entities.EntityKind) ([]entities.CampaignElement, error)

	// SaveElement saves or updates an element.
	SaveElement(ctx context.Context, element *entities.CampaignElement) error

	// FindElementByID finds an element by its ID, or nil if not found.
	FindElementByID(ctx context.Context, id string) (*entities.CampaignElement, error)
}

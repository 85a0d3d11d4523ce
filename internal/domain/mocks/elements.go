package mocks

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// ElementRepository is a mock implementation of ports.ElementRepository.
type ElementRepository struct {
	Elements []entities.CampaignElement
	Err      error

	// Call tracking
	GetCollectionCallCount int
	SaveCallCount          int
}

// GetCollection returns the configured elements of the given kind.
func (m *ElementRepository) GetCollection(ctx context.Context, kind entities.EntityKind) ([]entities.CampaignElement, error) {
	m.GetCollectionCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	var filtered []entities.CampaignElement
	for i := range m.Elements {
		if m.Elements[i].Kind == kind {
			filtered = append(filtered, m.Elements[i])
		}
	}
	return filtered, nil
}

// SaveElement appends or replaces an element by ID.
func (m *ElementRepository) SaveElement(ctx context.Context, element *entities.CampaignElement) error {
	m.SaveCallCount++
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Elements {
		if m.Elements[i].ID == element.ID {
			m.Elements[i] = *element
			return nil
		}
	}
	m.Elements = append(m.Elements, *element)
	return nil
}

// FindElementByID finds an element by its ID, or nil if not found.
func (m *ElementRepository) FindElementByID(ctx context.Context, id string) (*entities.CampaignElement, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Elements {
		if m.Elements[i].ID == id {
			elem := m.Elements[i]
			return &elem, nil
		}
	}
	return nil, nil
}

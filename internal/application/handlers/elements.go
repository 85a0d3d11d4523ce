package handlers

import (
	"context"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
)

// ElementHandler handles campaign element management.
type ElementHandler struct {
	elements ports.ElementRepository
}

// NewElementHandler creates a new element handler.
func NewElementHandler(elements ports.ElementRepository) *ElementHandler {
	return &ElementHandler{
		elements: elements,
	}
}

// HandleAdd creates a new campaign element.
func (h *ElementHandler) HandleAdd(ctx context.Context, kind, name, title string) (*entities.CampaignElement, error) {
	if !entities.IsValidKind(entities.EntityKind(kind)) {
		return nil, fmt.Errorf("invalid element kind: %s", kind)
	}
	if name == "" {
		return nil, fmt.Errorf("element name is required")
	}

	element := entities.CampaignElement{
		Kind:  entities.EntityKind(kind),
		Name:  name,
		Title: title,
	}
	if err := h.elements.SaveElement(ctx, &element); err != nil {
		return nil, fmt.Errorf("saving element: %w", err)
	}
	return &element, nil
}

// HandleList lists elements, optionally filtered by kind. An empty kind
// returns elements of every kind.
func (h *ElementHandler) HandleList(ctx context.Context, kind string) ([]entities.CampaignElement, error) {
	if kind != "" {
		if !entities.IsValidKind(entities.EntityKind(kind)) {
			return nil, fmt.Errorf("invalid element kind: %s", kind)
		}
		elems, err := h.elements.GetCollection(ctx, entities.EntityKind(kind))
		if err != nil {
			return nil, fmt.Errorf("listing elements: %w", err)
		}
		return elems, nil
	}

	var all []entities.CampaignElement
	for _, k := range entities.AllKinds {
		elems, err := h.elements.GetCollection(ctx, k)
		if err != nil {
			return nil, fmt.Errorf("listing %s elements: %w", k, err)
		}
		all = append(all, elems...)
	}
	return all, nil
}

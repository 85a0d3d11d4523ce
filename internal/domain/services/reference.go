// Package services contains domain business logic.
package services

import (
	"context"
	"strings"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
)

// ReferenceService finds existing campaign elements mentioned in note text.
type ReferenceService struct {
	elements ports.ElementRepository
}

// NewReferenceService creates a new reference service.
func NewReferenceService(elements ports.ElementRepository) *ReferenceService {
	return &ReferenceService{elements: elements}
}

// FindReferences scans note text for mentions of known campaign elements.
// An element matches when the normalized note body contains one of its
// normalized candidate strings as a substring. References are best-effort:
// an unreachable element repository yields an empty set, never an error.
func (s *ReferenceService) FindReferences(ctx context.Context, noteText string) []entities.ExistingReference {
	body := entities.NormalizeText(noteText)
	if body == "" {
		return nil
	}

	var refs []entities.ExistingReference
	for _, kind := range entities.AllKinds {
		elems, err := s.elements.GetCollection(ctx, kind)
		if err != nil {
			// Degrade to whatever the reachable collections yield.
			continue
		}

		for i := range elems {
			var matched []string
			for _, candidate := range elems[i].MatchStrings() {
				norm := entities.NormalizeText(candidate)
				if norm != "" && strings.Contains(body, norm) {
					matched = append(matched, candidate)
				}
			}
			if len(matched) == 0 {
				continue
			}

			refs = append(refs, entities.ExistingReference{
				ElementID:      elems[i].ID,
				Kind:           kind,
				DisplayTitle:   elems[i].DisplayTitle(),
				MatchedStrings: matched,
			})
		}
	}

	return refs
}

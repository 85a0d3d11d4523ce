package handlers

import (
	"context"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
	"github.com/Haugenau20/campaign-companion/internal/domain/services"
)

// PipelineHandler exposes the entity reconciliation pipeline: scanning notes
// for known elements, extracting new entities, and converting suggestions
// into confirmed campaign elements.
type PipelineHandler struct {
	extraction *services.ExtractionService
	quota      *services.QuotaService
	notes      ports.NoteStore
	elements   ports.ElementRepository
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(extraction *services.ExtractionService, quota *services.QuotaService, notes ports.NoteStore, elements ports.ElementRepository) *PipelineHandler {
	return &PipelineHandler{
		extraction: extraction,
		quota:      quota,
		notes:      notes,
		elements:   elements,
	}
}

// HandleScan finds existing campaign elements referenced in the note's text.
// Scanning is free: it never consumes extraction quota.
func (h *PipelineHandler) HandleScan(ctx context.Context, noteID string) ([]entities.ExistingReference, error) {
	return h.extraction.FindReferences(ctx, noteID)
}

// HandleExtract runs the full extraction pipeline for the note.
func (h *PipelineHandler) HandleExtract(ctx context.Context, noteID, userID string) (*services.ExtractionResult, error) {
	return h.extraction.ExtractNewEntities(ctx, noteID, userID)
}

// ConvertResult contains the result of converting a suggestion.
type ConvertResult struct {
	Element entities.CampaignElement
	Entity  entities.CandidateEntity
}

// HandleConvert promotes a stored candidate entity to a confirmed campaign
// element and marks the candidate converted. When elementID is empty a new
// element is created from the candidate; otherwise the candidate is linked to
// that existing element.
func (h *PipelineHandler) HandleConvert(ctx context.Context, noteID, entityID, elementID string) (*ConvertResult, error) {
	note, err := h.notes.GetNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("note not found: %s", noteID)
	}

	var candidate *entities.CandidateEntity
	for i := range note.Entities {
		if note.Entities[i].ID == entityID {
			candidate = &note.Entities[i]
			break
		}
	}
	if candidate == nil {
		return nil, fmt.Errorf("entity not found in note: %s", entityID)
	}
	if candidate.IsConverted {
		return nil, fmt.Errorf("entity already converted: %s", entityID)
	}

	var element entities.CampaignElement
	if elementID != "" {
		existing, err := h.elements.FindElementByID(ctx, elementID)
		if err != nil {
			return nil, fmt.Errorf("loading element: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("element not found: %s", elementID)
		}
		element = *existing
	} else {
		element = entities.CampaignElement{
			Kind: candidate.Kind,
			Name: candidate.Text,
		}
		if err := h.elements.SaveElement(ctx, &element); err != nil {
			return nil, fmt.Errorf("saving element: %w", err)
		}
	}

	if err := h.extraction.MarkConverted(ctx, noteID, entityID, element.ID); err != nil {
		return nil, err
	}

	candidate.IsConverted = true
	candidate.ConvertedToID = element.ID
	return &ConvertResult{
		Element: element,
		Entity:  *candidate,
	}, nil
}

// HandleUsage returns the user's quota snapshot without consuming usage.
func (h *PipelineHandler) HandleUsage(ctx context.Context, userID string) (entities.UsageStatus, error) {
	return h.extraction.GetUsageStatus(ctx, userID)
}

// HandleSetLimit overrides the user's daily limit.
func (h *PipelineHandler) HandleSetLimit(ctx context.Context, userID string, limit int) error {
	if limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", limit)
	}
	return h.quota.SetCustomLimit(ctx, userID, limit)
}

// HandleSetUnlimited toggles the user's unlimited flag.
func (h *PipelineHandler) HandleSetUnlimited(ctx context.Context, userID string, unlimited bool) error {
	return h.quota.SetUnlimited(ctx, userID, unlimited)
}

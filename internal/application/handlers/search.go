package handlers

import (
	"context"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/services"
)

// SearchHandler handles semantic note search.
type SearchHandler struct {
	queryService *services.QueryService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(queryService *services.QueryService) *SearchHandler {
	return &SearchHandler{
		queryService: queryService,
	}
}

// SearchResult contains the result of a search.
type SearchResult struct {
	Query string
	Notes []entities.Note
}

// Handle searches for notes matching the query.
func (h *SearchHandler) Handle(ctx context.Context, query string, limit int) (*SearchResult, error) {
	notes, err := h.queryService.SearchNotes(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	return &SearchResult{
		Query: query,
		Notes: notes,
	}, nil
}

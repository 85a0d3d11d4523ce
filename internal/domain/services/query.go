package services

import (
	"context"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
)

// DefaultSearchLimit is the default number of search results to return.
const DefaultSearchLimit = 10

// QueryService provides semantic search over indexed session notes.
type QueryService struct {
	embedder ports.Embedder
	vectorDB ports.VectorDB
}

// NewQueryService creates a new query service.
func NewQueryService(embedder ports.Embedder, vectorDB ports.VectorDB) *QueryService {
	return &QueryService{
		embedder: embedder,
		vectorDB: vectorDB,
	}
}

// IndexNote embeds the note's title and content and stores it in the vector
// index.
func (s *QueryService) IndexNote(ctx context.Context, note entities.Note) error {
	embedding, err := s.embedder.Embed(ctx, noteToText(&note))
	if err != nil {
		return fmt.Errorf("embedding note: %w", err)
	}

	if err := s.vectorDB.IndexNote(ctx, note, embedding); err != nil {
		return fmt.Errorf("indexing note: %w", err)
	}

	return nil
}

// SearchNotes finds notes semantically similar to the query.
func (s *QueryService) SearchNotes(ctx context.Context, query string, limit int) ([]entities.Note, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	notes, err := s.vectorDB.SearchNotes(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}

	return notes, nil
}

// noteToText converts a note to searchable text for embedding.
func noteToText(note *entities.Note) string {
	if note.Title == "" {
		return note.Content
	}
	return note.Title + "\n\n" + note.Content
}

package ports

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// VectorDB defines the interface for the note vector index used by semantic
// search.
type VectorDB interface {
	// EnsureCollection creates the collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// IndexNote stores a note with its embedding.
	IndexNote(ctx context.Context, note entities.Note, embedding []float32) error

	// SearchNotes returns the notes most similar to the embedding.
	SearchNotes(ctx context.Context, embedding []float32, limit int) ([]entities.Note, error)

	// DeleteNote removes a note from the index.
	DeleteNote(ctx context.Context, id string) error
}

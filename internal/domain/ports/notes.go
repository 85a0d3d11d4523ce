package ports

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// NoteStore persists session notes and their stored candidate entities.
type NoteStore interface {
	// GetNote retrieves a note with its stored entities, or nil if not found.
	GetNote(ctx context.Context, id string) (*entities.Note, error)

	// SaveNote saves or updates a note.
	SaveNote(ctx context.Context, note *entities.Note) error

	// ListNotes lists notes ordered by most recently updated.
	ListNotes(ctx context.Context, limit int) ([]entities.Note, error)

	// ReplaceUnconvertedEntities replaces the note's non-converted candidates
	// wholesale with the given list. Converted candidates are left untouched.
	ReplaceUnconvertedEntities(ctx context.Context, noteID string, candidates []entities.CandidateEntity) error

	// MarkEntityConverted flips a single candidate's conversion fields by id.
	// It never rewrites the note's entity list, so it cannot clobber a
	// concurrent extraction persist.
	MarkEntityConverted(ctx context.Context, noteID, entityID, elementID string) error
}

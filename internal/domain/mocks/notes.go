package mocks

import (
	"context"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// NoteStore is a mock implementation of ports.NoteStore.
type NoteStore struct {
	Notes map[string]*entities.Note

	GetErr     error
	SaveErr    error
	ReplaceErr error
	MarkErr    error

	// Call tracking
	ReplaceCallCount int
	LastReplaced     []entities.CandidateEntity
}

// NewNoteStore creates a mock store seeded with the given notes.
func NewNoteStore(notes ...*entities.Note) *NoteStore {
	m := &NoteStore{Notes: make(map[string]*entities.Note)}
	for _, n := range notes {
		m.Notes[n.ID] = n
	}
	return m
}

// GetNote retrieves a note by ID, or nil if not found.
func (m *NoteStore) GetNote(ctx context.Context, id string) (*entities.Note, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	note, ok := m.Notes[id]
	if !ok {
		return nil, nil
	}
	copied := *note
	copied.Entities = append([]entities.CandidateEntity(nil), note.Entities...)
	return &copied, nil
}

// SaveNote saves or updates a note.
func (m *NoteStore) SaveNote(ctx context.Context, note *entities.Note) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	copied := *note
	m.Notes[note.ID] = &copied
	return nil
}

// ListNotes returns all stored notes.
func (m *NoteStore) ListNotes(ctx context.Context, limit int) ([]entities.Note, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	notes := make([]entities.Note, 0, len(m.Notes))
	for _, n := range m.Notes {
		notes = append(notes, *n)
		if limit > 0 && len(notes) == limit {
			break
		}
	}
	return notes, nil
}

// ReplaceUnconvertedEntities replaces the note's non-converted candidates.
func (m *NoteStore) ReplaceUnconvertedEntities(ctx context.Context, noteID string, candidates []entities.CandidateEntity) error {
	m.ReplaceCallCount++
	m.LastReplaced = candidates
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	note, ok := m.Notes[noteID]
	if !ok {
		return fmt.Errorf("note not found: %s", noteID)
	}
	kept := make([]entities.CandidateEntity, 0, len(note.Entities)+len(candidates))
	for _, e := range note.Entities {
		if e.IsConverted {
			kept = append(kept, e)
		}
	}
	note.Entities = append(kept, candidates...)
	return nil
}

// MarkEntityConverted flips one candidate's conversion fields by id.
func (m *NoteStore) MarkEntityConverted(ctx context.Context, noteID, entityID, elementID string) error {
	if m.MarkErr != nil {
		return m.MarkErr
	}
	note, ok := m.Notes[noteID]
	if !ok {
		return fmt.Errorf("note not found: %s", noteID)
	}
	for i := range note.Entities {
		if note.Entities[i].ID == entityID {
			note.Entities[i].IsConverted = true
			note.Entities[i].ConvertedToID = elementID
			return nil
		}
	}
	return fmt.Errorf("entity not found: %s", entityID)
}

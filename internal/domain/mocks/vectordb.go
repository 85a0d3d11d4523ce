package mocks

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// VectorDB is a mock implementation of ports.VectorDB.
type VectorDB struct {
	Notes []entities.Note
	Err   error

	// Call tracking
	IndexCallCount            int
	EnsureCollectionCallCount int
	LastIndexed               *entities.Note
}

// EnsureCollection creates the collection if it doesn't exist.
func (m *VectorDB) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.EnsureCollectionCallCount++
	return m.Err
}

// IndexNote stores a note with its embedding.
func (m *VectorDB) IndexNote(ctx context.Context, note entities.Note, embedding []float32) error {
	m.IndexCallCount++
	m.LastIndexed = &note
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Notes {
		if m.Notes[i].ID == note.ID {
			m.Notes[i] = note
			return nil
		}
	}
	m.Notes = append(m.Notes, note)
	return nil
}

// SearchNotes returns up to limit stored notes.
func (m *VectorDB) SearchNotes(ctx context.Context, embedding []float32, limit int) ([]entities.Note, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > len(m.Notes) {
		return m.Notes, nil
	}
	return m.Notes[:limit], nil
}

// DeleteNote removes a note from the index.
func (m *VectorDB) DeleteNote(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Notes {
		if m.Notes[i].ID == id {
			m.Notes = append(m.Notes[:i], m.Notes[i+1:]...)
			return nil
		}
	}
	return nil
}

package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
	"github.com/Haugenau20/campaign-companion/internal/domain/services"
)

// NoteHandler handles session note management.
type NoteHandler struct {
	notes   ports.NoteStore
	indexer *services.QueryService
}

// NewNoteHandler creates a new note handler. The indexer may be nil, in which
// case notes are not added to the semantic index.
func NewNoteHandler(notes ports.NoteStore, indexer *services.QueryService) *NoteHandler {
	return &NoteHandler{
		notes:   notes,
		indexer: indexer,
	}
}

// AddResult contains the result of adding a note.
type AddResult struct {
	Note entities.Note
	// IndexWarning is set when the note was saved but indexing for
	// semantic search failed. The note itself is durable either way.
	IndexWarning error
}

// HandleAdd saves a new session note and indexes it for search.
func (h *NoteHandler) HandleAdd(ctx context.Context, title, content string) (*AddResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("note content is empty")
	}

	note := entities.Note{
		Title:   strings.TrimSpace(title),
		Content: content,
	}
	if err := h.notes.SaveNote(ctx, &note); err != nil {
		return nil, fmt.Errorf("saving note: %w", err)
	}

	result := &AddResult{Note: note}
	if h.indexer != nil {
		if err := h.indexer.IndexNote(ctx, note); err != nil {
			result.IndexWarning = err
		}
	}
	return result, nil
}

// HandleList lists the most recently updated notes.
func (h *NoteHandler) HandleList(ctx context.Context, limit int) ([]entities.Note, error) {
	notes, err := h.notes.ListNotes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

// HandleShow returns a single note with its stored candidate entities.
func (h *NoteHandler) HandleShow(ctx context.Context, noteID string) (*entities.Note, error) {
	note, err := h.notes.GetNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("note not found: %s", noteID)
	}
	return note, nil
}

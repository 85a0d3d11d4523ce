package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
)

const (
	// DefaultMinContentLength is the minimum note length eligible for
	// extraction, checked before any quota is consumed.
	DefaultMinContentLength = 50
	// DefaultInferenceTimeout bounds a single inference call.
	DefaultInferenceTimeout = 60 * time.Second
)

// ExtractionOptions configures the orchestrator's local thresholds and the
// escalation payload attached to quota rejections.
type ExtractionOptions struct {
	MinContentLength int
	InferenceTimeout time.Duration
	Contact          ContactInfo
}

// ExtractionResult contains the outcome of one extraction run.
type ExtractionResult struct {
	NewEntities []entities.CandidateEntity
	Stats       ReconcileStats
	Status      entities.UsageStatus
}

// ExtractionService orchestrates the reconciliation pipeline: quota check,
// inference call, deduplication, reconciliation, and persistence. It is the
// only component that talks to all the others.
type ExtractionService struct {
	llm        ports.LLMClient
	notes      ports.NoteStore
	quota      *QuotaService
	references *ReferenceService
	reconciler *Reconciler
	opts       ExtractionOptions
}

// NewExtractionService creates a new extraction service. Zero option values
// fall back to the defaults.
func NewExtractionService(llm ports.LLMClient, notes ports.NoteStore, quota *QuotaService, references *ReferenceService, reconciler *Reconciler, opts ExtractionOptions) *ExtractionService {
	if opts.MinContentLength <= 0 {
		opts.MinContentLength = DefaultMinContentLength
	}
	if opts.InferenceTimeout <= 0 {
		opts.InferenceTimeout = DefaultInferenceTimeout
	}
	return &ExtractionService{
		llm:        llm,
		notes:      notes,
		quota:      quota,
		references: references,
		reconciler: reconciler,
		opts:       opts,
	}
}

// FindReferences returns the existing campaign elements mentioned in the
// note. It runs independently of quota and never consumes usage.
func (s *ExtractionService) FindReferences(ctx context.Context, noteID string) ([]entities.ExistingReference, error) {
	note, err := s.loadNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return s.references.FindReferences(ctx, note.Content), nil
}

// ExtractNewEntities runs the full pipeline for one note on behalf of one
// user. Steps are strictly sequential: quota reservation, inference,
// deduplication, reconciliation, persistence. The reserved quota unit is
// consumed on attempt, not on success, so a failed inference call is not
// refunded. Each attempt discards the prior run's unconverted suggestions
// before calling the inference service, even if this attempt then fails.
func (s *ExtractionService) ExtractNewEntities(ctx context.Context, noteID, userID string) (*ExtractionResult, error) {
	note, err := s.loadNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(note.Content)) < s.opts.MinContentLength {
		return nil, ErrContentTooShort
	}

	status, err := s.quota.CheckAndReserve(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking extraction quota: %w", err)
	}
	if status.LimitExceeded {
		return nil, &QuotaExceededError{Status: status, Contact: s.opts.Contact}
	}

	if err := s.notes.ReplaceUnconvertedEntities(ctx, noteID, nil); err != nil {
		return nil, fmt.Errorf("clearing prior suggestions: %w", err)
	}

	inferCtx, cancel := context.WithTimeout(ctx, s.opts.InferenceTimeout)
	defer cancel()

	raw, err := s.llm.ExtractEntities(inferCtx, note.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	deduped := Deduplicate(raw)
	refs := s.references.FindReferences(ctx, note.Content)
	kept, stats := s.reconciler.Reconcile(ctx, deduped, refs)

	for i := range kept {
		if kept[i].ID == "" {
			kept[i].ID = uuid.New().String()
		}
	}

	if err := s.notes.ReplaceUnconvertedEntities(ctx, noteID, kept); err != nil {
		return nil, fmt.Errorf("saving extracted entities: %w", err)
	}

	return &ExtractionResult{
		NewEntities: kept,
		Stats:       stats,
		Status:      status,
	}, nil
}

// MarkConverted records that a stored candidate was converted to a campaign
// element. Only the one candidate's conversion fields are written; the
// note's entity list is never rewritten, so a concurrent extraction persist
// cannot be clobbered.
func (s *ExtractionService) MarkConverted(ctx context.Context, noteID, entityID, elementID string) error {
	if err := s.notes.MarkEntityConverted(ctx, noteID, entityID, elementID); err != nil {
		return fmt.Errorf("marking entity converted: %w", err)
	}
	return nil
}

// GetUsageStatus returns the user's quota snapshot without consuming usage.
func (s *ExtractionService) GetUsageStatus(ctx context.Context, userID string) (entities.UsageStatus, error) {
	return s.quota.ReadStatus(ctx, userID)
}

// loadNote fetches a note and maps absence to an error.
func (s *ExtractionService) loadNote(ctx context.Context, noteID string) (*entities.Note, error) {
	note, err := s.notes.GetNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("loading note: %w", err)
	}
	if note == nil {
		return nil, fmt.Errorf("note not found: %s", noteID)
	}
	return note, nil
}

// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// LLMClient defines the interface for the entity inference service. The
// pipeline treats it as an opaque function from text to candidate entities.
type LLMClient interface {
	// ExtractEntities extracts candidate campaign elements from note text.
	// The raw output may contain duplicates; deduplication is the caller's job.
	ExtractEntities(ctx context.Context, text string) ([]entities.CandidateEntity, error)
}

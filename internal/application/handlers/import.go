package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/parsers"
)

// ImportHandler handles importing campaign elements from files.
type ImportHandler struct {
	elements ports.ElementRepository
}

// NewImportHandler creates a new import handler.
func NewImportHandler(elements ports.ElementRepository) *ImportHandler {
	return &ImportHandler{
		elements: elements,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", or "auto"
	DryRun bool   // Validate without saving
}

// ImportError describes a single rejected row.
type ImportError struct {
	LineNum int
	Name    string
	Reason  string
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// Handle imports campaign elements from a file. Invalid rows are reported
// and skipped; valid rows are still imported.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raw, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	result := &ImportResult{}
	for _, r := range raw {
		if reason := validateRaw(r); reason != "" {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{
				LineNum: r.LineNum,
				Name:    r.Name,
				Reason:  reason,
			})
			continue
		}

		if !opts.DryRun {
			element := entities.CampaignElement{
				ID:    r.ID,
				Kind:  entities.EntityKind(r.Kind),
				Name:  r.Name,
				Title: r.Title,
			}
			if err := h.elements.SaveElement(ctx, &element); err != nil {
				return result, fmt.Errorf("saving element %q: %w", r.Name, err)
			}
		}
		result.Imported++
	}

	return result, nil
}

// validateRaw returns a rejection reason, or "" when the row is valid.
func validateRaw(r parsers.RawElement) string {
	if r.Name == "" {
		return "missing name"
	}
	if !entities.IsValidKind(entities.EntityKind(r.Kind)) {
		return fmt.Sprintf("invalid kind: %q", r.Kind)
	}
	return ""
}

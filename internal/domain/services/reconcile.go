package services

import (
	"context"
	"strings"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
)

// ReconcileStats summarizes a reconciliation pass for caller-facing output.
type ReconcileStats struct {
	TotalFound  int `json:"total_found"`
	FilteredOut int `json:"filtered_out"`
}

// Reconciler removes candidates that duplicate an existing reference or an
// existing campaign element.
type Reconciler struct {
	elements ports.ElementRepository
}

// NewReconciler creates a new reconciler.
func NewReconciler(elements ports.ElementRepository) *Reconciler {
	return &Reconciler{elements: elements}
}

// Reconcile filters the deduplicated candidate list in two passes. Pass one
// drops candidates with bidirectional containment against a same-kind
// reference's matched strings; this over-matches on purpose, trading missed
// new entities against re-surfacing something already tracked. Pass two
// drops candidates whose normalized text exactly equals a same-kind
// element's normalized name or title. An unreachable element repository
// degrades pass two to a no-op, matching the reference matcher's
// best-effort policy.
func (r *Reconciler) Reconcile(ctx context.Context, candidates []entities.CandidateEntity, refs []entities.ExistingReference) ([]entities.CandidateEntity, ReconcileStats) {
	stats := ReconcileStats{TotalFound: len(candidates)}

	refStrings := make(map[entities.EntityKind][]string)
	for _, ref := range refs {
		for _, m := range ref.MatchedStrings {
			if norm := entities.NormalizeText(m); norm != "" {
				refStrings[ref.Kind] = append(refStrings[ref.Kind], norm)
			}
		}
	}

	elementNames := r.elementNameIndex(ctx)

	kept := make([]entities.CandidateEntity, 0, len(candidates))
	for _, c := range candidates {
		norm := entities.NormalizeText(c.Text)
		if containsEither(norm, refStrings[c.Kind]) {
			continue
		}
		if elementNames[c.Kind][norm] {
			continue
		}
		kept = append(kept, c)
	}

	stats.FilteredOut = stats.TotalFound - len(kept)
	return kept, stats
}

// elementNameIndex builds a per-kind set of normalized element names and
// titles. Kinds whose collection cannot be loaded are left empty.
func (r *Reconciler) elementNameIndex(ctx context.Context) map[entities.EntityKind]map[string]bool {
	index := make(map[entities.EntityKind]map[string]bool, len(entities.AllKinds))
	for _, kind := range entities.AllKinds {
		elems, err := r.elements.GetCollection(ctx, kind)
		if err != nil {
			continue
		}
		names := make(map[string]bool)
		for i := range elems {
			for _, s := range elems[i].MatchStrings() {
				if norm := entities.NormalizeText(s); norm != "" {
					names[norm] = true
				}
			}
		}
		index[kind] = names
	}
	return index
}

// containsEither reports whether the normalized candidate text contains, or
// is contained by, any of the normalized reference strings.
func containsEither(norm string, refs []string) bool {
	for _, ref := range refs {
		if strings.Contains(norm, ref) || strings.Contains(ref, norm) {
			return true
		}
	}
	return false
}

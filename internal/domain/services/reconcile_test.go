package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/mocks"
)

func TestReconcile_DropsContainmentMatches(t *testing.T) {
	reconciler := NewReconciler(&mocks.ElementRepository{})

	refs := []entities.ExistingReference{
		{ElementID: "e1", Kind: entities.KindNPC, MatchedStrings: []string{"Gandalf"}},
	}

	tests := []struct {
		name      string
		candidate entities.CandidateEntity
		kept      bool
	}{
		{
			name:      "candidate contains reference",
			candidate: entities.CandidateEntity{Kind: entities.KindNPC, Text: "Gandalf the Grey"},
			kept:      false,
		},
		{
			name:      "reference contains candidate",
			candidate: entities.CandidateEntity{Kind: entities.KindNPC, Text: "Gandalf"},
			kept:      false,
		},
		{
			name:      "no containment",
			candidate: entities.CandidateEntity{Kind: entities.KindNPC, Text: "Radagast"},
			kept:      true,
		},
		{
			name:      "same text under a different kind",
			candidate: entities.CandidateEntity{Kind: entities.KindRumor, Text: "Gandalf"},
			kept:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, stats := reconciler.Reconcile(context.Background(), []entities.CandidateEntity{tt.candidate}, refs)
			assert.Equal(t, 1, stats.TotalFound)
			if tt.kept {
				assert.Len(t, kept, 1)
				assert.Zero(t, stats.FilteredOut)
			} else {
				assert.Empty(t, kept)
				assert.Equal(t, 1, stats.FilteredOut)
			}
		})
	}
}

func TestReconcile_DropsExactElementNameMatches(t *testing.T) {
	repo := &mocks.ElementRepository{
		Elements: []entities.CampaignElement{
			{ID: "e1", Kind: entities.KindLocation, Name: "Rivendell", Title: "The Last Homely House"},
		},
	}
	reconciler := NewReconciler(repo)

	candidates := []entities.CandidateEntity{
		{Kind: entities.KindLocation, Text: "rivendell"},             // equals element name
		{Kind: entities.KindLocation, Text: "The Last Homely House"}, // equals element title
		{Kind: entities.KindLocation, Text: "Rivendell Bridge"},      // not an exact match, kept
		{Kind: entities.KindNPC, Text: "Rivendell"},                  // different kind, kept
	}

	kept, stats := reconciler.Reconcile(context.Background(), candidates, nil)

	require.Len(t, kept, 2)
	assert.Equal(t, "Rivendell Bridge", kept[0].Text)
	assert.Equal(t, "Rivendell", kept[1].Text)
	assert.Equal(t, 4, stats.TotalFound)
	assert.Equal(t, 2, stats.FilteredOut)
}

func TestReconcile_RepositoryErrorDegradesSecondPass(t *testing.T) {
	repo := &mocks.ElementRepository{Err: errors.New("connection refused")}
	reconciler := NewReconciler(repo)

	refs := []entities.ExistingReference{
		{ElementID: "e1", Kind: entities.KindNPC, MatchedStrings: []string{"Gandalf"}},
	}
	candidates := []entities.CandidateEntity{
		{Kind: entities.KindNPC, Text: "Gandalf the Grey"},
		{Kind: entities.KindLocation, Text: "Rivendell"},
	}

	kept, stats := reconciler.Reconcile(context.Background(), candidates, refs)

	// Pass one still filters against references; pass two is a no-op.
	require.Len(t, kept, 1)
	assert.Equal(t, "Rivendell", kept[0].Text)
	assert.Equal(t, 1, stats.FilteredOut)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	reconciler := NewReconciler(&mocks.ElementRepository{})

	kept, stats := reconciler.Reconcile(context.Background(), nil, nil)

	assert.Empty(t, kept)
	assert.Zero(t, stats.TotalFound)
	assert.Zero(t, stats.FilteredOut)
}

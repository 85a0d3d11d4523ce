// Package integration exercises the extraction pipeline end to end against
// the real SQLite store. Inference is mocked; everything else is live.
package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/mocks"
	"github.com/Haugenau20/campaign-companion/internal/domain/services"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/store/sqlite"
)

type pipeline struct {
	store   *sqlite.Repository
	llm     *mocks.LLMClient
	quota   *services.QuotaService
	service *services.ExtractionService
}

func newPipeline(t *testing.T, limits services.QuotaLimits) *pipeline {
	t.Helper()

	store, err := sqlite.NewRepository(config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "integration.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))

	llm := &mocks.LLMClient{}
	quota := services.NewQuotaService(store, limits)
	service := services.NewExtractionService(
		llm,
		store,
		quota,
		services.NewReferenceService(store),
		services.NewReconciler(store),
		services.ExtractionOptions{},
	)

	return &pipeline{store: store, llm: llm, quota: quota, service: service}
}

func (p *pipeline) addNote(t *testing.T, content string) string {
	t.Helper()
	note := entities.Note{Title: "Session", Content: content}
	require.NoError(t, p.store.SaveNote(t.Context(), &note))
	return note.ID
}

func (p *pipeline) addElement(t *testing.T, kind entities.EntityKind, name, title string) {
	t.Helper()
	elem := entities.CampaignElement{Kind: kind, Name: name, Title: title}
	require.NoError(t, p.store.SaveElement(t.Context(), &elem))
}

const sessionContent = "The party met Captain Blackthorn at the gates of Waterdeep. " +
	"A hooded stranger whispered about the missing caravan."

func TestPipeline_ExtractReconcileConvert(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, services.QuotaLimits{})
	p.addElement(t, entities.KindNPC, "Blackthorn", "Captain Blackthorn")
	p.addElement(t, entities.KindLocation, "Waterdeep", "")

	noteID := p.addNote(t, sessionContent)

	p.llm.Candidates = []entities.CandidateEntity{
		{Kind: entities.KindNPC, Text: "Captain Blackthorn", Confidence: 0.95},
		{Kind: entities.KindLocation, Text: "waterdeep", Confidence: 0.9},
		{Kind: entities.KindNPC, Text: "Hooded Stranger", Confidence: 0.6},
		{Kind: entities.KindNPC, Text: "the hooded stranger!", Confidence: 0.8},
	}

	result, err := p.service.ExtractNewEntities(ctx, noteID, "alice")
	require.NoError(t, err)

	// Known element mentions are reconciled away; the duplicate stranger
	// merged to one suggestion.
	require.Len(t, result.NewEntities, 1)
	assert.Equal(t, "the hooded stranger!", result.NewEntities[0].Text)
	assert.Equal(t, 3, result.Stats.TotalFound)
	assert.Equal(t, 2, result.Stats.FilteredOut)

	// The suggestion is durable.
	note, err := p.store.GetNote(ctx, noteID)
	require.NoError(t, err)
	require.Len(t, note.Entities, 1)
	suggestionID := note.Entities[0].ID

	// Converting it creates an element and flips the stored candidate.
	elem := entities.CampaignElement{Kind: entities.KindNPC, Name: "Hooded Stranger"}
	require.NoError(t, p.store.SaveElement(ctx, &elem))
	require.NoError(t, p.service.MarkConverted(ctx, noteID, suggestionID, elem.ID))

	note, err = p.store.GetNote(ctx, noteID)
	require.NoError(t, err)
	assert.True(t, note.Entities[0].IsConverted)
	assert.Equal(t, elem.ID, note.Entities[0].ConvertedToID)

	// A re-run clears the unconverted suggestions but keeps the conversion.
	p.llm.Candidates = nil
	_, err = p.service.ExtractNewEntities(ctx, noteID, "alice")
	require.NoError(t, err)

	note, err = p.store.GetNote(ctx, noteID)
	require.NoError(t, err)
	require.Len(t, note.Entities, 1)
	assert.True(t, note.Entities[0].IsConverted)

	// The converted stranger is now a known element, so extracting it again
	// filters it out.
	p.llm.Candidates = []entities.CandidateEntity{
		{Kind: entities.KindNPC, Text: "Hooded Stranger", Confidence: 0.7},
	}
	result, err = p.service.ExtractNewEntities(ctx, noteID, "alice")
	require.NoError(t, err)
	assert.Empty(t, result.NewEntities)
	assert.Equal(t, 1, result.Stats.FilteredOut)
}

func TestPipeline_QuotaEnforcedAcrossCalls(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, services.QuotaLimits{Daily: 2})
	noteID := p.addNote(t, sessionContent)

	for i := 0; i < 2; i++ {
		_, err := p.service.ExtractNewEntities(ctx, noteID, "alice")
		require.NoError(t, err)
	}

	_, err := p.service.ExtractNewEntities(ctx, noteID, "alice")
	var quotaErr *services.QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, entities.PeriodDaily, quotaErr.Status.ExceededPeriod)

	// Another user has an independent budget.
	_, err = p.service.ExtractNewEntities(ctx, noteID, "bob")
	require.NoError(t, err)

	status, err := p.quota.ReadStatus(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, status.Daily.Count)
	assert.True(t, status.LimitExceeded)
	assert.Equal(t, float64(100), status.FillPercent)
}

func TestPipeline_FailedInferenceStillConsumesQuota(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t, services.QuotaLimits{})
	noteID := p.addNote(t, sessionContent)

	p.llm.Err = errors.New("model overloaded")
	_, err := p.service.ExtractNewEntities(ctx, noteID, "alice")
	require.ErrorIs(t, err, services.ErrExtractionFailed)

	status, readErr := p.quota.ReadStatus(ctx, "alice")
	require.NoError(t, readErr)
	assert.Equal(t, 1, status.Daily.Count)

	// The failed attempt still cleared the prior suggestions.
	note, err := p.store.GetNote(ctx, noteID)
	require.NoError(t, err)
	assert.Empty(t, note.Entities)
}

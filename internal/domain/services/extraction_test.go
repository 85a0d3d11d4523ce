package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/mocks"
)

const testNoteContent = "The party met Captain Blackthorn at the gates of Waterdeep. " +
	"A hooded stranger whispered about the missing caravan."

type extractionFixture struct {
	llm      *mocks.LLMClient
	notes    *mocks.NoteStore
	elements *mocks.ElementRepository
	usage    *mocks.UsageStore
	svc      *ExtractionService
}

func newExtractionFixture(t *testing.T, note *entities.Note) *extractionFixture {
	t.Helper()

	f := &extractionFixture{
		llm:      &mocks.LLMClient{},
		notes:    mocks.NewNoteStore(note),
		elements: &mocks.ElementRepository{},
		usage:    mocks.NewUsageStore(),
	}
	quota := NewQuotaService(f.usage, QuotaLimits{})
	f.svc = NewExtractionService(f.llm, f.notes, quota, NewReferenceService(f.elements), NewReconciler(f.elements), ExtractionOptions{
		Contact: ContactInfo{Message: "ask the GM", ContactURL: "mailto:gm@example.com"},
	})
	return f
}

func testNote() *entities.Note {
	return &entities.Note{ID: "n1", Title: "Session 12", Content: testNoteContent}
}

func TestExtractNewEntities(t *testing.T) {
	f := newExtractionFixture(t, testNote())
	f.elements.Elements = []entities.CampaignElement{
		{ID: "e1", Kind: entities.KindNPC, Name: "Blackthorn", Title: "Captain Blackthorn"},
	}
	f.llm.Candidates = []entities.CandidateEntity{
		{Kind: entities.KindNPC, Text: "Captain Blackthorn", Confidence: 0.95},
		{Kind: entities.KindNPC, Text: "Hooded Stranger", Confidence: 0.6},
		{Kind: entities.KindNPC, Text: "the hooded stranger", Confidence: 0.8},
		{Kind: entities.KindQuest, Text: "The Missing Caravan", Confidence: 0.7},
	}

	result, err := f.svc.ExtractNewEntities(context.Background(), "n1", "alice")

	require.NoError(t, err)
	require.Len(t, result.NewEntities, 2)

	// The duplicate stranger merged to its higher-confidence variant and the
	// known captain was reconciled away.
	assert.Equal(t, "the hooded stranger", result.NewEntities[0].Text)
	assert.Equal(t, 0.8, result.NewEntities[0].Confidence)
	assert.Equal(t, "The Missing Caravan", result.NewEntities[1].Text)
	for _, e := range result.NewEntities {
		assert.NotEmpty(t, e.ID)
	}

	assert.Equal(t, 3, result.Stats.TotalFound, "stats count post-dedup candidates")
	assert.Equal(t, 1, result.Stats.FilteredOut)
	assert.Equal(t, 1, result.Status.Daily.Count)

	// First replace clears prior suggestions, second persists the survivors.
	assert.Equal(t, 2, f.notes.ReplaceCallCount)
	assert.Len(t, f.notes.LastReplaced, 2)
}

func TestExtractNewEntities_ContentTooShort(t *testing.T) {
	f := newExtractionFixture(t, &entities.Note{ID: "n1", Content: "Short note."})

	_, err := f.svc.ExtractNewEntities(context.Background(), "n1", "alice")

	require.ErrorIs(t, err, ErrContentTooShort)
	assert.Zero(t, f.usage.UpdateCallCount, "no quota is consumed before the length check")
	assert.Zero(t, f.llm.ExtractCallCount)
	assert.Zero(t, f.notes.ReplaceCallCount)
}

func TestExtractNewEntities_QuotaExceeded(t *testing.T) {
	f := newExtractionFixture(t, testNote())
	f.usage.Records["alice"] = &entities.UsageRecord{
		UserID:  "alice",
		Daily:   entities.UsageWindow{Count: 10, Limit: 10, LastReset: time.Now()},
		Weekly:  entities.UsageWindow{Limit: 30, LastReset: time.Now()},
		Monthly: entities.UsageWindow{Limit: 75, LastReset: time.Now()},
	}

	_, err := f.svc.ExtractNewEntities(context.Background(), "n1", "alice")

	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, entities.PeriodDaily, quotaErr.Status.ExceededPeriod)
	assert.Equal(t, "ask the GM", quotaErr.Contact.Message)

	assert.Zero(t, f.llm.ExtractCallCount, "no inference call on a denied reservation")
	assert.Zero(t, f.notes.ReplaceCallCount, "prior suggestions survive a denied reservation")
}

func TestExtractNewEntities_InferenceFailureConsumesQuota(t *testing.T) {
	f := newExtractionFixture(t, testNote())
	f.llm.Err = errors.New("model overloaded")

	_, err := f.svc.ExtractNewEntities(context.Background(), "n1", "alice")

	require.ErrorIs(t, err, ErrExtractionFailed)
	assert.NotContains(t, ErrExtractionFailed.Error(), "overloaded", "sentinel message stays generic")

	// The attempt consumed a quota unit even though it failed.
	assert.Equal(t, 1, f.usage.Records["alice"].Daily.Count)

	// Prior suggestions were cleared before the failed call and stay cleared.
	assert.Equal(t, 1, f.notes.ReplaceCallCount)
	assert.Nil(t, f.notes.LastReplaced)
}

func TestExtractNewEntities_ClearsPriorSuggestionsBeforeInference(t *testing.T) {
	note := testNote()
	note.Entities = []entities.CandidateEntity{
		{ID: "old", Kind: entities.KindNPC, Text: "Stale Suggestion"},
		{ID: "conv", Kind: entities.KindNPC, Text: "Kept NPC", IsConverted: true, ConvertedToID: "e9"},
	}
	f := newExtractionFixture(t, note)
	f.llm.Candidates = []entities.CandidateEntity{
		{Kind: entities.KindLocation, Text: "Neverwinter", Confidence: 0.9},
	}

	_, err := f.svc.ExtractNewEntities(context.Background(), "n1", "alice")
	require.NoError(t, err)

	stored := f.notes.Notes["n1"].Entities
	require.Len(t, stored, 2)
	assert.True(t, stored[0].IsConverted, "converted candidates are never cleared")
	assert.Equal(t, "Kept NPC", stored[0].Text)
	assert.Equal(t, "Neverwinter", stored[1].Text)
}

func TestExtractNewEntities_QuotaStoreErrorFailsClosed(t *testing.T) {
	f := newExtractionFixture(t, testNote())
	f.usage.UpdateErr = errors.New("database is locked")

	_, err := f.svc.ExtractNewEntities(context.Background(), "n1", "alice")

	require.Error(t, err)
	assert.Zero(t, f.llm.ExtractCallCount)
}

func TestExtractNewEntities_NoteNotFound(t *testing.T) {
	f := newExtractionFixture(t, testNote())

	_, err := f.svc.ExtractNewEntities(context.Background(), "missing", "alice")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Zero(t, f.usage.UpdateCallCount)
}

func TestFindReferences_NeverConsumesQuota(t *testing.T) {
	f := newExtractionFixture(t, testNote())
	f.elements.Elements = []entities.CampaignElement{
		{ID: "e1", Kind: entities.KindLocation, Name: "Waterdeep"},
	}

	refs, err := f.svc.FindReferences(context.Background(), "n1")

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "e1", refs[0].ElementID)
	assert.Zero(t, f.usage.UpdateCallCount)
	assert.Zero(t, f.llm.ExtractCallCount)
}

func TestMarkConverted(t *testing.T) {
	note := testNote()
	note.Entities = []entities.CandidateEntity{
		{ID: "c1", Kind: entities.KindNPC, Text: "Hooded Stranger"},
	}
	f := newExtractionFixture(t, note)

	err := f.svc.MarkConverted(context.Background(), "n1", "c1", "e7")

	require.NoError(t, err)
	stored := f.notes.Notes["n1"].Entities[0]
	assert.True(t, stored.IsConverted)
	assert.Equal(t, "e7", stored.ConvertedToID)
}

func TestExtractionOptions_Defaults(t *testing.T) {
	f := newExtractionFixture(t, testNote())

	assert.Equal(t, DefaultMinContentLength, f.svc.opts.MinContentLength)
	assert.Equal(t, DefaultInferenceTimeout, f.svc.opts.InferenceTimeout)
	assert.True(t, len(strings.TrimSpace(testNoteContent)) >= DefaultMinContentLength)
}

package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haugenau20/campaign-companion/internal/domain/mocks"
)

func writeImportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportHandler_JSON(t *testing.T) {
	path := writeImportFile(t, "elements.json", `[
		{"kind": "npc", "name": "Blackthorn", "title": "Captain Blackthorn"},
		{"kind": "location", "name": "Waterdeep"},
		{"kind": "dragon", "name": "Smaug"},
		{"kind": "npc", "name": ""}
	]`)

	elements := &mocks.ElementRepository{}
	handler := NewImportHandler(elements)

	result, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Reason, "invalid kind")
	assert.Contains(t, result.Errors[1].Reason, "missing name")
	assert.Len(t, elements.Elements, 2)
}

func TestImportHandler_CSV(t *testing.T) {
	path := writeImportFile(t, "elements.csv", "kind,name,title\nquest,The Missing Caravan,\nrumor,Dragon sightings,\n")

	elements := &mocks.ElementRepository{}
	handler := NewImportHandler(elements)

	result, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Skipped)
}

func TestImportHandler_DryRun(t *testing.T) {
	path := writeImportFile(t, "elements.json", `[{"kind": "npc", "name": "Blackthorn"}]`)

	elements := &mocks.ElementRepository{}
	handler := NewImportHandler(elements)

	result, err := handler.Handle(context.Background(), path, ImportOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, elements.SaveCallCount, "dry run never writes")
}

func TestImportHandler_UnsupportedFormat(t *testing.T) {
	path := writeImportFile(t, "elements.txt", "whatever")

	handler := NewImportHandler(&mocks.ElementRepository{})
	_, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestImportHandler_ExplicitFormatOverridesExtension(t *testing.T) {
	path := writeImportFile(t, "elements.dat", `[{"kind": "npc", "name": "Blackthorn"}]`)

	handler := NewImportHandler(&mocks.ElementRepository{})
	result, err := handler.Handle(context.Background(), path, ImportOptions{Format: "json"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}

package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser(t *testing.T) {
	input := `[
		{"kind": "npc", "name": "Blackthorn", "title": "Captain Blackthorn"},
		{"kind": "location", "name": "Waterdeep"}
	]`

	elements, err := (&JSONParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, elements, 2)
	assert.Equal(t, "npc", elements[0].Kind)
	assert.Equal(t, "Blackthorn", elements[0].Name)
	assert.Equal(t, "Captain Blackthorn", elements[0].Title)
	assert.Equal(t, "Waterdeep", elements[1].Name)
}

func TestJSONParser_InvalidJSON(t *testing.T) {
	_, err := (&JSONParser{}).Parse(strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestCSVParser(t *testing.T) {
	input := "kind,name,title\nnpc,Blackthorn,Captain Blackthorn\nlocation,Waterdeep,\n"

	elements, err := (&CSVParser{}).Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, elements, 2)
	assert.Equal(t, "npc", elements[0].Kind)
	assert.Equal(t, "Captain Blackthorn", elements[0].Title)
	assert.Equal(t, 2, elements[0].LineNum)
	assert.Equal(t, "Waterdeep", elements[1].Name)
	assert.Equal(t, 3, elements[1].LineNum)
}

func TestCSVParser_MissingRequiredColumn(t *testing.T) {
	input := "name,title\nBlackthorn,Captain\n"

	_, err := (&CSVParser{}).Parse(strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
}

func TestCSVParser_EmptyFile(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFormat("json"))
	assert.IsType(t, &CSVParser{}, ForFormat("CSV"))
	assert.Nil(t, ForFormat("xml"))
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ForFile("elements.json"))
	assert.IsType(t, &CSVParser{}, ForFile("/tmp/Elements.CSV"))
	assert.Nil(t, ForFile("elements.txt"))
}

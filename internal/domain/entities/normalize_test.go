package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and keeps interior articles",
			input:    "Gandalf The Grey",
			expected: "gandalf the grey",
		},
		{
			name:     "strips leading article the",
			input:    "The Prancing Pony",
			expected: "prancing pony",
		},
		{
			name:     "strips leading article a",
			input:    "A Dark Cave",
			expected: "dark cave",
		},
		{
			name:     "strips leading article an",
			input:    "An Old Friend",
			expected: "old friend",
		},
		{
			name:     "strips stacked articles",
			input:    "The A An Inn",
			expected: "inn",
		},
		{
			name:     "collapses punctuation runs",
			input:    "Blackthorn,  the --- Bold!!",
			expected: "blackthorn the bold",
		},
		{
			name:     "trims leading and trailing separators",
			input:    "  ...Waterdeep...  ",
			expected: "waterdeep",
		},
		{
			name:     "article not followed by separator is kept",
			input:    "Thembria",
			expected: "thembria",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only separators",
			input:    " .,;- \t",
			expected: "",
		},
		{
			name:     "trailing bare article survives",
			input:    "The The The",
			expected: "the",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			assert.Equal(t, tt.expected, got)

			// Normalizing a normalized string must be a no-op.
			assert.Equal(t, got, NormalizeText(got))
		})
	}
}

func TestNormalizeText_EquatesSpellingVariants(t *testing.T) {
	variants := []string{
		"Gandalf the Grey",
		"gandalf, the grey",
		"GANDALF THE GREY!",
		"  gandalf   the   grey  ",
	}
	expected := NormalizeText(variants[0])
	for _, v := range variants {
		assert.Equal(t, expected, NormalizeText(v), "variant %q", v)
	}
}

func TestDedupKey(t *testing.T) {
	a := CandidateEntity{Kind: KindNPC, Text: "The Blacksmith"}
	b := CandidateEntity{Kind: KindNPC, Text: "blacksmith"}
	c := CandidateEntity{Kind: KindLocation, Text: "The Blacksmith"}

	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.NotEqual(t, a.DedupKey(), c.DedupKey(), "same text under a different kind is a different entity")
}

// Package openai provides an LLMClient implementation using OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
)

const extractionPrompt = `You are an assistant for a tabletop campaign manager. Extract campaign elements mentioned in the session note.

For each element, identify:
- kind: npc, location, quest, rumor
- text: The name or short phrase identifying the element, as written in the note
- confidence: How confident you are that this is a distinct campaign element (0.0-1.0)

Only report elements of the four kinds above. The same element may appear more than once in the note; report it once per distinct mention phrasing.

Return ONLY a valid JSON array, no other text.

Example:
Input: "We met Lord Blackthorn near Waterdeep. He asked us to recover the Sunken Crown."
Output: [
  {"kind": "npc", "text": "Lord Blackthorn", "confidence": 0.95},
  {"kind": "location", "text": "Waterdeep", "confidence": 0.9},
  {"kind": "quest", "text": "recover the Sunken Crown", "confidence": 0.8}
]`

// Client implements the LLMClient interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI inference client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// ExtractEntities extracts candidate campaign elements from note text.
func (c *Client) ExtractEntities(ctx context.Context, text string) ([]entities.CandidateEntity, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var raw []rawCandidate
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parsing candidates JSON: %w (response: %s)", err, content)
	}

	candidates := make([]entities.CandidateEntity, 0, len(raw))
	for _, rc := range raw {
		kind := entities.EntityKind(strings.ToLower(strings.TrimSpace(rc.Kind)))
		if !entities.IsValidKind(kind) || strings.TrimSpace(rc.Text) == "" {
			// The model occasionally invents kinds; drop anything outside
			// the four element kinds.
			continue
		}
		candidates = append(candidates, entities.CandidateEntity{
			Text:       strings.TrimSpace(rc.Text),
			Kind:       kind,
			Confidence: rc.Confidence,
		})
	}

	return candidates, nil
}

// rawCandidate is the JSON structure for extracted candidates.
type rawCandidate struct {
	Kind       string  `json:"kind"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}

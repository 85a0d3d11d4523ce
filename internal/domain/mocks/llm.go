// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
)

// LLMClient is a mock implementation of ports.LLMClient.
type LLMClient struct {
	Candidates []entities.CandidateEntity
	Err        error

	// Call tracking
	ExtractCallCount int
	LastText         string
}

// ExtractEntities returns the configured candidates or error.
func (m *LLMClient) ExtractEntities(ctx context.Context, text string) ([]entities.CandidateEntity, error) {
	m.ExtractCallCount++
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Candidates, nil
}

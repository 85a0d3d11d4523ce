package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder.
type Embedder struct {
	Embedding []float32
	Err       error

	// Call tracking
	EmbedCallCount int
	LastText       string
}

// Embed returns the configured embedding or error.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.EmbedCallCount++
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Embedding, nil
}

// EmbedBatch returns the configured embedding once per input text.
func (m *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.Embedding
	}
	return out, nil
}

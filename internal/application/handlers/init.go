// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
	embedder "github.com/Haugenau20/campaign-companion/internal/infrastructure/embedder/openai"
)

// SchemaManager prepares relational storage for use.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}

// CollectionManager prepares the vector index for use.
type CollectionManager interface {
	EnsureCollection(ctx context.Context, vectorSize uint64) error
}

// InitHandler handles workspace initialization. The caller writes the
// default config and opens the repositories first; the handler prepares
// the storage they point at.
type InitHandler struct {
	schema     SchemaManager
	collection CollectionManager
}

// NewInitHandler creates a new init handler. Either manager may be nil, in
// which case that step is skipped.
func NewInitHandler(schema SchemaManager, collection CollectionManager) *InitHandler {
	return &InitHandler{
		schema:     schema,
		collection: collection,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	DatabasePath   string
	CollectionName string
}

// Handle prepares the campaign workspace storage: relational schema and
// vector collection.
func (h *InitHandler) Handle(ctx context.Context, basePath string, cfg *config.Config) (*InitResult, error) {
	if h.schema != nil {
		if err := h.schema.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating database schema: %w", err)
		}
	}

	if h.collection != nil {
		if err := h.collection.EnsureCollection(ctx, embedder.VectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
	}

	return &InitResult{
		ConfigPath:     config.ConfigFilePath(basePath),
		DatabasePath:   cfg.SQLite.Path,
		CollectionName: cfg.Qdrant.Collection,
	}, nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Haugenau20/campaign-companion/internal/application/handlers"
	"github.com/Haugenau20/campaign-companion/internal/domain/services"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
	embedder "github.com/Haugenau20/campaign-companion/internal/infrastructure/embedder/openai"
	llm "github.com/Haugenau20/campaign-companion/internal/infrastructure/llm/openai"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/store/sqlite"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config   *config.Config
	Notes    *handlers.NoteHandler
	Elements *handlers.ElementHandler
	Pipeline *handlers.PipelineHandler
	Import   *handlers.ImportHandler
	Search   *handlers.SearchHandler
}

// storeDeps holds the dependencies that work without any external service:
// the relational store and the handlers built on it alone.
type storeDeps struct {
	Config   *config.Config
	store    *sqlite.Repository
	Notes    *handlers.NoteHandler
	Elements *handlers.ElementHandler
	Import   *handlers.ImportHandler
	quota    *services.QuotaService
}

// withDeps loads config and builds the full dependency graph, then calls the
// provided function. It handles cleanup automatically. Commands using the
// inference or embedding providers need an OpenAI API key configured.
func withDeps(fn func(*Deps) error) error {
	return withStoreDeps(func(sd *storeDeps) error {
		cfg := sd.Config

		vectorDB, err := qdrant.NewRepository(cfg.Qdrant)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer vectorDB.Close()

		emb, err := embedder.NewEmbedder(cfg.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		llmClient, err := llm.NewClient(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}

		references := services.NewReferenceService(sd.store)
		reconciler := services.NewReconciler(sd.store)
		extraction := services.NewExtractionService(llmClient, sd.store, sd.quota, references, reconciler, services.ExtractionOptions{
			MinContentLength: cfg.Extraction.MinContentLength,
			InferenceTimeout: cfg.Extraction.Timeout(),
			Contact: services.ContactInfo{
				Message:          cfg.Contact.Message,
				ContactURL:       cfg.Contact.ContactURL,
				PrefilledSubject: cfg.Contact.PrefilledSubject,
			},
		})
		queryService := services.NewQueryService(emb, vectorDB)

		deps := &Deps{
			Config:   cfg,
			Notes:    handlers.NewNoteHandler(sd.store, queryService),
			Elements: sd.Elements,
			Pipeline: handlers.NewPipelineHandler(extraction, sd.quota, sd.store, sd.store),
			Import:   sd.Import,
			Search:   handlers.NewSearchHandler(queryService),
		}

		return fn(deps)
	})
}

// withStoreDeps builds only the SQLite-backed dependencies. Commands that
// never touch inference, embeddings, or the vector index use this so they
// work offline and without API keys.
func withStoreDeps(fn func(*storeDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	quota := services.NewQuotaService(store, services.QuotaLimits{
		Daily:   cfg.Quota.DailyLimit,
		Weekly:  cfg.Quota.WeeklyLimit,
		Monthly: cfg.Quota.MonthlyLimit,
	})

	return fn(&storeDeps{
		Config:   cfg,
		store:    store,
		Notes:    handlers.NewNoteHandler(store, nil),
		Elements: handlers.NewElementHandler(store),
		Import:   handlers.NewImportHandler(store),
		quota:    quota,
	})
}

// withQuota provides direct quota service access for usage commands.
func withQuota(fn func(*services.QuotaService) error) error {
	return withStoreDeps(func(sd *storeDeps) error {
		return fn(sd.quota)
	})
}

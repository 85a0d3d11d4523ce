package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Haugenau20/campaign-companion/internal/application/handlers"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/config"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/store/sqlite"
	"github.com/Haugenau20/campaign-companion/internal/infrastructure/vectordb/qdrant"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new campaign workspace",
		Long:  "Creates a .companion directory with default configuration, the SQLite database, and the Qdrant collection.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("campaign already initialized in %s", cwd)
	}

	// The database lives inside the config directory, so the repositories
	// can only be opened once the config has been written.
	if err := config.WriteDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
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

	vectorDB, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return fmt.Errorf("connecting to qdrant: %w", err)
	}
	defer vectorDB.Close()

	initHandler := handlers.NewInitHandler(store, vectorDB)
	result, err := initHandler.Handle(ctx, cwd, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Created database: %s\n", filepath.Base(result.DatabasePath))
	fmt.Printf("Created Qdrant collection: %s\n", result.CollectionName)
	fmt.Println("Campaign initialized successfully!")

	return nil
}

package app

import (
	"fmt"

	"github.com/echosense-labs/echosense/internal/cases"
	"github.com/echosense-labs/echosense/internal/config"
	"github.com/echosense-labs/echosense/internal/extract"
	"github.com/echosense-labs/echosense/internal/llm"
	"github.com/echosense-labs/echosense/internal/session"
	"github.com/echosense-labs/echosense/internal/store"
	"github.com/echosense-labs/echosense/internal/valuation"
)

// openOrchestrator builds the full pipeline from configuration and the
// on-disk database. The caller owns the returned DB and must close it.
func openOrchestrator() (*session.Orchestrator, *store.DB, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	overrides, err := db.LoadCaseOverrides()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	library := cases.NewLibraryWithOverrides(overrides)

	orch := session.New(
		db,
		extract.NewClient(cfg.Extraction.Endpoint, cfg.Extraction.AppID),
		llm.NewClient(cfg.Generation.BaseURL, cfg.Generation.APIKey, cfg.Generation.Model),
		valuation.New(library),
		library,
	)
	return orch, db, nil
}

// openStore opens just the database for commands that never start a run.
func openStore() (*store.DB, error) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// Package main loads archetype YAML files and upserts them into PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/isekai/internal/config"
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/observability"
	"github.com/cory-johannsen/isekai/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	sourceDir := flag.String("source", "", "archetype YAML directory (default: catalog.archetypes_dir)")
	dryRun := flag.Bool("dry-run", false, "validate the YAML files without writing to the database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	dir := *sourceDir
	if dir == "" {
		dir = cfg.Catalog.ArchetypesDir
	}
	if dir == "" {
		fmt.Fprintln(os.Stderr, "usage: import-catalog [-config <file>] -source <dir> [-dry-run]")
		os.Exit(1)
	}

	start := time.Now()
	n, err := importCatalog(context.Background(), cfg.Database, dir, *dryRun, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d archetypes in %s\n", n, time.Since(start).Round(time.Millisecond))
}

// archetypeStore is the write side of the archetype catalog.
type archetypeStore interface {
	Upsert(ctx context.Context, a *ruleset.Archetype) error
}

func importCatalog(ctx context.Context, dbCfg config.DatabaseConfig, dir string, dryRun bool, logger *zap.Logger) (int, error) {
	archetypes, err := ruleset.LoadArchetypes(dir)
	if err != nil {
		return 0, err
	}
	// Registry construction rejects duplicate IDs across files.
	if _, err := ruleset.NewRegistry(archetypes); err != nil {
		return 0, err
	}
	if dryRun {
		logger.Info("dry run: archetypes validated", zap.Int("count", len(archetypes)))
		return len(archetypes), nil
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return 0, fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	if err := pool.CheckSchema(ctx); err != nil {
		return 0, err
	}

	return upsertAll(ctx, postgres.NewArchetypeRepository(pool.DB()), archetypes, logger)
}

func upsertAll(ctx context.Context, store archetypeStore, archetypes []*ruleset.Archetype, logger *zap.Logger) (int, error) {
	for i, a := range archetypes {
		if err := store.Upsert(ctx, a); err != nil {
			return i, err
		}
		logger.Debug("archetype imported", zap.String("id", a.ID), zap.Stringer("tier", a.Tier))
	}
	return len(archetypes), nil
}

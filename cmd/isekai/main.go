// Package main runs the interactive transmigration console.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/isekai/internal/config"
	"github.com/cory-johannsen/isekai/internal/console"
	"github.com/cory-johannsen/isekai/internal/frontend/handlers"
	"github.com/cory-johannsen/isekai/internal/game/character"
	"github.com/cory-johannsen/isekai/internal/game/dice"
	"github.com/cory-johannsen/isekai/internal/game/minigame"
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
	"github.com/cory-johannsen/isekai/internal/observability"
	"github.com/cory-johannsen/isekai/internal/scripting"
	"github.com/cory-johannsen/isekai/internal/storage/postgres"
)

// Process exit codes. exitInterrupted follows the shell convention of
// 128 + SIGINT.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(execute())
}

// execute runs the console and returns the process exit code. Deferred
// cleanup has run by the time it returns.
func execute() int {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return exitFailure
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exitCode(logger, run(ctx, cfg, logger, os.Stdin, os.Stdout))
}

// exitCode logs the outcome of run and maps it to a process exit code.
func exitCode(logger *zap.Logger, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		logger.Info("interrupted before creation finished")
		return exitInterrupted
	case errors.Is(err, io.EOF):
		logger.Info("input closed before creation finished")
		return exitFailure
	default:
		logger.Error("transmigration failed", zap.Error(err))
		return exitFailure
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	start := time.Now()

	worlds, err := ruleset.LoadWorlds(cfg.Catalog.WorldsDir)
	if err != nil {
		return fmt.Errorf("loading worlds: %w", err)
	}
	if len(worlds) == 0 {
		return fmt.Errorf("no worlds found in %s", cfg.Catalog.WorldsDir)
	}

	catalog, closeCatalog, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	opponent, closeOpponent, err := newOpponent(cfg.Game, logger)
	if err != nil {
		return err
	}
	defer closeOpponent()

	gen := stats.NewGenerator(dice.NewLoggedSource(dice.NewLCG(0), logger))
	flow := handlers.NewCreationFlow(
		console.NewConn(in, out, cfg.Console.Color),
		worlds,
		catalog,
		minigame.NewGame(opponent, logger),
		cfg.Game.MaxRounds,
		character.NewBuilder(catalog, gen),
		logger,
	)

	logger.Info("creation flow ready",
		zap.Int("worlds", len(worlds)),
		zap.String("catalog", cfg.Catalog.Source),
		zap.String("opponent", cfg.Game.Opponent),
		zap.Duration("startup", time.Since(start)),
	)

	_, err = flow.Run(ctx)
	return err
}

// openCatalog builds the configured catalog, wrapped in a cache when
// catalog.cache_ttl is positive.
func openCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (ruleset.Catalog, func(), error) {
	var (
		catalog ruleset.Catalog
		closeFn = func() {}
	)

	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		if err := pool.CheckSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		catalog = postgres.NewArchetypeRepository(pool.DB())
		closeFn = pool.Close
	default:
		archetypes, err := ruleset.LoadArchetypes(cfg.Catalog.ArchetypesDir)
		if err != nil {
			return nil, nil, fmt.Errorf("loading archetypes: %w", err)
		}
		reg, err := ruleset.NewRegistry(archetypes)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("archetypes loaded", zap.Int("count", reg.Len()))
		catalog = reg
	}

	if cfg.Catalog.CacheTTL > 0 {
		catalog = ruleset.NewCachedCatalog(catalog, cfg.Catalog.CacheTTL)
	}
	return catalog, closeFn, nil
}

// newOpponent returns the minigame opponent. Scripted opponents fall back to
// the random chooser whenever the script misbehaves.
func newOpponent(cfg config.GameConfig, logger *zap.Logger) (minigame.Chooser, func(), error) {
	src := dice.NewCryptoSource()
	random := minigame.NewRandomChooser(src)
	if cfg.Opponent != config.OpponentScript {
		return random, func() {}, nil
	}
	script, err := scripting.LoadOpponentScript(cfg.OpponentScript, cfg.InstructionLimit, src, random, logger)
	if err != nil {
		return nil, nil, err
	}
	return script, script.Close, nil
}

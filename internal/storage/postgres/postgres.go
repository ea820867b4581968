// Package postgres serves the archetype catalog from PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/isekai/internal/config"
)

// connectTimeout bounds the initial reachability check in NewPool.
const connectTimeout = 5 * time.Second

// ErrSchemaMissing is returned by CheckSchema when the catalog tables have not
// been created by the migrate command.
var ErrSchemaMissing = errors.New("archetype schema missing; run the migrate command")

// catalogTables are created by migrations/000001_create_archetypes.
var catalogTables = []string{"archetypes", "archetype_modifiers"}

// Pool owns the pgx connection pool behind the archetype repository.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool opens a pool sized from cfg and verifies the server answers within
// connectTimeout.
//
// Postcondition: Returns a reachable Pool or a non-nil error; no pool is leaked
// on failure.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	p := &Pool{pool: pool}
	if err := p.Health(ctx, connectTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return p, nil
}

// Health pings the server, giving up after timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// CheckSchema reports ErrSchemaMissing unless every catalog table exists.
func (p *Pool) CheckSchema(ctx context.Context) error {
	for _, table := range catalogTables {
		var present bool
		err := p.pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+table).Scan(&present)
		if err != nil {
			return fmt.Errorf("checking table %s: %w", table, err)
		}
		if !present {
			return fmt.Errorf("table %s: %w", table, ErrSchemaMissing)
		}
	}
	return nil
}

// Close releases every pooled connection.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

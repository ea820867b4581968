package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/isekai/internal/storage/postgres"
	"github.com/cory-johannsen/isekai/internal/testutil"
)

func TestPool_CheckSchemaBeforeAndAfterMigrations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(t)

	require.NoError(t, pc.Pool.Health(ctx, time.Second))
	assert.ErrorIs(t, pc.Pool.CheckSchema(ctx), postgres.ErrSchemaMissing)

	pc.ApplyMigrations(t)
	assert.NoError(t, pc.Pool.CheckSchema(ctx))
}

func TestNewPool_UnreachableServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	cfg := pc.Config
	cfg.Password = "wrong"

	_, err := postgres.NewPool(context.Background(), cfg)
	assert.Error(t, err)
}

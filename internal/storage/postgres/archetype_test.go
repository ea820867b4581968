package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
	"github.com/cory-johannsen/isekai/internal/storage/postgres"
	"github.com/cory-johannsen/isekai/internal/testutil"
)

func seededRepo(t *testing.T) *postgres.ArchetypeRepository {
	t.Helper()
	repo := postgres.NewArchetypeRepository(testutil.NewPool(t))
	ctx := context.Background()
	for _, a := range []*ruleset.Archetype{
		{ID: "human", Name: "Human", Tier: ruleset.Baseline},
		{ID: "beastkin", Name: "Beastkin", Tier: ruleset.Baseline, Modifier: &stats.Modifier{Agility: 2}},
		{ID: "elf", Name: "Elf", Tier: ruleset.Elevated, SpecialAbility: "Spirit Sight",
			Modifier: &stats.Modifier{Intelligence: 2, MagicPoints: 20}},
		{ID: "dragonkin", Name: "Dragonkin", Tier: ruleset.Mythic, Modifier: &stats.Modifier{Strength: 5}},
	} {
		require.NoError(t, repo.Upsert(ctx, a))
	}
	return repo
}

func TestArchetypeRepository_UpToTier(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	got, err := repo.UpToTier(ctx, ruleset.Baseline)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "beastkin", got[0].ID, "ordered by name within a tier")
	assert.Equal(t, "human", got[1].ID)
	assert.Nil(t, got[1].Modifier)

	got, err = repo.UpToTier(ctx, ruleset.Epic)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "elf", got[2].ID)
	assert.Equal(t, "Spirit Sight", got[2].SpecialAbility)

	got, err = repo.UpToTier(ctx, ruleset.Mythic)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, ruleset.Mythic, got[3].Tier)
}

func TestArchetypeRepository_Modifier(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	mod, err := repo.Modifier(ctx, "elf")
	require.NoError(t, err)
	assert.Equal(t, &stats.Modifier{Intelligence: 2, MagicPoints: 20}, mod)

	mod, err = repo.Modifier(ctx, "human")
	require.NoError(t, err)
	assert.Nil(t, mod)

	_, err = repo.Modifier(ctx, "orc")
	assert.ErrorIs(t, err, ruleset.ErrArchetypeNotFound)
}

func TestArchetypeRepository_UpsertReplaces(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &ruleset.Archetype{ID: "elf", Name: "High Elf", Tier: ruleset.Epic}))
	a, err := repo.Get(ctx, "elf")
	require.NoError(t, err)
	assert.Equal(t, "High Elf", a.Name)
	assert.Equal(t, ruleset.Epic, a.Tier)
	assert.Nil(t, a.Modifier, "nil modifier clears the stored row")
}

func TestArchetypeRepository_UpsertRejectsInvalid(t *testing.T) {
	repo := postgres.NewArchetypeRepository(testutil.NewPool(t))
	assert.Error(t, repo.Upsert(context.Background(), &ruleset.Archetype{ID: "", Name: "Nobody"}))
	assert.Error(t, repo.Upsert(context.Background(), nil))
}

func TestArchetypeRepository_BehindCache(t *testing.T) {
	repo := seededRepo(t)
	c := ruleset.NewCachedCatalog(repo, time.Minute)
	ctx := context.Background()

	first, err := c.UpToTier(ctx, ruleset.Mythic)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, &ruleset.Archetype{ID: "slime", Name: "Slime", Tier: ruleset.Baseline}))
	second, err := c.UpToTier(ctx, ruleset.Mythic)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second), "cached result is served until flushed")

	c.Flush()
	third, err := c.UpToTier(ctx, ruleset.Mythic)
	require.NoError(t, err)
	assert.Len(t, third, len(first)+1)
}

// Property: any valid modifier round-trips through the database unchanged.
func TestArchetypeRepository_ModifierRoundTrip(t *testing.T) {
	repo := postgres.NewArchetypeRepository(testutil.NewPool(t))
	ctx := context.Background()
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(-50, 50)
		m := &stats.Modifier{
			Strength: d.Draw(rt, "str"), Vitality: d.Draw(rt, "vit"),
			Intelligence: d.Draw(rt, "int"), Agility: d.Draw(rt, "agi"),
			Dexterity: d.Draw(rt, "dex"), Luck: d.Draw(rt, "luk"),
			HealthPoints: d.Draw(rt, "hp"), MagicPoints: d.Draw(rt, "mp"),
		}
		tier := rapid.SampledFrom(ruleset.Tiers).Draw(rt, "tier")
		if err := repo.Upsert(ctx, &ruleset.Archetype{ID: "sample", Name: "Sample", Tier: tier, Modifier: m}); err != nil {
			rt.Fatal(err)
		}
		got, err := repo.Get(ctx, "sample")
		if err != nil {
			rt.Fatal(err)
		}
		if *got.Modifier != *m || got.Tier != tier {
			rt.Fatalf("round trip mismatch: %+v %s vs %+v %s", got.Modifier, got.Tier, m, tier)
		}
	})
}

var _ ruleset.Catalog = (*postgres.ArchetypeRepository)(nil)

package character_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/isekai/internal/game/character"
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
)

const referenceID = "123e4567-e89b-12d3-a456-426614174000"

var (
	fantasy = &ruleset.World{ID: "fantasy", Name: "Fantasy"}
	human   = &ruleset.Archetype{ID: "human", Name: "Human", Tier: ruleset.Baseline}
	dwarf   = &ruleset.Archetype{ID: "dwarf", Name: "Dwarf", Tier: ruleset.Elevated,
		Modifier: &stats.Modifier{Strength: 2, Vitality: 3, Agility: -1, HealthPoints: 25}}
)

func newBuilder(t *testing.T) *character.Builder {
	t.Helper()
	reg, err := ruleset.NewRegistry([]*ruleset.Archetype{human, dwarf})
	require.NoError(t, err)
	return character.NewBuilder(reg, stats.NewDefaultGenerator())
}

func fixedID(t *testing.T, s string) func() character.ID {
	t.Helper()
	id, err := character.ParseID(s)
	require.NoError(t, err)
	return func() character.ID { return id }
}

func ints(a stats.Attributes) []int {
	var out []int
	for _, v := range a.Values() {
		out = append(out, v.Int())
	}
	return out
}

func TestID_Seed(t *testing.T) {
	id, err := character.ParseID(referenceID)
	require.NoError(t, err)
	assert.Equal(t, int64(-6605018797301088256), id.Seed())
	assert.Equal(t, referenceID, id.String())
}

func TestBuild_ReferenceCharacter(t *testing.T) {
	b := newBuilder(t)
	b.NewID = fixedID(t, referenceID)

	c, err := b.Build(context.Background(), "Aki", 25, fantasy, human)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 12, 12, 10, 9, 107, 52}, ints(c.Attributes))
	assert.Equal(t, character.Name("Aki"), c.Name)
	assert.Same(t, fantasy, c.World)
	assert.Same(t, human, c.Archetype)
}

func TestBuild_ReferenceCharacterAcrossAges(t *testing.T) {
	b := newBuilder(t)
	b.NewID = fixedID(t, referenceID)

	young, err := b.Build(context.Background(), "Aki", 19, fantasy, human)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 11, 14, 12, 9, 107, 52}, ints(young.Attributes))

	old, err := b.Build(context.Background(), "Aki", 51, fantasy, human)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 11, 14, 11, 9, 9, 107, 52}, ints(old.Attributes))
}

func TestBuild_AppliesArchetypeModifier(t *testing.T) {
	b := newBuilder(t)
	b.NewID = fixedID(t, referenceID)

	c, err := b.Build(context.Background(), "Aki", 25, fantasy, dwarf)
	require.NoError(t, err)
	assert.Equal(t, []int{14, 14, 12, 11, 10, 9, 132, 52}, ints(c.Attributes))
}

func TestBuild_UnknownArchetypePropagatesCatalogError(t *testing.T) {
	b := newBuilder(t)
	orc := &ruleset.Archetype{ID: "orc", Name: "Orc"}
	_, err := b.Build(context.Background(), "Aki", 25, fantasy, orc)
	assert.ErrorIs(t, err, ruleset.ErrArchetypeNotFound)
}

func TestBuild_RejectsInvalidInputs(t *testing.T) {
	b := newBuilder(t)
	ctx := context.Background()

	_, err := b.Build(ctx, "", 25, fantasy, human)
	assert.ErrorIs(t, err, character.ErrInvalidName)
	_, err = b.Build(ctx, "Aki", 0, fantasy, human)
	assert.ErrorIs(t, err, character.ErrInvalidAge)
	_, err = b.Build(ctx, "Aki", 25, nil, human)
	assert.Error(t, err)
	_, err = b.Build(ctx, "Aki", 25, fantasy, nil)
	assert.Error(t, err)
}

func TestNewBuilder_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { character.NewBuilder(nil, stats.NewDefaultGenerator()) })
	reg, err := ruleset.NewRegistry(nil)
	require.NoError(t, err)
	assert.Panics(t, func() { character.NewBuilder(reg, nil) })
}

// Property: the same ID, age, and archetype always produce the same attributes,
// and every attribute is at least 1.
func TestBuild_DeterministicPerIdentity(t *testing.T) {
	b := newBuilder(t)
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(rt, "id")
		age := rapid.IntRange(character.MinAge, character.MaxAge).Draw(rt, "age")
		arch := rapid.SampledFrom([]*ruleset.Archetype{human, dwarf}).Draw(rt, "archetype")
		var id character.ID
		copy(id[:], raw)
		b.NewID = func() character.ID { return id }

		first, err := b.Build(context.Background(), "Aki", character.Age(age), fantasy, arch)
		if err != nil {
			rt.Fatal(err)
		}
		second, err := b.Build(context.Background(), "Aki", character.Age(age), fantasy, arch)
		if err != nil {
			rt.Fatal(err)
		}
		if first.Attributes != second.Attributes {
			rt.Fatalf("attributes differ for the same identity")
		}
		for _, v := range first.Attributes.Values() {
			if v.Int() < stats.MinValue {
				rt.Fatalf("%s below minimum", v)
			}
		}
	})
}

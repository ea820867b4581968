package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/isekai/internal/game/ruleset"
)

func TestWinsToTier(t *testing.T) {
	cases := map[int]ruleset.Tier{
		-5: ruleset.Baseline,
		0:  ruleset.Baseline,
		1:  ruleset.Elevated,
		2:  ruleset.Epic,
		3:  ruleset.Mythic,
		4:  ruleset.Mythic,
		99: ruleset.Mythic,
	}
	for wins, want := range cases {
		assert.Equal(t, want, ruleset.WinsToTier(wins), "wins=%d", wins)
	}
}

func TestTier_RequiredWinsStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(ruleset.Tiers); i++ {
		assert.Less(t, ruleset.Tiers[i-1].RequiredWins(), ruleset.Tiers[i].RequiredWins())
	}
	assert.Equal(t, ruleset.TierSelectionRounds, ruleset.Mythic.RequiredWins())
}

// Property: WinsToTier is monotonic and never unlocks a tier the wins do not cover.
func TestWinsToTier_Monotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(-10, 10).Draw(rt, "a")
		b := rapid.IntRange(a, 12).Draw(rt, "b")
		if ruleset.WinsToTier(a) > ruleset.WinsToTier(b) {
			rt.Fatalf("WinsToTier(%d) > WinsToTier(%d)", a, b)
		}
		if a >= 0 && ruleset.WinsToTier(a).RequiredWins() > a {
			rt.Fatalf("tier for %d wins requires more than %d", a, a)
		}
	})
}

func TestParseTier(t *testing.T) {
	for _, tier := range ruleset.Tiers {
		got, err := ruleset.ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, got)
	}
	got, err := ruleset.ParseTier(" EPIC ")
	require.NoError(t, err)
	assert.Equal(t, ruleset.Epic, got)

	_, err = ruleset.ParseTier("legendary")
	assert.Error(t, err)
}

func TestTier_YAML(t *testing.T) {
	var doc struct {
		Tier ruleset.Tier `yaml:"tier"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("tier: mythic\n"), &doc))
	assert.Equal(t, ruleset.Mythic, doc.Tier)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "tier: mythic\n", string(out))
}

func TestTier_DescriptionAndValid(t *testing.T) {
	assert.Equal(t, "Common", ruleset.Baseline.Description())
	assert.Equal(t, "Ultra Rare", ruleset.Mythic.Description())
	assert.False(t, ruleset.Tier(7).Valid())
	assert.Equal(t, "tier(7)", ruleset.Tier(7).String())
}

package handlers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/isekai/internal/console"
	"github.com/cory-johannsen/isekai/internal/frontend/handlers"
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
)

func TestFormatAttributes(t *testing.T) {
	a, err := stats.NewAttributes(12, 11, 12, 12, 10, 9, 107, 52)
	require.NoError(t, err)
	got := console.StripANSI(handlers.FormatAttributes(a))
	want := strings.Join([]string{
		"[Status]",
		"  Strength: 12",
		"  Vitality: 11",
		"  Intelligence: 12",
		"  Agility: 12",
		"  Dexterity: 10",
		"  Luck: 9",
		"  HP: 107",
		"  MP: 52",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatArchetypeOption(t *testing.T) {
	got := console.StripANSI(handlers.FormatArchetypeOption(3, &ruleset.Archetype{
		Name: "Elf", Tier: ruleset.Elevated, SpecialAbility: "Spirit Sight", Description: "Forest folk.",
	}))
	assert.Equal(t, "  3. Elf (Rare)\n     Special ability: Spirit Sight\n     Forest folk.", got)

	bare := console.StripANSI(handlers.FormatArchetypeOption(1, &ruleset.Archetype{Name: "Human", Tier: ruleset.Baseline}))
	assert.Equal(t, "  1. Human (Common)", bare)
}

func TestFormatWorldOption(t *testing.T) {
	got := console.StripANSI(handlers.FormatWorldOption(2, &ruleset.World{Name: "Game World", Description: "Log out at your peril."}))
	assert.Equal(t, "  2. Game World\n     Log out at your peril.", got)
}

func TestFormatTierTable(t *testing.T) {
	got := handlers.FormatTierTable()
	assert.Contains(t, got, "Common:    always available")
	assert.Contains(t, got, "Rare:      1 win")
	assert.Contains(t, got, "Super Rare: 2 consecutive wins")
	assert.Contains(t, got, "Ultra Rare: 3 consecutive wins")
}

package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/isekai/internal/console"
	"github.com/cory-johannsen/isekai/internal/game/character"
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
)

// FormatWorldOption renders one numbered entry of the world menu.
func FormatWorldOption(index int, w *ruleset.World) string {
	return fmt.Sprintf("  %s%d%s. %s%s%s\n     %s",
		console.Green, index, console.Reset,
		console.BrightWhite, w.Name, console.Reset,
		w.Description)
}

// FormatArchetypeOption renders one numbered entry of the archetype menu.
func FormatArchetypeOption(index int, a *ruleset.Archetype) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s%d%s. %s%s%s (%s)",
		console.Green, index, console.Reset,
		console.BrightWhite, a.Name, console.Reset,
		a.Tier.Description())
	if a.SpecialAbility != "" {
		fmt.Fprintf(&b, "\n     Special ability: %s", a.SpecialAbility)
	}
	if a.Description != "" {
		fmt.Fprintf(&b, "\n     %s", a.Description)
	}
	return b.String()
}

// FormatTierTable describes how many wins unlock each tier.
func FormatTierTable() string {
	lines := []string{"Rare archetypes are unlocked by winning rock-paper-scissors in a row."}
	for _, t := range ruleset.Tiers {
		req := "always available"
		switch n := t.RequiredWins(); n {
		case 0:
		case 1:
			req = "1 win"
		default:
			req = fmt.Sprintf("%d consecutive wins", n)
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", t.Description()+":", req))
	}
	return strings.Join(lines, "\n")
}

// FormatAttributes renders the attribute block shown after creation.
//
// Postcondition: Returns one "Label: value" line per attribute, in display order.
func FormatAttributes(a stats.Attributes) string {
	var b strings.Builder
	b.WriteString(console.Colorize(console.BrightYellow, "[Status]"))
	for _, v := range a.Values() {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

// FormatCharacterSummary renders the one-line completion message.
func FormatCharacterSummary(c *character.Character) string {
	return fmt.Sprintf("Transmigration complete: %s (age %d) was reborn in %s as a %s!",
		c.Name, c.Age.Int(), c.World.Name, c.Archetype.Name)
}

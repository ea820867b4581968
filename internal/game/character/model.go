// Package character defines the transmigrated character and its creation logic.
package character

import (
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
)

// Character is the result of a completed creation flow. It is displayed to the
// player and never stored.
type Character struct {
	ID         ID
	Name       Name
	Age        Age
	World      *ruleset.World
	Archetype  *ruleset.Archetype
	Attributes stats.Attributes
}

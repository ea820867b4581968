package ruleset

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/isekai/internal/game/stats"
)

// ErrArchetypeNotFound is returned when a catalog lookup names an unknown archetype.
var ErrArchetypeNotFound = errors.New("archetype not found")

// Archetype is a selectable character category (a race in the transmigration
// setting) gated by Tier.
//
// Precondition: ID and Name must be non-empty and Tier valid after loading.
type Archetype struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Tier           Tier            `yaml:"tier"`
	Description    string          `yaml:"description"`
	SpecialAbility string          `yaml:"special_ability"`
	Modifier       *stats.Modifier `yaml:"modifier"`
}

// Validate checks the loading invariants.
func (a *Archetype) Validate() error {
	if a.ID == "" {
		return errors.New("archetype id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("archetype %q: name must not be empty", a.ID)
	}
	if !a.Tier.Valid() {
		return fmt.Errorf("archetype %q: invalid tier %d", a.ID, int(a.Tier))
	}
	return nil
}

// LoadArchetypes parses every YAML file in dir as an Archetype.
//
// Postcondition: Returns the archetypes in file-name order (may be empty) or
// a non-nil error naming the offending file.
func LoadArchetypes(dir string) ([]*Archetype, error) {
	return loadDir[Archetype](dir, "archetype")
}

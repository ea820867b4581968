package ruleset

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// World is a destination setting the player transmigrates into.
// It is descriptive only and has no effect on attributes.
//
// Precondition: ID and Name must be non-empty after loading.
type World struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Order positions the world in the selection menu; ties keep file order.
	Order int `yaml:"order"`
}

// Validate checks the loading invariants.
func (w *World) Validate() error {
	if w.ID == "" {
		return errors.New("world id must not be empty")
	}
	if w.Name == "" {
		return fmt.Errorf("world %q: name must not be empty", w.ID)
	}
	return nil
}

// LoadWorlds parses every YAML file in dir as a World.
//
// Postcondition: Returns the worlds sorted by Order, ties in file-name order,
// or a non-nil error. Duplicate IDs are an error.
func LoadWorlds(dir string) ([]*World, error) {
	worlds, err := loadDir[World](dir, "world")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(worlds))
	for _, w := range worlds {
		if seen[w.ID] {
			return nil, fmt.Errorf("world %q defined more than once in %s", w.ID, dir)
		}
		seen[w.ID] = true
	}
	slices.SortStableFunc(worlds, func(a, b *World) int { return cmp.Compare(a.Order, b.Order) })
	return worlds, nil
}

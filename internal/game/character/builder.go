package character

import (
	"context"
	"errors"
	"fmt"

	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
)

// Builder assembles characters from validated creation choices.
//
// A Builder shares its Generator, so it is not safe for concurrent use.
type Builder struct {
	catalog ruleset.Catalog
	gen     *stats.Generator
	// NewID produces each character's identity. Defaults to NewID; tests may
	// replace it to fix the attribute seed.
	NewID func() ID
}

// NewBuilder returns a Builder that looks modifiers up in catalog.
//
// Precondition: catalog and gen must be non-nil.
func NewBuilder(catalog ruleset.Catalog, gen *stats.Generator) *Builder {
	if catalog == nil {
		panic("NewBuilder: precondition violated: catalog must be non-nil")
	}
	if gen == nil {
		panic("NewBuilder: precondition violated: gen must be non-nil")
	}
	return &Builder{catalog: catalog, gen: gen, NewID: NewID}
}

// Build assigns a fresh ID, looks up the archetype modifier and generates
// attributes seeded by the ID.
//
// Precondition: world and archetype must be non-nil; name and age must come
// from NewName and NewAge (or their parse variants).
// Postcondition: Returns a Character whose attributes are all at least 1, or a
// non-nil error if the catalog lookup fails.
func (b *Builder) Build(ctx context.Context, name Name, age Age, world *ruleset.World, archetype *ruleset.Archetype) (*Character, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if age < MinAge || age > MaxAge {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAge, int(age))
	}
	if world == nil {
		return nil, errors.New("world must not be nil")
	}
	if archetype == nil {
		return nil, errors.New("archetype must not be nil")
	}

	mod, err := b.catalog.Modifier(ctx, archetype.ID)
	if err != nil {
		return nil, fmt.Errorf("looking up modifier for %q: %w", archetype.ID, err)
	}

	id := b.NewID()
	return &Character{
		ID:         id,
		Name:       name,
		Age:        age,
		World:      world,
		Archetype:  archetype,
		Attributes: b.gen.Generate(int(age), id.Seed(), mod),
	}, nil
}

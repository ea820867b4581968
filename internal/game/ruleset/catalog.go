package ruleset

import (
	"context"
	"fmt"
	"sort"

	"github.com/cory-johannsen/isekai/internal/game/stats"
)

// Catalog is the read-only source of archetypes and their attribute modifiers.
type Catalog interface {
	// UpToTier returns every archetype whose tier is at most maxTier, ordered by
	// ascending tier. The result may be empty.
	UpToTier(ctx context.Context, maxTier Tier) ([]*Archetype, error)
	// Modifier returns the modifier for archetypeID, or nil when the archetype
	// defines none. Unknown IDs yield an error wrapping ErrArchetypeNotFound.
	Modifier(ctx context.Context, archetypeID string) (*stats.Modifier, error)
}

// Registry is an in-memory Catalog built from loaded content.
type Registry struct {
	ordered []*Archetype
	byID    map[string]*Archetype
}

// NewRegistry indexes archetypes by ID.
//
// Precondition: every archetype must be non-nil and valid.
// Postcondition: Returns a Registry or an error when IDs collide or an archetype is invalid.
func NewRegistry(archetypes []*Archetype) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Archetype, len(archetypes))}
	for _, a := range archetypes {
		if a == nil {
			return nil, fmt.Errorf("registry: nil archetype")
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		if _, dup := r.byID[a.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate archetype id %q", a.ID)
		}
		r.byID[a.ID] = a
		r.ordered = append(r.ordered, a)
	}
	sort.SliceStable(r.ordered, func(i, j int) bool { return r.ordered[i].Tier < r.ordered[j].Tier })
	return r, nil
}

// Len returns the number of registered archetypes.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Archetype returns the archetype registered under id.
func (r *Registry) Archetype(id string) (*Archetype, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// UpToTier implements Catalog.
func (r *Registry) UpToTier(ctx context.Context, maxTier Tier) ([]*Archetype, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*Archetype, 0, len(r.ordered))
	for _, a := range r.ordered {
		if a.Tier > maxTier {
			break
		}
		out = append(out, a)
	}
	return out, nil
}

// Modifier implements Catalog.
func (r *Registry) Modifier(ctx context.Context, archetypeID string) (*stats.Modifier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := r.byID[archetypeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrArchetypeNotFound, archetypeID)
	}
	return a.Modifier, nil
}

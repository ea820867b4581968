package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/isekai/internal/game/ruleset"
	"github.com/cory-johannsen/isekai/internal/game/stats"
)

// ArchetypeRepository is a ruleset.Catalog backed by the archetypes and
// archetype_modifiers tables.
type ArchetypeRepository struct {
	db *pgxpool.Pool
}

// NewArchetypeRepository creates an ArchetypeRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewArchetypeRepository(db *pgxpool.Pool) *ArchetypeRepository {
	return &ArchetypeRepository{db: db}
}

const archetypeColumns = `
	a.id, a.name, a.tier, a.description, a.special_ability,
	m.archetype_id IS NOT NULL,
	COALESCE(m.strength, 0), COALESCE(m.vitality, 0), COALESCE(m.intelligence, 0),
	COALESCE(m.agility, 0), COALESCE(m.dexterity, 0), COALESCE(m.luck, 0),
	COALESCE(m.health_points, 0), COALESCE(m.magic_points, 0)`

func scanArchetype(row pgx.Row) (*ruleset.Archetype, error) {
	var (
		a      ruleset.Archetype
		tier   string
		hasMod bool
		m      stats.Modifier
	)
	err := row.Scan(
		&a.ID, &a.Name, &tier, &a.Description, &a.SpecialAbility,
		&hasMod,
		&m.Strength, &m.Vitality, &m.Intelligence,
		&m.Agility, &m.Dexterity, &m.Luck,
		&m.HealthPoints, &m.MagicPoints,
	)
	if err != nil {
		return nil, err
	}
	if a.Tier, err = ruleset.ParseTier(tier); err != nil {
		return nil, fmt.Errorf("archetype %q: %w", a.ID, err)
	}
	if hasMod {
		a.Modifier = &m
	}
	return &a, nil
}

// UpToTier implements ruleset.Catalog.
//
// Postcondition: Returns archetypes ordered by tier, then name (may be empty), or a non-nil error.
func (r *ArchetypeRepository) UpToTier(ctx context.Context, maxTier ruleset.Tier) ([]*ruleset.Archetype, error) {
	var tiers []string
	for _, t := range ruleset.Tiers {
		if t <= maxTier {
			tiers = append(tiers, t.String())
		}
	}
	rows, err := r.db.Query(ctx, `
		SELECT`+archetypeColumns+`
		FROM archetypes a
		LEFT JOIN archetype_modifiers m ON m.archetype_id = a.id
		WHERE a.tier = ANY($1)
		ORDER BY array_position($1, a.tier), a.name`,
		tiers,
	)
	if err != nil {
		return nil, fmt.Errorf("listing archetypes: %w", err)
	}
	defer rows.Close()

	var out []*ruleset.Archetype
	for rows.Next() {
		a, err := scanArchetype(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning archetype: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating archetypes: %w", err)
	}
	return out, nil
}

// Modifier implements ruleset.Catalog.
//
// Postcondition: Returns nil for an archetype without a modifier row, or an
// error wrapping ruleset.ErrArchetypeNotFound for an unknown ID.
func (r *ArchetypeRepository) Modifier(ctx context.Context, archetypeID string) (*stats.Modifier, error) {
	a, err := r.Get(ctx, archetypeID)
	if err != nil {
		return nil, err
	}
	return a.Modifier, nil
}

// Get returns the archetype stored under id.
func (r *ArchetypeRepository) Get(ctx context.Context, id string) (*ruleset.Archetype, error) {
	a, err := scanArchetype(r.db.QueryRow(ctx, `
		SELECT`+archetypeColumns+`
		FROM archetypes a
		LEFT JOIN archetype_modifiers m ON m.archetype_id = a.id
		WHERE a.id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ruleset.ErrArchetypeNotFound, id)
		}
		return nil, fmt.Errorf("querying archetype %q: %w", id, err)
	}
	return a, nil
}

// Upsert inserts or replaces an archetype and its modifier in one transaction.
// A nil Modifier removes any stored modifier row.
//
// Precondition: a must be non-nil and pass a.Validate().
func (r *ArchetypeRepository) Upsert(ctx context.Context, a *ruleset.Archetype) error {
	if a == nil {
		return errors.New("archetype must not be nil")
	}
	if err := a.Validate(); err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO archetypes (id, name, tier, description, special_ability)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				tier = EXCLUDED.tier,
				description = EXCLUDED.description,
				special_ability = EXCLUDED.special_ability,
				updated_at = NOW()`,
			a.ID, a.Name, a.Tier.String(), a.Description, a.SpecialAbility,
		)
		if err != nil {
			return fmt.Errorf("upserting archetype %q: %w", a.ID, err)
		}

		if a.Modifier == nil {
			if _, err := tx.Exec(ctx, `DELETE FROM archetype_modifiers WHERE archetype_id = $1`, a.ID); err != nil {
				return fmt.Errorf("clearing modifier for %q: %w", a.ID, err)
			}
			return nil
		}

		m := a.Modifier
		_, err = tx.Exec(ctx, `
			INSERT INTO archetype_modifiers
				(archetype_id, strength, vitality, intelligence, agility,
				 dexterity, luck, health_points, magic_points)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (archetype_id) DO UPDATE SET
				strength = EXCLUDED.strength,
				vitality = EXCLUDED.vitality,
				intelligence = EXCLUDED.intelligence,
				agility = EXCLUDED.agility,
				dexterity = EXCLUDED.dexterity,
				luck = EXCLUDED.luck,
				health_points = EXCLUDED.health_points,
				magic_points = EXCLUDED.magic_points`,
			a.ID, m.Strength, m.Vitality, m.Intelligence, m.Agility,
			m.Dexterity, m.Luck, m.HealthPoints, m.MagicPoints,
		)
		if err != nil {
			return fmt.Errorf("upserting modifier for %q: %w", a.ID, err)
		}
		return nil
	})
}

package ruleset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TierSelectionRounds is the number of minigame rounds played to unlock tiers.
// It equals the RequiredWins of the highest tier.
const TierSelectionRounds = 3

// Tier is an archetype rarity level. Higher tiers require more consecutive
// minigame wins to unlock.
type Tier int

const (
	Baseline Tier = iota
	Elevated
	Epic
	Mythic
)

// Tiers lists every tier in ascending order.
var Tiers = []Tier{Baseline, Elevated, Epic, Mythic}

var tierNames = map[Tier]string{
	Baseline: "baseline",
	Elevated: "elevated",
	Epic:     "epic",
	Mythic:   "mythic",
}

var tierDescriptions = map[Tier]string{
	Baseline: "Common",
	Elevated: "Rare",
	Epic:     "Super Rare",
	Mythic:   "Ultra Rare",
}

// RequiredWins returns the consecutive wins needed to unlock t.
//
// Postcondition: strictly increasing over Tiers.
func (t Tier) RequiredWins() int {
	return int(t)
}

// Valid reports whether t is a defined tier.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// String returns the lowercase identifier used in content files and storage.
func (t Tier) String() string {
	if n, ok := tierNames[t]; ok {
		return n
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Description returns the player-facing rarity label.
func (t Tier) Description() string {
	if d, ok := tierDescriptions[t]; ok {
		return d
	}
	return t.String()
}

// ParseTier parses a tier identifier, case-insensitively.
//
// Postcondition: Returns a valid Tier or a non-nil error.
func ParseTier(s string) (Tier, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range tierNames {
		if name == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// UnmarshalYAML decodes a tier from its string identifier.
func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes t as its string identifier.
func (t Tier) MarshalYAML() (any, error) {
	return t.String(), nil
}

// WinsToTier maps a minigame win count to the highest unlocked tier:
// 0 → Baseline, 1 → Elevated, 2 → Epic, 3 or more → Mythic.
//
// Postcondition: monotonically non-decreasing in wins; negative counts map to Baseline.
func WinsToTier(wins int) Tier {
	switch {
	case wins <= 0:
		return Baseline
	case wins == 1:
		return Elevated
	case wins == 2:
		return Epic
	default:
		return Mythic
	}
}

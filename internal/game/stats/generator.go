package stats

import "github.com/cory-johannsen/isekai/internal/game/dice"

// Base values before age bias and randomisation.
const (
	BaseStat         = 10
	BaseHealthPoints = 100
	BaseMagicPoints  = 50
)

// Age bias thresholds: below YouthAge favours agility and dexterity, above
// ElderAge favours intelligence.
const (
	YouthAge = 20
	ElderAge = 50
)

// Draw bounds. Each draw d contributes d - (bound-1)/2.
const (
	statBound   = 5
	healthBound = 21
	magicBound  = 11
)

// Field indexes in generation order.
const (
	idxStrength = iota
	idxVitality
	idxIntelligence
	idxAgility
	idxDexterity
	idxLuck
	idxHealthPoints
	idxMagicPoints
)

// Generator derives Attributes from an age and a 64-bit seed.
//
// A Generator owns its source: Generate reseeds it, so concurrent calls on the
// same Generator interleave draws and lose reproducibility.
type Generator struct {
	src dice.SeededSource
}

// NewGenerator returns a Generator drawing from src.
//
// Precondition: src must be non-nil.
func NewGenerator(src dice.SeededSource) *Generator {
	return &Generator{src: src}
}

// NewDefaultGenerator returns a Generator backed by dice.LCG.
func NewDefaultGenerator() *Generator {
	return NewGenerator(dice.NewLCG(0))
}

// Generate builds the attribute bundle for age and seed, then applies mod.
//
// Precondition: age has already been validated by the caller.
// Postcondition: identical (age, seed, mod) inputs yield identical results;
// every field is >= MinValue; the source has been reseeded with seed and
// advanced by exactly eight draws.
func (g *Generator) Generate(age int, seed int64, mod *Modifier) Attributes {
	raw := [8]int{
		BaseStat, BaseStat, BaseStat, BaseStat, BaseStat, BaseStat,
		BaseHealthPoints, BaseMagicPoints,
	}

	switch {
	case age < YouthAge:
		raw[idxAgility] += 2
		raw[idxDexterity] += 2
		raw[idxIntelligence]--
	case age > ElderAge:
		raw[idxIntelligence] += 2
		raw[idxAgility]--
		raw[idxDexterity]--
	}

	g.src.Seed(seed)
	for i := idxStrength; i <= idxLuck; i++ {
		raw[i] += g.src.Intn(statBound) - statBound/2
	}
	raw[idxHealthPoints] += g.src.Intn(healthBound) - healthBound/2
	raw[idxMagicPoints] += g.src.Intn(magicBound) - magicBound/2

	return fromRaw(raw).Apply(mod)
}

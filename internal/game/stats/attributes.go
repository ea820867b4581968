package stats

// Attribute labels, in generation order.
const (
	LabelStrength     = "Strength"
	LabelVitality     = "Vitality"
	LabelIntelligence = "Intelligence"
	LabelAgility      = "Agility"
	LabelDexterity    = "Dexterity"
	LabelLuck         = "Luck"
	LabelHealthPoints = "HP"
	LabelMagicPoints  = "MP"
)

// Attributes is the eight-field character profile: six stats and two pools.
//
// Invariant: every field is >= MinValue. Attributes is immutable once built.
type Attributes struct {
	strength     Value
	vitality     Value
	intelligence Value
	agility      Value
	dexterity    Value
	luck         Value
	healthPoints Value
	magicPoints  Value
}

// NewAttributes validates all eight values.
//
// Postcondition: Returns Attributes or the first validation error (wrapping ErrBelowMinimum).
func NewAttributes(strength, vitality, intelligence, agility, dexterity, luck, healthPoints, magicPoints int) (Attributes, error) {
	raw := [8]int{strength, vitality, intelligence, agility, dexterity, luck, healthPoints, magicPoints}
	var vals [8]Value
	for i, n := range raw {
		v, err := NewValue(labels[i], n)
		if err != nil {
			return Attributes{}, err
		}
		vals[i] = v
	}
	return fromValues(vals), nil
}

var labels = [8]string{
	LabelStrength, LabelVitality, LabelIntelligence, LabelAgility,
	LabelDexterity, LabelLuck, LabelHealthPoints, LabelMagicPoints,
}

// fromRaw clamps each integer to MinValue.
func fromRaw(raw [8]int) Attributes {
	var vals [8]Value
	for i, n := range raw {
		vals[i] = clamped(labels[i], n)
	}
	return fromValues(vals)
}

func fromValues(v [8]Value) Attributes {
	return Attributes{
		strength:     v[0],
		vitality:     v[1],
		intelligence: v[2],
		agility:      v[3],
		dexterity:    v[4],
		luck:         v[5],
		healthPoints: v[6],
		magicPoints:  v[7],
	}
}

func (a Attributes) raw() [8]int {
	return [8]int{
		a.strength.n, a.vitality.n, a.intelligence.n, a.agility.n,
		a.dexterity.n, a.luck.n, a.healthPoints.n, a.magicPoints.n,
	}
}

func (a Attributes) Strength() Value     { return a.strength }
func (a Attributes) Vitality() Value     { return a.vitality }
func (a Attributes) Intelligence() Value { return a.intelligence }
func (a Attributes) Agility() Value      { return a.agility }
func (a Attributes) Dexterity() Value    { return a.dexterity }
func (a Attributes) Luck() Value         { return a.luck }
func (a Attributes) HealthPoints() Value { return a.healthPoints }
func (a Attributes) MagicPoints() Value  { return a.magicPoints }

// Values returns all eight values in generation order.
func (a Attributes) Values() []Value {
	return []Value{
		a.strength, a.vitality, a.intelligence, a.agility,
		a.dexterity, a.luck, a.healthPoints, a.magicPoints,
	}
}

// Apply adds mod to every field and clamps each result to MinValue.
// A nil mod returns a unchanged.
//
// Postcondition: every field of the result is >= MinValue.
func (a Attributes) Apply(mod *Modifier) Attributes {
	if mod == nil {
		return a
	}
	raw := a.raw()
	deltas := mod.deltas()
	for i := range raw {
		raw[i] += deltas[i]
	}
	return fromRaw(raw)
}

// Modifier holds one signed delta per Attributes field. A nil *Modifier means
// no adjustment.
type Modifier struct {
	Strength     int `yaml:"strength"`
	Vitality     int `yaml:"vitality"`
	Intelligence int `yaml:"intelligence"`
	Agility      int `yaml:"agility"`
	Dexterity    int `yaml:"dexterity"`
	Luck         int `yaml:"luck"`
	HealthPoints int `yaml:"health_points"`
	MagicPoints  int `yaml:"magic_points"`
}

func (m *Modifier) deltas() [8]int {
	return [8]int{
		m.Strength, m.Vitality, m.Intelligence, m.Agility,
		m.Dexterity, m.Luck, m.HealthPoints, m.MagicPoints,
	}
}

package dice

import (
	"fmt"
	"math"
)

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = (1 << 48) - 1
)

// LCG is the 48-bit linear congruential generator used by java.util.Random.
// Seeding and bounded draws follow the same formulas, so a given seed yields
// the same NextInt sequence as the JVM generator.
//
// Invariant: state < 2^48.
type LCG struct {
	state uint64
}

// NewLCG returns an LCG seeded with seed.
//
// Postcondition: equivalent to new(LCG) followed by Seed(seed).
func NewLCG(seed int64) *LCG {
	l := &LCG{}
	l.Seed(seed)
	return l
}

// Seed scrambles seed into the generator state.
func (l *LCG) Seed(seed int64) {
	l.state = (uint64(seed) ^ lcgMultiplier) & lcgMask
}

// next advances the state and returns its top bits as a signed 32-bit value.
func (l *LCG) next(bits uint) int32 {
	l.state = (l.state*lcgMultiplier + lcgAddend) & lcgMask
	return int32(l.state >> (48 - bits))
}

// NextInt returns a uniform value in [0, bound).
//
// Precondition: 0 < bound <= math.MaxInt32.
// Postcondition: Returns a value in [0, bound) or an error wrapping ErrInvalidBound.
func (l *LCG) NextInt(bound int) (int, error) {
	if bound <= 0 || bound > math.MaxInt32 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBound, bound)
	}
	b := int32(bound)
	r := l.next(31)
	m := b - 1
	if b&m == 0 {
		return int((int64(b) * int64(r)) >> 31), nil
	}
	// Reject values from the final partial block; int32 overflow is intended.
	for u := r; ; u = l.next(31) {
		r = u % b
		if u-r+m >= 0 {
			return int(r), nil
		}
	}
}

// Intn returns a uniform value in [0, n).
//
// Precondition: n > 0. Panics with the NextInt error otherwise.
func (l *LCG) Intn(n int) int {
	v, err := l.NextInt(n)
	if err != nil {
		panic(err.Error())
	}
	return v
}

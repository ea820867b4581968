// Package dice provides the randomness abstractions used by character
// generation and the tier-selection minigame.
package dice

import "errors"

// ErrInvalidBound is returned when a draw is requested with a bound that
// cannot produce a value.
var ErrInvalidBound = errors.New("dice: bound must be in [1, MaxInt32]")

// Source is the randomness provider for uniform draws.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// SeededSource is a Source whose sequence is fully determined by its seed.
//
// Implementations are NOT safe for concurrent use: the draw order is the
// sole determinant of output and must be owned by a single caller.
type SeededSource interface {
	Source

	// Seed reinitialises the generator state.
	//
	// Postcondition: the sequence of values returned after Seed(s) is identical
	// for every call with the same s.
	Seed(seed int64)

	// NextInt returns a uniform value in [0, bound).
	//
	// Precondition: bound > 0.
	// Postcondition: Returns ErrInvalidBound (wrapped) when bound is out of range.
	NextInt(bound int) (int, error)
}

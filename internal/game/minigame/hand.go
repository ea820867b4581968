// Package minigame implements the rock-paper-scissors engine used to gate
// archetype tiers.
package minigame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/isekai/internal/game/dice"
)

// ErrMalformedInput is returned when a line cannot be parsed as a prompt answer.
// The engine recovers from it locally by re-prompting.
var ErrMalformedInput = errors.New("malformed input")

// Hand is one of the three rock-paper-scissors throws. The numeric value is
// the code the player types.
type Hand int

const (
	Rock     Hand = 1
	Scissors Hand = 2
	Paper    Hand = 3
)

// Hands lists every valid hand in code order.
var Hands = []Hand{Rock, Scissors, Paper}

// beats maps each hand to the hand it defeats.
var beats = map[Hand]Hand{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Beats reports whether h defeats other.
func (h Hand) Beats(other Hand) bool {
	return beats[h] == other
}

// Valid reports whether h is one of Rock, Scissors, or Paper.
func (h Hand) Valid() bool {
	_, ok := beats[h]
	return ok
}

// String returns the display name.
func (h Hand) String() string {
	switch h {
	case Rock:
		return "Rock"
	case Scissors:
		return "Scissors"
	case Paper:
		return "Paper"
	default:
		return fmt.Sprintf("Hand(%d)", int(h))
	}
}

// ParseHand parses a player's numeric hand code.
//
// Postcondition: Returns a valid Hand, or an error wrapping ErrMalformedInput.
func ParseHand(s string) (Hand, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: enter a number", ErrMalformedInput)
	}
	h := Hand(n)
	if !h.Valid() {
		return 0, fmt.Errorf("%w: enter a number from 1 to 3", ErrMalformedInput)
	}
	return h, nil
}

// Chooser supplies the opponent's hand for each throw.
type Chooser interface {
	ChooseHand() Hand
}

// RandomChooser draws uniformly from a dice.Source.
type RandomChooser struct {
	src dice.Source
}

// NewRandomChooser returns a Chooser backed by src.
//
// Precondition: src must be non-nil.
func NewRandomChooser(src dice.Source) *RandomChooser {
	return &RandomChooser{src: src}
}

// ChooseHand returns a uniformly random Hand.
func (c *RandomChooser) ChooseHand() Hand {
	return Hands[c.src.Intn(len(Hands))]
}

// ScriptedChooser replays a fixed sequence of hands. Once exhausted it keeps
// returning the last hand.
type ScriptedChooser struct {
	hands []Hand
	next  int
}

// NewScriptedChooser returns a Chooser that replays hands in order.
//
// Precondition: hands must be non-empty and every element valid.
func NewScriptedChooser(hands ...Hand) *ScriptedChooser {
	if len(hands) == 0 {
		panic("minigame: NewScriptedChooser requires at least one hand")
	}
	return &ScriptedChooser{hands: hands}
}

// ChooseHand returns the next scripted hand.
func (c *ScriptedChooser) ChooseHand() Hand {
	h := c.hands[min(c.next, len(c.hands)-1)]
	c.next++
	return h
}

// Calls returns how many hands have been drawn.
func (c *ScriptedChooser) Calls() int { return c.next }

package character_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/isekai/internal/game/character"
)

func TestParseAge(t *testing.T) {
	for in, want := range map[string]int{"1": 1, " 25 ": 25, "120": 120} {
		age, err := character.ParseAge(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, age.Int())
	}
	for _, bad := range []string{"", "   ", "0", "121", "-3", "abc", "2.5", "twenty"} {
		_, err := character.ParseAge(bad)
		assert.ErrorIs(t, err, character.ErrInvalidAge, "input %q", bad)
	}
}

// Property: NewAge accepts exactly [MinAge, MaxAge].
func TestNewAge_Range(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-500, 500).Draw(rt, "n")
		_, err := character.NewAge(n)
		valid := n >= character.MinAge && n <= character.MaxAge
		if valid != (err == nil) {
			rt.Fatalf("NewAge(%d) err = %v", n, err)
		}
		if _, perr := character.ParseAge(strconv.Itoa(n)); (perr == nil) != valid {
			rt.Fatalf("ParseAge(%d) disagrees with NewAge", n)
		}
	})
}

func TestNewName(t *testing.T) {
	n, err := character.NewName("  Rimuru \t")
	require.NoError(t, err)
	assert.Equal(t, "Rimuru", n.String())

	for _, bad := range []string{"", "   ", "\t\n"} {
		_, err := character.NewName(bad)
		assert.ErrorIs(t, err, character.ErrInvalidName)
	}
}

func TestNewID_IsRandom(t *testing.T) {
	a, b := character.NewID(), character.NewID()
	assert.NotEqual(t, a, b)
}

func TestParseID_Rejects(t *testing.T) {
	_, err := character.ParseID("not-a-uuid")
	assert.Error(t, err)
}

package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/isekai/internal/game/dice"
	"github.com/cory-johannsen/isekai/internal/game/minigame"
)

// RegisterModules defines the game global in L:
//
//	game.hands.rock, game.hands.scissors, game.hands.paper  hand codes
//	game.random(n)                                          uniform integer in [1, n]
//
// Precondition: L must be from NewSandboxedState; src must be non-nil.
// Postcondition: game global is defined in L.
func RegisterModules(L *lua.LState, src dice.Source) {
	game := L.NewTable()

	hands := L.NewTable()
	L.SetField(hands, "rock", lua.LNumber(minigame.Rock))
	L.SetField(hands, "scissors", lua.LNumber(minigame.Scissors))
	L.SetField(hands, "paper", lua.LNumber(minigame.Paper))
	L.SetField(game, "hands", hands)

	L.SetField(game, "random", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "bound must be at least 1")
			return 0
		}
		L.Push(lua.LNumber(src.Intn(n) + 1))
		return 1
	}))

	L.SetGlobal("game", game)
}

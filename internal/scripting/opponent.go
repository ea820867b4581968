package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/isekai/internal/game/dice"
	"github.com/cory-johannsen/isekai/internal/game/minigame"
)

// ChooseHandHook is the Lua global called once per throw with the 1-based
// throw number. It must return a hand code from game.hands.
const ChooseHandHook = "choose_hand"

// OpponentScript is a minigame.Chooser backed by a Lua script.
//
// The hook is resolved once at load. A script without it is reported once
// and every throw goes to the fallback chooser. When the hook raises an error,
// exceeds its instruction budget or returns an invalid code, that throw is
// delegated to the fallback and a warning is logged. Script failures never
// end the game.
//
// OpponentScript is not safe for concurrent use.
type OpponentScript struct {
	L         *lua.LState
	hook      *lua.LFunction
	path      string
	instLimit int
	throws    int
	fallback  minigame.Chooser
	logger    *zap.Logger
}

// LoadOpponentScript creates a sandboxed VM, registers the game module and
// executes the script at path.
//
// Precondition: src, fallback and logger must be non-nil.
// Postcondition: Returns a ready OpponentScript, or an error if the file
// cannot be loaded or exceeds instLimit while loading. The caller must Close it.
func LoadOpponentScript(path string, instLimit int, src dice.Source, fallback minigame.Chooser, logger *zap.Logger) (*OpponentScript, error) {
	if src == nil || fallback == nil || logger == nil {
		panic("LoadOpponentScript: precondition violated: src, fallback and logger must be non-nil")
	}
	L := NewSandboxedState()
	RegisterModules(L, src)

	if err := RunLimited(L, instLimit, func() error { return L.DoFile(path) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", path, err)
	}
	hook, ok := L.GetGlobal(ChooseHandHook).(*lua.LFunction)
	if !ok {
		logger.Warn("scripting: opponent script defines no hook; using fallback",
			zap.String("path", path),
			zap.String("hook", ChooseHandHook),
		)
	}
	return &OpponentScript{
		L:         L,
		hook:      hook,
		path:      path,
		instLimit: instLimit,
		fallback:  fallback,
		logger:    logger,
	}, nil
}

// ChooseHand implements minigame.Chooser.
func (o *OpponentScript) ChooseHand() minigame.Hand {
	o.throws++
	if o.hook == nil {
		return o.fallback.ChooseHand()
	}
	h, err := o.callHook()
	if err != nil {
		o.logger.Warn("scripting: opponent script failed; using fallback",
			zap.String("path", o.path),
			zap.Int("throw", o.throws),
			zap.Error(err),
		)
		return o.fallback.ChooseHand()
	}
	return h
}

func (o *OpponentScript) callHook() (minigame.Hand, error) {
	var ret lua.LValue
	err := RunLimited(o.L, o.instLimit, func() error {
		if err := o.L.CallByParam(lua.P{
			Fn:      o.hook,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(o.throws)); err != nil {
			return err
		}
		ret = o.L.Get(-1)
		o.L.Pop(1)
		return nil
	})
	if err != nil {
		return 0, err
	}

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("hook returned %s, want a number", ret.Type())
	}
	h := minigame.Hand(int(n))
	if float64(n) != float64(int(n)) || !h.Valid() {
		return 0, fmt.Errorf("hook returned invalid hand code %v", n)
	}
	return h, nil
}

// Close releases the Lua VM.
func (o *OpponentScript) Close() {
	o.L.Close()
}

// Package handlers drives the interactive character creation screens.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/isekai/internal/console"
	"github.com/cory-johannsen/isekai/internal/game/character"
	"github.com/cory-johannsen/isekai/internal/game/minigame"
	"github.com/cory-johannsen/isekai/internal/game/ruleset"
)

// ErrNoArchetypes is returned when the catalog offers nothing at the unlocked tier.
var ErrNoArchetypes = errors.New("no archetypes available")

const minigameTitle = "Rock-Paper-Scissors"

// CreationFlow walks the player through name, age, world and archetype
// selection and then builds the character.
type CreationFlow struct {
	term    console.LineTerminal
	worlds  []*ruleset.World
	catalog ruleset.Catalog
	game    *minigame.Game
	rounds  int
	builder *character.Builder
	logger  *zap.Logger
}

// NewCreationFlow wires a CreationFlow. rounds is the number of minigame
// rounds played to unlock tiers (game.max_rounds).
//
// Precondition: all arguments must be non-nil and worlds must be non-empty.
func NewCreationFlow(
	term console.LineTerminal,
	worlds []*ruleset.World,
	catalog ruleset.Catalog,
	game *minigame.Game,
	rounds int,
	builder *character.Builder,
	logger *zap.Logger,
) *CreationFlow {
	if term == nil || catalog == nil || game == nil || builder == nil || logger == nil {
		panic("NewCreationFlow: precondition violated: dependencies must be non-nil")
	}
	if len(worlds) == 0 {
		panic("NewCreationFlow: precondition violated: worlds must be non-empty")
	}
	return &CreationFlow{
		term:    term,
		worlds:  worlds,
		catalog: catalog,
		game:    game,
		rounds:  rounds,
		builder: builder,
		logger:  logger,
	}
}

// Run executes the whole flow. Malformed input is reported and re-prompted;
// terminal and catalog failures end the flow. Cancelling ctx ends any pending
// prompt with ctx.Err().
//
// Postcondition: Returns the created character, or a non-nil error.
func (f *CreationFlow) Run(ctx context.Context) (*character.Character, error) {
	session := *f
	session.term = console.NewCancelableTerminal(ctx, f.term)
	return session.run(ctx)
}

func (f *CreationFlow) run(ctx context.Context) (*character.Character, error) {
	f.writeBanner()

	name, err := f.collectName()
	if err != nil {
		return nil, err
	}
	age, err := f.collectAge()
	if err != nil {
		return nil, err
	}
	world, err := f.selectWorld()
	if err != nil {
		return nil, err
	}
	archetype, err := f.selectArchetype(ctx)
	if err != nil {
		return nil, err
	}

	c, err := f.builder.Build(ctx, name, age, world, archetype)
	if err != nil {
		return nil, fmt.Errorf("building character: %w", err)
	}
	f.logger.Info("character created",
		zap.Stringer("id", c.ID),
		zap.String("name", c.Name.String()),
		zap.Int("age", c.Age.Int()),
		zap.String("world", c.World.ID),
		zap.String("archetype", c.Archetype.ID),
	)

	_ = f.term.WriteLine(console.Colorf(console.Cyan, "Transmigrating %s...", c.Name))
	_ = f.term.WriteLine(console.Colorize(console.BrightGreen, FormatCharacterSummary(c)))
	_ = f.term.WriteLine(FormatAttributes(c.Attributes))
	return c, nil
}

func (f *CreationFlow) writeBanner() {
	_ = f.term.WriteLine(console.Colorize(console.BrightCyan, console.Separator))
	_ = f.term.WriteLine(console.Colorize(console.BrightCyan, "    Otherworld Transmigration Service"))
	_ = f.term.WriteLine(console.Colorize(console.BrightCyan, console.Separator))
}

func (f *CreationFlow) warn(msg string) {
	_ = f.term.WriteLine(console.Colorize(console.Red, msg))
}

func (f *CreationFlow) collectName() (character.Name, error) {
	for {
		_ = f.term.WritePrompt(console.Colorize(console.BrightWhite, "Enter your name: "))
		line, err := f.term.ReadLine()
		if err != nil {
			return "", fmt.Errorf("reading name: %w", err)
		}
		name, err := character.NewName(line)
		if err != nil {
			f.warn("Your name must not be blank.")
			continue
		}
		return name, nil
	}
}

func (f *CreationFlow) collectAge() (character.Age, error) {
	for {
		_ = f.term.WritePrompt(console.Colorf(console.BrightWhite,
			"Enter your age (%d-%d): ", character.MinAge, character.MaxAge))
		line, err := f.term.ReadLine()
		if err != nil {
			return 0, fmt.Errorf("reading age: %w", err)
		}
		age, err := character.ParseAge(line)
		if err != nil {
			f.warn(fmt.Sprintf("Age must be a whole number from %d to %d.", character.MinAge, character.MaxAge))
			continue
		}
		return age, nil
	}
}

func (f *CreationFlow) selectWorld() (*ruleset.World, error) {
	_ = f.term.WriteLine(console.Separator)
	_ = f.term.WriteLine(console.Colorize(console.BrightYellow, "[Choose your destination world]"))
	for i, w := range f.worlds {
		_ = f.term.WriteLine(FormatWorldOption(i+1, w))
	}
	_ = f.term.WriteLine(console.Separator)

	idx, err := f.promptIndex("world", len(f.worlds))
	if err != nil {
		return nil, err
	}
	w := f.worlds[idx]
	_ = f.term.WriteLine(console.Colorf(console.BrightGreen, "You will be reborn in %s!", w.Name))
	return w, nil
}

func (f *CreationFlow) selectArchetype(ctx context.Context) (*ruleset.Archetype, error) {
	_ = f.term.WriteLine(console.Colorize(console.BrightYellow, "[Choose your archetype]"))

	maxTier, err := minigame.PlayAndConvert(f.game, f.term, f.rounds,
		minigameTitle, FormatTierTable(), ruleset.WinsToTier)
	if err != nil {
		return nil, fmt.Errorf("playing tier minigame: %w", err)
	}
	f.logger.Info("tier unlocked", zap.Stringer("tier", maxTier))
	if maxTier == ruleset.Baseline {
		_ = f.term.WriteLine(fmt.Sprintf("Only %s archetypes are available.", maxTier.Description()))
	} else {
		_ = f.term.WriteLine(console.Colorf(console.BrightGreen,
			"Archetypes up to %s are now available!", maxTier.Description()))
	}

	archetypes, err := f.catalog.UpToTier(ctx, maxTier)
	if err != nil {
		return nil, fmt.Errorf("listing archetypes up to %s: %w", maxTier, err)
	}
	if len(archetypes) == 0 {
		return nil, fmt.Errorf("%w up to tier %s", ErrNoArchetypes, maxTier)
	}

	_ = f.term.WriteLine(console.Colorize(console.BrightYellow, "[Available archetypes]"))
	for i, a := range archetypes {
		_ = f.term.WriteLine(FormatArchetypeOption(i+1, a))
	}

	idx, err := f.promptIndex("archetype", len(archetypes))
	if err != nil {
		return nil, err
	}
	a := archetypes[idx]
	_ = f.term.WriteLine(console.Separator)
	_ = f.term.WriteLine(console.Colorf(console.BrightGreen, "You will be reborn as a %s!", a.Name))
	_ = f.term.WriteLine(console.Separator)
	return a, nil
}

// promptIndex reads a 1-based selection in [1, n] and returns it 0-based.
func (f *CreationFlow) promptIndex(what string, n int) (int, error) {
	for {
		_ = f.term.WritePrompt(console.Colorf(console.BrightWhite, "Enter a number (1-%d): ", n))
		line, err := f.term.ReadLine()
		if err != nil {
			return 0, fmt.Errorf("reading %s selection: %w", what, err)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			f.warn("Please enter a number.")
			continue
		}
		if choice < 1 || choice > n {
			f.warn(fmt.Sprintf("Please enter a valid number (1-%d).", n))
			continue
		}
		return choice - 1, nil
	}
}

package minigame

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/isekai/internal/console"
)

// Continue prompt codes.
const (
	continueYes = 1
	continueNo  = 2
)

// Terminal is the line-oriented player I/O the engine drives.
type Terminal interface {
	// ReadLine returns the next line of player input without its terminator.
	ReadLine() (string, error)
	// WriteLine writes text followed by a line break.
	WriteLine(text string) error
	// WritePrompt writes text without a line break.
	WritePrompt(prompt string) error
}

// Game runs best-of-N rock-paper-scissors sessions against an opponent.
//
// A Game holds no per-session state; each Play call is independent.
type Game struct {
	opponent Chooser
	logger   *zap.Logger
}

// NewGame creates a Game drawing opponent hands from opponent.
//
// Precondition: opponent and logger must be non-nil.
func NewGame(opponent Chooser, logger *zap.Logger) *Game {
	return &Game{opponent: opponent, logger: logger}
}

// PlayAndConvert plays one session and maps the final win count through convert.
//
// Precondition: g, term, and convert must be non-nil.
// Postcondition: convert is called exactly once with a win count in [0, max(maxRounds, 0)]
// unless the terminal fails, in which case the zero T and the error are returned.
func PlayAndConvert[T any](g *Game, term Terminal, maxRounds int, title, description string, convert func(wins int) T) (T, error) {
	wins, err := g.Play(term, maxRounds, title, description)
	if err != nil {
		var zero T
		return zero, err
	}
	return convert(wins), nil
}

// Play runs one session and returns the number of rounds won.
//
// Ties replay the round without counting toward maxRounds. A loss ends the
// session immediately. After each win below maxRounds the player chooses
// whether to continue. Malformed input is reported and re-prompted without
// changing state. maxRounds < 1 plays nothing and returns 0.
//
// Precondition: term must be non-nil.
// Postcondition: Returns wins in [0, max(maxRounds, 0)], or a wrapped terminal error.
func (g *Game) Play(term Terminal, maxRounds int, title, description string) (int, error) {
	_ = term.WriteLine(console.Colorf(console.BrightCyan, "[%s]", title))
	if description != "" {
		_ = term.WriteLine(description)
	}

	wins := 0
	for wins < maxRounds {
		_ = term.WriteLine(console.Separator)
		_ = term.WriteLine(console.Colorf(console.BrightYellow, "Round %d", wins+1))
		_ = term.WriteLine(console.Separator)

		won, err := g.playRound(term)
		if err != nil {
			return wins, err
		}
		if !won {
			_ = term.WriteLine(console.Colorize(console.Red, "You lost..."))
			break
		}

		wins++
		_ = term.WriteLine(console.Colorf(console.BrightGreen, "You won! %d win(s) so far.", wins))
		if wins >= maxRounds {
			break
		}

		more, err := askToContinue(term)
		if err != nil {
			return wins, err
		}
		if !more {
			break
		}
	}

	g.logger.Info("minigame finished",
		zap.String("title", title),
		zap.Int("wins", wins),
		zap.Int("max_rounds", maxRounds),
	)
	return wins, nil
}

// playRound throws until the round is decided, replaying ties.
//
// Postcondition: Returns true if the player won the round, false if they lost.
func (g *Game) playRound(term Terminal) (bool, error) {
	for {
		player, err := readHand(term)
		if err != nil {
			return false, err
		}
		opponent := g.opponent.ChooseHand()

		_ = term.WriteLine(fmt.Sprintf("You: %s", player))
		_ = term.WriteLine(fmt.Sprintf("Opponent: %s", opponent))
		g.logger.Debug("minigame throw",
			zap.Stringer("player", player),
			zap.Stringer("opponent", opponent),
		)

		switch {
		case player == opponent:
			_ = term.WriteLine(console.Colorize(console.Yellow, "It's a tie. Throw again!"))
		case player.Beats(opponent):
			return true, nil
		default:
			return false, nil
		}
	}
}

// readHand prompts until the player enters a valid hand code.
func readHand(term Terminal) (Hand, error) {
	_ = term.WriteLine("Choose your hand:")
	for _, h := range Hands {
		_ = term.WriteLine(fmt.Sprintf("  %s%d%s: %s", console.Green, int(h), console.Reset, h))
	}
	for {
		_ = term.WritePrompt(console.Colorize(console.BrightWhite, "Hand [1-3]: "))
		line, err := term.ReadLine()
		if err != nil {
			return 0, fmt.Errorf("reading hand: %w", err)
		}
		h, err := ParseHand(line)
		if err != nil {
			_ = term.WriteLine(console.Colorize(console.Red, err.Error()))
			continue
		}
		return h, nil
	}
}

// askToContinue prompts until the player answers yes or no.
func askToContinue(term Terminal) (bool, error) {
	for {
		_ = term.WritePrompt(console.Colorf(console.BrightWhite,
			"Continue? (%d: yes, %d: no): ", continueYes, continueNo))
		line, err := term.ReadLine()
		if err != nil {
			return false, fmt.Errorf("reading continue choice: %w", err)
		}
		more, err := parseContinue(line)
		if err != nil {
			_ = term.WriteLine(console.Colorize(console.Red, err.Error()))
			continue
		}
		return more, nil
	}
}

func parseContinue(s string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%w: enter a number", ErrMalformedInput)
	}
	switch n {
	case continueYes:
		return true, nil
	case continueNo:
		return false, nil
	default:
		return false, fmt.Errorf("%w: enter %d or %d", ErrMalformedInput, continueYes, continueNo)
	}
}

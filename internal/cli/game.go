package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/internal/logger"
	"github.com/wordvane/wordvane/internal/utils"
	"github.com/wordvane/wordvane/pkg/config"
	"github.com/wordvane/wordvane/pkg/game"
	"github.com/wordvane/wordvane/pkg/vocab"
)

const gameBanner = "Ready! Enter a word to start. " +
	"Similarity ranges from -100 (worst) to 100 (best). " +
	"Type !quit to exit or !help for help."

const gameHelp = "Enter a word. You'll receive a number, which represents " +
	"the semantic similarity between your word and the answer. " +
	"-100 is the worst, 100 is the best. " +
	"Type !quit to exit or !help to see this message again."

// GameShell owns one round: a session with a random secret, the
// scoreboard layout, and the prefix index for typo suggestions.
type GameShell struct {
	store    *vocab.Store
	prefixes *vocab.PrefixIndex
	session  *game.Session
	board    *Scoreboard
	cfg      *config.Config
	logs     *log.Logger
}

// NewGameShell draws a secret and prepares a round over the store.
func NewGameShell(store *vocab.Store, prefixes *vocab.PrefixIndex, cfg *config.Config) (*GameShell, error) {
	session, err := game.NewRandom(store)
	if err != nil {
		return nil, err
	}
	return &GameShell{
		store:    store,
		prefixes: prefixes,
		session:  session,
		board:    NewScoreboard(cfg.Game.TopRanks, cfg.Game.TepidThreshold),
		cfg:      cfg,
		logs:     logger.Default("game"),
	}, nil
}

// Run plays the round: every line is a guess unless it is one of the
// !quit, !help or !hint metas. The screen is cleared each turn and the
// scoreboard redrawn, so the board always reflects the full history.
func (sh *GameShell) Run() error {
	reader := bufio.NewReader(os.Stdin)
	width, height := screenSize()

	fmt.Print(clearScreen)
	fmt.Println(gameBanner)

	for {
		fmt.Print(sh.cfg.CLI.Prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		fmt.Print(clearScreen)

		line = utils.NormalizeLine(line)
		if line == "" {
			continue
		}

		switch line {
		case "!quit":
			return nil
		case "!help":
			fmt.Println(gameHelp)
			continue
		case "!hint":
			sh.giveHint(width, height)
			continue
		}

		word := utils.NormalizeWord(line)
		result, err := sh.session.Guess(word)
		if err != nil {
			reportUnknownWord(word, sh.prefixes, sh.cfg.CLI.SuggestLimit)
			// keep the board on screen once there is one to show
			if recent, ok := sh.session.MostRecent(); ok {
				fmt.Println(sh.board.Render(sh.session.History(), recent, width, height))
			}
			continue
		}

		if result.Outcome == game.OutcomeWon {
			fmt.Printf("You found it in %d! The word is %s.\n", result.Total, result.Guess.Word)
			return nil
		}
		fmt.Println(sh.board.Render(sh.session.History(), result.Guess, width, height))
	}
}

// giveHint reveals the word one rank above the best guess so far. The
// hint lands in the history like a guess, so asking again keeps walking
// toward the secret.
func (sh *GameShell) giveHint(width, height int) {
	hint, err := sh.session.Hint()
	if err != nil {
		switch {
		case errors.Is(err, game.ErrNoGuesses):
			fmt.Println("Guess a word first so there is something to improve on.")
		case errors.Is(err, game.ErrNoHint):
			fmt.Println("Your best guess is already right next to the answer.")
		default:
			sh.logs.Errorf("Hint: %v", err)
		}
		return
	}
	fmt.Println(sh.board.Render(sh.session.History(), hint, width, height))
}

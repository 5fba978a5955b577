package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/internal/logger"
	"github.com/wordvane/wordvane/internal/utils"
	"github.com/wordvane/wordvane/pkg/config"
	"github.com/wordvane/wordvane/pkg/rank"
	"github.com/wordvane/wordvane/pkg/solver"
	"github.com/wordvane/wordvane/pkg/vocab"
)

const defaultNeighborCount = 10

// clearScreen wipes the terminal and homes the cursor between turns.
const clearScreen = "\x1B[2J\x1B[1;1H"

// SolverShell owns one solver run: a session, the vocabulary it was built
// from, and the prefix index used to suggest fixes for unknown words.
type SolverShell struct {
	store    *vocab.Store
	prefixes *vocab.PrefixIndex
	session  *solver.Session
	cfg      *config.Config
	logs     *log.Logger
}

// NewSolverShell starts a fresh session over the store.
func NewSolverShell(store *vocab.Store, prefixes *vocab.PrefixIndex, cfg *config.Config) *SolverShell {
	return &SolverShell{
		store:    store,
		prefixes: prefixes,
		session:  solver.New(store, cfg.Solver.Tolerance, cfg.Solver.BootstrapWord),
		cfg:      cfg,
		logs:     logger.Default("solver"),
	}
}

// Run reads one command per line until quit or end of input. Each turn
// clears the screen, so command output is all the user sees.
func (sh *SolverShell) Run() error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(clearScreen)
	fmt.Println("Ready! Type a valid command or type h for help.")

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

		cmd, err := parseSolverCommand(strings.Fields(line))
		if err != nil {
			if errors.Is(err, errUnknownCommand) {
				fmt.Println("Unknown command, please try again.")
			} else {
				fmt.Println(err)
			}
			continue
		}

		if quit := sh.dispatch(cmd); quit {
			return nil
		}
	}
}

// dispatch interprets one parsed command against the session. It reports
// whether the shell should exit.
func (sh *SolverShell) dispatch(cmd command) bool {
	switch cmd.op {
	case opAdd:
		sh.addConstraint(cmd)
	case opEdit:
		sh.editConstraint(cmd)
	case opRemove:
		sh.removeConstraint(cmd)
	case opList:
		sh.listConstraints(cmd)
	case opPossible:
		sh.listCandidates(cmd)
	case opFindBest:
		sh.findBest()
	case opNeighbors:
		sh.showNeighbors(cmd)
	case opHelp:
		sh.printHelp()
	case opQuit:
		return true
	}
	return false
}

func (sh *SolverShell) addConstraint(cmd command) {
	if !sh.store.Has(cmd.word) {
		sh.reportUnknownWord(cmd.word)
		return
	}
	if err := sh.session.Add(cmd.word, cmd.value); err != nil {
		if errors.Is(err, solver.ErrDuplicateConstraint) {
			fmt.Println("This word already has a value. Try using -e to change an existing value.")
			return
		}
		sh.logs.Errorf("Add constraint: %v", err)
	}
}

func (sh *SolverShell) editConstraint(cmd command) {
	if !sh.store.Has(cmd.word) {
		sh.reportUnknownWord(cmd.word)
		return
	}
	if err := sh.session.Edit(cmd.word, cmd.value); err != nil {
		if errors.Is(err, solver.ErrUnknownConstraint) {
			fmt.Println("No value exists for this word yet. Add one first with w <word> <value>.")
			return
		}
		sh.logs.Errorf("Edit constraint: %v", err)
	}
}

func (sh *SolverShell) removeConstraint(cmd command) {
	if !sh.store.Has(cmd.word) {
		sh.reportUnknownWord(cmd.word)
		return
	}
	if err := sh.session.Remove(cmd.word); err != nil {
		if errors.Is(err, solver.ErrUnknownConstraint) {
			fmt.Println("No value exists for this word yet. Add one first with w <word> <value>.")
			return
		}
		sh.logs.Errorf("Remove constraint: %v", err)
	}
}

func (sh *SolverShell) listConstraints(cmd command) {
	constraints := sh.session.Constraints()
	if cmd.debug {
		fmt.Printf("%v\n", constraints)
		return
	}
	fmt.Println("Here are the words and similarities you've provided so far:")
	for i, c := range constraints {
		fmt.Printf("\t%d. `%s` with a similarity of `%v`\n", i+1, c.Word, c.Similarity)
	}
}

func (sh *SolverShell) listCandidates(cmd command) {
	candidates := sh.session.Candidates()
	if cmd.debug {
		if cmd.embeddings {
			for _, w := range candidates {
				vec, _ := sh.session.CandidateVector(w)
				fmt.Printf("%s: %v\n", w, vec)
			}
			return
		}
		fmt.Printf("%v\n", candidates)
		return
	}

	max := sh.cfg.Solver.MaxListed
	if max > 0 && len(candidates) > max {
		for _, w := range candidates[:max] {
			fmt.Println(w)
		}
		fmt.Printf("... and %d more\n", len(candidates)-max)
		return
	}
	for _, w := range candidates {
		fmt.Println(w)
	}
}

func (sh *SolverShell) findBest() {
	proposal := sh.session.FindBest()
	if proposal.Word == "" {
		fmt.Println("No words remain consistent with your values.")
		return
	}
	fmt.Printf("The optimal word based on your current information is %s\n", proposal.Word)
}

func (sh *SolverShell) showNeighbors(cmd command) {
	entries, err := rank.Neighbors(sh.store, cmd.word, cmd.count, cmd.farthest)
	if err != nil {
		sh.reportUnknownWord(cmd.word)
		return
	}
	if cmd.debug {
		fmt.Printf("%v\n", entries)
		return
	}

	if cmd.farthest {
		fmt.Printf("The %d words farthest from `%s`:\n", len(entries), cmd.word)
	} else {
		fmt.Printf("The %d words closest to `%s`:\n", len(entries), cmd.word)
	}
	for i, e := range entries {
		fmt.Printf("\t%d. `%s` with a similarity of `%v`\n", i+1, e.Word, e.Score)
	}
}

func (sh *SolverShell) printHelp() {
	fmt.Println("Type one of the following commands:")
	for _, spec := range solverCommands {
		fmt.Printf("\t%s\n\t\t%s\n", spec.usage, spec.description)
	}
}

func (sh *SolverShell) reportUnknownWord(word string) {
	reportUnknownWord(word, sh.prefixes, sh.cfg.CLI.SuggestLimit)
}

// reportUnknownWord prints the lookup failure and, when the prefix index
// finds vocabulary words nearby, suggests them. The typed word is
// shortened until some prefix of it matches.
func reportUnknownWord(word string, prefixes *vocab.PrefixIndex, limit int) {
	fmt.Printf("Unknown word %s\n", word)

	if suggestions := suggestNearby(word, prefixes, limit); len(suggestions) > 0 {
		fmt.Printf("Did you mean: %s?\n", strings.Join(suggestions, ", "))
	}
}

func suggestNearby(word string, prefixes *vocab.PrefixIndex, limit int) []string {
	if prefixes == nil || limit <= 0 {
		return nil
	}
	for runes := []rune(word); len(runes) >= 2; runes = runes[:len(runes)-1] {
		if matches := prefixes.WithPrefix(string(runes), limit); len(matches) > 0 {
			return matches
		}
	}
	return nil
}

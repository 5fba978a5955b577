// Package cli implements the interactive shells: the solver command loop
// and the guessing game loop, with their parsing and scoreboard rendering.
package cli

import (
	"errors"
	"strconv"
)

// opKind tags every solver operation. Parsing produces a tagged command
// value and a single interpreter executes it against the session, so all
// command metadata lives in one fixed table instead of a closure per
// command.
type opKind int

const (
	opAdd opKind = iota
	opEdit
	opRemove
	opList
	opPossible
	opFindBest
	opNeighbors
	opHelp
	opQuit
)

// command is one parsed solver input line. Only the fields the op uses are
// set; validation against the vocabulary or the constraint log happens in
// the interpreter, never here.
type command struct {
	op         opKind
	word       string
	value      float64
	hasValue   bool
	count      int
	debug      bool
	embeddings bool
	farthest   bool
}

// commandSpec is the display metadata the help command walks.
type commandSpec struct {
	name        string
	usage       string
	description string
}

var solverCommands = []commandSpec{
	{"w", "w <word> <value|-r|value -e>", "Add a word with its similarity, edit an existing word's similarity, or remove a word"},
	{"l", "l [-d]", "List the guessed words with their similarities in human-readable or debug mode"},
	{"p", "p", "View remaining possible words"},
	{"n", "n <word> [count] [-a|-d]", "View the words closest to a word, or the farthest with -a"},
	{"fb", "fb", "Find the best word according to current information"},
	{"h", "h", "Display this help message"},
	{"q", "q", "Quit"},
}

// usageError renders exactly as the shell prints malformed input.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "Usage: " + e.usage
}

func usageFor(name string) error {
	for _, spec := range solverCommands {
		if spec.name == name {
			return &usageError{usage: spec.usage}
		}
	}
	return &usageError{usage: name}
}

var errUnknownCommand = errors.New("unknown command")

// parseSolverCommand turns a split input line into a tagged command. The
// first term picks the operation; the rest follow that operation's
// grammar. Mode flags may appear anywhere, like the original engine's `w`
// grammar allowed.
func parseSolverCommand(terms []string) (command, error) {
	if len(terms) == 0 {
		return command{}, errUnknownCommand
	}

	switch terms[0] {
	case "w":
		return parseConstraintCommand(terms[1:])
	case "l":
		return parseListCommand(terms[1:])
	case "p":
		return parsePossibleCommand(terms[1:])
	case "n":
		return parseNeighborsCommand(terms[1:])
	case "fb":
		return parseBareCommand(opFindBest, "fb", terms[1:])
	case "h":
		return parseBareCommand(opHelp, "h", terms[1:])
	case "q":
		return parseBareCommand(opQuit, "q", terms[1:])
	}
	return command{}, errUnknownCommand
}

// parseConstraintCommand handles the w grammar: one word, an optional
// value, and -n/-e/-r mode flags anywhere in the argument list.
func parseConstraintCommand(args []string) (command, error) {
	cmd := command{op: opAdd}
	positionals := 0

	for _, term := range args {
		switch term {
		case "-n":
			cmd.op = opAdd
		case "-e":
			cmd.op = opEdit
		case "-r":
			cmd.op = opRemove
		default:
			switch positionals {
			case 0:
				cmd.word = term
			case 1:
				val, err := strconv.ParseFloat(term, 64)
				if err != nil {
					return command{}, usageFor("w")
				}
				cmd.value = val
				cmd.hasValue = true
			default:
				return command{}, usageFor("w")
			}
			positionals++
		}
	}

	if cmd.word == "" {
		return command{}, usageFor("w")
	}
	if cmd.op != opRemove && !cmd.hasValue {
		return command{}, usageFor("w")
	}
	return cmd, nil
}

func parseListCommand(args []string) (command, error) {
	cmd := command{op: opList}
	switch len(args) {
	case 0:
		return cmd, nil
	case 1:
		if args[0] == "-d" {
			cmd.debug = true
			return cmd, nil
		}
	}
	return command{}, usageFor("l")
}

func parsePossibleCommand(args []string) (command, error) {
	cmd := command{op: opPossible}
	for _, term := range args {
		switch term {
		case "-d":
			cmd.debug = true
		case "-e":
			cmd.debug = true
			cmd.embeddings = true
		default:
			return command{}, usageFor("p")
		}
	}
	return cmd, nil
}

func parseNeighborsCommand(args []string) (command, error) {
	cmd := command{op: opNeighbors, count: defaultNeighborCount}
	positionals := 0

	for _, term := range args {
		switch term {
		case "-a":
			cmd.farthest = true
		case "-d":
			cmd.debug = true
		default:
			switch positionals {
			case 0:
				cmd.word = term
			case 1:
				n, err := strconv.Atoi(term)
				if err != nil || n < 1 {
					return command{}, usageFor("n")
				}
				cmd.count = n
			default:
				return command{}, usageFor("n")
			}
			positionals++
		}
	}

	if cmd.word == "" {
		return command{}, usageFor("n")
	}
	return cmd, nil
}

func parseBareCommand(op opKind, name string, args []string) (command, error) {
	if len(args) != 0 {
		return command{}, usageFor(name)
	}
	return command{op: op}, nil
}

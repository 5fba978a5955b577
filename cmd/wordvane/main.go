// Copyright 2026 The WordVane Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the semantic word guessing game and solver CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordVane scores words by the semantic similarity of their embeddings. In
play mode a secret word is drawn from the vocabulary and every guess comes
back with a similarity score and a closeness rank, until the secret is
found. In solve mode the roles flip: you feed in words with the
similarities some other game reported, and WordVane keeps track of which
vocabulary words are still consistent with all of them and which guess
would split the remainder best.

# Usage

Play a round against a random secret:

	wordvane play

Run the solver against an external game:

	wordvane solve

Use a custom data directory and enable debug mode:

	wordvane -data /path/to/data -d play

The data directory should contain a packed embeddings file, by default
words.bin, produced by the vanepack tool from a word2vec-style text dump.
Vectors are unit length in the packed file, so similarity reduces to a
dot product at runtime.

# Configuration

Runtime configuration is managed through a TOML file with sections for
the data location, the solver window, and the game display:

	[data]
	dir = "data/"
	embedding_file = "words.bin"

	[solver]
	tolerance = 0.005
	bootstrap_word = "eget"
	max_listed = 0

	[game]
	top_ranks = 1000
	tepid_threshold = 20.0

	[cli]
	prompt = "wordvane> "
	suggest_limit = 5

The config file is created with defaults on first use. A partially broken
file is not fatal: readable values are kept and the rest fall back to
defaults.

Paths and the config location can also come from the environment, loaded
from a .env file when one is present:

	WORDVANE_DATA=/srv/wordvane/data
	WORDVANE_CONFIG=/etc/wordvane/wordvane.toml

# Command Line Flags

The following flags control application behavior:

	-data string
	    Directory containing the embeddings file (default from config)
	-config string
	    Path to a config file (default searches standard locations)
	-d  Enable debug mode with detailed logging
	-version
	    Show current version

Flags come before the mode argument. The application resolves data and
config paths relative to the executable when no absolute path is given,
supporting both development and installed deployments.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/wordvane/wordvane/internal/cli"
	"github.com/wordvane/wordvane/internal/utils"
	"github.com/wordvane/wordvane/pkg/config"
	"github.com/wordvane/wordvane/pkg/vocab"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordvane"
	gh      = "https://github.com/wordvane/wordvane"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, embeddings and the chosen shell together. The shells
// own all interaction; main() only manages the flow.
func main() {
	sigHandler()

	// a .env file is optional, the environment wins either way
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "", "Directory containing the embeddings file")
	configPath := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *dataDir == "" {
		*dataDir = os.Getenv("WORDVANE_DATA")
	}
	if *configPath == "" {
		*configPath = os.Getenv("WORDVANE_CONFIG")
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Errorf("Failed to initialize path resolver: %v", err)
		log.Print("Either env is not set or system is not supported")
		os.Exit(1)
	}

	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activeConfig)

	dir := cfg.Data.Dir
	if *dataDir != "" {
		dir = *dataDir
	}
	embeddingPath, err := pathResolver.GetEmbeddingPath(dir, cfg.Data.EmbeddingFile)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: (%v)", err)
	}
	log.Debugf("Using embeddings at: %s", embeddingPath)

	fmt.Println("Loading...")
	store, err := vocab.Load(embeddingPath)
	if err != nil {
		log.Errorf("Failed to load embeddings: %v", err)
		log.Print("Point -data at a directory holding a packed embeddings file")
		log.Print("Run vanepack to convert a word2vec text dump first")
		os.Exit(1)
	}
	log.Debugf("Loaded %s words at dim %d",
		utils.FormatWithCommas(store.Len()), store.Dim())

	prefixes := vocab.NewPrefixIndex(store)

	switch flag.Arg(0) {
	case "solve":
		shell := cli.NewSolverShell(store, prefixes, cfg)
		if err := shell.Run(); err != nil {
			log.Fatalf("Solver error: %v", err)
		}
	case "play":
		shell, err := cli.NewGameShell(store, prefixes, cfg)
		if err != nil {
			log.Fatalf("Failed to start a game: %v", err)
		}
		if err := shell.Run(); err != nil {
			log.Fatalf("Game error: %v", err)
		}
	default:
		fmt.Printf("Usage: %s <solve|play>\n", os.Args[0])
	}
}

// printVersion displays some basic info in a styled logger.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ WordVane ] Guess the words, mind the vane!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

/*
Package config manages the TOML configuration for wordvane.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/internal/utils"
)

// ConfigFileName is the canonical config file name
const ConfigFileName = "wordvane.toml"

// Config holds the entire config structure
type Config struct {
	Data   DataConfig   `toml:"data"`
	Solver SolverConfig `toml:"solver"`
	Game   GameConfig   `toml:"game"`
	CLI    CliConfig    `toml:"cli"`
}

// DataConfig locates the embedding file.
type DataConfig struct {
	Dir           string `toml:"dir"`
	EmbeddingFile string `toml:"embedding_file"`
}

// SolverConfig holds candidate filter and advisor options.
type SolverConfig struct {
	Tolerance     float64 `toml:"tolerance"`
	BootstrapWord string  `toml:"bootstrap_word"`
	MaxListed     int     `toml:"max_listed"`
}

// GameConfig holds scoreboard scale options.
type GameConfig struct {
	TopRanks       int     `toml:"top_ranks"`
	TepidThreshold float64 `toml:"tepid_threshold"`
}

// CliConfig holds interactive shell options.
type CliConfig struct {
	Prompt       string `toml:"prompt"`
	SuggestLimit int    `toml:"suggest_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "wordvane")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "wordvane")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for wordvane.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordvane/wordvane.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, utils.GetAbsolutePath(customConfigPath), nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:           "data/",
			EmbeddingFile: "words.bin",
		},
		Solver: SolverConfig{
			Tolerance:     0.005,
			BootstrapWord: "eget",
			MaxListed:     0,
		},
		Game: GameConfig{
			TopRanks:       1000,
			TepidThreshold: 20.0,
		},
		CLI: CliConfig{
			Prompt:       "wordvane> ",
			SuggestLimit: 5,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever valid sections a broken file still has
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if dataSection, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(dataSection, &config.Data)
	}
	if solverSection, ok := utils.ExtractSection(tempConfig, "solver"); ok {
		extractSolverConfig(solverSection, &config.Solver)
	}
	if gameSection, ok := utils.ExtractSection(tempConfig, "game"); ok {
		extractGameConfig(gameSection, &config.Game)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractDataConfig extracts data location config from a map
func extractDataConfig(data map[string]any, dc *DataConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		dc.Dir = val
	}
	if val, ok := utils.ExtractString(data, "embedding_file"); ok {
		dc.EmbeddingFile = val
	}
}

// extractSolverConfig extracts solver configuration from a map
func extractSolverConfig(data map[string]any, solver *SolverConfig) {
	if val, ok := utils.ExtractFloat64(data, "tolerance"); ok {
		solver.Tolerance = val
	}
	if val, ok := utils.ExtractString(data, "bootstrap_word"); ok {
		solver.BootstrapWord = val
	}
	if val, ok := utils.ExtractInt64(data, "max_listed"); ok {
		solver.MaxListed = val
	}
}

// extractGameConfig extracts game configuration from a map
func extractGameConfig(data map[string]any, game *GameConfig) {
	if val, ok := utils.ExtractInt64(data, "top_ranks"); ok {
		game.TopRanks = val
	}
	if val, ok := utils.ExtractFloat64(data, "tepid_threshold"); ok {
		game.TepidThreshold = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractString(data, "prompt"); ok {
		cli.Prompt = val
	}
	if val, ok := utils.ExtractInt64(data, "suggest_limit"); ok {
		cli.SuggestLimit = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

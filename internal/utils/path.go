package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver locates the embedding file for the wordvane binary
// regardless of where it was launched from.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a new path resolver anchored at the running executable
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = "/tmp"
	}

	pr := &PathResolver{
		executableDir: execDir,
		configDir:     getConfigDir(homeDir),
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		execPath, execDir, pr.configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordvane")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordvane")
		}
		return filepath.Join(homeDir, ".config", "wordvane")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordvane")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordvane")
	default:
		return filepath.Join(homeDir, ".wordvane")
	}
}

// GetEmbeddingPath resolves the embedding file from a data dir and filename.
// Candidates, in order of preference:
// 1. <dir>/<file> as given (absolute dirs first)
// 2. relative to the executable directory
// 3. relative to the current working directory
// 4. <configDir>/data/<file>
func (pr *PathResolver) GetEmbeddingPath(dataDir, filename string) (string, error) {
	var candidates []string

	direct := filepath.Join(dataDir, filename)
	if filepath.IsAbs(dataDir) {
		candidates = append(candidates, direct)
	}
	candidates = append(candidates, filepath.Join(pr.executableDir, direct))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, direct))
	}
	candidates = append(candidates, filepath.Join(pr.configDir, "data", filename))

	for _, path := range candidates {
		if FileExists(path) {
			log.Debugf("Found embedding file: %s", path)
			return path, nil
		}
		log.Debugf("Embedding file candidate not found: %s", path)
	}

	// Nothing found; report the most likely path so the error is actionable
	return candidates[0], os.ErrNotExist
}

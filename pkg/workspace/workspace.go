package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "chartfetch"

// Workspace holds the locations chartfetch reads from and writes to
type Workspace struct {
	OutputDir  string // Where downloaded artifacts are written
	ConfigPath string // YAML configuration file
}

// New creates a Workspace writing to the current directory, with an
// XDG-compliant config path
func New() (*Workspace, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	return &Workspace{
		OutputDir:  ".",
		ConfigPath: configPath,
	}, nil
}

// NewWithOutputDir creates a Workspace rooted at dir with no config file
func NewWithOutputDir(dir string) *Workspace {
	return &Workspace{OutputDir: dir}
}

// getConfigPath follows the XDG Base Directory specification on Unix
// and uses AppData on Windows
func getConfigPath() (string, error) {
	// Check XDG_CONFIG_HOME first (Unix-like systems)
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Check if we're on Windows by looking for APPDATA
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// Fall back to ~/.config/chartfetch/config.yaml
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// SetOutputDir points the workspace at dir; empty keeps the current value
func (w *Workspace) SetOutputDir(dir string) {
	if dir != "" {
		w.OutputDir = dir
	}
}

// Initialize creates the output directory if it doesn't exist
func (w *Workspace) Initialize() error {
	if err := os.MkdirAll(w.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.OutputDir, err)
	}
	return nil
}

// Exists checks if the output directory exists
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.OutputDir)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// ArtifactPath returns the full path for a downloaded file
func (w *Workspace) ArtifactPath(filename string) string {
	return filepath.Join(w.OutputDir, filename)
}

// AbsOutputDir returns the output directory as an absolute path
func (w *Workspace) AbsOutputDir() string {
	abs, err := filepath.Abs(w.OutputDir)
	if err != nil {
		return w.OutputDir
	}
	return abs
}

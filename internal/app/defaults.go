package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PICSORT_CONFIG_PATH: config file location (default: ~/.config/picsort.toml)
//   - PICSORT_HOME: base directory for picsort data (default: ~/.local/share/picsort)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking PICSORT_CONFIG_PATH env var
// first, then falling back to the default ~/.config/picsort.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("PICSORT_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "picsort.toml"), nil
}

// getBaseDir returns the base directory for picsort data, checking PICSORT_HOME
// env var first, then falling back to the XDG default ~/.local/share/picsort.
func getBaseDir() (string, error) {
	if path := os.Getenv("PICSORT_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "picsort"), nil
}

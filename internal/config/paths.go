package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the user-level config file path, following the
// XDG Base Directory Specification (e.g. ~/.config/shiplog/config.yml on
// Linux).
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "shiplog", "config.yml"), nil
}

// ProjectConfigPath returns the project-level config path relative to the
// current directory.
func ProjectConfigPath() string {
	return filepath.Join(".shiplog", "config.yml")
}

// LegacyProjectConfigPath returns the old JSON project config location,
// still read for backward compatibility.
func LegacyProjectConfigPath() string {
	return filepath.Join(".shiplog", "config.json")
}

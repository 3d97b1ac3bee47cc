package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path.
	EnvConfigPath = "DOT2HTML_CONFIG"
	// ConfigDirName is the config directory name under XDG.
	ConfigDirName = "dot2html"
)

// workingDirNames are probed in the working directory, in order.
var workingDirNames = []string{"dot2html.toml", "dot2html.yaml"}

// xdgNames are probed inside the XDG config directory, in order.
var xdgNames = []string{"config.toml", "config.yaml"}

// FindConfigPath searches for a config file in priority order:
//  1. $DOT2HTML_CONFIG (explicit path)
//  2. ./dot2html.toml, ./dot2html.yaml
//  3. $XDG_CONFIG_HOME/dot2html/config.toml, config.yaml
//  4. ~/.config/dot2html/config.toml, config.yaml
//
// Returns empty string if no config file is found.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}

	for _, name := range workingDirNames {
		if fileExists(name) {
			if abs, err := filepath.Abs(name); err == nil {
				return abs
			}
			return name
		}
	}

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		for _, name := range xdgNames {
			path := filepath.Join(xdgHome, ConfigDirName, name)
			if fileExists(path) {
				return path
			}
		}
	}

	if home := os.Getenv("HOME"); home != "" {
		for _, name := range xdgNames {
			path := filepath.Join(home, ".config", ConfigDirName, name)
			if fileExists(path) {
				return path
			}
		}
	}

	return ""
}

// DefaultConfigPath returns the preferred location for a new config file.
// Prefers XDG config home, falls back to the working directory.
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.toml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.toml")
	}
	return workingDirNames[0]
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(configPath string) error {
	dir := filepath.Dir(configPath)
	return os.MkdirAll(dir, 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// internal/config/discover.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./episoder.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "episoder", "config.toml")
}

// StateDir returns the directory holding the saved token.
// EPISODER_HOME wins, then $XDG_STATE_HOME/episoder, then ~/.local/state/episoder.
func StateDir() string {
	if dir := os.Getenv("EPISODER_HOME"); dir != "" {
		return dir
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "episoder")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "episoder")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. EPISODER_CONFIG environment variable
//  2. ./episoder.toml (current directory)
//  3. $XDG_CONFIG_HOME/episoder/config.toml
//  4. /etc/episoder/config.toml
//  5. $EPISODE_PATH/episode_renamer.conf (legacy INI)
func Discover() (string, error) {
	if envPath := os.Getenv("EPISODER_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("EPISODER_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./episoder.toml",
		DefaultPath(),
		"/etc/episoder/config.toml",
	}
	if legacy := os.Getenv("EPISODE_PATH"); legacy != "" {
		paths = append(paths, filepath.Join(legacy, "episode_renamer.conf"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}

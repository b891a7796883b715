// Package config resolves file locations and user overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDatabaseFile is the SQLite file name used when nothing is configured.
const DefaultDatabaseFile = "gari.db"

// DatabasePath resolves the SQLite database location. Precedence:
// 1. Viper configuration (config file or GARI_DATABASE_PATH)
// 2. $XDG_DATA_HOME/gari/gari.db
// 3. ~/.local/share/gari/gari.db
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}

	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "gari", DefaultDatabaseFile)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Last resort: current directory
		return DefaultDatabaseFile
	}
	return filepath.Join(home, ".local", "share", "gari", DefaultDatabaseFile)
}

// ExpandPath expands a leading ~ and any $VAR environment references in a
// configured path, so values like ~/.local/share/gari/gari.db and
// $HOME/gari.db both work.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

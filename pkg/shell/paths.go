package shell

import (
	"os"
	"path/filepath"
)

const appName = "abasic"

// configPath returns the path of the configuration file:
// $XDG_CONFIG_HOME/abasic/config.yaml, or ~/.config/abasic/config.yaml.
func configPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// dbPath returns the default path of the database:
// $XDG_STATE_HOME/abasic/db.bolt, or ~/.local/state/abasic/db.bolt.
func dbPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "db.bolt"), nil
}

func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

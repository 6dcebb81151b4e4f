// Package config resolves relcfg's on-disk locations and loads user settings.
package config

import (
	"os"
	"path/filepath"
)

// Environment overrides for on-disk locations.
const (
	EnvRelcfgHome = "RELCFG_HOME"
	EnvRelcfgDB   = "RELCFG_DB"
)

// DataDir returns the directory used to store relcfg data: $RELCFG_HOME when
// set, otherwise ~/.relcfg.
func DataDir() (string, error) {
	if d := os.Getenv(EnvRelcfgHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".relcfg"), nil
}

// EnsureDataDir returns DataDir after creating it.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// DBPath returns the full path to the SQLite template store.
func DBPath() (string, error) {
	if p := os.Getenv(EnvRelcfgDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "templates.db"), nil
}

// SettingsPath returns the default settings file location.
func SettingsPath() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.yaml"), nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName      = "paneshell"
	configFile   = "config.toml"
	databaseName = "sessions.db"
	filtersDir   = "filters"
	logsDir      = "logs"
	dirPerm      = 0o755
)

// XDGDirs holds the per-application XDG base directories.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs resolves the XDG base directories for paneshell, falling back to
// the defaults under the user's home directory.
func GetXDGDirs() (XDGDirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return XDGDirs{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return XDGDirs{
		ConfigHome: filepath.Join(xdgBase("XDG_CONFIG_HOME", filepath.Join(home, ".config")), appName),
		DataHome:   filepath.Join(xdgBase("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), appName),
		StateHome:  filepath.Join(xdgBase("XDG_STATE_HOME", filepath.Join(home, ".local", "state")), appName),
	}, nil
}

func xdgBase(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir
	}
	return fallback
}

// GetConfigDir returns the directory holding config.toml.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetConfigFile returns the path of config.toml.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// GetDatabaseFile returns the default session database path.
func GetDatabaseFile() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.DataHome, databaseName), nil
}

// GetFilterStoreDir returns the default directory of compiled content filters.
func GetFilterStoreDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.DataHome, filtersDir), nil
}

// GetLogDir returns the default log directory.
func GetLogDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.StateHome, logsDir), nil
}

// EnsureDirectories creates the config, data and state directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

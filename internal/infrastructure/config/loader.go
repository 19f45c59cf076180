package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/paneshell/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configDir      string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a configuration manager reading from the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerAt(configDir)
}

// NewManagerAt creates a configuration manager reading config.toml from configDir.
func NewManagerAt(configDir string) (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	// PANESHELL_WINDOW_WIDTH overrides window.width, and so on.
	v.SetEnvPrefix("PANESHELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "PANESHELL_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind PANESHELL_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "PANESHELL_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind PANESHELL_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		configDir: configDir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A default config.toml is written on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configPath(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// decode unmarshals, completes, normalizes and validates the viper state.
func (m *Manager) decode() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDynamicPaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensureDynamicPaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.ContentFiltering.StoreDir == "" {
		storeDir, err := GetFilterStoreDir()
		if err != nil {
			return fmt.Errorf("failed to get filter store directory: %w", err)
		}
		config.ContentFiltering.StoreDir = storeDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = logging.NormalizeFormat(config.Logging.Format)
	config.Window.DefaultTitle = strings.TrimSpace(config.Window.DefaultTitle)
	config.ContentFiltering.Identifier = strings.TrimSpace(config.ContentFiltering.Identifier)
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	configCopy.Search.Shortcuts = make(map[string]string, len(m.config.Search.Shortcuts))
	for k, v := range m.config.Search.Shortcuts {
		configCopy.Search.Shortcuts[k] = v
	}
	return &configCopy
}

// Save validates cfg and writes it to config.toml.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.setValues(cfg)
	if err := m.viper.WriteConfigAs(m.configPath()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if m.watching {
		// The watcher sees our own write; the in-memory config is already current.
		m.skipNextReload = true
		configCopy := *cfg
		m.config = &configCopy
		return nil
	}
	return m.reload()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configPath()
}

func (m *Manager) configPath() string {
	return filepath.Join(m.configDir, configFile)
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	path := m.configPath()
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log := logging.NewFromEnv()
	log.Info().Str("path", path).Msg("created default configuration file")
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("window.default_title", defaults.Window.DefaultTitle)
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.cascade_x", defaults.Window.CascadeX)
	m.viper.SetDefault("window.cascade_y", defaults.Window.CascadeY)

	m.viper.SetDefault("chrome.bar_height", defaults.Chrome.BarHeight)

	m.viper.SetDefault("search.default_search", defaults.Search.DefaultSearch)
	m.viper.SetDefault("search.shortcuts", defaults.Search.Shortcuts)

	m.viper.SetDefault("content_filtering.enabled", defaults.ContentFiltering.Enabled)
	m.viper.SetDefault("content_filtering.identifier", defaults.ContentFiltering.Identifier)
	m.viper.SetDefault("content_filtering.store_dir", defaults.ContentFiltering.StoreDir)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)

	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("session.auto_save", defaults.Session.AutoSave)
	m.viper.SetDefault("session.snapshot_interval_ms", defaults.Session.SnapshotIntervalMs)
}

// setValues copies cfg into viper so it can be written back to disk.
func (m *Manager) setValues(cfg *Config) {
	m.viper.Set("window.default_title", cfg.Window.DefaultTitle)
	m.viper.Set("window.width", cfg.Window.Width)
	m.viper.Set("window.height", cfg.Window.Height)
	m.viper.Set("window.cascade_x", cfg.Window.CascadeX)
	m.viper.Set("window.cascade_y", cfg.Window.CascadeY)
	m.viper.Set("chrome.bar_height", cfg.Chrome.BarHeight)
	m.viper.Set("search.default_search", cfg.Search.DefaultSearch)
	m.viper.Set("search.shortcuts", cfg.Search.Shortcuts)
	m.viper.Set("content_filtering.enabled", cfg.ContentFiltering.Enabled)
	m.viper.Set("content_filtering.identifier", cfg.ContentFiltering.Identifier)
	m.viper.Set("content_filtering.store_dir", cfg.ContentFiltering.StoreDir)
	m.viper.Set("logging.level", cfg.Logging.Level)
	m.viper.Set("logging.format", cfg.Logging.Format)
	m.viper.Set("logging.max_age", cfg.Logging.MaxAge)
	m.viper.Set("logging.log_dir", cfg.Logging.LogDir)
	m.viper.Set("logging.enable_file_log", cfg.Logging.EnableFileLog)
	m.viper.Set("database.path", cfg.Database.Path)
	m.viper.Set("session.auto_save", cfg.Session.AutoSave)
	m.viper.Set("session.snapshot_interval_ms", cfg.Session.SnapshotIntervalMs)
}
